// Package openinghours parses and evaluates the OpenStreetMap
// opening_hours micro-language: given a textual expression such as
// "Mo-Fr 10:00-18:00; Sa-Su 10:00-12:00; PH off" and a point in time, it
// answers whether the subject is open, closed, or in an unknown state,
// when the next state transition occurs, and the lazy sequence of
// (start, end, state) intervals from a given instant onward.
//
// Example usage:
//
//	expr, err := openinghours.Parse("Mo-Fr 10:00-18:00; Sa-Su 10:00-12:00")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, _ := openinghours.NewContext(time.Local)
//	state, _ := expr.State(time.Now(), ctx)
package openinghours
