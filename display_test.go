package openinghours

import (
	"testing"
	"time"
)

var seedProbes = []time.Time{
	time.Date(2024, 1, 3, 11, 0, 0, 0, time.UTC),
	time.Date(2024, 1, 8, 11, 0, 0, 0, time.UTC),
	time.Date(2024, 12, 13, 11, 0, 0, 0, time.UTC),
	time.Date(2024, 6, 15, 11, 0, 0, 0, time.UTC),
}

func TestDisplayRoundTripsPerDimension(t *testing.T) {
	cases := []string{
		"Mo-Fr 10:00-18:00",
		"24/7",
		"24/7 off",
		"PH off",
		"PH +1 day off",
		"2024 Dec 12-14",
		"2024-2030 Mo 10:00-12:00",
		"2024,2026,2028 Jan-Mar 10:00-12:00",
		"week 1-10/2 Mo 10:00-12:00",
		"Th[1,-1] 10:00-12:00",
		"Fr 20:00-26:00",
		"Mo 20:00+",
		"sunrise-sunset",
		"dusk+01:00-23:00",
		`Mo 10:00-12:00 "by appointment"`,
	}

	for _, text := range cases {
		expr := mustParse(t, text)
		rendered := expr.String()
		reparsed, err := Parse(rendered)
		if err != nil {
			t.Fatalf("%q rendered as %q, which failed to reparse: %v", text, rendered, err)
		}

		ctx := mustContext(t)
		for _, probe := range seedProbes {
			s1, c1 := expr.State(probe, ctx)
			s2, c2 := reparsed.State(probe, ctx)
			if s1 != s2 {
				t.Errorf("%q -> %q: state mismatch at %v: %v != %v", text, rendered, probe, s1, s2)
			}
			if len(c1) != len(c2) {
				t.Errorf("%q -> %q: comment count mismatch at %v: %v != %v", text, rendered, probe, c1, c2)
			}
		}
	}
}

func TestDisplayYearList(t *testing.T) {
	got := displayYearList([]YearRange{
		{Start: 2024, End: 2024},
		{Start: 2026, End: 2030, Step: 2},
		{Start: 2040, OpenEnded: true},
	})
	want := "2024,2026-2030/2,2040+"
	if got != want {
		t.Errorf("displayYearList = %q, want %q", got, want)
	}
}

func TestDisplayWeekdayRangeWithNth(t *testing.T) {
	wdr := WeekDayRange{
		Start: time.Thursday,
		End:   time.Thursday,
		Nth:   NthSpec{FromStart: [5]bool{true}, FromEnd: [5]bool{true}},
	}
	got := displayWeekdayRange(wdr)
	want := "Th[1,-1]"
	if got != want {
		t.Errorf("displayWeekdayRange = %q, want %q", got, want)
	}
}

func TestDisplayTimeEndpointVariableWithOffset(t *testing.T) {
	ep := TimeEndpoint{IsVariable: true, Event: Dusk, Offset: -45}
	got := displayTimeEndpoint(ep)
	want := "dusk-00:45"
	if got != want {
		t.Errorf("displayTimeEndpoint = %q, want %q", got, want)
	}
}

func TestDisplayTimeSpanStep(t *testing.T) {
	span := TimeSpan{
		Start: TimeEndpoint{Fixed: 600},
		End:   TimeEndpoint{Fixed: 720},
		Step:  15,
	}
	got := displayTimeSpan(span)
	want := "10:00-12:00/15"
	if got != want {
		t.Errorf("displayTimeSpan = %q, want %q", got, want)
	}
}

func TestDisplayAlwaysSentinel(t *testing.T) {
	expr := mustParse(t, "24/7")
	if got := expr.String(); got != "24/7" {
		t.Errorf("String() = %q, want %q", got, "24/7")
	}
}
