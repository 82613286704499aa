package openinghours

import (
	"testing"
	"time"
)

func TestExpressionScheduleAtOverrideReplaces(t *testing.T) {
	expr := mustParse(t, "Mo-Su 09:00-21:00; Tu 10:00-12:00")
	ctx := mustContext(t)

	tuesday := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	flat := expr.scheduleAt(tuesday, ctx).flatten()
	if len(flat) != 3 {
		t.Fatalf("got %d ranges, want 3: %+v", len(flat), flat)
	}
	if flat[1].Start != 600 || flat[1].End != 720 || flat[1].State != Open {
		t.Errorf("override window = %+v, want [600,720) Open", flat[1])
	}
	if flat[0].State != Closed || flat[2].State != Closed {
		t.Errorf("outside the override window should fall back to Closed, got %+v", flat)
	}
}

func TestExpressionScheduleAtOverrideFallsBackWhenNotMatched(t *testing.T) {
	expr := mustParse(t, "Mo-Su 09:00-21:00; Tu 10:00-12:00")
	ctx := mustContext(t)

	wednesday := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	flat := expr.scheduleAt(wednesday, ctx).flatten()
	if len(flat) != 3 || flat[1].Start != 540 || flat[1].End != 1260 || flat[1].State != Open {
		t.Fatalf("expected the base rule to carry through, got %+v", flat)
	}
}

func TestExpressionScheduleAtOverrideClosedActsAdditional(t *testing.T) {
	expr := mustParse(t, "Mo-Su 09:00-21:00; Tu 10:00-12:00 closed")
	ctx := mustContext(t)

	tuesday := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	flat := expr.scheduleAt(tuesday, ctx).flatten()
	var closedWindow, openBefore, openAfter bool
	for _, r := range flat {
		switch {
		case r.Start == 600 && r.End == 720 && r.State == Closed:
			closedWindow = true
		case r.Start == 540 && r.End == 600 && r.State == Open:
			openBefore = true
		case r.Start == 720 && r.End == 1260 && r.State == Open:
			openAfter = true
		}
	}
	if !closedWindow || !openBefore || !openAfter {
		t.Fatalf("expected the base schedule to survive around the punched-out window, got %+v", flat)
	}
}

func TestExpressionScheduleAtAdditionalAugments(t *testing.T) {
	expr := mustParse(t, "Mo 09:00-12:00, Mo 14:00-18:00")
	ctx := mustContext(t)

	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	flat := expr.scheduleAt(monday, ctx).flatten()
	var morning, afternoon bool
	for _, r := range flat {
		if r.Start == 540 && r.End == 720 && r.State == Open {
			morning = true
		}
		if r.Start == 840 && r.End == 1080 && r.State == Open {
			afternoon = true
		}
	}
	if !morning || !afternoon {
		t.Fatalf("expected both additional windows present, got %+v", flat)
	}
}

func TestExpressionScheduleAtFallbackOnlyWhenNothingMatchedBefore(t *testing.T) {
	expr := mustParse(t, "Mo 09:00-12:00 || 24/7")
	ctx := mustContext(t)

	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	monFlat := expr.scheduleAt(monday, ctx).flatten()
	var monOpenWindow bool
	for _, r := range monFlat {
		if r.Start == 540 && r.End == 720 && r.State == Open {
			monOpenWindow = true
		}
	}
	if !monOpenWindow {
		t.Fatalf("Monday should carry the Mo rule's own 09:00-12:00 window, got %+v", monFlat)
	}
	if len(monFlat) != 3 || monFlat[0].State != Closed || monFlat[2].State != Closed {
		t.Fatalf("since the Mo rule matched, the 24/7 fallback must not apply outside its window, got %+v", monFlat)
	}

	tueFlat := expr.scheduleAt(tuesday, ctx).flatten()
	if len(tueFlat) != 1 || tueFlat[0].State != Open {
		t.Fatalf("Tuesday should fall back to 24/7, got %+v", tueFlat)
	}
}

func TestFindRangeIndex(t *testing.T) {
	flat := []TimeRange{
		{Start: 0, End: 600, State: Closed},
		{Start: 600, End: 720, State: Open},
		{Start: 720, End: 1440, State: Closed},
	}
	cases := []struct {
		minute int
		want   int
	}{
		{0, 0}, {599, 0}, {600, 1}, {719, 1}, {720, 2}, {1439, 2},
	}
	for _, c := range cases {
		if got := findRangeIndex(flat, c.minute); got != c.want {
			t.Errorf("findRangeIndex(%d) = %d, want %d", c.minute, got, c.want)
		}
	}
}

func TestDayBoundaryCandidateIgnoresAlwaysRules(t *testing.T) {
	expr := mustParse(t, "24/7")
	ctx := mustContext(t)
	_, ok := expr.dayBoundaryCandidate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ctx)
	if ok {
		t.Error("a 24/7-only expression should offer no day boundary hint")
	}
}

func TestDayBoundaryCandidateMinimumAcrossRules(t *testing.T) {
	expr := mustParse(t, "2030 10:00-12:00; 2025 10:00-12:00")
	ctx := mustContext(t)

	cand, ok := expr.dayBoundaryCandidate(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), ctx)
	if !ok {
		t.Fatal("expected a boundary hint")
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !cand.Equal(want) {
		t.Errorf("dayBoundaryCandidate = %v, want %v (the earlier of the two rules' boundaries)", cand, want)
	}
}

func TestNextChangeNoneForAlwaysOpen(t *testing.T) {
	expr := mustParse(t, "24/7")
	ctx := mustContext(t)
	if _, ok := expr.NextChange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ctx); ok {
		t.Error("24/7 should never report a next change")
	}
}

func TestIntervalsStopAtExplicitUntil(t *testing.T) {
	expr := mustParse(t, "Mo-Fr 09:00-17:00")
	ctx := mustContext(t)

	from := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	until := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	var got []Interval
	for iv := range expr.Intervals(from, until, ctx) {
		got = append(got, iv)
	}
	if len(got) != 2 {
		t.Fatalf("got %d intervals, want 2: %+v", len(got), got)
	}
	last := got[len(got)-1]
	if !last.End.Equal(until) {
		t.Errorf("last interval should be clipped to until, got %v", last.End)
	}
}

func TestStateLocalizesToContextTimezone(t *testing.T) {
	// A MonthDay selector open all day, so the fix has to reach the date
	// dimension (selectors.go) and not just the minute-of-day lookup.
	expr := mustParse(t, "Dec 00:00-24:00")

	est := time.FixedZone("EST", -5*3600)
	ctx, err := NewContext(est)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}

	// 2024-12-01 02:00 UTC is 2024-11-30 21:00 EST: the same instant falls
	// on different calendar dates depending on which zone reads it. Since
	// ctx is anchored to EST, evaluation must use the November date and
	// report Closed, even though the time.Time itself carries time.UTC.
	instant := time.Date(2024, 12, 1, 2, 0, 0, 0, time.UTC)
	if s, _ := expr.State(instant, ctx); s != Closed {
		t.Errorf("state at %v = %v, want Closed (Nov 30 in EST)", instant, s)
	}

	// The same wall-clock EST instant constructed directly in EST must
	// agree exactly, regardless of how the caller's time.Time was built.
	sameInstantEST := instant.In(est)
	wantState, wantComments := expr.State(sameInstantEST, ctx)
	gotState, gotComments := expr.State(instant, ctx)
	if gotState != wantState {
		t.Fatalf("State(%v) = %v, want %v (same instant as %v)", instant, gotState, wantState, sameInstantEST)
	}
	if len(gotComments) != len(wantComments) {
		t.Fatalf("comments differ: %v vs %v", gotComments, wantComments)
	}

	// Nudge five hours later, into 2024-12-01 07:00 UTC == 02:00 EST: now
	// the EST calendar date is December and the selector must flip Open.
	nowDecember := time.Date(2024, 12, 1, 7, 0, 0, 0, time.UTC)
	if s, _ := expr.State(nowDecember, ctx); s != Open {
		t.Errorf("state at %v = %v, want Open (Dec 1 in EST)", nowDecember, s)
	}

	// 2024-12-31 10:00 EST is plainly December 31 in EST, but if the
	// MonthDay window's end boundary were still anchored at UTC midnight
	// (instead of EST midnight) it would read as past the end of the
	// month, since EST midnight lands 5 hours after UTC midnight: pins
	// the fix down to the selector window construction, not just the
	// entry-point conversion.
	lastDayEST := time.Date(2024, 12, 31, 10, 0, 0, 0, est)
	if s, _ := expr.State(lastDayEST, ctx); s != Open {
		t.Errorf("state at %v = %v, want Open (still Dec 31 in EST)", lastDayEST, s)
	}
}
