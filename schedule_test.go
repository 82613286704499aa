package openinghours

import (
	"testing"
	"time"
)

func rng(start, end int, state State, comments ...string) TimeRange {
	return TimeRange{Start: ExtendedTime(start), End: ExtendedTime(end), State: state, Comments: comments}
}

func TestScheduleFromRangesMergesOverlap(t *testing.T) {
	s := scheduleFromRanges([]TimeRange{
		rng(600, 720, Open),
		rng(700, 800, Open),
		rng(100, 100, Open), // empty, dropped
	})
	if len(s.ranges) != 1 {
		t.Fatalf("got %d ranges, want 1: %+v", len(s.ranges), s.ranges)
	}
	if s.ranges[0].Start != 600 || s.ranges[0].End != 800 {
		t.Errorf("merged range = %+v, want [600,800)", s.ranges[0])
	}
}

func TestScheduleInsertSplitsExisting(t *testing.T) {
	base := scheduleFromRanges([]TimeRange{rng(540, 1080, Open, "base")})
	out := base.insert(rng(600, 660, Closed, "lunch"))

	if len(out.ranges) != 3 {
		t.Fatalf("got %d ranges, want 3: %+v", len(out.ranges), out.ranges)
	}
	want := []TimeRange{
		rng(540, 600, Open, "base"),
		rng(600, 660, Closed, "lunch"),
		rng(660, 1080, Open, "base"),
	}
	for i, w := range want {
		if out.ranges[i].Start != w.Start || out.ranges[i].End != w.End || out.ranges[i].State != w.State {
			t.Errorf("range %d = %+v, want %+v", i, out.ranges[i], w)
		}
	}
}

func TestScheduleInsertMergesTouchingSameState(t *testing.T) {
	base := scheduleFromRanges([]TimeRange{rng(0, 600, Open)})
	out := base.insert(rng(600, 720, Open))
	if len(out.ranges) != 1 || out.ranges[0].Start != 0 || out.ranges[0].End != 720 {
		t.Fatalf("expected merged single range, got %+v", out.ranges)
	}
}

func TestScheduleAdditionLaterWins(t *testing.T) {
	base := scheduleFromRanges([]TimeRange{rng(0, 1440, Open, "normal")})
	extra := scheduleFromRanges([]TimeRange{rng(720, 780, Closed, "lunch")})

	out := base.addition(extra)
	flat := out.flatten()
	if len(flat) != 3 {
		t.Fatalf("got %d ranges, want 3: %+v", len(flat), flat)
	}
	if flat[1].Start != 720 || flat[1].End != 780 || flat[1].State != Closed {
		t.Errorf("middle range = %+v, want [720,780) Closed", flat[1])
	}
}

func TestScheduleFlattenFillsGaps(t *testing.T) {
	s := scheduleFromRanges([]TimeRange{rng(600, 1080, Open)})
	flat := s.flatten()
	if len(flat) != 3 {
		t.Fatalf("got %d ranges, want 3: %+v", len(flat), flat)
	}
	if flat[0].Start != 0 || flat[0].End != 600 || flat[0].State != Closed {
		t.Errorf("leading gap = %+v", flat[0])
	}
	if flat[2].Start != 1080 || flat[2].End != 1440 || flat[2].State != Closed {
		t.Errorf("trailing gap = %+v", flat[2])
	}
}

func TestScheduleIsAlwaysClosedNoComments(t *testing.T) {
	if !(Schedule{}).isAlwaysClosedNoComments() {
		t.Error("an empty schedule should count as always-closed-no-comments")
	}
	closedOnly := scheduleFromRanges([]TimeRange{rng(0, 1440, Closed)})
	if !closedOnly.isAlwaysClosedNoComments() {
		t.Error("an all-Closed, no-comment schedule should qualify")
	}
	withComment := scheduleFromRanges([]TimeRange{rng(0, 1440, Closed, "reason")})
	if withComment.isAlwaysClosedNoComments() {
		t.Error("a Closed schedule carrying a comment should not qualify")
	}
	withOpen := scheduleFromRanges([]TimeRange{rng(0, 1440, Open)})
	if withOpen.isAlwaysClosedNoComments() {
		t.Error("an Open schedule should not qualify")
	}
}

func TestScheduleAtExtendedTimeBleedsPastMidnight(t *testing.T) {
	expr := mustParse(t, "Fr 20:00-26:00")
	rs := expr.Rules[0]

	friday := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)

	// Saturday's own schedule receives the tail end of Friday's extended
	// closing time (02:00) even though the rule doesn't match Saturday.
	satSchedule := rs.scheduleAt(saturday, nil, true, false)
	flat := satSchedule.flatten()
	if len(flat) != 2 {
		t.Fatalf("got %d ranges, want 2: %+v", len(flat), flat)
	}
	if flat[0].Start != 0 || flat[0].End != 120 || flat[0].State != Open {
		t.Errorf("bled-over range = %+v, want [0,120) Open", flat[0])
	}

	// Friday's own schedule only covers 20:00 onward (the matchedYesterday
	// anchor contributes nothing since Thursday didn't match).
	friSchedule := rs.scheduleAt(friday, nil, false, true)
	friFlat := friSchedule.flatten()
	last := friFlat[len(friFlat)-1]
	if last.Start != 1200 || last.End != 1440 || last.State != Open {
		t.Errorf("Friday's own range = %+v, want [1200,1440) Open", last)
	}
}

func TestScheduleAtNoMatchIsEmpty(t *testing.T) {
	expr := mustParse(t, "Mo 10:00-12:00")
	rs := expr.Rules[0]
	tuesday := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := rs.scheduleAt(tuesday, nil, false, false)
	if !s.IsEmpty() {
		t.Errorf("expected an empty schedule when neither anchor matched, got %+v", s.ranges)
	}
}

func TestScheduleAtAlwaysSentinel(t *testing.T) {
	expr := mustParse(t, "24/7")
	rs := expr.Rules[0]
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	s := rs.scheduleAt(today, nil, false, true)
	flat := s.flatten()
	if len(flat) != 1 || flat[0].Start != 0 || flat[0].End != 1440 || flat[0].State != Open {
		t.Fatalf("expected a single full-day Open range, got %+v", flat)
	}

	empty := rs.scheduleAt(today, nil, false, false)
	if !empty.IsEmpty() {
		t.Error("24/7 rule not matching today should produce an empty schedule")
	}
}
