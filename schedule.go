package openinghours

import (
	"sort"
	"time"

	"github.com/chrono-oh/openinghours/internal/sun"
)

// TimeRange is a sub-interval of a single calendar day carrying a state
// and the comments in force during it. Start/End are minutes from local
// midnight, 0 <= Start < End <= 1440: the evaluator never represents an
// interval crossing midnight (spec.md §4.F).
type TimeRange struct {
	Start, End ExtendedTime
	State      State
	Comments   []string
}

// Schedule describes one calendar day as a sequence of non-overlapping,
// increasing TimeRanges. Gaps (uncovered minutes) mean "no rule matched
// yet"; the evaluator fills them with Closed when it flattens a Schedule
// into the day's final answer.
type Schedule struct {
	ranges []TimeRange
}

var fullDaySpan = TimeSpan{
	Start: TimeEndpoint{Fixed: 0},
	End:   TimeEndpoint{Fixed: 1440},
}

// scheduleFromRanges builds a normalized Schedule from possibly
// overlapping ranges of the same pass, sorting and merging touching or
// overlapping ranges (grounded on Schedule::from_ranges in the reference
// implementation).
func scheduleFromRanges(ranges []TimeRange) Schedule {
	filtered := make([]TimeRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Start < r.End {
			filtered = append(filtered, r)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Start < filtered[j].Start })

	i := 0
	for i+1 < len(filtered) {
		if filtered[i].End >= filtered[i+1].Start {
			filtered[i].End = maxExt(filtered[i].End, filtered[i+1].End)
			filtered[i].Comments = unionComments(filtered[i].Comments, filtered[i+1].Comments)
			filtered = append(filtered[:i+1], filtered[i+2:]...)
		} else {
			i++
		}
	}

	return Schedule{ranges: filtered}
}

func maxExt(a, b ExtendedTime) ExtendedTime {
	if a > b {
		return a
	}
	return b
}

// unionComments merges and de-duplicates two sorted-or-not comment lists.
func unionComments(a, b []string) []string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// IsEmpty reports that the schedule carries no ranges at all (a fully
// closed/uncovered day).
func (s Schedule) IsEmpty() bool { return len(s.ranges) == 0 }

// insert carves ins_tr into the schedule, replacing any overlapping
// portions of existing ranges and merging with touching ranges of the
// same state (grounded on Schedule::insert in the reference
// implementation).
func (s Schedule) insert(tr TimeRange) Schedule {
	var before, after []TimeRange

	for _, r := range s.ranges {
		if r.Start < tr.End {
			r.End = minExt(r.End, tr.Start)
			if r.Start < r.End {
				before = append(before, r)
			} else {
				tr.Comments = unionComments(tr.Comments, r.Comments)
			}
		}
	}

	for _, r := range s.ranges {
		if r.End > tr.Start {
			r.Start = maxExt(r.Start, tr.End)
			if r.Start < r.End {
				after = append(after, r)
			} else {
				tr.Comments = unionComments(tr.Comments, r.Comments)
			}
		}
	}

	for len(before) > 0 && before[len(before)-1].End == tr.Start && before[len(before)-1].State == tr.State {
		last := before[len(before)-1]
		before = before[:len(before)-1]
		tr.Start = last.Start
		tr.Comments = unionComments(last.Comments, tr.Comments)
	}

	for len(after) > 0 && tr.End == after[0].Start && after[0].State == tr.State {
		first := after[0]
		after = after[1:]
		tr.End = first.End
		tr.Comments = unionComments(tr.Comments, first.Comments)
	}

	out := make([]TimeRange, 0, len(before)+1+len(after))
	out = append(out, before...)
	out = append(out, tr)
	out = append(out, after...)
	return Schedule{ranges: out}
}

func minExt(a, b ExtendedTime) ExtendedTime {
	if a < b {
		return a
	}
	return b
}

// addition merges other into s by inserting each of its ranges in turn;
// on overlap, the later (other's) range wins (grounded on
// Schedule::addition: the additional combinator still lets a more
// specific rule override the time window it actually covers, while
// leaving the rest of the base schedule intact).
func (s Schedule) addition(other Schedule) Schedule {
	out := s
	for _, tr := range other.ranges {
		out = out.insert(tr)
	}
	return out
}

// isAlwaysClosedNoComments reports whether the schedule is either empty
// or entirely Closed with no comments — used by the Fallback combinator
// to decide whether a prior match actually produced anything worth
// keeping.
func (s Schedule) isAlwaysClosedNoComments() bool {
	for _, r := range s.ranges {
		if r.State != Closed || len(r.Comments) > 0 {
			return false
		}
	}
	return true
}

// flatten fills any gaps with Closed/no-comment and returns the final,
// total covering of the day.
func (s Schedule) flatten() []TimeRange {
	out := make([]TimeRange, 0, len(s.ranges)+1)
	cursor := ExtendedTime(0)
	for _, r := range s.ranges {
		if cursor < r.Start {
			out = append(out, TimeRange{Start: cursor, End: r.Start, State: Closed})
		}
		out = append(out, r)
		cursor = r.End
	}
	if cursor < 1440 {
		out = append(out, TimeRange{Start: cursor, End: 1440, State: Closed})
	}
	return out
}

// scheduleAt computes this rule's own contribution to date's schedule. It
// needs to know whether the rule's day selector matched both yesterday
// and today, since a time span with an extended closing endpoint (past
// 24:00) or that otherwise runs past midnight bleeds today's window from
// a match that occurred on the previous calendar day.
func (rs RuleSequence) scheduleAt(date time.Time, ctx *Context, matchedYesterday, matchedToday bool) Schedule {
	if rs.Always {
		if !matchedToday {
			return Schedule{}
		}
		return Schedule{ranges: []TimeRange{{Start: 0, End: 1440, State: rs.Kind, Comments: rs.Comments}}}
	}

	spans := rs.Time.Spans
	if len(spans) == 0 {
		spans = []TimeSpan{fullDaySpan}
	}

	type anchor struct {
		day     time.Time
		offset  int
		matched bool
	}
	anchors := []anchor{
		{day: date.AddDate(0, 0, -1), offset: -1440, matched: matchedYesterday},
		{day: date, offset: 0, matched: matchedToday},
	}

	var ranges []TimeRange
	for _, a := range anchors {
		if !a.matched {
			continue
		}
		for _, span := range spans {
			startMin, endMin, ok := resolveSpan(span, a.day, ctx)
			if !ok {
				continue
			}
			s := startMin + a.offset
			e := endMin + a.offset
			if s < 0 {
				s = 0
			}
			if e > 1440 {
				e = 1440
			}
			if s < e {
				ranges = append(ranges, TimeRange{
					Start: ExtendedTime(s), End: ExtendedTime(e),
					State: rs.Kind, Comments: rs.Comments,
				})
			}
		}
	}

	return scheduleFromRanges(ranges)
}

// resolveSpan resolves a TimeSpan's endpoints into concrete, same-day
// minute offsets for the given calendar day. ok is false when a variable
// (sun-event) endpoint is undefined for this day/location (polar case).
func resolveSpan(span TimeSpan, day time.Time, ctx *Context) (startMin, endMin int, ok bool) {
	startMin, ok = resolveEndpoint(span.Start, day, ctx)
	if !ok {
		return 0, 0, false
	}

	if span.OpenEnded {
		endMin = 1440
	} else {
		endMin, ok = resolveEndpoint(span.End, day, ctx)
		if !ok {
			return 0, 0, false
		}
	}

	if endMin <= startMin {
		endMin += 1440
	}

	return startMin, endMin, true
}

func resolveEndpoint(ep TimeEndpoint, day time.Time, ctx *Context) (int, bool) {
	if !ep.IsVariable {
		return ep.Fixed.TotalMinutes(), true
	}
	if ctx == nil || !ctx.HasCoords {
		return 0, false
	}

	times, err := sun.Compute(day, ctx.Lat, ctx.Lon)
	if err != nil {
		return 0, false
	}

	var base time.Duration
	switch ep.Event {
	case Sunrise:
		base = times.Sunrise
	case Sunset:
		base = times.Sunset
	case Dusk:
		base = times.Dusk
	default:
		base = times.Dawn
	}

	return int(base/time.Minute) + ep.Offset, true
}
