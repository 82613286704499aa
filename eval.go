package openinghours

import (
	"iter"
	"time"
)

// cap10000 is the exclusive end of the supported date range: the instant
// just after 9999-12-31, used as the default upper bound for open-ended
// searches.
var cap10000 = time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)

// localize converts t into ctx's configured timezone, per spec.md §6: a
// caller-supplied instant is always evaluated against the context's local
// zone, regardless of the zone it was originally constructed in. A nil
// ctx or Location leaves t untouched.
func localize(t time.Time, ctx *Context) time.Time {
	if ctx == nil || ctx.Location == nil {
		return t
	}
	return t.In(ctx.Location)
}

// matchesDay reports whether rs's day selector admits date, honoring the
// Always sentinel and the [1900, 9999] supported range.
func (rs RuleSequence) matchesDay(date time.Time, ctx *Context) bool {
	if !inSupportedRange(date) {
		return false
	}
	if rs.Always {
		return true
	}
	return rs.Day.Contains(date, ctx)
}

// scheduleAt combines every rule's own per-day contribution in sequence
// order, applying the Override/Additional/Fallback composition described
// in spec.md §4.F (grounded on schedule_from_matching_rules in the
// reference implementation: an Override rule whose Kind is Closed behaves
// like Additional, see DESIGN.md Open Question (a)).
func (e *Expression) scheduleAt(date time.Time, ctx *Context) Schedule {
	if !inSupportedRange(date) {
		return Schedule{}
	}

	yesterday := date.AddDate(0, 0, -1)

	var (
		prevMatch    bool
		prevSchedule Schedule
		havePrev     bool
	)

	for _, rs := range e.Rules {
		curMatch := rs.matchesDay(date, ctx)
		curMatchYesterday := rs.matchesDay(yesterday, ctx)
		curSchedule := rs.scheduleAt(date, ctx, curMatchYesterday, curMatch)

		var newMatch bool
		var newSchedule Schedule

		switch {
		case rs.Operator == OpOverride && rs.Kind != Closed:
			newMatch = curMatch || prevMatch
			if curMatch {
				newSchedule = curSchedule
			} else if havePrev {
				newSchedule = prevSchedule
			} else {
				newSchedule = curSchedule
			}

		case rs.Operator == OpFallback:
			if prevMatch && havePrev && !prevSchedule.isAlwaysClosedNoComments() {
				newMatch = prevMatch
				newSchedule = prevSchedule
			} else {
				newMatch = curMatch
				newSchedule = curSchedule
			}

		default: // OpAdditional, or OpOverride with Kind == Closed
			newMatch = prevMatch || curMatch
			if havePrev {
				newSchedule = prevSchedule.addition(curSchedule)
			} else {
				newSchedule = curSchedule
			}
		}

		prevMatch, prevSchedule, havePrev = newMatch, newSchedule, true
	}

	return prevSchedule
}

func minuteOfDay(t time.Time) int { return t.Hour()*60 + t.Minute() }

func findRangeIndex(flat []TimeRange, minute int) int {
	for i, r := range flat {
		if int(r.Start) <= minute && minute < int(r.End) {
			return i
		}
	}
	return len(flat) - 1
}

// State reports the state and active comments at t, per spec.md §4.F:
// the last winning rule's state and comments, or Closed/no comment when
// nothing matches and, unconditionally, outside [1900, 9999].
func (e *Expression) State(t time.Time, ctx *Context) (State, []string) {
	t = localize(t, ctx).Truncate(time.Minute)
	if !inSupportedRange(t) {
		return Closed, nil
	}

	date := dateOnly(t)
	flat := e.scheduleAt(date, ctx).flatten()
	idx := findRangeIndex(flat, minuteOfDay(t))
	if idx < 0 || idx >= len(flat) {
		return Closed, nil
	}
	return flat[idx].State, flat[idx].Comments
}

// IsOpen reports whether the expression evaluates to Open at t.
func (e *Expression) IsOpen(t time.Time, ctx *Context) bool {
	s, _ := e.State(t, ctx)
	return s == Open
}

// IsClosed reports whether the expression evaluates to Closed at t.
func (e *Expression) IsClosed(t time.Time, ctx *Context) bool {
	s, _ := e.State(t, ctx)
	return s == Closed
}

// IsUnknown reports whether the expression evaluates to Unknown at t.
func (e *Expression) IsUnknown(t time.Time, ctx *Context) bool {
	s, _ := e.State(t, ctx)
	return s == Unknown
}

// dayBoundaryCandidate returns the day, strictly after date, that the
// next-change search may jump to — the coarse hint it uses to skip over
// long constant stretches (e.g. "2099 Mo-Su 12:30-17:00" searched from
// year 2000) instead of scanning one day at a time. It is the day after
// date when some rule's day selector matches date or that next day (its
// time ranges may change the state there), and otherwise the smallest day
// at which any rule's own day selector flips membership.
func (e *Expression) dayBoundaryCandidate(date time.Time, ctx *Context) (time.Time, bool) {
	var best time.Time
	found := false
	tomorrow := date.AddDate(0, 0, 1)

	for _, rs := range e.Rules {
		if rs.Always {
			continue
		}
		if rs.matchesDay(date, ctx) || rs.matchesDay(tomorrow, ctx) {
			return tomorrow, true
		}
		cand, ok := rs.Day.NextBoundary(date, ctx)
		if !ok {
			continue
		}
		if !found || cand.Before(best) {
			best, found = cand, true
		}
	}

	return best, found
}

// NextChange computes the smallest instant strictly after t at which
// State differs from State(t), or false if there is none up to the
// year-9999 cap (spec.md §4.F).
func (e *Expression) NextChange(t time.Time, ctx *Context) (time.Time, bool) {
	t = localize(t, ctx).Truncate(time.Minute)

	if t.Before(minDate) {
		return minDate, true
	}
	if dateOnly(t).After(maxDate) {
		return time.Time{}, false
	}

	curState, _ := e.State(t, ctx)
	cursor := t

	for {
		date := dateOnly(cursor)
		if date.After(maxDate) {
			return time.Time{}, false
		}

		flat := e.scheduleAt(date, ctx).flatten()
		minute := minuteOfDay(cursor)
		idx := findRangeIndex(flat, minute)

		for i := idx; i < len(flat); i++ {
			if flat[i].State != curState {
				return date.Add(time.Duration(flat[i].Start) * time.Minute), true
			}
		}

		// No change found for the remainder of this day. Try to jump
		// straight to the next day any rule's day selector could flip on,
		// falling back to the very next day when no selector offers a
		// sharper hint.
		next, ok := e.dayBoundaryCandidate(date, ctx)
		if !ok || !next.After(date) {
			next = date.AddDate(0, 0, 1)
		}
		if next.After(maxDate) {
			return time.Time{}, false
		}

		cursor = next
	}
}

// Interval is one maximal range of constant state, as yielded by
// Intervals.
type Interval struct {
	Start, End time.Time
	State      State
	Comments   []string
}

// Intervals produces the lazy sequence of maximal (start, end, state)
// intervals beginning at from, bounded by until (or the year-9999 cap
// when until is the zero time.Time). It emits at least one element unless
// from >= until (spec.md §4.F, §8).
func (e *Expression) Intervals(from, until time.Time, ctx *Context) iter.Seq[Interval] {
	from = localize(from, ctx).Truncate(time.Minute)
	cap := until
	if cap.IsZero() {
		cap = cap10000
	} else {
		cap = localize(cap, ctx).Truncate(time.Minute)
	}

	return func(yield func(Interval) bool) {
		if !from.Before(cap) {
			return
		}

		cursor := from
		for {
			state, comments := e.State(cursor, ctx)
			next, ok := e.NextChange(cursor, ctx)

			var end time.Time
			switch {
			case !ok:
				end = cap
			case next.After(cap):
				end = cap
			default:
				end = next
			}

			if !yield(Interval{Start: cursor, End: end, State: state, Comments: comments}) {
				return
			}
			if !end.Before(cap) {
				return
			}

			cursor = end
		}
	}
}
