package openinghours

import "sort"

// Normalize produces a canonical form of e: Year ranges sorted and
// deduplicated, Week ranges sorted, fixed time spans merged where they
// touch or overlap, and the literal "always open, no constraints" shape
// recognized and collapsed to the Always sentinel. MonthDay and Weekday
// ranges, stepped or variable time spans, and the list of rules itself
// are left as written (no rule is dropped). Normalization is an
// optimization only: it must
// never change the result of State, NextChange, or Intervals (spec.md
// §4.C).
func Normalize(e Expression) Expression {
	out := Expression{raw: e.raw}
	for _, rs := range e.Rules {
		nrs := rs
		if !nrs.Always {
			nrs.Day = normalizeDaySelector(nrs.Day)
			nrs.Time = normalizeTimeSelector(nrs.Time)
			if nrs.Day.IsEmpty() && nrs.Time.IsEmpty() && nrs.Kind == Open {
				nrs.Always = true
			}
		}
		out.Rules = append(out.Rules, nrs)
	}
	return out
}

func normalizeDaySelector(d DaySelector) DaySelector {
	// MonthDay and Weekday ranges are left as-authored: their relative
	// order can matter around year wraparound and nth-in-month wrapping,
	// so only the order-insensitive dimensions are canonicalized here.
	d.Year = sortYearRanges(d.Year)
	d.Week = sortWeekRanges(d.Week)
	return d
}

func sortYearRanges(yrs []YearRange) []YearRange {
	if len(yrs) < 2 {
		return yrs
	}
	out := append([]YearRange(nil), yrs...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return dedupeYearRanges(out)
}

func dedupeYearRanges(sorted []YearRange) []YearRange {
	out := sorted[:0:0]
	for i, y := range sorted {
		if i > 0 && y == sorted[i-1] {
			continue
		}
		out = append(out, y)
	}
	return out
}

func sortWeekRanges(wrs []WeekRange) []WeekRange {
	if len(wrs) < 2 {
		return wrs
	}
	out := append([]WeekRange(nil), wrs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// normalizeTimeSelector sorts fixed-time spans and merges any that touch
// or overlap. Spans involving a variable (sun-event) endpoint or a step
// cannot be safely merged without re-resolving per day, so they are left
// untouched.
func normalizeTimeSelector(t TimeSelector) TimeSelector {
	if len(t.Spans) < 2 {
		return t
	}

	var fixed, rest []TimeSpan
	for _, s := range t.Spans {
		if s.Start.IsVariable || (!s.OpenEnded && s.End.IsVariable) || s.Step > 0 {
			rest = append(rest, s)
			continue
		}
		fixed = append(fixed, s)
	}

	sort.Slice(fixed, func(i, j int) bool { return fixed[i].Start.Fixed < fixed[j].Start.Fixed })

	var merged []TimeSpan
	for _, s := range fixed {
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			lastEnd := last.End.Fixed
			if last.OpenEnded {
				lastEnd = 1440
			}
			if !s.OpenEnded && s.Start.Fixed <= lastEnd {
				if s.End.Fixed > lastEnd {
					last.End.Fixed = s.End.Fixed
				}
				continue
			}
			if s.OpenEnded && s.Start.Fixed <= lastEnd {
				last.OpenEnded = true
				continue
			}
		}
		merged = append(merged, s)
	}

	return TimeSelector{Spans: append(merged, rest...)}
}
