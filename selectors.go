package openinghours

import "time"

// DaySelector.Contains/NextBoundary implement component 4.E: exact
// membership and boundary predicates for the date dimensions, consulted
// by the evaluator (4.F) once per candidate day.

// Contains reports whether date (any instant on a day; only its calendar
// date matters) is admitted by every *present* dimension of d.
func (d DaySelector) Contains(date time.Time, ctx *Context) bool {
	day := dateOnly(date)

	if len(d.Year) > 0 && !yearRangesContain(d.Year, day.Year()) {
		return false
	}
	if len(d.MonthDay) > 0 && !monthDayContains(d.MonthDay, day) {
		return false
	}
	if len(d.Week) > 0 && !weekRangesContain(d.Week, day) {
		return false
	}
	if len(d.Weekday) > 0 && !weekdayContains(d.Weekday, day, ctx) {
		return false
	}
	return true
}

// NextBoundary returns the smallest local midnight strictly after date at
// which d.Contains flips value, or false if no such day exists up to the
// year-9999 cap. Holiday tags are probed over a ~10-year horizon only (see
// weekdayNextBoundary).
func (d DaySelector) NextBoundary(date time.Time, ctx *Context) (time.Time, bool) {
	day := dateOnly(date)
	best, found := time.Time{}, false

	consider := func(t time.Time, ok bool) {
		if !ok || !t.After(day) {
			return
		}
		if !found || t.Before(best) {
			best, found = t, true
		}
	}

	if len(d.Year) > 0 {
		consider(yearNextBoundary(d.Year, day))
	}
	if len(d.MonthDay) > 0 {
		consider(monthDayNextBoundary(d.MonthDay, day))
	}
	if len(d.Week) > 0 {
		consider(weekNextBoundary(d.Week, day))
	}
	if len(d.Weekday) > 0 {
		consider(weekdayNextBoundary(d.Weekday, day, ctx))
	}

	if !found || best.After(maxDate) {
		return time.Time{}, false
	}
	return best, true
}

// --- Year ---

func yearRangeContains(r YearRange, year int) bool {
	end := r.End
	if r.OpenEnded {
		end = 9999
	}
	if year < r.Start || year > end {
		return false
	}
	step := r.Step
	if step < 1 {
		step = 1
	}
	return (year-r.Start)%step == 0
}

func yearRangesContain(rs []YearRange, year int) bool {
	for _, r := range rs {
		if yearRangeContains(r, year) {
			return true
		}
	}
	return false
}

func yearNextBoundary(rs []YearRange, day time.Time) (time.Time, bool) {
	cur := yearRangesContain(rs, day.Year())
	for y := day.Year() + 1; y <= 10000; y++ {
		if yearRangesContain(rs, y) != cur {
			return time.Date(y, 1, 1, 0, 0, 0, 0, day.Location()), true
		}
	}
	return time.Time{}, false
}

// --- MonthDay ---

func resolveDateBound(b DateBound, year int, loc *time.Location) time.Time {
	var base time.Time
	if b.IsEaster {
		base = easter(year, loc)
	} else {
		base = time.Date(year, b.Month, b.Day, 0, 0, 0, 0, loc)
	}
	base = base.AddDate(0, 0, b.DayOffset)
	base = shiftToWeekday(base, b.WeekdayShift)
	return base
}

// monthDayWindow resolves mdr's [start, end] window anchored at year, in
// loc (always the day's own location, so callers can compare the result
// directly against a wall-clock date), reporting ok=false when mdr is
// explicitly year-locked to a different year (a one-shot range).
func monthDayWindow(mdr MonthDayRange, year int, loc *time.Location) (start, end time.Time, ok bool) {
	switch mdr.Kind {
	case MDKindMonth:
		if mdr.Year != nil {
			if *mdr.Year != year {
				return time.Time{}, time.Time{}, false
			}
		}
		start = time.Date(year, mdr.MonthStart, 1, 0, 0, 0, 0, loc)
		endMonth, endYear := mdr.MonthEnd, year
		if mdr.MonthEnd < mdr.MonthStart {
			endYear++
		}
		end = lastDayOfMonth(endYear, endMonth, loc)
		return start, end, true

	default: // MDKindDate
		startExplicit := mdr.Start.Year != nil
		endExplicit := mdr.End.Year != nil

		startYear, endYear := year, year
		if startExplicit {
			startYear = *mdr.Start.Year
			if startYear != year && !endExplicit {
				return time.Time{}, time.Time{}, false
			}
		}
		if endExplicit {
			endYear = *mdr.End.Year
		} else {
			endYear = startYear
		}
		if startExplicit && endExplicit && startYear != year && endYear != year {
			return time.Time{}, time.Time{}, false
		}

		start = resolveDateBound(mdr.Start, startYear, loc)

		if mdr.OpenEnded {
			end = time.Date(startYear, 12, 31, 0, 0, 0, 0, loc)
			return start, end, true
		}

		end = resolveDateBound(mdr.End, endYear, loc)
		if end.Before(start) {
			end = resolveDateBound(mdr.End, endYear+1, loc)
		}
		return start, end, true
	}
}

func monthDayRangeContains(mdr MonthDayRange, day time.Time) bool {
	for _, y := range []int{day.Year() - 1, day.Year(), day.Year() + 1} {
		start, end, ok := monthDayWindow(mdr, y, day.Location())
		if !ok {
			continue
		}
		if !day.Before(start) && !day.After(end) {
			return true
		}
	}
	return false
}

func monthDayContains(mdrs []MonthDayRange, day time.Time) bool {
	for _, mdr := range mdrs {
		if monthDayRangeContains(mdr, day) {
			return true
		}
	}
	return false
}

func monthDayNextBoundary(mdrs []MonthDayRange, day time.Time) (time.Time, bool) {
	best, found := time.Time{}, false
	for _, mdr := range mdrs {
		years := []int{day.Year() - 1, day.Year(), day.Year() + 1, day.Year() + 2}
		// A year-locked range only has a window in its own year.
		for _, yp := range []*int{mdr.Year, mdr.Start.Year, mdr.End.Year} {
			if yp != nil {
				years = append(years, *yp)
			}
		}
		for _, y := range years {
			start, end, ok := monthDayWindow(mdr, y, day.Location())
			if !ok {
				continue
			}
			for _, b := range []time.Time{start, end.AddDate(0, 0, 1)} {
				if !b.After(day) {
					continue
				}
				if monthDayContains(mdrs, b) == monthDayContains(mdrs, b.AddDate(0, 0, -1)) {
					continue // not an actual flip of the union
				}
				if !found || b.Before(best) {
					best, found = b, true
				}
			}
		}
	}
	return best, found
}

// --- Week ---

func weekRangeContains(r WeekRange, week int) bool {
	if week < r.Start || week > r.End {
		return false
	}
	step := r.Step
	if step < 1 {
		step = 1
	}
	return (week-r.Start)%step == 0
}

func weekRangesContain(rs []WeekRange, day time.Time) bool {
	w := isoWeek(day)
	for _, r := range rs {
		if weekRangeContains(r, w) {
			return true
		}
	}
	return false
}

func weekNextBoundary(rs []WeekRange, day time.Time) (time.Time, bool) {
	cur := weekRangesContain(rs, day)
	// ISO week 53 can recur up to six years apart, so probe seven.
	for i := 1; i <= 7*372; i++ {
		probe := day.AddDate(0, 0, i)
		if weekRangesContain(rs, probe) != cur {
			return probe, true
		}
	}
	return time.Time{}, false
}

// --- Weekday / Holiday ---

func nthPosition(day time.Time) (fromStart, fromEnd int) {
	fromStart = (day.Day()-1)/7 + 1
	last := lastDayOfMonth(day.Year(), day.Month(), day.Location()).Day()
	fromEnd = (last-day.Day())/7 + 1
	return fromStart, fromEnd
}

func weekdayRangeMatches(wdr WeekDayRange, day time.Time, ctx *Context) bool {
	switch wdr.Kind {
	case WDKindHoliday:
		shifted := day.AddDate(0, 0, -wdr.DayOffset)
		cal := ctx.holidayCalendar(wdr.Holiday)
		return cal.Contains(shifted)

	default: // WDKindWeekday
		shifted := day.AddDate(0, 0, -wdr.DayOffset)
		if !weekdayInSpan(shifted.Weekday(), wdr.Start, wdr.End) {
			return false
		}
		if !wdr.Nth.Any() {
			return true
		}
		fromStart, fromEnd := nthPosition(shifted)
		if fromStart >= 1 && fromStart <= 5 && wdr.Nth.FromStart[fromStart-1] {
			return true
		}
		if fromEnd >= 1 && fromEnd <= 5 && wdr.Nth.FromEnd[fromEnd-1] {
			return true
		}
		return false
	}
}

func weekdayInSpan(w, start, end time.Weekday) bool {
	if start <= end {
		return w >= start && w <= end
	}
	return w >= start || w <= end // wraps, e.g. Fr-Mo
}

func weekdayContains(wdrs []WeekDayRange, day time.Time, ctx *Context) bool {
	for _, wdr := range wdrs {
		if weekdayRangeMatches(wdr, day, ctx) {
			return true
		}
	}
	return false
}

func weekdayNextBoundary(wdrs []WeekDayRange, day time.Time, ctx *Context) (time.Time, bool) {
	cur := weekdayContains(wdrs, day, ctx)

	// Holiday tags can have sparse boundaries, so they are probed day by
	// day over a fixed ~10-year horizon; a flip further away than that is
	// not reported.
	hasHoliday, hasNth := false, false
	for _, wdr := range wdrs {
		if wdr.Kind == WDKindHoliday {
			hasHoliday = true
		}
		if wdr.Nth.Any() {
			hasNth = true
		}
	}

	horizon := 40
	if hasNth {
		horizon = 400 // an nth-in-month weekday can be months apart
	}
	if hasHoliday {
		horizon = 3660 // ~10y: generous bound for sparse holiday calendars
	}

	for i := 1; i <= horizon; i++ {
		probe := day.AddDate(0, 0, i)
		if weekdayContains(wdrs, probe, ctx) != cur {
			return probe, true
		}
	}
	return time.Time{}, false
}
