package openinghours

import "time"

// easter returns the date of Easter Sunday (Gregorian) for year, at local
// midnight in loc, computed with the anonymous Gregorian algorithm.
func easter(year int, loc *time.Location) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// isoWeek returns the ISO 8601 week number of date.
func isoWeek(date time.Time) int {
	_, week := date.ISOWeek()
	return week
}

// lastDayOfMonth returns the last calendar day of the given month, at
// local midnight in loc.
func lastDayOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
	return firstOfNext.AddDate(0, 0, -1)
}

// nthWeekdayOfMonth returns the nth (1-based) occurrence of weekday in the
// given month, at local midnight in loc, or false if that occurrence does
// not exist. n may be negative to count from the end of the month (-1 ==
// last).
func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int, loc *time.Location) (time.Time, bool) {
	if n > 0 {
		d := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		for d.Weekday() != weekday {
			d = d.AddDate(0, 0, 1)
		}
		d = d.AddDate(0, 0, (n-1)*7)
		if d.Month() != month {
			return time.Time{}, false
		}
		return d, true
	}

	if n < 0 {
		d := lastDayOfMonth(year, month, loc)
		for d.Weekday() != weekday {
			d = d.AddDate(0, 0, -1)
		}
		d = d.AddDate(0, 0, (n+1)*7)
		if d.Month() != month {
			return time.Time{}, false
		}
		return d, true
	}

	return time.Time{}, false
}

// shiftToWeekday applies a WeekdayShift to date: searching forward or
// backward (inclusive of date itself) for the target weekday.
func shiftToWeekday(date time.Time, shift WeekdayShift) time.Time {
	if !shift.Present {
		return date
	}
	if shift.Forward {
		diff := (7 + int(shift.Weekday) - int(date.Weekday())) % 7
		return date.AddDate(0, 0, diff)
	}
	diff := (7 + int(date.Weekday()) - int(shift.Weekday)) % 7
	return date.AddDate(0, 0, -diff)
}

// dateOnly truncates t to a local midnight in the same location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// minDate, maxDate define the closed year range [1900, 9999] outside
// which expressions are defined to always report Closed.
var (
	minDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	maxDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

func inSupportedRange(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(minDate) && !d.After(maxDate)
}
