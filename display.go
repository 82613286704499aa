package openinghours

import (
	"fmt"
	"strings"
	"time"
)

// String renders the canonical textual form of the expression: re-parsing
// it reproduces an equivalent Expression under normalization (spec.md
// §6, "to_string").
func (e *Expression) String() string {
	parts := make([]string, len(e.Rules))
	for i, rs := range e.Rules {
		var sb strings.Builder
		if i > 0 {
			sb.WriteString(e.Rules[i].Operator.String())
			sb.WriteString(" ")
		}
		sb.WriteString(rs.displayBody())
		parts[i] = sb.String()
	}
	return strings.Join(parts, " ")
}

func (rs RuleSequence) displayBody() string {
	var sb strings.Builder

	if rs.Always {
		sb.WriteString("24/7")
	} else {
		day := rs.Day.display()
		tod := rs.Time.display()
		switch {
		case day != "" && tod != "":
			sb.WriteString(day)
			sb.WriteString(" ")
			sb.WriteString(tod)
		case day != "":
			sb.WriteString(day)
		default:
			sb.WriteString(tod)
		}
	}

	switch rs.Kind {
	case Closed:
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("off")
	case Unknown:
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("unknown")
	}

	for _, c := range rs.Comments {
		sb.WriteString(fmt.Sprintf(" %q", c))
	}

	return sb.String()
}

func (d DaySelector) display() string {
	var parts []string
	if len(d.Year) > 0 {
		parts = append(parts, displayYearList(d.Year))
	}
	if len(d.MonthDay) > 0 {
		parts = append(parts, displayMonthDayList(d.MonthDay))
	}
	if len(d.Week) > 0 {
		parts = append(parts, "week "+displayWeekList(d.Week))
	}
	if len(d.Weekday) > 0 {
		parts = append(parts, displayWeekdayList(d.Weekday))
	}
	return strings.Join(parts, " ")
}

func displayYearList(yrs []YearRange) string {
	parts := make([]string, len(yrs))
	for i, y := range yrs {
		switch {
		case y.OpenEnded:
			parts[i] = fmt.Sprintf("%d+", y.Start)
		case y.End != y.Start:
			if y.Step > 1 {
				parts[i] = fmt.Sprintf("%d-%d/%d", y.Start, y.End, y.Step)
			} else {
				parts[i] = fmt.Sprintf("%d-%d", y.Start, y.End)
			}
		default:
			parts[i] = fmt.Sprintf("%d", y.Start)
		}
	}
	return strings.Join(parts, ",")
}

func displayMonthDayList(mdrs []MonthDayRange) string {
	parts := make([]string, len(mdrs))
	for i, mdr := range mdrs {
		parts[i] = displayMonthDayRange(mdr)
	}
	return strings.Join(parts, ",")
}

func displayMonthDayRange(mdr MonthDayRange) string {
	prefix := ""
	if mdr.Year != nil {
		prefix = fmt.Sprintf("%d", *mdr.Year)
	}

	if mdr.Kind == MDKindMonth {
		if mdr.MonthEnd != mdr.MonthStart {
			return fmt.Sprintf("%s%s-%s", prefix, monthName(mdr.MonthStart), monthName(mdr.MonthEnd))
		}
		return prefix + monthName(mdr.MonthStart)
	}

	start := displayDateBound(mdr.Start)
	if mdr.OpenEnded {
		return fmt.Sprintf("%s%s+", prefix, start)
	}
	if mdr.End == mdr.Start {
		return prefix + start
	}
	return fmt.Sprintf("%s%s-%s", prefix, start, displayDateBound(mdr.End))
}

func displayDateBound(b DateBound) string {
	var sb strings.Builder
	if b.IsEaster {
		sb.WriteString("easter")
	} else {
		sb.WriteString(fmt.Sprintf("%s %d", monthName(b.Month), b.Day))
	}
	if b.DayOffset != 0 {
		if b.DayOffset > 0 {
			sb.WriteString(fmt.Sprintf("+%d day", b.DayOffset))
		} else {
			sb.WriteString(fmt.Sprintf("-%d day", -b.DayOffset))
		}
	}
	if b.WeekdayShift.Present {
		if b.WeekdayShift.Forward {
			sb.WriteString("+" + weekdayName(b.WeekdayShift.Weekday))
		} else {
			sb.WriteString("-" + weekdayName(b.WeekdayShift.Weekday))
		}
	}
	return sb.String()
}

func displayWeekList(wrs []WeekRange) string {
	parts := make([]string, len(wrs))
	for i, w := range wrs {
		switch {
		case w.End != w.Start && w.Step > 1:
			parts[i] = fmt.Sprintf("%02d-%02d/%d", w.Start, w.End, w.Step)
		case w.End != w.Start:
			parts[i] = fmt.Sprintf("%02d-%02d", w.Start, w.End)
		default:
			parts[i] = fmt.Sprintf("%02d", w.Start)
		}
	}
	return strings.Join(parts, ",")
}

func displayWeekdayList(wdrs []WeekDayRange) string {
	parts := make([]string, len(wdrs))
	for i, wdr := range wdrs {
		parts[i] = displayWeekdayRange(wdr)
	}
	return strings.Join(parts, ",")
}

func displayWeekdayRange(wdr WeekDayRange) string {
	var sb strings.Builder
	if wdr.Kind == WDKindHoliday {
		sb.WriteString(wdr.Holiday.String())
	} else {
		sb.WriteString(weekdayName(wdr.Start))
		if wdr.End != wdr.Start {
			sb.WriteString("-" + weekdayName(wdr.End))
		}
		if wdr.Nth.Any() {
			sb.WriteString("[" + displayNth(wdr.Nth) + "]")
		}
	}
	if wdr.DayOffset != 0 {
		if wdr.DayOffset > 0 {
			sb.WriteString(fmt.Sprintf("+%d day", wdr.DayOffset))
		} else {
			sb.WriteString(fmt.Sprintf("-%d day", -wdr.DayOffset))
		}
	}
	return sb.String()
}

func displayNth(n NthSpec) string {
	var parts []string
	for i, v := range n.FromStart {
		if v {
			parts = append(parts, fmt.Sprintf("%d", i+1))
		}
	}
	for i, v := range n.FromEnd {
		if v {
			parts = append(parts, fmt.Sprintf("-%d", i+1))
		}
	}
	return strings.Join(parts, ",")
}

func (t TimeSelector) display() string {
	if t.IsEmpty() {
		return ""
	}
	parts := make([]string, len(t.Spans))
	for i, span := range t.Spans {
		parts[i] = displayTimeSpan(span)
	}
	return strings.Join(parts, ",")
}

func displayTimeSpan(span TimeSpan) string {
	start := displayTimeEndpoint(span.Start)
	if span.OpenEnded {
		return start + "+"
	}
	end := displayTimeEndpoint(span.End)
	if span.Step > 0 {
		return fmt.Sprintf("%s-%s/%d", start, end, span.Step)
	}
	return fmt.Sprintf("%s-%s", start, end)
}

func displayTimeEndpoint(ep TimeEndpoint) string {
	if !ep.IsVariable {
		total := ep.Fixed.TotalMinutes()
		return fmt.Sprintf("%02d:%02d", total/60, total%60)
	}
	if ep.Offset == 0 {
		return ep.Event.String()
	}
	sign := "+"
	off := ep.Offset
	if off < 0 {
		sign = "-"
		off = -off
	}
	return fmt.Sprintf("%s%s%02d:%02d", ep.Event.String(), sign, off/60, off%60)
}

var monthNames = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
var weekdayNames = [...]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

func monthName(m time.Month) string   { return monthNames[int(m)] }
func weekdayName(w time.Weekday) string { return weekdayNames[int(w)] }
