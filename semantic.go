package openinghours

import "time"

// State is the tri-state result of evaluating an expression at an instant.
type State int

const (
	// Closed is the default state when no rule matches.
	Closed State = iota
	Open
	Unknown
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Unknown:
		return "unknown"
	default:
		return "closed"
	}
}

// RuleOperator controls how a rule composes with the rules that preceded
// it in the same expression.
type RuleOperator int

const (
	// OpOverride ("; ") replaces the earlier rules' whole schedule on each
	// day its day selector matches (minutes outside its own time spans
	// become Closed), except that an Override rule whose Kind is Closed
	// behaves like Additional (see DESIGN.md Open Question (a)).
	OpOverride RuleOperator = iota
	// OpAdditional (",") merges into the earlier rules' schedule: where its
	// ranges overlap earlier ones they win, and the rest is kept.
	OpAdditional
	// OpFallback ("||") applies on days where no prior rule matched, or
	// where the prior rules' schedule is entirely Closed with no comments.
	OpFallback
)

func (o RuleOperator) String() string {
	switch o {
	case OpAdditional:
		return ","
	case OpFallback:
		return "||"
	default:
		return ";"
	}
}

// HolidayKind distinguishes public from school holidays.
type HolidayKind int

const (
	PublicHoliday HolidayKind = iota
	SchoolHoliday
)

func (h HolidayKind) String() string {
	if h == SchoolHoliday {
		return "SH"
	}
	return "PH"
}

// TimeEvent names a sun-relative event usable as a variable time endpoint.
type TimeEvent int

const (
	Dawn TimeEvent = iota
	Sunrise
	Sunset
	Dusk
)

func (e TimeEvent) String() string {
	switch e {
	case Sunrise:
		return "sunrise"
	case Sunset:
		return "sunset"
	case Dusk:
		return "dusk"
	default:
		return "dawn"
	}
}

// YearRange is `y1`, `y1-y2`, `y1-y2/step` or `y1+` (OpenEnded, implicit
// upper bound of 9999).
type YearRange struct {
	Start, End int
	Step       int
	OpenEnded  bool
}

// MonthDayRangeKind distinguishes a plain month span from an anchored date
// range.
type MonthDayRangeKind int

const (
	MDKindMonth MonthDayRangeKind = iota
	MDKindDate
)

// WeekdayShift represents "first Monday on or after/before" style
// adjustments applied to a date anchor.
type WeekdayShift struct {
	Present bool
	// Forward true means "on or after" (searches forward), false means
	// "on or before" (searches backward).
	Forward bool
	Weekday time.Weekday
}

// DateBound anchors one side of a Date-kind MonthDayRange: either a
// (year?, month, day) triple or Easter Sunday for the given year, plus an
// optional signed day offset and weekday shift.
type DateBound struct {
	Year         *int
	IsEaster     bool
	Month        time.Month
	Day          int
	DayOffset    int
	WeekdayShift WeekdayShift
}

// MonthDayRange is either a month (span), optionally year-qualified, or an
// explicit anchored date range with optional trailing '+'.
type MonthDayRange struct {
	Kind MonthDayRangeKind

	// Used when Kind == MDKindMonth.
	Year                 *int
	MonthStart, MonthEnd time.Month

	// Used when Kind == MDKindDate.
	Start, End DateBound

	// OpenEnded means "from this point onward, same year" (trailing '+').
	OpenEnded bool
}

// WeekRange is an ISO week number range, 1-53, with optional step.
type WeekRange struct {
	Start, End int
	Step       int
}

// NthSpec records which nth-in-month occurrences a weekday range is
// restricted to, e.g. Th[1,-1] for "first and last Thursday".
type NthSpec struct {
	FromStart [5]bool // index i => occurrence i+1 from month start
	FromEnd   [5]bool // index i => occurrence i+1 from month end (negative)
}

// Any reports whether this spec constrains anything at all.
func (n NthSpec) Any() bool {
	for _, v := range n.FromStart {
		if v {
			return true
		}
	}
	for _, v := range n.FromEnd {
		if v {
			return true
		}
	}
	return false
}

// WeekdaySelectorKind distinguishes a weekday span from a holiday tag
// within the union that makes up a weekday selector.
type WeekdaySelectorKind int

const (
	WDKindWeekday WeekdaySelectorKind = iota
	WDKindHoliday
)

// WeekDayRange is one element of the weekday-selector union: either a
// fixed weekday span (optionally nth-in-month-restricted, with a day
// offset) or a holiday tag (with a day offset).
type WeekDayRange struct {
	Kind WeekdaySelectorKind

	// Used when Kind == WDKindWeekday.
	Start, End time.Weekday
	Nth        NthSpec
	DayOffset  int

	// Used when Kind == WDKindHoliday.
	Holiday HolidayKind
}

// ExtendedTime is a clock time expressed in minutes from local midnight.
// The valid domain is [0, 1440] for ordinary endpoints and up to 2880 for
// an extended closing endpoint ("next day").
type ExtendedTime int

// TotalMinutes returns the value as a plain int, for arithmetic.
func (t ExtendedTime) TotalMinutes() int { return int(t) }

// Hour and Minute decompose the value into its wall-clock parts, ignoring
// the extended "next day" bit.
func (t ExtendedTime) Hour() int   { return (int(t) % 1440) / 60 }
func (t ExtendedTime) Minute() int { return int(t) % 60 }

// TimeEndpoint is either a fixed clock time or a variable (sun-relative)
// time with a signed offset.
type TimeEndpoint struct {
	IsVariable bool
	Fixed      ExtendedTime
	Event      TimeEvent
	Offset     int // minutes, only meaningful when IsVariable
}

// TimeSpan is one element of a time-selector union: `[t1,t2]`,
// `[t1,t2]/step`, or `t1+` (OpenEnded, until end of day).
type TimeSpan struct {
	Start, End TimeEndpoint
	OpenEnded  bool
	// Step, when > 0, is kept for display (re-emitted as "/step");
	// evaluation treats the span as the continuous range from t1 to t2
	// (see DESIGN.md Open Question (b)).
	Step int
}

// DaySelector is the conjunction of up to four date-dimension selectors;
// dimensions with an empty slice impose no constraint.
type DaySelector struct {
	Year     []YearRange
	MonthDay []MonthDayRange
	Week     []WeekRange
	Weekday  []WeekDayRange
}

// IsEmpty reports that no date dimension constrains this selector, i.e. it
// matches every date in range (see spec regression #56).
func (d DaySelector) IsEmpty() bool {
	return len(d.Year) == 0 && len(d.MonthDay) == 0 && len(d.Week) == 0 && len(d.Weekday) == 0
}

// TimeSelector is the union of time-of-day spans restricting a rule; an
// empty selector means "00:00-24:00" (the whole day).
type TimeSelector struct {
	Spans []TimeSpan
}

// IsEmpty reports whether no spans were specified (full-day default).
func (t TimeSelector) IsEmpty() bool { return len(t.Spans) == 0 }

// RuleSequence is one rule: a selector sequence, a resulting state, the
// combinator joining it to previous rules, and any free-text comment.
type RuleSequence struct {
	Always   bool // the "24/7" sentinel; Day/Time selectors are ignored
	Day      DaySelector
	Time     TimeSelector
	Kind     State
	Operator RuleOperator
	Comments []string
}

// Expression is a non-empty ordered list of rules, the compiled result of
// Parse.
type Expression struct {
	Rules []RuleSequence
	raw   string
}
