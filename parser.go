package openinghours

import (
	"fmt"
	"strings"
	"time"
)

// parser is a hand-written recursive-descent parser, grounded in
// structure on the teacher's own lexer/parser pair: it consumes the flat
// token stream from tokenize and lowers directly into the semantic model
// of semantic.go (the concrete syntax tree and the semantic-lowering pass
// are merged into one stage, as the teacher itself does).
type parser struct {
	tokens []Token
	pos    int
	input  string
	logger Logger
}

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) peekAt(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind TokenKind, expected string) (Token, error) {
	if p.peek().Kind != kind {
		return Token{}, newParseError(ErrSyntax, "unexpected token", p.peek().Span, p.input).withExpected(expected)
	}
	return p.advance(), nil
}

func (e *ParseError) withExpected(s string) *ParseError { e.Expected = s; return e }

// warnIfNoSpaceBeforeNext implements spec.md §4.B's tolerance for missing
// inter-token whitespace (e.g. "Mo-Fr10:00-18:00"): the grammar already
// accepts it, since a letter run and a digit run are distinct tokens
// regardless of spacing, but the lenient acceptance still owes the caller
// a non-fatal warning through the logging collaborator. what names the
// boundary crossed, for the warning message.
func (p *parser) warnIfNoSpaceBeforeNext(what string) {
	if p.pos == 0 {
		return
	}
	prevEnd := p.tokens[p.pos-1].Span.End
	next := p.peek()
	if next.Kind == TokenEOF || next.Span.Start != prevEnd {
		return
	}
	p.logger.Warn("missing space before "+what, Span{prevEnd, next.Span.End})
}

// --- name tables ---

var weekdayAbbrev = map[string]time.Weekday{
	"mo": time.Monday, "monday": time.Monday,
	"tu": time.Tuesday, "tuesday": time.Tuesday,
	"we": time.Wednesday, "wednesday": time.Wednesday,
	"th": time.Thursday, "thursday": time.Thursday,
	"fr": time.Friday, "friday": time.Friday,
	"sa": time.Saturday, "saturday": time.Saturday,
	"su": time.Sunday, "sunday": time.Sunday,
}

var monthAbbrev = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var sunEventNames = map[string]TimeEvent{
	"dawn": Dawn, "sunrise": Sunrise, "sunset": Sunset, "dusk": Dusk,
}

func isMonthName(s string) bool { _, ok := monthAbbrev[s]; return ok }
func isWeekdayName(s string) bool { _, ok := weekdayAbbrev[s]; return ok }

// Parse compiles text into an Expression, or returns a *ParseError.
func Parse(text string, opts ...ParseOption) (*Expression, error) {
	cfg := parseConfig{logger: NopLogger{}}
	for _, o := range opts {
		o(&cfg)
	}

	if strings.TrimSpace(text) == "" {
		return nil, newParseError(ErrEmptyExpression, "expression is empty", Span{0, len(text)}, text)
	}

	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: toks, input: text, logger: cfg.logger}

	var rules []RuleSequence
	op := OpOverride
	for {
		rs, err := p.parseRule(op)
		if err != nil {
			return nil, err
		}
		rs = p.absorbUnsupportedTrailer(rs)
		rules = append(rules, rs)

		if p.peek().Kind == TokenEOF {
			break
		}
		switch p.peek().Kind {
		case TokenSemicolon:
			p.advance()
			op = OpOverride
		case TokenComma:
			p.advance()
			op = OpAdditional
		case TokenPipePipe:
			p.advance()
			op = OpFallback
		default:
			return nil, newParseError(ErrSyntax, "expected ';', ',' or '||' between rules", p.peek().Span, text)
		}
	}

	return &Expression{Rules: rules, raw: text}, nil
}

// parseConfig carries Parse's optional collaborators.
type parseConfig struct {
	logger Logger
}

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

// WithLogger installs the collaborator that receives lenient-parse
// warnings.
func WithLogger(l Logger) ParseOption {
	return func(c *parseConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Validate reports whether text compiles, discarding the result.
func Validate(text string) bool {
	_, err := Parse(text)
	return err == nil
}

// absorbUnsupportedTrailer implements spec.md §4.B's lenient handling of
// unknown extensions: a rule followed by tokens the grammar does not
// recognize (an unsupported regional extension, rather than a genuine
// syntax error) is not rejected outright. Instead the raw text is
// preserved as a comment and a warning is raised through the logging
// collaborator, consuming up to the next rule separator or end of input.
func (p *parser) absorbUnsupportedTrailer(rs RuleSequence) RuleSequence {
	if isRuleSeparator(p.peek()) {
		return rs
	}

	start := p.peek().Span.Start
	for !isRuleSeparator(p.peek()) {
		p.advance()
	}
	end := p.tokens[p.pos-1].Span.End

	raw := strings.TrimSpace(string([]rune(p.input)[start:end]))
	if raw == "" {
		return rs
	}

	p.logger.Warn("unsupported extension \""+raw+"\" downgraded to a comment", Span{start, end})
	rs.Comments = append(rs.Comments, raw)
	return rs
}

func isRuleSeparator(t Token) bool {
	switch t.Kind {
	case TokenEOF, TokenSemicolon, TokenComma, TokenPipePipe:
		return true
	default:
		return false
	}
}

func (p *parser) parseRule(op RuleOperator) (RuleSequence, error) {
	rs := RuleSequence{Operator: op, Kind: Open}

	if p.peek().Kind == TokenNumber && p.peek().Number == 24 &&
		p.peekAt(1).Kind == TokenSlash && p.peekAt(2).Kind == TokenNumber && p.peekAt(2).Number == 7 {
		p.advance()
		p.advance()
		p.advance()
		rs.Always = true
	} else {
		day, err := p.parseDaySelector()
		if err != nil {
			return rs, err
		}
		rs.Day = day

		p.warnIfNoSpaceBeforeNext("time selector")

		ts, err := p.parseTimeSelector()
		if err != nil {
			return rs, err
		}
		rs.Time = ts
	}

	if p.peek().Kind == TokenIdent {
		switch p.peek().Text {
		case "open":
			rs.Kind = Open
			p.advance()
		case "closed", "off":
			rs.Kind = Closed
			p.advance()
		case "unknown":
			rs.Kind = Unknown
			p.advance()
		}
	}

	if p.peek().Kind == TokenString {
		rs.Comments = []string{p.advance().Text}
	}

	return rs, nil
}

// --- day selector ---

func (p *parser) parseDaySelector() (DaySelector, error) {
	var day DaySelector

	if p.peek().Kind == TokenNumber && len(fmt.Sprint(p.peek().Number)) == 4 {
		// Ambiguity (spec.md §4.B #1): a bare year at the start of a
		// selector may open a year_selector or anchor a monthday_selector.
		// Try monthday first: it only wins if a month name follows
		// directly.
		if p.peekAt(1).Kind == TokenIdent && isMonthName(p.peekAt(1).Text) {
			year := p.advance().Number
			mdrs, err := p.parseMonthDayList(&year)
			if err != nil {
				return day, err
			}
			day.MonthDay = mdrs
			return p.parseWeekAndWeekday(day)
		}

		yrs, err := p.parseYearList()
		if err != nil {
			return day, err
		}
		day.Year = yrs
	}

	if p.peek().Kind == TokenIdent && (isMonthName(p.peek().Text) || p.peek().Text == "easter") {
		mdrs, err := p.parseMonthDayList(nil)
		if err != nil {
			return day, err
		}
		day.MonthDay = mdrs
	}

	return p.parseWeekAndWeekday(day)
}

func (p *parser) parseWeekAndWeekday(day DaySelector) (DaySelector, error) {
	if p.peek().Kind == TokenIdent && p.peek().Text == "week" {
		p.advance()
		weeks, err := p.parseWeekList()
		if err != nil {
			return day, err
		}
		day.Week = weeks
	}

	if p.peek().Kind == TokenIdent && (isWeekdayName(p.peek().Text) || p.peek().Text == "ph" || p.peek().Text == "sh") {
		wdrs, err := p.parseWeekdayList()
		if err != nil {
			return day, err
		}
		day.Weekday = wdrs
	}

	return day, nil
}

// --- year ---

func (p *parser) parseYearList() ([]YearRange, error) {
	var out []YearRange
	for {
		yr, err := p.parseYearRange()
		if err != nil {
			return nil, err
		}
		out = append(out, yr)
		if p.peek().Kind != TokenComma || !p.nextIsYearStart() {
			break
		}
		p.advance()
	}
	return out, nil
}

// nextIsYearStart reports whether the token just past a comma looks like
// another year-range item rather than the start of a different selector
// or a rule-separating comma.
func (p *parser) nextIsYearStart() bool {
	return p.peekAt(1).Kind == TokenNumber && len(fmt.Sprint(p.peekAt(1).Number)) == 4
}

func (p *parser) parseYearRange() (YearRange, error) {
	tok, err := p.expect(TokenNumber, "year")
	if err != nil {
		return YearRange{}, err
	}
	start := tok.Number
	if start < 1900 || start > 9999 {
		return YearRange{}, newParseError(ErrYearOutOfRange, fmt.Sprintf("year %d out of range [1900, 9999]", start), tok.Span, p.input)
	}

	yr := YearRange{Start: start, End: start}

	if p.peek().Kind == TokenPlus {
		p.advance()
		yr.OpenEnded = true
		return yr, nil
	}

	if p.peek().Kind == TokenDash {
		p.advance()
		endTok, err := p.expect(TokenNumber, "year")
		if err != nil {
			return YearRange{}, err
		}
		yr.End = endTok.Number
		if yr.End < yr.Start || yr.End > 9999 {
			return YearRange{}, newParseError(ErrYearOutOfRange, fmt.Sprintf("year range %d-%d invalid", yr.Start, yr.End), endTok.Span, p.input)
		}
		if p.peek().Kind == TokenSlash {
			p.advance()
			stepTok, err := p.expect(TokenNumber, "step")
			if err != nil {
				return YearRange{}, err
			}
			yr.Step = stepTok.Number
		}
	}

	return yr, nil
}

// --- month/day ---

func (p *parser) parseMonthDayList(yearAnchor *int) ([]MonthDayRange, error) {
	var out []MonthDayRange
	for {
		mdr, err := p.parseMonthDayRange(yearAnchor)
		if err != nil {
			return nil, err
		}
		out = append(out, mdr)
		if p.peek().Kind != TokenComma {
			break
		}
		if !(p.peekAt(1).Kind == TokenIdent && (isMonthName(p.peekAt(1).Text) || p.peekAt(1).Text == "easter")) {
			break
		}
		p.advance()
	}
	return out, nil
}

func (p *parser) parseMonthDayRange(yearAnchor *int) (MonthDayRange, error) {
	if p.peek().Kind == TokenIdent && p.peek().Text == "easter" {
		start, err := p.parseDateBound(yearAnchor)
		if err != nil {
			return MonthDayRange{}, err
		}
		mdr := MonthDayRange{Kind: MDKindDate, Year: yearAnchor, Start: start, End: start}
		return p.finishDateRange(mdr, yearAnchor)
	}

	monthTok, err := p.expect(TokenIdent, "month name")
	if err != nil {
		return MonthDayRange{}, err
	}
	month, ok := monthAbbrev[monthTok.Text]
	if !ok {
		return MonthDayRange{}, newParseError(ErrSyntax, "expected month name, got "+monthTok.Text, monthTok.Span, p.input)
	}

	// Ambiguity (spec.md §4.B #2): "Oct 12:00-24:00" vs "Oct 12" (day).
	// A day-number must not be immediately followed by ':' (that signals
	// a time-of-day token instead); prefer the time-of-day reading.
	if p.peek().Kind == TokenNumber && p.peekAt(1).Kind != TokenColon {
		dayTok := p.advance()
		if dayTok.Number < 1 || dayTok.Number > 31 {
			return MonthDayRange{}, newParseError(ErrMonthdayOutOfRange, fmt.Sprintf("day %d out of range", dayTok.Number), dayTok.Span, p.input)
		}
		start := DateBound{Year: yearAnchor, Month: month, Day: dayTok.Number}
		start = p.parseDateBoundSuffix(start)
		mdr := MonthDayRange{Kind: MDKindDate, Year: yearAnchor, Start: start, End: start}
		return p.finishDateRange(mdr, yearAnchor)
	}

	// Month-only (possibly a month span).
	mdr := MonthDayRange{Kind: MDKindMonth, Year: yearAnchor, MonthStart: month, MonthEnd: month}
	if p.peek().Kind == TokenDash && p.peekAt(1).Kind == TokenIdent && isMonthName(p.peekAt(1).Text) {
		p.advance()
		endTok := p.advance()
		mdr.MonthEnd = monthAbbrev[endTok.Text]
	}
	return mdr, nil
}

// finishDateRange consumes an optional "-<date>" or trailing "+" after an
// already-parsed start DateBound.
func (p *parser) finishDateRange(mdr MonthDayRange, yearAnchor *int) (MonthDayRange, error) {
	if p.peek().Kind == TokenPlus {
		p.advance()
		mdr.OpenEnded = true
		return mdr, nil
	}
	if p.peek().Kind == TokenDash {
		p.advance()

		// "Dec 12-14": the end bound may omit the month name, inheriting
		// the start bound's month.
		if p.peek().Kind == TokenNumber {
			dayTok := p.advance()
			if dayTok.Number < 1 || dayTok.Number > 31 {
				return MonthDayRange{}, newParseError(ErrMonthdayOutOfRange, fmt.Sprintf("day %d out of range", dayTok.Number), dayTok.Span, p.input)
			}
			end := DateBound{Year: yearAnchor, Month: mdr.Start.Month, Day: dayTok.Number}
			mdr.End = p.parseDateBoundSuffix(end)
			return mdr, nil
		}

		end, err := p.parseDateBound(yearAnchor)
		if err != nil {
			return MonthDayRange{}, err
		}
		mdr.End = end
	}
	return mdr, nil
}

// parseDateBound parses a single (month day | easter) anchor plus its
// optional day-offset/weekday-shift suffix.
func (p *parser) parseDateBound(yearAnchor *int) (DateBound, error) {
	if p.peek().Kind == TokenIdent && p.peek().Text == "easter" {
		p.advance()
		b := DateBound{Year: yearAnchor, IsEaster: true}
		return p.parseDateBoundSuffix(b), nil
	}

	monthTok, err := p.expect(TokenIdent, "month name")
	if err != nil {
		return DateBound{}, err
	}
	month, ok := monthAbbrev[monthTok.Text]
	if !ok {
		return DateBound{}, newParseError(ErrSyntax, "expected month name, got "+monthTok.Text, monthTok.Span, p.input)
	}
	dayTok, err := p.expect(TokenNumber, "day of month")
	if err != nil {
		return DateBound{}, err
	}
	if dayTok.Number < 1 || dayTok.Number > 31 {
		return DateBound{}, newParseError(ErrMonthdayOutOfRange, fmt.Sprintf("day %d out of range", dayTok.Number), dayTok.Span, p.input)
	}
	b := DateBound{Year: yearAnchor, Month: month, Day: dayTok.Number}
	return p.parseDateBoundSuffix(b), nil
}

// parseDateBoundSuffix consumes an optional signed day offset
// ("+"|"-" NUMBER "day"|"days") or an optional weekday shift
// ("+"|"-" weekday-abbrev). A "-" NUMBER with no "day"/"days" keyword is
// left untouched: that shape is the range-separator dash of
// "Dec 12-14", not an offset, and must fall through to finishDateRange.
func (p *parser) parseDateBoundSuffix(b DateBound) DateBound {
	if p.peek().Kind != TokenPlus && p.peek().Kind != TokenDash {
		return b
	}
	forward := p.peek().Kind == TokenPlus

	if p.peekAt(1).Kind == TokenNumber &&
		p.peekAt(2).Kind == TokenIdent && (p.peekAt(2).Text == "day" || p.peekAt(2).Text == "days") {
		p.advance()
		n := p.advance().Number
		if !forward {
			n = -n
		}
		b.DayOffset = n
		p.advance() // "day" / "days"
		return b
	}

	if p.peekAt(1).Kind == TokenIdent && isWeekdayName(p.peekAt(1).Text) {
		p.advance()
		wTok := p.advance()
		b.WeekdayShift = WeekdayShift{Present: true, Forward: forward, Weekday: weekdayAbbrev[wTok.Text]}
	}

	return b
}

// --- week ---

func (p *parser) parseWeekList() ([]WeekRange, error) {
	var out []WeekRange
	for {
		startTok, err := p.expect(TokenNumber, "ISO week number")
		if err != nil {
			return nil, err
		}
		wr := WeekRange{Start: startTok.Number, End: startTok.Number}
		if p.peek().Kind == TokenDash {
			p.advance()
			endTok, err := p.expect(TokenNumber, "ISO week number")
			if err != nil {
				return nil, err
			}
			wr.End = endTok.Number
			if p.peek().Kind == TokenSlash {
				p.advance()
				stepTok, err := p.expect(TokenNumber, "step")
				if err != nil {
					return nil, err
				}
				wr.Step = stepTok.Number
			}
		}
		out = append(out, wr)
		if p.peek().Kind != TokenComma || p.peekAt(1).Kind != TokenNumber {
			break
		}
		p.advance()
	}
	return out, nil
}

// --- weekday / holiday ---

func (p *parser) parseWeekdayList() ([]WeekDayRange, error) {
	var out []WeekDayRange
	for {
		wdr, err := p.parseWeekdayRange()
		if err != nil {
			return nil, err
		}
		out = append(out, wdr)

		if p.peek().Kind != TokenComma {
			break
		}
		nxt := p.peekAt(1)
		if !(nxt.Kind == TokenIdent && (isWeekdayName(nxt.Text) || nxt.Text == "ph" || nxt.Text == "sh")) {
			break
		}
		p.advance()
	}
	return out, nil
}

func (p *parser) parseWeekdayRange() (WeekDayRange, error) {
	tok, err := p.expect(TokenIdent, "weekday or holiday tag")
	if err != nil {
		return WeekDayRange{}, err
	}

	if tok.Text == "ph" || tok.Text == "sh" {
		wdr := WeekDayRange{Kind: WDKindHoliday, Holiday: PublicHoliday}
		if tok.Text == "sh" {
			wdr.Holiday = SchoolHoliday
		}
		wdr.DayOffset = p.parseOptionalDayOffset()
		return wdr, nil
	}

	start, ok := weekdayAbbrev[tok.Text]
	if !ok {
		return WeekDayRange{}, newParseError(ErrSyntax, "expected weekday name, got "+tok.Text, tok.Span, p.input)
	}
	wdr := WeekDayRange{Kind: WDKindWeekday, Start: start, End: start}

	if p.peek().Kind == TokenDash && p.peekAt(1).Kind == TokenIdent && isWeekdayName(p.peekAt(1).Text) {
		p.advance()
		endTok := p.advance()
		wdr.End = weekdayAbbrev[endTok.Text]
	}

	if p.peek().Kind == TokenLBracket {
		nth, err := p.parseNthList()
		if err != nil {
			return WeekDayRange{}, err
		}
		wdr.Nth = nth
	}

	wdr.DayOffset = p.parseOptionalDayOffset()
	return wdr, nil
}

func (p *parser) parseNthList() (NthSpec, error) {
	var nth NthSpec
	p.advance() // '['
	for {
		tok, err := p.expect(TokenNumber, "nth occurrence")
		neg := false
		if err != nil {
			if p.peek().Kind == TokenDash {
				p.advance()
				neg = true
				tok, err = p.expect(TokenNumber, "nth occurrence")
			}
			if err != nil {
				return nth, err
			}
		}
		n := tok.Number
		if neg {
			n = -n
		}
		if n >= 1 && n <= 5 {
			nth.FromStart[n-1] = true
		} else if n <= -1 && n >= -5 {
			nth.FromEnd[-n-1] = true
		} else {
			return nth, newParseError(ErrSyntax, fmt.Sprintf("nth occurrence %d out of range", n), tok.Span, p.input)
		}
		if p.peek().Kind == TokenComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(TokenRBracket, "]"); err != nil {
		return nth, err
	}
	return nth, nil
}

func (p *parser) parseOptionalDayOffset() int {
	if p.peek().Kind != TokenPlus && p.peek().Kind != TokenDash {
		return 0
	}
	if p.peekAt(1).Kind != TokenNumber {
		return 0
	}
	forward := p.peek().Kind == TokenPlus
	p.advance()
	n := p.advance().Number
	if !forward {
		n = -n
	}
	if p.peek().Kind == TokenIdent && (p.peek().Text == "day" || p.peek().Text == "days") {
		p.advance()
	}
	return n
}

// --- time of day ---

func (p *parser) parseTimeSelector() (TimeSelector, error) {
	if p.peek().Kind != TokenNumber && !p.peekIsSunEvent() && p.peek().Kind != TokenLParen {
		return TimeSelector{}, nil
	}

	var spans []TimeSpan
	for {
		span, err := p.parseTimeSpan()
		if err != nil {
			return TimeSelector{}, err
		}
		spans = append(spans, span)

		if p.peek().Kind != TokenComma {
			break
		}
		nxt := p.peekAt(1)
		if !(nxt.Kind == TokenNumber || (nxt.Kind == TokenIdent && isSunEventName(nxt.Text)) || nxt.Kind == TokenLParen) {
			break
		}
		p.advance()
	}

	return TimeSelector{Spans: spans}, nil
}

func (p *parser) peekIsSunEvent() bool {
	t := p.peek()
	return t.Kind == TokenIdent && isSunEventName(t.Text)
}

func isSunEventName(s string) bool { _, ok := sunEventNames[s]; return ok }

func (p *parser) parseTimeSpan() (TimeSpan, error) {
	start, err := p.parseTimeEndpoint()
	if err != nil {
		return TimeSpan{}, err
	}

	if p.peek().Kind == TokenPlus {
		p.advance()
		return TimeSpan{Start: start, OpenEnded: true}, nil
	}

	if _, err := p.expect(TokenDash, "'-'"); err != nil {
		return TimeSpan{}, err
	}

	end, err := p.parseTimeEndpoint()
	if err != nil {
		return TimeSpan{}, err
	}

	span := TimeSpan{Start: start, End: end}
	if p.peek().Kind == TokenSlash {
		p.advance()
		stepTok, err := p.expect(TokenNumber, "step in minutes")
		if err != nil {
			return TimeSpan{}, err
		}
		span.Step = stepTok.Number
	}
	return span, nil
}

func (p *parser) parseTimeEndpoint() (TimeEndpoint, error) {
	paren := false
	if p.peek().Kind == TokenLParen {
		p.advance()
		paren = true
	}

	var ep TimeEndpoint
	if p.peekIsSunEvent() {
		evTok := p.advance()
		ep.IsVariable = true
		ep.Event = sunEventNames[evTok.Text]
		// An offset is only present when a clock digit actually follows the
		// sign: otherwise this "+"/"-" belongs to the enclosing span (an
		// open-ended marker, or the range-separator before a second event
		// such as in "sunrise-sunset").
		if (p.peek().Kind == TokenPlus || p.peek().Kind == TokenDash) && p.peekAt(1).Kind == TokenNumber {
			sign := 1
			if p.peek().Kind == TokenDash {
				sign = -1
			}
			p.advance()
			h, m, err := p.parseClockDigits()
			if err != nil {
				return TimeEndpoint{}, err
			}
			ep.Offset = sign * (h*60 + m)
		}
	} else {
		h, m, err := p.parseClockDigits()
		if err != nil {
			return TimeEndpoint{}, err
		}
		if h > 48 || m > 59 {
			return TimeEndpoint{}, newParseError(ErrInvalidTimespan, fmt.Sprintf("time %02d:%02d out of range", h, m), p.peek().Span, p.input)
		}
		ep.Fixed = ExtendedTime(h*60 + m)
	}

	if paren {
		if _, err := p.expect(TokenRParen, "')'"); err != nil {
			return TimeEndpoint{}, err
		}
	}
	return ep, nil
}

func (p *parser) parseClockDigits() (hour, minute int, err error) {
	hTok, err := p.expect(TokenNumber, "hour")
	if err != nil {
		return 0, 0, err
	}
	if _, err := p.expect(TokenColon, "':'"); err != nil {
		return 0, 0, err
	}
	mTok, err := p.expect(TokenNumber, "minute")
	if err != nil {
		return 0, 0, err
	}
	return hTok.Number, mTok.Number, nil
}
