package openinghours

import (
	"fmt"
	"strings"
)

// Span identifies a half-open range of rune (character) offsets in an expression's
// source text, used to anchor parse errors and lenient-parse warnings.
type Span struct {
	Start int
	End   int
}

// ParseErrorKind enumerates the taxonomy of compile-time failures.
type ParseErrorKind string

const (
	ErrSyntax             ParseErrorKind = "syntax"
	ErrMonthdayOutOfRange ParseErrorKind = "monthday_out_of_range"
	ErrYearOutOfRange     ParseErrorKind = "year_out_of_range"
	ErrEmptyExpression    ParseErrorKind = "empty_expression"
	ErrInvalidTimespan    ParseErrorKind = "invalid_timespan"

	// ErrAmbiguousSelector is reserved for a caller-supplied strict mode
	// that rejects the two constructs the default parser resolves
	// deterministically via lookahead (year/monthday and month/time): the
	// default parser never constructs it, since both ambiguities always
	// have a defined resolution (parser.go's parseDaySelector,
	// parseMonthDayRange).
	ErrAmbiguousSelector ParseErrorKind = "ambiguous_selector"

	// ErrUnsupported is reserved for the same strict mode: the default
	// parser downgrades an unrecognized trailing extension to a warning
	// plus a preserved comment (see absorbUnsupportedTrailer) rather than
	// constructing this kind.
	ErrUnsupported ParseErrorKind = "unsupported"
)

// ParseError reports a failure to compile an opening_hours expression,
// with enough position information for a caller to render a caret
// underneath the offending token.
type ParseError struct {
	Kind       ParseErrorKind
	Message    string
	Span       Span
	Input      string
	Expected   string
	Suggestion string
	cause      error
}

func (e *ParseError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s at %d: %s (expected %s)", e.Kind, e.Span.Start, e.Message, e.Expected)
	}
	return fmt.Sprintf("%s at %d: %s", e.Kind, e.Span.Start, e.Message)
}

// Unwrap exposes any wrapped cause, so callers can use errors.Is/errors.As
// across evaluation call sites that forward a ParseError.
func (e *ParseError) Unwrap() error { return e.cause }

// DisplayRich renders a caret-annotated rendition of the error, pointing
// at the offending span within the original input.
func (e *ParseError) DisplayRich() string {
	if e.Input == "" {
		return e.Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", e.Message)
	fmt.Fprintf(&sb, "  %s\n", e.Input)

	padding := strings.Repeat(" ", e.Span.Start+2)
	underlineLen := e.Span.End - e.Span.Start
	if underlineLen < 1 {
		underlineLen = 1
	}

	sb.WriteString(padding)
	sb.WriteString(strings.Repeat("^", underlineLen))

	if e.Suggestion != "" {
		fmt.Fprintf(&sb, " try: %q", e.Suggestion)
	}

	return sb.String()
}

func newParseError(kind ParseErrorKind, message string, span Span, input string) *ParseError {
	return &ParseError{Kind: kind, Message: message, Span: span, Input: input}
}

// ContextError reports an invalid evaluation context: out-of-range
// coordinates. Errors returned by a HolidayProvider are discarded by
// NewContext and never surface as a ContextError.
type ContextError struct {
	Message string
}

func (e *ContextError) Error() string { return e.Message }
