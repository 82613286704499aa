package openinghours

import (
	"fmt"
	"math"
	"time"

	"github.com/chrono-oh/openinghours/internal/calendar"
)

// HolidayProvider supplies the two opaque holiday bitsets an evaluation
// context consults. Its build pipeline (ingesting a holidays database) is
// out of scope for this module; the evaluator only ever sees the compact
// calendars it returns.
type HolidayProvider interface {
	PublicHolidays(countryCode string) (*calendar.Calendar, error)
	SchoolHolidays(countryCode string) (*calendar.Calendar, error)
}

// StaticHolidayProvider wraps two pre-resolved calendars, the common case
// once an embedder has already picked a country.
type StaticHolidayProvider struct {
	Public *calendar.Calendar
	School *calendar.Calendar
}

// PublicHolidays implements HolidayProvider.
func (p *StaticHolidayProvider) PublicHolidays(string) (*calendar.Calendar, error) { return p.Public, nil }

// SchoolHolidays implements HolidayProvider.
func (p *StaticHolidayProvider) SchoolHolidays(string) (*calendar.Calendar, error) { return p.School, nil }

// Context is the immutable bundle of ambient data consulted by evaluation:
// the local timezone, optional coordinates for sun events, the holiday
// provider, and a hint the evaluator may use to coarsen its next-change
// search. Built once by the embedder and borrowed by every call.
type Context struct {
	Location    *time.Location
	HasCoords   bool
	Lat, Lon    float64
	Country     string
	Holidays    HolidayProvider
	ApproxBound time.Duration

	public *calendar.Calendar
	school *calendar.Calendar
}

// ContextOption configures a Context built by NewContext.
type ContextOption func(*Context)

// WithCoordinates sets the (lat, lon) used to resolve variable (sun-event)
// times. NaN components are ignored (per spec.md §7); out-of-range values
// are rejected by NewContext.
func WithCoordinates(lat, lon float64) ContextOption {
	return func(c *Context) {
		if math.IsNaN(lat) || math.IsNaN(lon) {
			return
		}
		c.HasCoords = true
		c.Lat, c.Lon = lat, lon
	}
}

// WithCountry sets the two-letter country tag passed to the holiday
// provider.
func WithCountry(code string) ContextOption {
	return func(c *Context) { c.Country = code }
}

// WithHolidayProvider installs the holiday collaborator.
func WithHolidayProvider(p HolidayProvider) ContextOption {
	return func(c *Context) { c.Holidays = p }
}

// WithApproxBoundHint sets a hint, in days, that the next-change search
// may use to coarsen its candidate queue for expressions with no sub-day
// selectors. Purely a performance hint: it never changes results.
func WithApproxBoundHint(d time.Duration) ContextOption {
	return func(c *Context) { c.ApproxBound = d }
}

// NewContext builds an evaluation context for the given local timezone
// (time.UTC if nil). It returns a *ContextError if coordinates are
// supplied out of range.
func NewContext(loc *time.Location, opts ...ContextOption) (*Context, error) {
	if loc == nil {
		loc = time.UTC
	}
	ctx := &Context{Location: loc, Holidays: &StaticHolidayProvider{}}
	for _, opt := range opts {
		opt(ctx)
	}

	if ctx.HasCoords {
		if ctx.Lat < -90 || ctx.Lat > 90 {
			return nil, &ContextError{Message: fmt.Sprintf("latitude %g out of range [-90, 90]", ctx.Lat)}
		}
		if ctx.Lon < -180 || ctx.Lon > 180 {
			return nil, &ContextError{Message: fmt.Sprintf("longitude %g out of range [-180, 180]", ctx.Lon)}
		}
	}

	// Resolve holiday calendars once, up front, so the context is fully
	// immutable and race-free for the concurrent readers the evaluator
	// promises (spec.md §5): no field is ever written after NewContext
	// returns.
	if ctx.Holidays != nil {
		ctx.public, _ = ctx.Holidays.PublicHolidays(ctx.Country)
		ctx.school, _ = ctx.Holidays.SchoolHolidays(ctx.Country)
	}

	return ctx, nil
}

// holidayCalendar returns the calendar for kind. A context without a
// configured provider (or a provider returning nil) simply never matches
// holidays.
func (c *Context) holidayCalendar(kind HolidayKind) *calendar.Calendar {
	if c == nil {
		return nil
	}
	if kind == SchoolHoliday {
		return c.school
	}
	return c.public
}
