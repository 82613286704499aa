// Package calendar implements a bit-packed set of calendar days, used to
// represent public and school holiday sets.
package calendar

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Calendar is a compact, immutable set of calendar days covering a
// contiguous range of years. Each year occupies 12 32-bit words, one per
// month; bit i of a month's word is set when day i+1 belongs to the set.
type Calendar struct {
	startYear int
	months    []uint32 // len == yearCount*12, month m of year y at index (y-startYear)*12+m
}

// New builds an empty calendar covering [startYear, startYear+yearCount).
func New(startYear, yearCount int) *Calendar {
	return &Calendar{
		startYear: startYear,
		months:    make([]uint32, yearCount*12),
	}
}

// Add marks a single day as a member of the set. Dates outside the
// calendar's configured year range are silently ignored, matching the
// "queries outside bounds return false" policy for reads.
func (c *Calendar) Add(year, month, day int) {
	idx, bit, ok := c.locate(year, month, day)
	if !ok {
		return
	}
	c.months[idx] |= 1 << bit
}

// Union merges the days of other into c, returning a new calendar spanning
// the combined year range of both inputs.
func (c *Calendar) Union(other *Calendar) *Calendar {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}

	lo := min(c.startYear, other.startYear)
	hi := max(c.endYear(), other.endYear())
	merged := New(lo, hi-lo)

	for _, src := range []*Calendar{c, other} {
		for y := src.startYear; y < src.endYear(); y++ {
			for m := 1; m <= 12; m++ {
				word := src.monthWord(y, m)
				if word == 0 {
					continue
				}
				for d := 1; d <= 31; d++ {
					if word&(1<<uint(d-1)) != 0 {
						merged.Add(y, m, d)
					}
				}
			}
		}
	}

	return merged
}

// Contains reports whether date belongs to the calendar.
func (c *Calendar) Contains(date time.Time) bool {
	if c == nil {
		return false
	}
	idx, bit, ok := c.locate(date.Year(), int(date.Month()), date.Day())
	if !ok {
		return false
	}
	return c.months[idx]&(1<<bit) != 0
}

// FirstAfter returns the earliest day strictly after date that belongs to
// the calendar, scanning forward month-word by month-word. The second
// return value is false when no such day exists within the calendar's
// configured year range.
func (c *Calendar) FirstAfter(date time.Time) (time.Time, bool) {
	if c == nil {
		return time.Time{}, false
	}

	y, m, d := date.Year(), int(date.Month()), date.Day()
	d++
	if d > daysInMonth(y, m) {
		d = 1
		m++
		if m > 12 {
			m = 1
			y++
		}
	}

	for y < c.endYear() {
		word := c.monthWord(y, m)
		for word>>uint(d-1) != 0 {
			if word&(1<<uint(d-1)) != 0 {
				return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
			}
			d++
		}
		d = 1
		m++
		if m > 12 {
			m = 1
			y++
		}
	}

	return time.Time{}, false
}

func (c *Calendar) endYear() int {
	return c.startYear + len(c.months)/12
}

func (c *Calendar) monthWord(year, month int) uint32 {
	idx, _, ok := c.locate(year, month, 1)
	if !ok {
		return 0
	}
	return c.months[idx]
}

func (c *Calendar) locate(year, month, day int) (idx int, bit uint, ok bool) {
	if year < c.startYear || year >= c.endYear() {
		return 0, 0, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, false
	}
	return (year-c.startYear)*12 + (month - 1), uint(day - 1), true
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Serialize encodes the calendar using the on-disk layout: an 8-byte
// start-year, an 8-byte year-count, then yearCount*12*4 little-endian
// bytes, one 32-bit word per month.
func (c *Calendar) Serialize() []byte {
	yearCount := len(c.months) / 12
	buf := make([]byte, 16+len(c.months)*4)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(c.startYear))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(yearCount))
	for i, word := range c.months {
		binary.LittleEndian.PutUint32(buf[16+i*4:20+i*4], word)
	}
	return buf
}

// Deserialize decodes a calendar previously produced by Serialize. It
// validates that the trailing year-data section is not truncated.
func Deserialize(data []byte) (*Calendar, error) {
	if len(data) < 16 {
		return nil, fmt.Errorf("calendar: truncated header: got %d bytes, want at least 16", len(data))
	}

	startYear := int(int64(binary.LittleEndian.Uint64(data[0:8])))
	yearCount := int(int64(binary.LittleEndian.Uint64(data[8:16])))
	if yearCount < 0 {
		return nil, fmt.Errorf("calendar: negative year count %d", yearCount)
	}

	want := 16 + yearCount*12*4
	if len(data) != want {
		return nil, fmt.Errorf("calendar: truncated body: got %d bytes, want %d", len(data), want)
	}

	months := make([]uint32, yearCount*12)
	for i := range months {
		off := 16 + i*4
		months[i] = binary.LittleEndian.Uint32(data[off : off+4])
	}

	return &Calendar{startYear: startYear, months: months}, nil
}

// StartYear returns the first year covered by the calendar.
func (c *Calendar) StartYear() int { return c.startYear }

// EndYear returns the year after the last one covered by the calendar.
func (c *Calendar) EndYear() int { return c.endYear() }
