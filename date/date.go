// Package date provides the calendar types of loan schedules: a Date of
// day granularity and the payment Frequency.
package date

import (
	"encoding"
	"fmt"
	"time"
)

// Layout is the ISO-8601 layout dates are written with.
const Layout = "2006-01-02"

// lenientLayout also reads single digit months and days.
const lenientLayout = "2006-1-2"

// Date is a calendar day. The zero value is not a valid day and is used as
// "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// New returns the Date of year, month and day, normalized the way time.Date
// does: October 32nd is November 1st.
func New(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// Today returns the current local date.
func Today() Date { return New(time.Now().Date()) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Add returns d moved by days.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// AddMonths returns d moved by n months.
//
// The day is clamped to the end of the target month: January 31st plus one
// month is the last day of February.
func (d Date) AddMonths(n int) Date {
	first := New(d.y, d.m+time.Month(n), 1)
	last := New(first.y, first.m+1, 0).d
	return New(first.y, first.m, min(d.d, last))
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.y, d.m, d.d)
}

// Parse reads a Date in the "2025-07-01" form. Single digit months and days
// are accepted.
func Parse(s string) (Date, error) {
	t, err := time.Parse(lenientLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want %s: %w", s, Layout, err)
	}
	return New(t.Date()), nil
}

// MarshalText writes d in the Layout form, so that dates are plain strings in
// JSON and YAML documents.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText reads a Date with Parse. Empty text is the zero Date.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

var (
	_ encoding.TextMarshaler   = Date{}
	_ encoding.TextUnmarshaler = (*Date)(nil)
)
