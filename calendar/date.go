// Package calendar provides day-granularity date handling and the
// non-working-day calculator (weekends plus fixed and moveable holidays).
package calendar

import (
	"strings"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date (UTC, time-free)
// =============================================================================

// Date is a calendar date with no time-of-day component. All values are
// normalized to midnight UTC so comparisons and map keys behave.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime strips the time-of-day component.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return FromTime(time.Now())
}

// ParseDate accepts "YYYY-MM-DD" and raw timestamps that carry a time
// component ("YYYY-MM-DDTHH:MM:SS" or "YYYY-MM-DD HH:MM:SS"); the date
// portion alone is kept. Backends are inconsistent about this.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i > 0 {
		s = s[:i]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return FromTime(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return FromTime(d.t.AddDate(0, 0, n)) }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) IsWeekday() bool { return !d.IsWeekend() }

// String returns the fixed-width YYYY-MM-DD form. Slices of this form sort
// lexicographically in chronological order.
func (d Date) String() string { return d.t.Format("2006-01-02") }

// =============================================================================
// MONTH HELPERS
// =============================================================================

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

func EndOfMonth(year int, month time.Month) Date {
	return FromTime(time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}

func DaysInMonth(year int, month time.Month) int {
	return EndOfMonth(year, month).Day()
}

// MonthDays returns every calendar day of the month, day 1 through the last
// day inclusive.
func MonthDays(year int, month time.Month) []Date {
	days := make([]Date, 0, DaysInMonth(year, month))
	d := StartOfMonth(year, month)
	for d.Month() == month {
		days = append(days, d)
		d = d.AddDays(1)
	}
	return days
}
