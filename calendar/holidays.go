package calendar

import (
	"sync"
	"time"
)

// =============================================================================
// HOLIDAY SET - Fixed national holidays plus Easter-derived moveable ones
// =============================================================================

// HolidaysForYear returns the non-working holiday dates for a year:
// nine fixed national holidays and two moveable ones (Holy Thursday and
// Good Friday, derived from the Gregorian Easter Sunday). The set is
// recomputed on every call; it is never cached across years.
func HolidaysForYear(year int) map[Date]struct{} {
	holidays := map[Date]struct{}{
		NewDate(year, time.January, 1):   {},
		NewDate(year, time.May, 1):       {},
		NewDate(year, time.July, 28):     {},
		NewDate(year, time.July, 29):     {},
		NewDate(year, time.August, 30):   {},
		NewDate(year, time.October, 8):   {},
		NewDate(year, time.November, 1):  {},
		NewDate(year, time.December, 8):  {},
		NewDate(year, time.December, 25): {},
	}

	easter := EasterSunday(year)
	holidays[easter.AddDays(-3)] = struct{}{} // Holy Thursday
	holidays[easter.AddDays(-2)] = struct{}{} // Good Friday

	return holidays
}

// EasterSunday computes the Western (Gregorian) Easter Sunday using the
// Meeus/Jones/Butcher algorithm.
func EasterSunday(year int) Date {
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
	return NewDate(year, time.Month(month), day)
}

// =============================================================================
// CALCULATOR - Memoized non-working-day predicate
// =============================================================================

// Calculator answers non-working-day queries. It holds a single-entry memo
// keyed by the last queried date: UI layers tend to re-ask for the same date
// on every render, and the memo spares the Easter arithmetic on those
// repeats. A query for a different date replaces the entry.
type Calculator struct {
	mu       sync.Mutex
	lastDate Date
	lastSet  bool
	lastAns  bool
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// IsNonWorkingDay reports whether the date is a Saturday, a Sunday, or a
// holiday of its year.
func (c *Calculator) IsNonWorkingDay(date Date) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastSet && c.lastDate.Equal(date) {
		return c.lastAns
	}

	ans := date.IsWeekend()
	if !ans {
		_, ans = HolidaysForYear(date.Year())[date]
	}

	c.lastDate = date
	c.lastSet = true
	c.lastAns = ans
	return ans
}

// IsHoliday reports whether the date is a holiday regardless of weekday.
func (c *Calculator) IsHoliday(date Date) bool {
	_, ok := HolidaysForYear(date.Year())[date]
	return ok
}
