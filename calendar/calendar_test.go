package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/calendar"
)

// =============================================================================
// DATE PARSING AND NORMALIZATION
// =============================================================================

func TestParseDate_PlainDate(t *testing.T) {
	d, err := calendar.ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2024, time.March, 15), d)
}

func TestParseDate_StripsTimeComponent(t *testing.T) {
	// Raw dates from the backend may carry time components; only the date
	// portion counts.
	for _, raw := range []string{
		"2024-03-15T08:30:00",
		"2024-03-15 08:30:00",
		"2024-03-15T00:00:00Z",
	} {
		d, err := calendar.ParseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "2024-03-15", d.String(), raw)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := calendar.ParseDate("not-a-date")
	assert.Error(t, err)

	_, err = calendar.ParseDate("")
	assert.Error(t, err)
}

func TestDate_LexicographicOrderMatchesChronology(t *testing.T) {
	a := calendar.NewDate(2024, time.September, 30)
	b := calendar.NewDate(2024, time.October, 1)
	assert.True(t, a.String() < b.String())
	assert.True(t, a.Before(b))
}

// =============================================================================
// MONTH HELPERS
// =============================================================================

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, calendar.DaysInMonth(2024, time.March))
	assert.Equal(t, 29, calendar.DaysInMonth(2024, time.February)) // leap
	assert.Equal(t, 28, calendar.DaysInMonth(2025, time.February))
	assert.Equal(t, 30, calendar.DaysInMonth(2025, time.April))
	assert.Equal(t, 31, calendar.DaysInMonth(2024, time.December))
}

func TestMonthDays_CompleteAndOrdered(t *testing.T) {
	days := calendar.MonthDays(2024, time.February)
	require.Len(t, days, 29)
	assert.Equal(t, "2024-02-01", days[0].String())
	assert.Equal(t, "2024-02-29", days[28].String())
	for i := 1; i < len(days); i++ {
		assert.True(t, days[i-1].Before(days[i]))
	}
}

// =============================================================================
// EASTER AND HOLIDAYS
// =============================================================================

func TestEasterSunday_KnownYears(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
		{2000, time.April, 23},
	}
	for _, tt := range tests {
		assert.Equal(t, calendar.NewDate(tt.year, tt.month, tt.day),
			calendar.EasterSunday(tt.year), "year %d", tt.year)
	}
}

func TestHolidaysForYear_MoveableHolidays(t *testing.T) {
	// Easter 2025 is April 20: Holy Thursday Apr 17, Good Friday Apr 18.
	h2025 := calendar.HolidaysForYear(2025)
	assert.Contains(t, h2025, calendar.NewDate(2025, time.April, 17))
	assert.Contains(t, h2025, calendar.NewDate(2025, time.April, 18))

	// Easter 2024 is March 31: Holy Thursday Mar 28, Good Friday Mar 29.
	h2024 := calendar.HolidaysForYear(2024)
	assert.Contains(t, h2024, calendar.NewDate(2024, time.March, 28))
	assert.Contains(t, h2024, calendar.NewDate(2024, time.March, 29))
}

func TestHolidaysForYear_FixedHolidays(t *testing.T) {
	h := calendar.HolidaysForYear(2025)

	fixed := []calendar.Date{
		calendar.NewDate(2025, time.January, 1),
		calendar.NewDate(2025, time.May, 1),
		calendar.NewDate(2025, time.July, 28),
		calendar.NewDate(2025, time.July, 29),
		calendar.NewDate(2025, time.August, 30),
		calendar.NewDate(2025, time.October, 8),
		calendar.NewDate(2025, time.November, 1),
		calendar.NewDate(2025, time.December, 8),
		calendar.NewDate(2025, time.December, 25),
	}
	for _, d := range fixed {
		assert.Contains(t, h, d)
	}

	// Nine fixed plus two moveable.
	assert.Len(t, h, 11)
}

// =============================================================================
// NON-WORKING-DAY PREDICATE
// =============================================================================

func TestCalculator_Weekends(t *testing.T) {
	c := calendar.NewCalculator()

	saturday := calendar.NewDate(2025, time.March, 8)
	sunday := calendar.NewDate(2025, time.March, 9)
	monday := calendar.NewDate(2025, time.March, 10)

	assert.True(t, c.IsNonWorkingDay(saturday))
	assert.True(t, c.IsNonWorkingDay(sunday))
	assert.False(t, c.IsNonWorkingDay(monday))
}

func TestCalculator_WeekdayHoliday(t *testing.T) {
	c := calendar.NewCalculator()

	// Dec 25 2025 falls on a Thursday.
	christmas := calendar.NewDate(2025, time.December, 25)
	require.Equal(t, time.Thursday, christmas.Weekday())
	assert.True(t, c.IsNonWorkingDay(christmas))

	assert.False(t, c.IsNonWorkingDay(calendar.NewDate(2025, time.December, 23)))
}

func TestCalculator_MemoRepeatedQueries(t *testing.T) {
	// GIVEN: a calculator queried repeatedly for the same date
	// WHEN: the query alternates to a different date and back
	// THEN: answers stay consistent (the memo holds one entry, replaced on
	//       key mismatch)

	c := calendar.NewCalculator()
	holiday := calendar.NewDate(2025, time.May, 1)
	workday := calendar.NewDate(2025, time.May, 2)

	for i := 0; i < 3; i++ {
		assert.True(t, c.IsNonWorkingDay(holiday))
	}
	assert.False(t, c.IsNonWorkingDay(workday))
	assert.True(t, c.IsNonWorkingDay(holiday))
	assert.False(t, c.IsNonWorkingDay(workday))
}

func TestCalculator_IsHoliday_IgnoresWeekday(t *testing.T) {
	c := calendar.NewCalculator()

	// Nov 1 2025 is a Saturday: a holiday and a weekend at once.
	nov1 := calendar.NewDate(2025, time.November, 1)
	require.Equal(t, time.Saturday, nov1.Weekday())
	assert.True(t, c.IsHoliday(nov1))

	// A plain Saturday is non-working but not a holiday.
	assert.False(t, c.IsHoliday(calendar.NewDate(2025, time.November, 8)))
}
