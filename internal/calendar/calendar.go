// Package calendar holds the date arithmetic shared by the balance,
// statement and projection engines. All dates travel as "YYYY-MM-DD"
// strings on the wire and are anchored at 12:00 UTC internally so that
// timezone offsets can never roll a date into the neighboring day.
package calendar

import (
	"fmt"
	"time"
)

// DayLayout is the wire format for calendar dates.
const DayLayout = "2006-01-02"

// ParseDay parses a "YYYY-MM-DD" string into a time.Time anchored at
// noon UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}

// FormatDay renders a time.Time back into the wire format.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// ClampedDate builds a noon-UTC date for year/month/day, clamping the
// day to the last day of the month when the month is shorter. A
// closing day of 31 lands on Feb 28 (or 29), never on Mar 2/3.
func ClampedDate(year int, month time.Month, day int) time.Time {
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// AddMonths advances t by n calendar months keeping the day-of-month,
// clamped to the target month's length. Jan 31 + 1 month is Feb 28/29.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	// normalize the month offset before clamping the day
	total := int(m) - 1 + n
	ny := y + total/12
	nm := time.Month(total%12 + 1)
	if total < 0 {
		// Go's % truncates toward zero; shift into range
		ny = y + (total-11)/12
		nm = time.Month((total%12+12)%12 + 1)
	}
	return ClampedDate(ny, nm, d)
}

// AddYears advances t by n years, clamping Feb 29 to Feb 28 on
// non-leap targets.
func AddYears(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return ClampedDate(y+n, m, d)
}

// EndOfDay returns the last instant of t's calendar day. Used for
// inclusive period upper bounds.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

// StartOfMonth returns the first day of t's month at noon UTC.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 12, 0, 0, 0, time.UTC)
}

// MonthKey renders t as "YYYY-MM", the key used to group statements
// and dashboard months.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ParseMonthKey parses a "YYYY-MM" key into its year and month.
func ParseMonthKey(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
