package calendar_test

import (
	"testing"
	"time"

	"github.com/meu-financeiro/core-api/internal/calendar"
)

func TestParseDayAnchorsAtNoonUTC(t *testing.T) {
	got, err := calendar.ParseDay("2025-07-15")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	want := time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "15/07/2025", "2025-13-01", "2025-02-30"} {
		if _, err := calendar.ParseDay(s); err == nil {
			t.Errorf("ParseDay(%q): expected error", s)
		}
	}
}

func TestClampedDate(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  string
	}{
		{"regular day", 2025, time.July, 20, "2025-07-20"},
		{"day 31 in april", 2025, time.April, 31, "2025-04-30"},
		{"day 31 in february", 2025, time.February, 31, "2025-02-28"},
		{"day 30 in leap february", 2024, time.February, 30, "2024-02-29"},
		{"day 29 in leap february", 2024, time.February, 29, "2024-02-29"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := calendar.FormatDay(calendar.ClampedDate(tc.year, tc.month, tc.day))
			if got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestAddMonthsClampsInsteadOfOverflowing(t *testing.T) {
	tests := []struct {
		start string
		n     int
		want  string
	}{
		{"2025-01-31", 1, "2025-02-28"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2025-01-31", 3, "2025-04-30"},
		{"2025-12-15", 1, "2026-01-15"},
		{"2025-11-30", 3, "2026-02-28"},
		{"2025-03-31", -1, "2025-02-28"},
		{"2025-01-15", -2, "2024-11-15"},
		{"2025-05-10", 0, "2025-05-10"},
		{"2025-01-31", 13, "2026-02-28"},
	}
	for _, tc := range tests {
		start, err := calendar.ParseDay(tc.start)
		if err != nil {
			t.Fatalf("ParseDay(%s): %v", tc.start, err)
		}
		got := calendar.FormatDay(calendar.AddMonths(start, tc.n))
		if got != tc.want {
			t.Errorf("AddMonths(%s, %d) = %s, want %s", tc.start, tc.n, got, tc.want)
		}
	}
}

func TestAddYears(t *testing.T) {
	start, _ := calendar.ParseDay("2024-02-29")
	if got := calendar.FormatDay(calendar.AddYears(start, 1)); got != "2025-02-28" {
		t.Errorf("got %s, want 2025-02-28", got)
	}
}

func TestEndOfDayOrdersInclusiveBounds(t *testing.T) {
	day, _ := calendar.ParseDay("2025-07-20")
	end := calendar.EndOfDay(day)
	if !day.Before(end) {
		t.Fatalf("noon should precede end of day")
	}
	next, _ := calendar.ParseDay("2025-07-21")
	if !end.Before(next) {
		t.Fatalf("end of day should precede the next day's noon")
	}
}

func TestMonthKeyRoundTrip(t *testing.T) {
	day, _ := calendar.ParseDay("2025-07-04")
	key := calendar.MonthKey(day)
	if key != "2025-07" {
		t.Fatalf("got %s, want 2025-07", key)
	}
	y, m, err := calendar.ParseMonthKey(key)
	if err != nil || y != 2025 || m != time.July {
		t.Errorf("ParseMonthKey(%s) = %d %v %v", key, y, m, err)
	}
}
