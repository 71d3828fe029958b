package calendar

import (
	"fmt"
	"time"
)

// Month identifies a calendar month independent of time zone.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth accepts YYYY-MM.
func ParseMonth(raw string) (Month, error) {
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return Month{}, fmt.Errorf("calendar: invalid month %q: want YYYY-MM", raw)
	}
	return MonthOf(t), nil
}

// First is the first day of the month at midnight UTC.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Add shifts by n months, normalizing across year boundaries.
func (m Month) Add(n int) Month {
	return MonthOf(m.First().AddDate(0, n, 0))
}

// Prefix is the YYYY-MM string shared by every date in the month.
func (m Month) Prefix() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) String() string { return m.Prefix() }

// Title renders "January 2026".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Date returns the given day of the month. Days outside 1..DaysInMonth
// overflow into neighbouring months the way time.Date does.
func (m Month) Date(day int) time.Time {
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls in the month, compared by calendar fields.
func (m Month) Contains(t time.Time) bool {
	return !t.IsZero() && t.Year() == m.Year && t.Month() == m.Month
}

// DaysInMonth is the day-of-month of "day 0" of the following month.
func DaysInMonth(m Month) int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday is the weekday of day 1, Sunday = 0.
func FirstWeekday(m Month) time.Weekday {
	return m.First().Weekday()
}

// SameDay compares calendar fields only, ignoring clock and zone offset.
func SameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ISODate formats t as YYYY-MM-DD using its calendar fields.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
