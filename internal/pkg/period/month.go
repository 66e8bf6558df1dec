// Package period models the calendar month used as the payroll period.
package period

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Month is a calendar month, independent of any time zone.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Of returns the month containing t.
func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Start is the first day of the month at 00:00 UTC.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last day of the month at 00:00 UTC.
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, -1)
}

func (m Month) Days() int {
	return m.End().Day()
}

func (m Month) Previous() Month {
	return Of(m.Start().AddDate(0, -1, 0))
}

func (m Month) IsZero() bool {
	return m.Year == 0
}

func (m Month) String() string {
	return m.Start().Format(monthLayout)
}

// Date truncates t to its calendar date, keeping the wall clock date of t's location.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
