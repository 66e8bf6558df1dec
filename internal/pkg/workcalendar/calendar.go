// Package workcalendar decides which calendar days count as working days.
//
// The policy is an RFC 5545 recurrence rule, e.g. "FREQ=DAILY" (every day is a
// working day) or "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR" (Saturday and Sunday off).
package workcalendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/teambition/rrule-go"
)

// EveryDay treats all calendar days as working days.
const EveryDay = "FREQ=DAILY"

type Calendar struct {
	rule   string
	option rrule.ROption
}

// New parses rule. An empty rule means EveryDay.
func New(rule string) (*Calendar, error) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if rule == "" {
		rule = EveryDay
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid working day rule %q: %w", rule, err)
	}
	if opt.Count != 0 || !opt.Until.IsZero() {
		return nil, fmt.Errorf("working day rule %q must not be bounded by COUNT or UNTIL", rule)
	}

	opt.Dtstart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := rrule.NewRRule(*opt); err != nil {
		return nil, fmt.Errorf("invalid working day rule %q: %w", rule, err)
	}

	return &Calendar{rule: rule, option: *opt}, nil
}

// MustNew is New for rules known at compile time.
func MustNew(rule string) *Calendar {
	c, err := New(rule)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Calendar) Rule() string {
	return c.rule
}

// WorkingDays lists the working days of m in ascending order, as UTC midnights.
func (c *Calendar) WorkingDays(m period.Month) []time.Time {
	opt := c.option
	opt.Dtstart = m.Start()

	rr, err := rrule.NewRRule(opt)
	if err != nil {
		// The rule was validated in New; only Dtstart differs.
		return nil
	}

	return rr.Between(m.Start(), m.End(), true)
}

// WorkingDaysCount is len(WorkingDays(m)).
func (c *Calendar) WorkingDaysCount(m period.Month) int {
	return len(c.WorkingDays(m))
}

// IsWorkingDay reports whether the calendar date of d is a working day.
func (c *Calendar) IsWorkingDay(d time.Time) bool {
	day := period.Date(d)
	for _, wd := range c.WorkingDays(period.Of(day)) {
		if wd.Equal(day) {
			return true
		}
	}
	return false
}

// WorkingDaySet returns the working days of m keyed by YYYY-MM-DD.
func (c *Calendar) WorkingDaySet(m period.Month) map[string]bool {
	days := c.WorkingDays(m)
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[d.Format("2006-01-02")] = true
	}
	return set
}
