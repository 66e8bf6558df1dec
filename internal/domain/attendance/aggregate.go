package attendance

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

// HalfDayPolicy decides how a half_day record splits between present and absent.
type HalfDayPolicy string

const (
	// HalfDayAsPresent counts a half day as a full present day.
	HalfDayAsPresent HalfDayPolicy = "full"
	// HalfDaySplit counts half a present day and half an absent day.
	HalfDaySplit HalfDayPolicy = "half"
)

func ParseHalfDayPolicy(s string) (HalfDayPolicy, error) {
	switch HalfDayPolicy(s) {
	case HalfDayAsPresent, HalfDaySplit:
		return HalfDayPolicy(s), nil
	}
	return "", ErrInvalidHalfDayRule
}

// MonthlyCounts is the ledger summary payroll consumes.
type MonthlyCounts struct {
	EmployeeID  string          `json:"employee_id"`
	Month       string          `json:"month"`
	WorkingDays int             `json:"working_days"`
	PresentDays decimal.Decimal `json:"present_days"`
	AbsentDays  decimal.Decimal `json:"absent_days"`
	LeaveDays   decimal.Decimal `json:"leave_days"`
	HalfDays    int             `json:"half_days"`
	// UnrecordedDays are working days with no record; they are not deducted.
	UnrecordedDays int `json:"unrecorded_days"`
}

var half = decimal.RequireFromString("0.5")

// Tally folds the records of one employee and month into MonthlyCounts. Only
// records whose date is in workingDays (keyed YYYY-MM-DD) count.
func Tally(employeeID string, month period.Month, workingDays map[string]bool, records []Attendance, policy HalfDayPolicy) MonthlyCounts {
	counts := MonthlyCounts{
		EmployeeID:  employeeID,
		Month:       month.String(),
		WorkingDays: len(workingDays),
		PresentDays: decimal.Zero,
		AbsentDays:  decimal.Zero,
		LeaveDays:   decimal.Zero,
	}

	one := decimal.NewFromInt(1)
	recorded := 0
	for _, r := range records {
		if !workingDays[r.Date.Format("2006-01-02")] {
			continue
		}
		recorded++

		switch r.Status {
		case StatusPresent:
			counts.PresentDays = counts.PresentDays.Add(one)
		case StatusAbsent:
			counts.AbsentDays = counts.AbsentDays.Add(one)
		case StatusOnLeave:
			counts.LeaveDays = counts.LeaveDays.Add(one)
		case StatusHalfDay:
			counts.HalfDays++
			if policy == HalfDaySplit {
				counts.PresentDays = counts.PresentDays.Add(half)
				counts.AbsentDays = counts.AbsentDays.Add(half)
			} else {
				counts.PresentDays = counts.PresentDays.Add(one)
			}
		}
	}
	counts.UnrecordedDays = counts.WorkingDays - recorded

	return counts
}

// AttendanceRate is present/working as a percentage with 2 decimals, 0 when
// there are no working days.
func (c MonthlyCounts) AttendanceRate() decimal.Decimal {
	if c.WorkingDays == 0 {
		return decimal.Zero
	}
	return c.PresentDays.Div(decimal.NewFromInt(int64(c.WorkingDays))).Mul(decimal.NewFromInt(100)).Round(2)
}

type CalendarDay struct {
	Date       string  `json:"date"`
	Weekday    string  `json:"weekday"`
	WorkingDay bool    `json:"working_day"`
	Status     *Status `json:"status,omitempty"`
	RecordID   *string `json:"record_id,omitempty"`
}

// Calendar is the per-day status grid of one employee and month.
type Calendar struct {
	EmployeeID string        `json:"employee_id"`
	Month      string        `json:"month"`
	Days       []CalendarDay `json:"days"`
	Counts     MonthlyCounts `json:"counts"`
}

func BuildCalendar(employeeID string, month period.Month, workingDays map[string]bool, records []Attendance, policy HalfDayPolicy) Calendar {
	byDate := make(map[string]Attendance, len(records))
	for _, r := range records {
		byDate[r.Date.Format("2006-01-02")] = r
	}

	days := make([]CalendarDay, 0, month.Days())
	for d := month.Start(); !d.After(month.End()); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		day := CalendarDay{
			Date:       key,
			Weekday:    d.Weekday().String(),
			WorkingDay: workingDays[key],
		}
		if r, ok := byDate[key]; ok {
			status, id := r.Status, r.ID
			day.Status = &status
			day.RecordID = &id
		}
		days = append(days, day)
	}

	return Calendar{
		EmployeeID: employeeID,
		Month:      month.String(),
		Days:       days,
		Counts:     Tally(employeeID, month, workingDays, records, policy),
	}
}
