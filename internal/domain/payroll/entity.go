package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusPaid:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// next is the only state each status may move to.
var next = map[Status]Status{
	StatusPending:  StatusApproved,
	StatusApproved: StatusPaid,
}

// CanTransitionTo reports whether s -> to is a single forward step.
func (s Status) CanTransitionTo(to Status) bool {
	n, ok := next[s]
	return ok && n == to
}

// Payroll is the persisted result for one employee and month.
type Payroll struct {
	ID           string
	EmployeeID   string
	Month        period.Month
	BaseSalary   decimal.Decimal
	WorkingDays  int
	PresentDays  decimal.Decimal
	AbsentDays   decimal.Decimal
	LeaveDays    decimal.Decimal
	PerDaySalary decimal.Decimal
	Deduction    decimal.Decimal
	NetSalary    decimal.Decimal
	Status       Status
	ApprovedAt   *time.Time
	PaidAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AttendanceRate is present/working as a percentage, 0 without working days.
func (p Payroll) AttendanceRate() decimal.Decimal {
	if p.WorkingDays == 0 {
		return decimal.Zero
	}
	return p.PresentDays.Div(decimal.NewFromInt(int64(p.WorkingDays))).Mul(decimal.NewFromInt(100)).Round(2)
}

// Recalculate sets the money fields from BaseSalary and the stored day counts.
func (p *Payroll) Recalculate() {
	amounts := Calculate(p.BaseSalary, p.WorkingDays, p.AbsentDays)
	p.PerDaySalary = amounts.PerDaySalary
	p.Deduction = amounts.Deduction
	p.NetSalary = amounts.NetSalary
}

// ProcessSummary describes one Process run.
type ProcessSummary struct {
	Month              string          `json:"month"`
	EmployeesProcessed int             `json:"employees_processed"`
	TotalPayroll       decimal.Decimal `json:"total_payroll"`
	PendingApproval    int             `json:"pending_approval"`
	AvgAttendance      decimal.Decimal `json:"avg_attendance"`
	SkippedExisting    int             `json:"skipped_existing"`
	SkippedNoSalary    int             `json:"skipped_no_salary"`
}

// MonthSummary describes every payroll row of a month.
type MonthSummary struct {
	Month              string          `json:"month"`
	EmployeesProcessed int             `json:"employees_processed"`
	TotalPayroll       decimal.Decimal `json:"total_payroll"`
	TotalDeduction     decimal.Decimal `json:"total_deduction"`
	PendingApproval    int             `json:"pending_approval"`
	Approved           int             `json:"approved"`
	Paid               int             `json:"paid"`
	AvgAttendance      decimal.Decimal `json:"avg_attendance"`
}

// Summarize folds rows of one month into a MonthSummary.
func Summarize(month period.Month, rows []Payroll) MonthSummary {
	s := MonthSummary{
		Month:          month.String(),
		TotalPayroll:   decimal.Zero,
		TotalDeduction: decimal.Zero,
		AvgAttendance:  decimal.Zero,
	}

	rates := make([]decimal.Decimal, 0, len(rows))
	for _, p := range rows {
		s.EmployeesProcessed++
		s.TotalPayroll = s.TotalPayroll.Add(p.NetSalary)
		s.TotalDeduction = s.TotalDeduction.Add(p.Deduction)
		switch p.Status {
		case StatusPending:
			s.PendingApproval++
		case StatusApproved:
			s.Approved++
		case StatusPaid:
			s.Paid++
		}
		rates = append(rates, p.AttendanceRate())
	}
	s.AvgAttendance = Average(rates)

	return s
}

// Average is the arithmetic mean rounded to 2 places, 0 for no values.
func Average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(values[0], values[1:]...).Div(decimal.NewFromInt(int64(len(values)))).Round(2)
}
