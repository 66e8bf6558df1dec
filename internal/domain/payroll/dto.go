package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ProcessRequest struct {
	Month string `json:"month" validate:"required,datetime=2006-01"`
}

func (r *ProcessRequest) Validate() (period.Month, error) {
	if err := validator.Struct(r); err != nil {
		return period.Month{}, err
	}
	return period.ParseMonth(r.Month)
}

type UpdatePayrollRequest struct {
	ID         string          `json:"-"`
	BaseSalary decimal.Decimal `json:"base_salary"`
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.BaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListPayrollRequest carries the query string of a list call.
type ListPayrollRequest struct {
	Month      *string
	EmployeeID *string
	Status     *string
}

func (r *ListPayrollRequest) Validate() (Filter, error) {
	var errs validator.ValidationErrors
	f := Filter{EmployeeID: r.EmployeeID}

	if r.Month != nil {
		m, err := period.ParseMonth(*r.Month)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		} else {
			f.Month = &m
		}
	}
	if r.Status != nil {
		st, err := ParseStatus(*r.Status)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: err.Error(),
			})
		} else {
			f.Status = &st
		}
	}

	if len(errs) > 0 {
		return Filter{}, errs
	}
	return f, nil
}

type PayrollResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	Month          string          `json:"month"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	WorkingDays    int             `json:"working_days"`
	PresentDays    decimal.Decimal `json:"present_days"`
	AbsentDays     decimal.Decimal `json:"absent_days"`
	LeaveDays      decimal.Decimal `json:"leave_days"`
	PerDaySalary   decimal.Decimal `json:"per_day_salary"`
	Deduction      decimal.Decimal `json:"deduction"`
	NetSalary      decimal.Decimal `json:"net_salary"`
	AttendanceRate decimal.Decimal `json:"attendance_rate"`
	Status         Status          `json:"status"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
}

func NewPayrollResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		Month:          p.Month.String(),
		BaseSalary:     p.BaseSalary,
		WorkingDays:    p.WorkingDays,
		PresentDays:    p.PresentDays,
		AbsentDays:     p.AbsentDays,
		LeaveDays:      p.LeaveDays,
		PerDaySalary:   p.PerDaySalary,
		Deduction:      p.Deduction,
		NetSalary:      p.NetSalary,
		AttendanceRate: p.AttendanceRate(),
		Status:         p.Status,
		ApprovedAt:     p.ApprovedAt,
		PaidAt:         p.PaidAt,
	}
}
