package employee

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	Code     string `json:"code" validate:"required"`
	FullName string `json:"full_name" validate:"required,max=255"`
	JoinDate string `json:"join_date" validate:"required,datetime=2006-01-02"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.StructErrors(r)

	if !validator.IsEmpty(r.Code) && !validator.IsValidEmployeeCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be 3-20 letters, digits or dashes",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeactivateEmployeeRequest struct {
	ID        string `json:"-"`
	LeaveDate string `json:"leave_date" validate:"required,datetime=2006-01-02"`
}

func (r *DeactivateEmployeeRequest) Validate() error {
	return validator.Struct(r)
}

type EmployeeFilter struct {
	ActiveOnly bool
}

type SetSalaryRequest struct {
	EmployeeID    string          `json:"-"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	HRAPercentage decimal.Decimal `json:"hra_percentage"`
	TAPercentage  decimal.Decimal `json:"ta_percentage"`
	EffectiveFrom string          `json:"effective_from" validate:"required,datetime=2006-01-02"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *SetSalaryRequest) Validate() error {
	errs := validator.StructErrors(r)

	if !r.BaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be greater than 0",
		})
	}

	for field, pct := range map[string]decimal.Decimal{
		"hra_percentage": r.HRAPercentage,
		"ta_percentage":  r.TAPercentage,
	} {
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be between 0 and 100",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID        string  `json:"id"`
	Code      string  `json:"code"`
	FullName  string  `json:"full_name"`
	JoinDate  string  `json:"join_date"`
	LeaveDate *string `json:"leave_date,omitempty"`
	IsActive  bool    `json:"is_active"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:       e.ID,
		Code:     e.Code,
		FullName: e.FullName,
		JoinDate: e.JoinDate.Format(dateLayout),
		IsActive: e.IsActive,
	}
	if e.LeaveDate != nil {
		d := e.LeaveDate.Format(dateLayout)
		resp.LeaveDate = &d
	}
	return resp
}

type SalaryResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	HRAPercentage decimal.Decimal `json:"hra_percentage"`
	TAPercentage  decimal.Decimal `json:"ta_percentage"`
	HRA           decimal.Decimal `json:"hra"`
	TA            decimal.Decimal `json:"ta"`
	EffectiveFrom string          `json:"effective_from"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewSalaryResponse(s Salary) SalaryResponse {
	return SalaryResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		BaseSalary:    s.BaseSalary,
		HRAPercentage: s.HRAPercentage,
		TAPercentage:  s.TAPercentage,
		HRA:           s.HRA(),
		TA:            s.TA(),
		EffectiveFrom: s.EffectiveFrom.Format(dateLayout),
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
}
