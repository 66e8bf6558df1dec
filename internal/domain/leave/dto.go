package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type CreateSettingRequest struct {
	LeaveType  string `json:"leave_type" validate:"required,max=100"`
	AnnualDays int    `json:"annual_days" validate:"gte=0,lte=366"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

func (r *CreateSettingRequest) Validate() error {
	return validator.Struct(r)
}

type UpdateSettingRequest struct {
	ID         string `json:"-"`
	AnnualDays *int   `json:"annual_days,omitempty" validate:"omitempty,gte=0,lte=366"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

func (r *UpdateSettingRequest) Validate() error {
	return validator.Struct(r)
}

type SettingResponse struct {
	ID         string `json:"id"`
	LeaveType  string `json:"leave_type"`
	AnnualDays int    `json:"annual_days"`
	IsActive   bool   `json:"is_active"`
}

func NewSettingResponse(s Setting) SettingResponse {
	return SettingResponse{
		ID:         s.ID,
		LeaveType:  s.LeaveType,
		AnnualDays: s.AnnualDays,
		IsActive:   s.IsActive,
	}
}

type SubmitRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	LeaveType  string `json:"leave_type" validate:"required"`
	FromDate   string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate     string `json:"to_date" validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason" validate:"max=1000"`
}

func (r *SubmitRequest) Validate() error {
	errs := validator.StructErrors(r)

	from, fromOK := validator.IsValidDate(r.FromDate)
	to, toOK := validator.IsValidDate(r.ToDate)
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must not be before from_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed dates of a request that passed Validate.
func (r *SubmitRequest) Range() (from, to time.Time) {
	from, _ = time.Parse(dateLayout, r.FromDate)
	to, _ = time.Parse(dateLayout, r.ToDate)
	return from, to
}

type ApproveRequest struct {
	ID        string `json:"-"`
	DecidedBy string `json:"-"`
}

type RejectRequest struct {
	ID        string `json:"-"`
	DecidedBy string `json:"-"`
	Reason    string `json:"reason" validate:"required,max=1000"`
}

func (r *RejectRequest) Validate() error {
	return validator.Struct(r)
}

// DaysRequest previews the day count shown before a request is submitted.
type DaysRequest struct {
	FromDate string
	ToDate   string
}

func (r *DaysRequest) Validate() (from, to time.Time, err error) {
	var errs validator.ValidationErrors
	var ok bool
	if from, ok = validator.IsValidDate(r.FromDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
	}
	if to, ok = validator.IsValidDate(r.ToDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

type DaysResponse struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Days     int    `json:"days"`
}

type RequestResponse struct {
	ID              string        `json:"id"`
	EmployeeID      string        `json:"employee_id"`
	LeaveType       string        `json:"leave_type"`
	FromDate        string        `json:"from_date"`
	ToDate          string        `json:"to_date"`
	Days            int           `json:"days"`
	Status          RequestStatus `json:"status"`
	Reason          string        `json:"reason"`
	DecidedAt       *time.Time    `json:"decided_at,omitempty"`
	DecidedBy       *string       `json:"decided_by,omitempty"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

func NewRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		LeaveType:       r.LeaveType,
		FromDate:        r.FromDate.Format(dateLayout),
		ToDate:          r.ToDate.Format(dateLayout),
		Days:            r.Days,
		Status:          r.Status,
		Reason:          r.Reason,
		DecidedAt:       r.DecidedAt,
		DecidedBy:       r.DecidedBy,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}
}
