package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// maxQueryDays bounds a single range query.
const maxQueryDays = 366

// RecordAttendanceRequest is an HR entry that creates or overwrites the day's record.
type RecordAttendanceRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status     string  `json:"status" validate:"required,oneof=present absent on_leave half_day"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Remarks    *string `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

func (r *RecordAttendanceRequest) Validate() error {
	errs := validator.StructErrors(r)

	var checkIn, checkOut time.Time
	var inOK, outOK bool
	if r.CheckIn != nil {
		if checkIn, inOK = validator.IsValidDateTime(*r.CheckIn); !inOK {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an ISO8601 timestamp",
			})
		}
	}
	if r.CheckOut != nil {
		if checkOut, outOK = validator.IsValidDateTime(*r.CheckOut); !outOK {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an ISO8601 timestamp",
			})
		}
	}
	if inOK && outOK && checkOut.Before(checkIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: ErrCheckOutBeforeIn.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity converts a request that passed Validate.
func (r *RecordAttendanceRequest) ToEntity() Attendance {
	date, _ := time.Parse(dateLayout, r.Date)
	a := Attendance{
		EmployeeID: r.EmployeeID,
		Date:       date,
		Status:     Status(r.Status),
		Remarks:    r.Remarks,
	}
	if r.CheckIn != nil {
		t, _ := validator.IsValidDateTime(*r.CheckIn)
		a.CheckIn = &t
	}
	if r.CheckOut != nil {
		t, _ := validator.IsValidDateTime(*r.CheckOut)
		a.CheckOut = &t
	}
	a.Hours = ComputeHours(a.Status, a.CheckIn, a.CheckOut)
	return a
}

// ListAttendanceRequest carries the query string of a range query.
type ListAttendanceRequest struct {
	EmployeeID *string
	From       string
	To         string
	Status     *string
	Order      string // asc or desc
}

func (r *ListAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(r.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(r.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK {
		if to.Before(from) {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must not be before from",
			})
		} else if to.Sub(from) > maxQueryDays*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "date range must not exceed 366 days",
			})
		}
	}

	if r.Status != nil {
		if _, err := ParseStatus(*r.Status); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: err.Error(),
			})
		}
	}

	if r.Order != "" && r.Order != "asc" && r.Order != "desc" {
		errs = append(errs, validator.ValidationError{
			Field:   "order",
			Message: "order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToFilter converts a request that passed Validate.
func (r *ListAttendanceRequest) ToFilter() Filter {
	from, _ := time.Parse(dateLayout, r.From)
	to, _ := time.Parse(dateLayout, r.To)
	f := Filter{
		EmployeeID: r.EmployeeID,
		From:       from,
		To:         to,
		Ascending:  r.Order == "asc",
	}
	if r.Status != nil {
		st := Status(*r.Status)
		f.Status = &st
	}
	return f
}

// MonthRequest addresses one employee and month.
type MonthRequest struct {
	EmployeeID string
	Month      string
}

func (r *MonthRequest) Validate() (period.Month, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	month, err := period.ParseMonth(r.Month)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return period.Month{}, errs
	}
	return month, nil
}

type AttendanceResponse struct {
	ID             string           `json:"id"`
	EmployeeID     string           `json:"employee_id"`
	Date           string           `json:"date"`
	Status         Status           `json:"status"`
	CheckIn        *time.Time       `json:"check_in,omitempty"`
	CheckOut       *time.Time       `json:"check_out,omitempty"`
	Hours          *decimal.Decimal `json:"hours,omitempty"`
	Remarks        *string          `json:"remarks,omitempty"`
	LeaveRequestID *string          `json:"leave_request_id,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		Date:           a.Date.Format(dateLayout),
		Status:         a.Status,
		CheckIn:        a.CheckIn,
		CheckOut:       a.CheckOut,
		Hours:          a.Hours,
		Remarks:        a.Remarks,
		LeaveRequestID: a.LeaveRequestID,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ClockRequest is the optional body of check-in and check-out. HR may clock
// on behalf of an employee; employees omit it.
type ClockRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
}
