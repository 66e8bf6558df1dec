package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusOnLeave Status = "on_leave"
	StatusHalfDay Status = "half_day"
)

var statuses = []Status{StatusPresent, StatusAbsent, StatusOnLeave, StatusHalfDay}

func ParseStatus(s string) (Status, error) {
	for _, st := range statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// IsPresence reports whether the employee was at work, fully or partly.
func (s Status) IsPresence() bool {
	return s == StatusPresent || s == StatusHalfDay
}

// Attendance is the single record of an employee on a calendar date.
type Attendance struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	Status         Status
	CheckIn        *time.Time
	CheckOut       *time.Time
	Hours          *decimal.Decimal
	Remarks        *string
	LeaveRequestID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ComputeHours is (checkOut - checkIn) in hours rounded to 2 places. It is nil
// unless status is a presence status and both timestamps are set.
func ComputeHours(status Status, checkIn, checkOut *time.Time) *decimal.Decimal {
	if !status.IsPresence() || checkIn == nil || checkOut == nil {
		return nil
	}
	minutes := decimal.NewFromInt(int64(checkOut.Sub(*checkIn) / time.Second)).Div(decimal.NewFromInt(60))
	hours := minutes.Div(decimal.NewFromInt(60)).Round(2)
	return &hours
}
