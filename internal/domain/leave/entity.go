package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
)

// Setting is the global allotment policy of one leave type.
type Setting struct {
	ID         string
	LeaveType  string
	AnnualDays int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return RequestStatus(s), nil
	}
	return "", ErrInvalidRequestStatus
}

type Request struct {
	ID              string
	EmployeeID      string
	LeaveType       string
	FromDate        time.Time
	ToDate          time.Time
	Days            int
	Status          RequestStatus
	Reason          string
	DecidedAt       *time.Time
	DecidedBy       *string
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Dates lists every calendar date the request covers.
func (r Request) Dates() []time.Time {
	var dates []time.Time
	for d := period.Date(r.FromDate); !d.After(period.Date(r.ToDate)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// ComputeDays is the inclusive day count of [from, to], never less than 1.
func ComputeDays(from, to time.Time) int {
	days := int(period.Date(to).Sub(period.Date(from)).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Cycle is the period over which an allotment is consumed before it resets.
type Cycle string

const (
	// CycleCalendarYear resets every January 1st.
	CycleCalendarYear Cycle = "calendar_year"
	// CycleNone never resets; all approved requests count.
	CycleNone Cycle = "none"
)

func ParseCycle(s string) (Cycle, error) {
	switch Cycle(s) {
	case CycleCalendarYear, CycleNone:
		return Cycle(s), nil
	}
	return "", ErrInvalidCycle
}

// Bounds returns the inclusive range of the cycle containing asOf. Both are nil
// for CycleNone. A request belongs to the cycle its from_date falls in.
func (c Cycle) Bounds(asOf time.Time) (from, to *time.Time) {
	if c != CycleCalendarYear {
		return nil, nil
	}
	start := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(asOf.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	return &start, &end
}

// Balance of one leave type; Balance may be negative when over-consumed.
type Balance struct {
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	Allowed    int    `json:"allowed"`
	Taken      int    `json:"taken"`
	Balance    int    `json:"balance"`
}
