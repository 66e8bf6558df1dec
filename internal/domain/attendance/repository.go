package attendance

import (
	"context"
	"iter"
	"time"

	"github.com/shopspring/decimal"
)

// Filter selects records for Query. From and To are inclusive calendar dates.
type Filter struct {
	EmployeeID *string
	From       time.Time
	To         time.Time
	Status     *Status
	// Ascending orders by date ascending; the default is newest first.
	Ascending bool
}

type AttendanceRepository interface {
	// Upsert creates or overwrites the record for (employee_id, date)
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	// CreateIfAbsent inserts the record unless one exists for (employee_id, date).
	// It returns the stored record and whether this call created it.
	CreateIfAbsent(ctx context.Context, attendance Attendance) (Attendance, bool, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when there is no record
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// SetCheckOut stamps check_out and hours only while check_out is still empty.
	// It returns ErrAlreadyCheckedOut when another writer got there first.
	SetCheckOut(ctx context.Context, id string, checkOut time.Time, hours *decimal.Decimal) (Attendance, error)

	// Query streams matching records. Every iteration runs the query again.
	Query(ctx context.Context, filter Filter) iter.Seq2[Attendance, error]
}
