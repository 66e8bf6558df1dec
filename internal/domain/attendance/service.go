package attendance

import (
	"context"
	"iter"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
)

// AttendanceService is the attendance ledger.
type AttendanceService interface {
	// Record creates or overwrites the (employee, date) record
	Record(ctx context.Context, req RecordAttendanceRequest) (AttendanceResponse, error)

	// CheckIn creates today's present record, or returns the existing one
	CheckIn(ctx context.Context, employeeID string, now time.Time) (AttendanceResponse, error)

	// CheckOut stamps check_out on today's record
	CheckOut(ctx context.Context, employeeID string, now time.Time) (AttendanceResponse, error)

	Get(ctx context.Context, id string) (AttendanceResponse, error)

	// Query is lazy and restartable; ranging it twice reads the store twice
	Query(ctx context.Context, filter Filter) iter.Seq2[Attendance, error]

	// Aggregate counts the working days of month and how they were spent
	Aggregate(ctx context.Context, employeeID string, month period.Month) (MonthlyCounts, error)

	Calendar(ctx context.Context, employeeID string, month period.Month) (Calendar, error)

	// MarkAbsent writes absent records on date for active employees without one.
	// Non-working dates are skipped.
	MarkAbsent(ctx context.Context, date time.Time) (int, error)
}
