package leave

import (
	"context"
	"time"
)

type SettingRepository interface {
	// Create returns ErrLeaveTypeExists on a duplicate leave_type
	Create(ctx context.Context, setting Setting) (Setting, error)
	Update(ctx context.Context, setting Setting) (Setting, error)
	GetByID(ctx context.Context, id string) (Setting, error)

	// GetByType returns ErrLeaveSettingNotFound when the type is unknown
	GetByType(ctx context.Context, leaveType string) (Setting, error)
	List(ctx context.Context, activeOnly bool) ([]Setting, error)
}

type RequestFilter struct {
	EmployeeID *string
	LeaveType  *string
	Status     *RequestStatus
}

type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// GetByIDForUpdate locks the row for the rest of the transaction
	GetByIDForUpdate(ctx context.Context, id string) (Request, error)

	// List returns requests newest first
	List(ctx context.Context, filter RequestFilter) ([]Request, error)

	// UpdateDecision persists status, decided_at, decided_by and rejection_reason
	UpdateDecision(ctx context.Context, request Request) (Request, error)

	// SumApprovedDays sums days of approved requests whose from_date is within
	// [from, to]. Nil bounds are open.
	SumApprovedDays(ctx context.Context, employeeID, leaveType string, from, to *time.Time) (int, error)
}
