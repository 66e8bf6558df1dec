package leave

import (
	"context"
	"time"
)

// LeaveService tracks allotments against approved consumption.
type LeaveService interface {
	CreateSetting(ctx context.Context, req CreateSettingRequest) (SettingResponse, error)
	UpdateSetting(ctx context.Context, req UpdateSettingRequest) (SettingResponse, error)
	ListSettings(ctx context.Context) ([]SettingResponse, error)

	// Allotment is the annual days of leaveType, 0 when inactive or missing
	Allotment(ctx context.Context, leaveType string) (int, error)

	// Consumed sums approved days in the leave cycle containing asOf
	Consumed(ctx context.Context, employeeID, leaveType string, asOf time.Time) (int, error)

	// Balance is Allotment - Consumed as of today
	Balance(ctx context.Context, employeeID, leaveType string) (Balance, error)

	// Balances reports every active leave type
	Balances(ctx context.Context, employeeID string) ([]Balance, error)

	SubmitRequest(ctx context.Context, req SubmitRequest) (RequestResponse, error)
	GetRequest(ctx context.Context, id string) (RequestResponse, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]RequestResponse, error)

	// Approve moves a pending request to approved and writes on_leave
	// attendance for each covered day in the same transaction
	Approve(ctx context.Context, req ApproveRequest) (RequestResponse, error)
	Reject(ctx context.Context, req RejectRequest) (RequestResponse, error)
}
