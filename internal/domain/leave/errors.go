package leave

import "github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"

var (
	ErrLeaveRequestNotFound   = apperror.New(apperror.ErrNotFound, "leave request not found")
	ErrLeaveRequestNotPending = apperror.New(apperror.ErrInvalidState, "leave request is not pending")
	ErrLeaveSettingNotFound   = apperror.New(apperror.ErrNotFound, "leave setting not found")
	ErrLeaveTypeExists        = apperror.New(apperror.ErrConflict, "leave type already exists")
	ErrUnknownLeaveType       = apperror.New(apperror.ErrValidation, "leave type does not exist or is inactive")
	ErrInvalidRequestStatus   = apperror.New(apperror.ErrValidation, "status must be one of: pending, approved, rejected")
	ErrInvalidCycle           = apperror.New(apperror.ErrValidation, "unknown leave cycle")
)
