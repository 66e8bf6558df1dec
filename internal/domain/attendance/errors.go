package attendance

import "github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"

var (
	ErrAttendanceNotFound = apperror.New(apperror.ErrNotFound, "attendance record not found")
	ErrInvalidStatus      = apperror.New(apperror.ErrValidation, "status must be one of: present, absent, on_leave, half_day")
	ErrCheckOutBeforeIn   = apperror.New(apperror.ErrValidation, "check_out must not precede check_in")
	ErrNotCheckedIn       = apperror.New(apperror.ErrInvalidState, "employee has not checked in today")
	ErrAlreadyCheckedOut  = apperror.New(apperror.ErrInvalidState, "employee has already checked out today")
	ErrInvalidHalfDayRule = apperror.New(apperror.ErrValidation, "unknown half day policy")
)

var ErrUnknownEmployee = apperror.New(apperror.ErrValidation, "employee_id does not reference an active employee")
