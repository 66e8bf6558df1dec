package payroll

import "github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"

var (
	ErrPayrollNotFound      = apperror.New(apperror.ErrNotFound, "payroll record not found")
	ErrPayrollAlreadyExists = apperror.New(apperror.ErrConflict, "payroll record already exists for this month")
	ErrPayrollNotPending    = apperror.New(apperror.ErrInvalidState, "payroll record is not pending")
	ErrPayrollNotApproved   = apperror.New(apperror.ErrInvalidState, "payroll record is not approved")
	ErrInvalidStatus        = apperror.New(apperror.ErrValidation, "status must be one of: pending, approved, paid")
)
