package employee

import "github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound          = apperror.New(apperror.ErrNotFound, "employee not found")
	ErrEmployeeCodeExists        = apperror.New(apperror.ErrConflict, "employee code already exists")
	ErrEmployeeInactive          = apperror.New(apperror.ErrValidation, "employee is not active")
	ErrEmployeeAlreadyInactive   = apperror.New(apperror.ErrInvalidState, "employee is already inactive")
	ErrSalaryNotFound            = apperror.New(apperror.ErrNotFound, "no salary effective on the requested date")
	ErrSalaryEffectiveDateExists = apperror.New(apperror.ErrConflict, "a salary with this effective date already exists")
)
