package payroll

import (
	"context"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
)

type Filter struct {
	Month      *period.Month
	EmployeeID *string
	Status     *Status
}

type PayrollRepository interface {
	// Create returns ErrPayrollAlreadyExists when (employee_id, month) is taken
	Create(ctx context.Context, payroll Payroll) (Payroll, error)

	GetByID(ctx context.Context, id string) (Payroll, error)

	// GetByIDForUpdate locks the row for the rest of the transaction
	GetByIDForUpdate(ctx context.Context, id string) (Payroll, error)

	// EmployeeIDsForMonth returns the employees that already have a row for month
	EmployeeIDsForMonth(ctx context.Context, month period.Month) (map[string]bool, error)

	// List orders by month descending, then employee
	List(ctx context.Context, filter Filter) ([]Payroll, error)

	// Update persists base salary, money fields, status and timestamps
	Update(ctx context.Context, payroll Payroll) (Payroll, error)
}
