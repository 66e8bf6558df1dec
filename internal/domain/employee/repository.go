package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	// Create returns ErrEmployeeCodeExists when the code is taken
	Create(ctx context.Context, employee Employee) (Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)

	// List returns employees ordered by code
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)

	// Deactivate clears is_active and stamps leave_date
	Deactivate(ctx context.Context, id string, leaveDate time.Time) (Employee, error)
}

type SalaryRepository interface {
	// Create appends a row; rows are never updated
	Create(ctx context.Context, salary Salary) (Salary, error)

	// ListByEmployee returns the history, newest effective_from first
	ListByEmployee(ctx context.Context, employeeID string) ([]Salary, error)

	// GetEffective returns the latest row with effective_from <= asOf, or ErrSalaryNotFound
	GetEffective(ctx context.Context, employeeID string, asOf time.Time) (Salary, error)
}
