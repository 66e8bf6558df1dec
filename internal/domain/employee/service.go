package employee

import (
	"context"
	"time"
)

// EmployeeService manages the employee directory and salary history.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)

	// Deactivate soft-deletes the employee; history is kept
	Deactivate(ctx context.Context, req DeactivateEmployeeRequest) (EmployeeResponse, error)

	// SetSalary appends a new salary row; past payroll rows are not touched
	SetSalary(ctx context.Context, req SetSalaryRequest) (SalaryResponse, error)
	ListSalaries(ctx context.Context, employeeID string) ([]SalaryResponse, error)
	CurrentSalary(ctx context.Context, employeeID string, asOf time.Time) (SalaryResponse, error)
}
