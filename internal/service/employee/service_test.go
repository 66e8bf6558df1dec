package employee

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (employee.EmployeeService, employee.EmployeeResponse) {
	t.Helper()

	store := memory.NewStore()
	svc := NewEmployeeService(store.Employees(), store.Salaries())

	e, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Code:     "EMP-001",
		FullName: "Jane Doe",
		JoinDate: "2024-01-15",
	})
	require.NoError(t, err)
	return svc, e
}

func salary(employeeID string, base int64, from string) employee.SetSalaryRequest {
	return employee.SetSalaryRequest{
		EmployeeID:    employeeID,
		BaseSalary:    decimal.NewFromInt(base),
		HRAPercentage: decimal.NewFromInt(10),
		TAPercentage:  decimal.NewFromInt(5),
		EffectiveFrom: from,
	}
}

func TestCreate(t *testing.T) {
	svc, e := setup(t)
	ctx := context.Background()

	assert.True(t, e.IsActive)

	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{Code: "EMP-001", FullName: "Dup", JoinDate: "2024-01-01"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = svc.Create(ctx, employee.CreateEmployeeRequest{Code: "x", FullName: "", JoinDate: "2024-13-01"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestDeactivate(t *testing.T) {
	svc, e := setup(t)
	ctx := context.Background()

	_, err := svc.Deactivate(ctx, employee.DeactivateEmployeeRequest{ID: e.ID, LeaveDate: "2024-01-01"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	updated, err := svc.Deactivate(ctx, employee.DeactivateEmployeeRequest{ID: e.ID, LeaveDate: "2024-06-30"})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = svc.Deactivate(ctx, employee.DeactivateEmployeeRequest{ID: e.ID, LeaveDate: "2024-07-01"})
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyInactive)

	active, err := svc.List(ctx, employee.EmployeeFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestSalaryHistory(t *testing.T) {
	svc, e := setup(t)
	ctx := context.Background()

	_, err := svc.SetSalary(ctx, salary(e.ID, 20000, "2024-01-15"))
	require.NoError(t, err)
	_, err = svc.SetSalary(ctx, salary(e.ID, 30000, "2024-06-01"))
	require.NoError(t, err)

	_, err = svc.SetSalary(ctx, salary(e.ID, 35000, "2024-06-01"))
	assert.ErrorIs(t, err, employee.ErrSalaryEffectiveDateExists)

	_, err = svc.SetSalary(ctx, salary(e.ID, 0, "2024-07-01"))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	history, err := svc.ListSalaries(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-06-01", history[0].EffectiveFrom)

	t.Run("current salary follows the effective date", func(t *testing.T) {
		may, err := svc.CurrentSalary(ctx, e.ID, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(20000).Equal(may.BaseSalary))

		june, err := svc.CurrentSalary(ctx, e.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(30000).Equal(june.BaseSalary))

		_, err = svc.CurrentSalary(ctx, e.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, employee.ErrSalaryNotFound)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	_, err = svc.ListSalaries(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
