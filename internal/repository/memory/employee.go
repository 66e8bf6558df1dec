package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
)

type employeeRepo struct {
	s *Store
}

func (r *employeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.employees {
		if existing.Code == e.Code {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}

	now := time.Now()
	e.ID = newID()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.employees[e.ID] = e
	return e, nil
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []employee.Employee
	for _, e := range r.s.employees {
		if filter.ActiveOnly && !e.IsActive {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *employeeRepo) Deactivate(ctx context.Context, id string, leaveDate time.Time) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.IsActive = false
	e.LeaveDate = &leaveDate
	e.UpdatedAt = time.Now()
	r.s.employees[id] = e
	return e, nil
}

type salaryRepo struct {
	s *Store
}

func (r *salaryRepo) Create(ctx context.Context, sal employee.Salary) (employee.Salary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.salaries {
		if existing.EmployeeID == sal.EmployeeID && existing.EffectiveFrom.Equal(sal.EffectiveFrom) {
			return employee.Salary{}, employee.ErrSalaryEffectiveDateExists
		}
	}

	sal.ID = newID()
	sal.CreatedAt = time.Now()
	r.s.salaries[sal.ID] = sal
	return sal, nil
}

func (r *salaryRepo) ListByEmployee(ctx context.Context, employeeID string) ([]employee.Salary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.history(employeeID), nil
}

func (r *salaryRepo) GetEffective(ctx context.Context, employeeID string, asOf time.Time) (employee.Salary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, sal := range r.history(employeeID) {
		if !sal.EffectiveFrom.After(asOf) {
			return sal, nil
		}
	}
	return employee.Salary{}, employee.ErrSalaryNotFound
}

// history is newest first; callers hold the lock.
func (r *salaryRepo) history(employeeID string) []employee.Salary {
	var out []employee.Salary
	for _, sal := range r.s.salaries {
		if sal.EmployeeID == employeeID {
			out = append(out, sal)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveFrom.After(out[j].EffectiveFrom) })
	return out
}
