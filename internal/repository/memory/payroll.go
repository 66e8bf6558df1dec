package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
)

type payrollRepo struct {
	s *Store
}

func (r *payrollRepo) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.payrolls {
		if existing.EmployeeID == p.EmployeeID && existing.Month == p.Month {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
	}

	now := time.Now()
	p.ID = newID()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.payrolls[p.ID] = p
	return p, nil
}

func (r *payrollRepo) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.payrolls[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return p, nil
}

func (r *payrollRepo) GetByIDForUpdate(ctx context.Context, id string) (payroll.Payroll, error) {
	return r.GetByID(ctx, id)
}

func (r *payrollRepo) EmployeeIDsForMonth(ctx context.Context, month period.Month) (map[string]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := make(map[string]bool)
	for _, p := range r.s.payrolls {
		if p.Month == month {
			ids[p.EmployeeID] = true
		}
	}
	return ids, nil
}

func (r *payrollRepo) List(ctx context.Context, filter payroll.Filter) ([]payroll.Payroll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []payroll.Payroll
	for _, p := range r.s.payrolls {
		if filter.Month != nil && p.Month != *filter.Month {
			continue
		}
		if filter.EmployeeID != nil && p.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month.Start().After(out[j].Month.Start())
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

func (r *payrollRepo) Update(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.payrolls[p.ID]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	existing.BaseSalary = p.BaseSalary
	existing.PerDaySalary = p.PerDaySalary
	existing.Deduction = p.Deduction
	existing.NetSalary = p.NetSalary
	existing.Status = p.Status
	existing.ApprovedAt = p.ApprovedAt
	existing.PaidAt = p.PaidAt
	existing.UpdatedAt = time.Now()
	r.s.payrolls[p.ID] = existing
	return existing, nil
}
