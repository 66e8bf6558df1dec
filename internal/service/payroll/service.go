package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

const (
	processLockTTL = 5 * time.Minute
	summaryTTL     = 10 * time.Minute
)

type PayrollServiceImpl struct {
	payrollRepo       payroll.PayrollRepository
	employeeRepo      employee.EmployeeRepository
	salaryRepo        employee.SalaryRepository
	attendanceService attendance.AttendanceService
	tx                database.Transactor
	cache             cache.Cache
	locker            cache.Locker
	now               func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	salaryRepo employee.SalaryRepository,
	attendanceService attendance.AttendanceService,
	tx database.Transactor,
	summaryCache cache.Cache,
	locker cache.Locker,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:       payrollRepo,
		employeeRepo:      employeeRepo,
		salaryRepo:        salaryRepo,
		attendanceService: attendanceService,
		tx:                tx,
		cache:             summaryCache,
		locker:            locker,
		now:               time.Now,
	}
}

func summaryKey(month period.Month) string {
	return cache.Key("payroll", "summary", month.String())
}

func (s *PayrollServiceImpl) invalidate(ctx context.Context, month period.Month) {
	if err := s.cache.Delete(ctx, summaryKey(month)); err != nil {
		slog.Warn("Failed to invalidate payroll summary", "month", month.String(), "error", err)
	}
}

func (s *PayrollServiceImpl) Process(ctx context.Context, month period.Month) (payroll.ProcessSummary, error) {
	unlock, err := s.locker.Obtain(ctx, cache.Key("payroll", "process", month.String()), processLockTTL)
	if err != nil {
		return payroll.ProcessSummary{}, err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Failed to release payroll lock", "month", month.String(), "error", err)
		}
	}()

	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{ActiveOnly: true})
	if err != nil {
		return payroll.ProcessSummary{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	existing, err := s.payrollRepo.EmployeeIDsForMonth(ctx, month)
	if err != nil {
		return payroll.ProcessSummary{}, err
	}

	summary := payroll.ProcessSummary{
		Month:         month.String(),
		TotalPayroll:  decimal.Zero,
		AvgAttendance: decimal.Zero,
	}
	var rates []decimal.Decimal

	for _, e := range employees {
		if existing[e.ID] {
			summary.SkippedExisting++
			continue
		}

		salary, err := s.salaryRepo.GetEffective(ctx, e.ID, month.Start())
		if err != nil {
			if errors.Is(err, employee.ErrSalaryNotFound) {
				slog.Warn("Skipping employee without salary", "employee_id", e.ID, "month", month.String())
				summary.SkippedNoSalary++
				continue
			}
			return summary, fmt.Errorf("failed to get salary of %s: %w", e.ID, err)
		}

		counts, err := s.attendanceService.Aggregate(ctx, e.ID, month)
		if err != nil {
			return summary, fmt.Errorf("failed to aggregate attendance of %s: %w", e.ID, err)
		}

		p := payroll.Payroll{
			EmployeeID:  e.ID,
			Month:       month,
			BaseSalary:  salary.BaseSalary,
			WorkingDays: counts.WorkingDays,
			PresentDays: counts.PresentDays,
			AbsentDays:  counts.AbsentDays,
			LeaveDays:   counts.LeaveDays,
			Status:      payroll.StatusPending,
		}
		p.Recalculate()

		var created payroll.Payroll
		err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			created, err = s.payrollRepo.Create(ctx, p)
			return err
		})
		if err != nil {
			if errors.Is(err, payroll.ErrPayrollAlreadyExists) {
				summary.SkippedExisting++
				continue
			}
			return summary, err
		}

		summary.EmployeesProcessed++
		summary.PendingApproval++
		summary.TotalPayroll = summary.TotalPayroll.Add(created.NetSalary)
		rates = append(rates, created.AttendanceRate())
	}
	summary.AvgAttendance = payroll.Average(rates)

	s.invalidate(ctx, month)

	slog.Info("Payroll processed",
		"month", summary.Month,
		"processed", summary.EmployeesProcessed,
		"skipped_existing", summary.SkippedExisting,
		"skipped_no_salary", summary.SkippedNoSalary,
		"total", summary.TotalPayroll.String(),
	)
	return summary, nil
}

func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.NewPayrollResponse(p), nil
}

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.Filter) ([]payroll.PayrollResponse, error) {
	rows, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollResponse, 0, len(rows))
	for _, p := range rows {
		responses = append(responses, payroll.NewPayrollResponse(p))
	}
	return responses, nil
}

// modify locks the row, applies fn and saves it in one transaction.
func (s *PayrollServiceImpl) modify(ctx context.Context, id string, fn func(p *payroll.Payroll) error) (payroll.Payroll, error) {
	var updated payroll.Payroll
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.payrollRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(&p); err != nil {
			return err
		}
		updated, err = s.payrollRepo.Update(ctx, p)
		return err
	})
	if err != nil {
		return payroll.Payroll{}, err
	}

	s.invalidate(ctx, updated.Month)
	return updated, nil
}

func (s *PayrollServiceImpl) Update(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	updated, err := s.modify(ctx, req.ID, func(p *payroll.Payroll) error {
		if p.Status != payroll.StatusPending {
			return payroll.ErrPayrollNotPending
		}
		p.BaseSalary = req.BaseSalary
		p.Recalculate()
		return nil
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("Payroll updated", "payroll_id", updated.ID, "base_salary", updated.BaseSalary.String())
	return payroll.NewPayrollResponse(updated), nil
}

func (s *PayrollServiceImpl) Approve(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	updated, err := s.modify(ctx, id, func(p *payroll.Payroll) error {
		if !p.Status.CanTransitionTo(payroll.StatusApproved) {
			return payroll.ErrPayrollNotPending
		}
		now := s.now()
		p.Status = payroll.StatusApproved
		p.ApprovedAt = &now
		return nil
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("Payroll approved", "payroll_id", updated.ID, "employee_id", updated.EmployeeID)
	return payroll.NewPayrollResponse(updated), nil
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	updated, err := s.modify(ctx, id, func(p *payroll.Payroll) error {
		if !p.Status.CanTransitionTo(payroll.StatusPaid) {
			return payroll.ErrPayrollNotApproved
		}
		now := s.now()
		p.Status = payroll.StatusPaid
		p.PaidAt = &now
		return nil
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("Payroll paid", "payroll_id", updated.ID, "employee_id", updated.EmployeeID)
	return payroll.NewPayrollResponse(updated), nil
}

func (s *PayrollServiceImpl) MonthSummary(ctx context.Context, month period.Month) (payroll.MonthSummary, error) {
	key := summaryKey(month)

	var cached payroll.MonthSummary
	found, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		slog.Warn("Failed to read payroll summary cache", "key", key, "error", err)
	} else if found {
		return cached, nil
	}

	rows, err := s.payrollRepo.List(ctx, payroll.Filter{Month: &month})
	if err != nil {
		return payroll.MonthSummary{}, err
	}

	summary := payroll.Summarize(month, rows)
	if err := s.cache.SetJSON(ctx, key, summary, summaryTTL); err != nil {
		slog.Warn("Failed to cache payroll summary", "key", key, "error", err)
	}
	return summary, nil
}
