package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
)

type PayrollJobs struct {
	payrollService payroll.PayrollService
	location       *time.Location
	now            func() time.Time
}

func NewPayrollJobs(payrollService payroll.PayrollService, location *time.Location) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		location:       location,
		now:            time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("process_previous_month_payroll", interval, j.ProcessPreviousMonth)
}

// ProcessPreviousMonth processes last month's payroll on the 1st of the month.
// Rows that already exist are skipped, so repeated runs that day are harmless.
func (j *PayrollJobs) ProcessPreviousMonth(ctx context.Context) error {
	now := j.now().In(j.location)
	if now.Day() != 1 {
		return nil
	}

	month := period.Of(now).Previous()
	_, err := j.payrollService.Process(ctx, month)
	if errors.Is(err, cache.ErrLockNotObtained) {
		slog.Info("Payroll already being processed elsewhere", "month", month.String())
		return nil
	}
	return err
}
