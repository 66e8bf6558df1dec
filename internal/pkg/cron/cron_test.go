package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/workcalendar"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hris-payroll-go/internal/service/attendance"
	payrollService "github.com/cmlabs-hris/hris-payroll-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	store      *memory.Store
	attendance attendance.AttendanceService
	payroll    payroll.PayrollService
	locker     *cache.LocalLocker
	employeeID string
}

func newServices(t *testing.T) services {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	emp, err := store.Employees().Create(ctx, employee.Employee{
		Code: "EMP-001", FullName: "Rina", JoinDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), IsActive: true,
	})
	require.NoError(t, err)
	_, err = store.Salaries().Create(ctx, employee.Salary{
		EmployeeID:    emp.ID,
		BaseSalary:    decimal.NewFromInt(30000),
		HRAPercentage: decimal.Zero,
		TAPercentage:  decimal.Zero,
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	attendances := attendanceService.NewAttendanceService(store.Attendance(), store.Employees(),
		workcalendar.MustNew(workcalendar.EveryDay), attendance.HalfDayAsPresent, time.UTC)
	locker := cache.NewLocalLocker()
	payrolls := payrollService.NewPayrollService(store.Payrolls(), store.Employees(), store.Salaries(),
		attendances, store.Transactor(), cache.Noop{}, locker)

	return services{store: store, attendance: attendances, payroll: payrolls, locker: locker, employeeID: emp.ID}
}

func TestMarkAbsentEmployees(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	jobs := NewAttendanceJobs(s.attendance, time.UTC)
	jobs.now = func() time.Time { return time.Date(2024, 6, 4, 8, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.MarkAbsentEmployees(ctx))

	rec, err := s.store.Attendance().GetByEmployeeAndDate(ctx, s.employeeID, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
}

func TestProcessPreviousMonth(t *testing.T) {
	ctx := context.Background()
	june := period.Month{Year: 2024, Month: time.June}

	t.Run("runs on the first", func(t *testing.T) {
		s := newServices(t)
		jobs := NewPayrollJobs(s.payroll, time.UTC)
		jobs.now = func() time.Time { return time.Date(2024, 7, 1, 1, 0, 0, 0, time.UTC) }

		require.NoError(t, jobs.ProcessPreviousMonth(ctx))
		require.NoError(t, jobs.ProcessPreviousMonth(ctx))

		rows, err := s.payroll.List(ctx, payroll.Filter{Month: &june})
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("idle on other days", func(t *testing.T) {
		s := newServices(t)
		jobs := NewPayrollJobs(s.payroll, time.UTC)
		jobs.now = func() time.Time { return time.Date(2024, 7, 2, 1, 0, 0, 0, time.UTC) }

		require.NoError(t, jobs.ProcessPreviousMonth(ctx))

		rows, err := s.payroll.List(ctx, payroll.Filter{})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("lock held elsewhere", func(t *testing.T) {
		s := newServices(t)
		unlock, err := s.locker.Obtain(ctx, cache.Key("payroll", "process", june.String()), time.Minute)
		require.NoError(t, err)
		defer unlock(ctx)

		jobs := NewPayrollJobs(s.payroll, time.UTC)
		jobs.now = func() time.Time { return time.Date(2024, 7, 1, 1, 0, 0, 0, time.UTC) }
		assert.NoError(t, jobs.ProcessPreviousMonth(ctx))
	})
}

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler()
	var ran []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "first")
		return errors.New("boom")
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "second")
		return nil
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first: boom")
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler()
	done := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
