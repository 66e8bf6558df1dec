package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/workcalendar"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weekdays = "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"

func setup(t *testing.T, rule string) (attendance.AttendanceService, *memory.Store, employee.Employee) {
	t.Helper()

	store := memory.NewStore()
	emp, err := store.Employees().Create(context.Background(), employee.Employee{
		Code:     "EMP-001",
		FullName: "Rina Hartono",
		JoinDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive: true,
	})
	require.NoError(t, err)

	svc := NewAttendanceService(
		store.Attendance(),
		store.Employees(),
		workcalendar.MustNew(rule),
		attendance.HalfDayAsPresent,
		time.UTC,
	)
	return svc, store, emp
}

func strPtr(s string) *string { return &s }

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts one record per employee and date", func(t *testing.T) {
		svc, store, emp := setup(t, workcalendar.EveryDay)

		first, err := svc.Record(ctx, attendance.RecordAttendanceRequest{
			EmployeeID: emp.ID,
			Date:       "2024-06-03",
			Status:     "absent",
		})
		require.NoError(t, err)

		second, err := svc.Record(ctx, attendance.RecordAttendanceRequest{
			EmployeeID: emp.ID,
			Date:       "2024-06-03",
			Status:     "present",
			CheckIn:    strPtr("2024-06-03T09:00:00Z"),
			CheckOut:   strPtr("2024-06-03T18:30:00Z"),
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, attendance.StatusPresent, second.Status)
		require.NotNil(t, second.Hours)
		assert.True(t, decimal.NewFromFloat(9.5).Equal(*second.Hours))

		count := 0
		for _, err := range store.Attendance().Query(ctx, attendance.Filter{
			EmployeeID: &emp.ID,
			From:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			To:         time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		}) {
			require.NoError(t, err)
			count++
		}
		assert.Equal(t, 1, count)
	})

	t.Run("rejects unknown employee", func(t *testing.T) {
		svc, _, _ := setup(t, workcalendar.EveryDay)

		_, err := svc.Record(ctx, attendance.RecordAttendanceRequest{
			EmployeeID: "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
			Date:       "2024-06-03",
			Status:     "present",
		})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("rejects inactive employee", func(t *testing.T) {
		svc, store, emp := setup(t, workcalendar.EveryDay)
		_, err := store.Employees().Deactivate(ctx, emp.ID, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		_, err = svc.Record(ctx, attendance.RecordAttendanceRequest{
			EmployeeID: emp.ID,
			Date:       "2024-06-03",
			Status:     "present",
		})
		assert.ErrorIs(t, err, attendance.ErrUnknownEmployee)
	})

	t.Run("rejects check out before check in", func(t *testing.T) {
		svc, _, emp := setup(t, workcalendar.EveryDay)

		_, err := svc.Record(ctx, attendance.RecordAttendanceRequest{
			EmployeeID: emp.ID,
			Date:       "2024-06-03",
			Status:     "present",
			CheckIn:    strPtr("2024-06-03T18:00:00Z"),
			CheckOut:   strPtr("2024-06-03T09:00:00Z"),
		})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})
}

func TestCheckInCheckOut(t *testing.T) {
	ctx := context.Background()
	morning := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 3, 18, 30, 0, 0, time.UTC)

	t.Run("check in is idempotent", func(t *testing.T) {
		svc, _, emp := setup(t, workcalendar.EveryDay)

		first, err := svc.CheckIn(ctx, emp.ID, morning)
		require.NoError(t, err)
		second, err := svc.CheckIn(ctx, emp.ID, morning.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		require.NotNil(t, second.CheckIn)
		assert.True(t, morning.Equal(*second.CheckIn))
	})

	t.Run("check out computes hours", func(t *testing.T) {
		svc, _, emp := setup(t, workcalendar.EveryDay)

		_, err := svc.CheckIn(ctx, emp.ID, morning)
		require.NoError(t, err)
		out, err := svc.CheckOut(ctx, emp.ID, evening)
		require.NoError(t, err)

		require.NotNil(t, out.Hours)
		assert.Equal(t, "9.5", out.Hours.String())
	})

	t.Run("check out without check in", func(t *testing.T) {
		svc, _, emp := setup(t, workcalendar.EveryDay)

		_, err := svc.CheckOut(ctx, emp.ID, evening)
		assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("second check out", func(t *testing.T) {
		svc, _, emp := setup(t, workcalendar.EveryDay)

		_, err := svc.CheckIn(ctx, emp.ID, morning)
		require.NoError(t, err)
		_, err = svc.CheckOut(ctx, emp.ID, evening)
		require.NoError(t, err)

		_, err = svc.CheckOut(ctx, emp.ID, evening.Add(time.Minute))
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	})

	t.Run("uses the configured timezone for today", func(t *testing.T) {
		store := memory.NewStore()
		emp, err := store.Employees().Create(ctx, employee.Employee{
			Code: "EMP-002", FullName: "Budi", JoinDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), IsActive: true,
		})
		require.NoError(t, err)
		jakarta := time.FixedZone("WIB", 7*60*60)
		svc := NewAttendanceService(store.Attendance(), store.Employees(), workcalendar.MustNew(""), attendance.HalfDayAsPresent, jakarta)

		// 20:00 UTC on the 2nd is 03:00 on the 3rd in Jakarta
		res, err := svc.CheckIn(ctx, emp.ID, time.Date(2024, 6, 2, 20, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "2024-06-03", res.Date)
	})
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()
	svc, _, emp := setup(t, weekdays)

	entries := []attendance.RecordAttendanceRequest{
		{EmployeeID: emp.ID, Date: "2024-06-03", Status: "present"},
		{EmployeeID: emp.ID, Date: "2024-06-04", Status: "absent"},
		{EmployeeID: emp.ID, Date: "2024-06-05", Status: "half_day"},
		{EmployeeID: emp.ID, Date: "2024-06-06", Status: "on_leave"},
		// Saturday is outside the working-day rule
		{EmployeeID: emp.ID, Date: "2024-06-08", Status: "present"},
	}
	for _, e := range entries {
		_, err := svc.Record(ctx, e)
		require.NoError(t, err)
	}

	counts, err := svc.Aggregate(ctx, emp.ID, period.Month{Year: 2024, Month: time.June})
	require.NoError(t, err)

	assert.Equal(t, 20, counts.WorkingDays)
	assert.True(t, decimal.NewFromInt(2).Equal(counts.PresentDays))
	assert.True(t, decimal.NewFromInt(1).Equal(counts.AbsentDays))
	assert.True(t, decimal.NewFromInt(1).Equal(counts.LeaveDays))
	assert.Equal(t, 1, counts.HalfDays)
	assert.Equal(t, 16, counts.UnrecordedDays)

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.Aggregate(ctx, "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b", period.Month{Year: 2024, Month: time.June})
		assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
	})

	t.Run("calendar grid", func(t *testing.T) {
		cal, err := svc.Calendar(ctx, emp.ID, period.Month{Year: 2024, Month: time.June})
		require.NoError(t, err)
		require.Len(t, cal.Days, 30)
		assert.False(t, cal.Days[0].WorkingDay)
		require.NotNil(t, cal.Days[2].Status)
		assert.Equal(t, attendance.StatusPresent, *cal.Days[2].Status)
		assert.Equal(t, counts, cal.Counts)
	})
}

func TestMarkAbsent(t *testing.T) {
	ctx := context.Background()
	svc, store, emp := setup(t, weekdays)

	other, err := store.Employees().Create(ctx, employee.Employee{
		Code: "EMP-003", FullName: "Sari", JoinDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), IsActive: true,
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, emp.ID, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	marked, err := svc.MarkAbsent(ctx, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	rec, err := store.Attendance().GetByEmployeeAndDate(ctx, other.ID, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)

	t.Run("second run marks nobody", func(t *testing.T) {
		marked, err := svc.MarkAbsent(ctx, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Zero(t, marked)
	})

	t.Run("skips non working days", func(t *testing.T) {
		marked, err := svc.MarkAbsent(ctx, time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Zero(t, marked)
	})
}
