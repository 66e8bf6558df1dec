package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T, cycle leave.Cycle) (*LeaveServiceImpl, *memory.Store, employee.Employee) {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	emp, err := store.Employees().Create(ctx, employee.Employee{
		Code:     "EMP-001",
		FullName: "Rina Hartono",
		JoinDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive: true,
	})
	require.NoError(t, err)

	svc := NewLeaveService(
		store.LeaveSettings(),
		store.LeaveRequests(),
		store.Employees(),
		store.Attendance(),
		store.Transactor(),
		cycle,
	).(*LeaveServiceImpl)
	svc.now = func() time.Time { return today }

	_, err = svc.CreateSetting(ctx, leave.CreateSettingRequest{LeaveType: "annual", AnnualDays: 12})
	require.NoError(t, err)

	return svc, store, emp
}

func submit(t *testing.T, svc *LeaveServiceImpl, employeeID, from, to string) leave.RequestResponse {
	t.Helper()
	res, err := svc.SubmitRequest(context.Background(), leave.SubmitRequest{
		EmployeeID: employeeID,
		LeaveType:  "annual",
		FromDate:   from,
		ToDate:     to,
		Reason:     "family",
	})
	require.NoError(t, err)
	return res
}

func TestBalance(t *testing.T) {
	ctx := context.Background()
	svc, _, emp := setup(t, leave.CycleCalendarYear)

	for _, from := range []string{"2024-02-05", "2024-03-11", "2024-04-15"} {
		start, _ := time.Parse("2006-01-02", from)
		r := submit(t, svc, emp.ID, from, start.AddDate(0, 0, 1).Format("2006-01-02"))
		_, err := svc.Approve(ctx, leave.ApproveRequest{ID: r.ID})
		require.NoError(t, err)
	}

	// pending and rejected requests never count
	submit(t, svc, emp.ID, "2024-07-01", "2024-07-03")
	rejected := submit(t, svc, emp.ID, "2024-08-01", "2024-08-02")
	_, err := svc.Reject(ctx, leave.RejectRequest{ID: rejected.ID, Reason: "peak season"})
	require.NoError(t, err)

	b, err := svc.Balance(ctx, emp.ID, "annual")
	require.NoError(t, err)
	assert.Equal(t, 12, b.Allowed)
	assert.Equal(t, 6, b.Taken)
	assert.Equal(t, 6, b.Balance)

	t.Run("previous cycle is excluded", func(t *testing.T) {
		old := submit(t, svc, emp.ID, "2023-12-27", "2023-12-29")
		_, err := svc.Approve(ctx, leave.ApproveRequest{ID: old.ID})
		require.NoError(t, err)

		taken, err := svc.Consumed(ctx, emp.ID, "annual", today)
		require.NoError(t, err)
		assert.Equal(t, 6, taken)

		taken, err = svc.Consumed(ctx, emp.ID, "annual", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 3, taken)
	})

	t.Run("balances lists active types", func(t *testing.T) {
		balances, err := svc.Balances(ctx, emp.ID)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, 6, balances[0].Balance)
	})
}

func TestBalanceWithoutCycle(t *testing.T) {
	ctx := context.Background()
	svc, _, emp := setup(t, leave.CycleNone)

	for _, r := range []leave.RequestResponse{
		submit(t, svc, emp.ID, "2023-11-01", "2023-11-05"),
		submit(t, svc, emp.ID, "2024-05-01", "2024-05-10"),
	} {
		_, err := svc.Approve(ctx, leave.ApproveRequest{ID: r.ID})
		require.NoError(t, err)
	}

	b, err := svc.Balance(ctx, emp.ID, "annual")
	require.NoError(t, err)
	assert.Equal(t, 15, b.Taken)
	assert.Equal(t, -3, b.Balance)
}

func TestAllotment(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t, leave.CycleCalendarYear)

	days, err := svc.Allotment(ctx, "annual")
	require.NoError(t, err)
	assert.Equal(t, 12, days)

	days, err = svc.Allotment(ctx, "sabbatical")
	require.NoError(t, err)
	assert.Zero(t, days)

	settings, err := svc.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 1)

	inactive := false
	_, err = svc.UpdateSetting(ctx, leave.UpdateSettingRequest{ID: settings[0].ID, IsActive: &inactive})
	require.NoError(t, err)

	days, err = svc.Allotment(ctx, "annual")
	require.NoError(t, err)
	assert.Zero(t, days)

	_, err = svc.CreateSetting(ctx, leave.CreateSettingRequest{LeaveType: "annual", AnnualDays: 10})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeExists)
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("writes on_leave attendance for each day", func(t *testing.T) {
		svc, store, emp := setup(t, leave.CycleCalendarYear)
		r := submit(t, svc, emp.ID, "2024-06-03", "2024-06-05")
		assert.Equal(t, 3, r.Days)
		assert.Equal(t, leave.StatusPending, r.Status)

		approved, err := svc.Approve(ctx, leave.ApproveRequest{ID: r.ID, DecidedBy: "hr-1"})
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, approved.Status)
		require.NotNil(t, approved.DecidedBy)
		assert.Equal(t, "hr-1", *approved.DecidedBy)

		for day := 3; day <= 5; day++ {
			rec, err := store.Attendance().GetByEmployeeAndDate(ctx, emp.ID, time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			assert.Equal(t, attendance.StatusOnLeave, rec.Status)
			require.NotNil(t, rec.LeaveRequestID)
			assert.Equal(t, r.ID, *rec.LeaveRequestID)
		}
	})

	t.Run("employee deactivated after submitting", func(t *testing.T) {
		svc, store, emp := setup(t, leave.CycleCalendarYear)
		r := submit(t, svc, emp.ID, "2024-06-03", "2024-06-05")
		_, err := store.Employees().Deactivate(ctx, emp.ID, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		_, err = svc.Approve(ctx, leave.ApproveRequest{ID: r.ID})
		assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
		assert.ErrorIs(t, err, apperror.ErrValidation)

		got, err := svc.GetRequest(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusPending, got.Status)

		_, err = store.Attendance().GetByEmployeeAndDate(ctx, emp.ID, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	})

	t.Run("missing request", func(t *testing.T) {
		svc, _, _ := setup(t, leave.CycleCalendarYear)

		_, err := svc.Approve(ctx, leave.ApproveRequest{ID: "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("request already decided", func(t *testing.T) {
		svc, _, emp := setup(t, leave.CycleCalendarYear)
		r := submit(t, svc, emp.ID, "2024-06-03", "2024-06-03")
		_, err := svc.Reject(ctx, leave.RejectRequest{ID: r.ID, Reason: "no cover"})
		require.NoError(t, err)

		_, err = svc.Approve(ctx, leave.ApproveRequest{ID: r.ID})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotPending)
		assert.ErrorIs(t, err, apperror.ErrInvalidState)

		_, err = svc.Reject(ctx, leave.RejectRequest{ID: r.ID, Reason: "again"})
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		svc, _, emp := setup(t, leave.CycleCalendarYear)
		r := submit(t, svc, emp.ID, "2024-06-03", "2024-06-03")

		_, err := svc.Reject(ctx, leave.RejectRequest{ID: r.ID})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})
}

func TestSubmitRequest(t *testing.T) {
	ctx := context.Background()
	svc, _, emp := setup(t, leave.CycleCalendarYear)

	_, err := svc.SubmitRequest(ctx, leave.SubmitRequest{
		EmployeeID: emp.ID,
		LeaveType:  "sabbatical",
		FromDate:   "2024-06-03",
		ToDate:     "2024-06-04",
	})
	assert.ErrorIs(t, err, leave.ErrUnknownLeaveType)

	_, err = svc.SubmitRequest(ctx, leave.SubmitRequest{
		EmployeeID: emp.ID,
		LeaveType:  "annual",
		FromDate:   "2024-06-04",
		ToDate:     "2024-06-03",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	r := submit(t, svc, emp.ID, "2024-06-03", "2024-06-09")
	assert.Equal(t, 7, r.Days)

	got, err := svc.GetRequest(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	pending := leave.StatusPending
	list, err := svc.ListRequests(ctx, leave.RequestFilter{EmployeeID: &emp.ID, Status: &pending})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
