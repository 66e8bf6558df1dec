package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	settingRepo    leave.SettingRepository
	requestRepo    leave.RequestRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	tx             database.Transactor
	cycle          leave.Cycle
	now            func() time.Time
}

func NewLeaveService(
	settingRepo leave.SettingRepository,
	requestRepo leave.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	tx database.Transactor,
	cycle leave.Cycle,
) leave.LeaveService {
	return &LeaveServiceImpl{
		settingRepo:    settingRepo,
		requestRepo:    requestRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		tx:             tx,
		cycle:          cycle,
		now:            time.Now,
	}
}

func (s *LeaveServiceImpl) CreateSetting(ctx context.Context, req leave.CreateSettingRequest) (leave.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.SettingResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.settingRepo.Create(ctx, leave.Setting{
		LeaveType:  req.LeaveType,
		AnnualDays: req.AnnualDays,
		IsActive:   isActive,
	})
	if err != nil {
		return leave.SettingResponse{}, err
	}

	slog.Info("Leave setting created", "leave_type", created.LeaveType, "annual_days", created.AnnualDays)
	return leave.NewSettingResponse(created), nil
}

func (s *LeaveServiceImpl) UpdateSetting(ctx context.Context, req leave.UpdateSettingRequest) (leave.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.SettingResponse{}, err
	}

	setting, err := s.settingRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.SettingResponse{}, err
	}
	if req.AnnualDays != nil {
		setting.AnnualDays = *req.AnnualDays
	}
	if req.IsActive != nil {
		setting.IsActive = *req.IsActive
	}

	updated, err := s.settingRepo.Update(ctx, setting)
	if err != nil {
		return leave.SettingResponse{}, err
	}
	return leave.NewSettingResponse(updated), nil
}

func (s *LeaveServiceImpl) ListSettings(ctx context.Context) ([]leave.SettingResponse, error) {
	settings, err := s.settingRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.SettingResponse, 0, len(settings))
	for _, setting := range settings {
		responses = append(responses, leave.NewSettingResponse(setting))
	}
	return responses, nil
}

func (s *LeaveServiceImpl) Allotment(ctx context.Context, leaveType string) (int, error) {
	setting, err := s.settingRepo.GetByType(ctx, leaveType)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveSettingNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if !setting.IsActive {
		return 0, nil
	}
	return setting.AnnualDays, nil
}

func (s *LeaveServiceImpl) Consumed(ctx context.Context, employeeID, leaveType string, asOf time.Time) (int, error) {
	from, to := s.cycle.Bounds(asOf)
	return s.requestRepo.SumApprovedDays(ctx, employeeID, leaveType, from, to)
}

func (s *LeaveServiceImpl) Balance(ctx context.Context, employeeID, leaveType string) (leave.Balance, error) {
	allowed, err := s.Allotment(ctx, leaveType)
	if err != nil {
		return leave.Balance{}, err
	}

	taken, err := s.Consumed(ctx, employeeID, leaveType, s.now())
	if err != nil {
		return leave.Balance{}, err
	}

	return leave.Balance{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		Allowed:    allowed,
		Taken:      taken,
		Balance:    allowed - taken,
	}, nil
}

func (s *LeaveServiceImpl) Balances(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	settings, err := s.settingRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	balances := make([]leave.Balance, 0, len(settings))
	for _, setting := range settings {
		b, err := s.Balance(ctx, employeeID, setting.LeaveType)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s balance: %w", setting.LeaveType, err)
		}
		balances = append(balances, b)
	}
	return balances, nil
}

func (s *LeaveServiceImpl) SubmitRequest(ctx context.Context, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !emp.IsActive {
		return leave.RequestResponse{}, employee.ErrEmployeeInactive
	}

	setting, err := s.settingRepo.GetByType(ctx, req.LeaveType)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveSettingNotFound) {
			return leave.RequestResponse{}, leave.ErrUnknownLeaveType
		}
		return leave.RequestResponse{}, err
	}
	if !setting.IsActive {
		return leave.RequestResponse{}, leave.ErrUnknownLeaveType
	}

	from, to := req.Range()
	created, err := s.requestRepo.Create(ctx, leave.Request{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		FromDate:   from,
		ToDate:     to,
		Days:       leave.ComputeDays(from, to),
		Status:     leave.StatusPending,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	slog.Info("Leave request submitted", "request_id", created.ID, "employee_id", created.EmployeeID, "days", created.Days)
	return leave.NewRequestResponse(created), nil
}

func (s *LeaveServiceImpl) GetRequest(ctx context.Context, id string) (leave.RequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	return leave.NewRequestResponse(request), nil
}

func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.RequestFilter) ([]leave.RequestResponse, error) {
	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewRequestResponse(r))
	}
	return responses, nil
}

// decide locks the request, checks it is pending and applies fn before saving.
func (s *LeaveServiceImpl) decide(ctx context.Context, id string, fn func(ctx context.Context, r *leave.Request) error) (leave.Request, error) {
	var decided leave.Request
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.requestRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if request.Status != leave.StatusPending {
			return leave.ErrLeaveRequestNotPending
		}

		if err := fn(ctx, &request); err != nil {
			return err
		}

		decided, err = s.requestRepo.UpdateDecision(ctx, request)
		return err
	})
	return decided, err
}

func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.ApproveRequest) (leave.RequestResponse, error) {
	decided, err := s.decide(ctx, req.ID, func(ctx context.Context, r *leave.Request) error {
		emp, err := s.employeeRepo.GetByID(ctx, r.EmployeeID)
		if err != nil {
			return err
		}
		if !emp.IsActive {
			return employee.ErrEmployeeInactive
		}

		now := s.now()
		r.Status = leave.StatusApproved
		r.DecidedAt = &now
		if req.DecidedBy != "" {
			r.DecidedBy = &req.DecidedBy
		}

		remarks := "Approved " + r.LeaveType + " leave"
		for _, date := range r.Dates() {
			if _, err := s.attendanceRepo.Upsert(ctx, attendance.Attendance{
				EmployeeID:     r.EmployeeID,
				Date:           date,
				Status:         attendance.StatusOnLeave,
				Remarks:        &remarks,
				LeaveRequestID: &r.ID,
			}); err != nil {
				return fmt.Errorf("failed to record leave on %s: %w", date.Format("2006-01-02"), err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	slog.Info("Leave request approved", "request_id", decided.ID, "employee_id", decided.EmployeeID, "days", decided.Days)
	return leave.NewRequestResponse(decided), nil
}

func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	decided, err := s.decide(ctx, req.ID, func(ctx context.Context, r *leave.Request) error {
		now := s.now()
		r.Status = leave.StatusRejected
		r.DecidedAt = &now
		r.RejectionReason = &req.Reason
		if req.DecidedBy != "" {
			r.DecidedBy = &req.DecidedBy
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	slog.Info("Leave request rejected", "request_id", decided.ID, "employee_id", decided.EmployeeID)
	return leave.NewRequestResponse(decided), nil
}
