package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
)

type leaveSettingRepo struct {
	s *Store
}

func (r *leaveSettingRepo) Create(ctx context.Context, setting leave.Setting) (leave.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.leaveSettings {
		if existing.LeaveType == setting.LeaveType {
			return leave.Setting{}, leave.ErrLeaveTypeExists
		}
	}

	now := time.Now()
	setting.ID = newID()
	setting.CreatedAt, setting.UpdatedAt = now, now
	r.s.leaveSettings[setting.ID] = setting
	return setting, nil
}

func (r *leaveSettingRepo) Update(ctx context.Context, setting leave.Setting) (leave.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.leaveSettings[setting.ID]
	if !ok {
		return leave.Setting{}, leave.ErrLeaveSettingNotFound
	}
	existing.AnnualDays = setting.AnnualDays
	existing.IsActive = setting.IsActive
	existing.UpdatedAt = time.Now()
	r.s.leaveSettings[setting.ID] = existing
	return existing, nil
}

func (r *leaveSettingRepo) GetByID(ctx context.Context, id string) (leave.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	setting, ok := r.s.leaveSettings[id]
	if !ok {
		return leave.Setting{}, leave.ErrLeaveSettingNotFound
	}
	return setting, nil
}

func (r *leaveSettingRepo) GetByType(ctx context.Context, leaveType string) (leave.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, setting := range r.s.leaveSettings {
		if setting.LeaveType == leaveType {
			return setting, nil
		}
	}
	return leave.Setting{}, leave.ErrLeaveSettingNotFound
}

func (r *leaveSettingRepo) List(ctx context.Context, activeOnly bool) ([]leave.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []leave.Setting
	for _, setting := range r.s.leaveSettings {
		if activeOnly && !setting.IsActive {
			continue
		}
		out = append(out, setting)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeaveType < out[j].LeaveType })
	return out, nil
}

type leaveRequestRepo struct {
	s *Store
}

func (r *leaveRequestRepo) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	req.ID = newID()
	req.CreatedAt, req.UpdatedAt = now, now
	r.s.leaveRequests[req.ID] = req
	return req, nil
}

func (r *leaveRequestRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.leaveRequests[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *leaveRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.Request, error) {
	return r.GetByID(ctx, id)
}

func (r *leaveRequestRepo) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []leave.Request
	for _, req := range r.s.leaveRequests {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.LeaveType != nil && req.LeaveType != *filter.LeaveType {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	// IDs are time ordered
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *leaveRequestRepo) UpdateDecision(ctx context.Context, req leave.Request) (leave.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.leaveRequests[req.ID]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	existing.Status = req.Status
	existing.DecidedAt = req.DecidedAt
	existing.DecidedBy = req.DecidedBy
	existing.RejectionReason = req.RejectionReason
	existing.UpdatedAt = time.Now()
	r.s.leaveRequests[req.ID] = existing
	return existing, nil
}

func (r *leaveRequestRepo) SumApprovedDays(ctx context.Context, employeeID, leaveType string, from, to *time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	total := 0
	for _, req := range r.s.leaveRequests {
		if req.EmployeeID != employeeID || req.LeaveType != leaveType || req.Status != leave.StatusApproved {
			continue
		}
		if from != nil && req.FromDate.Before(*from) {
			continue
		}
		if to != nil && req.FromDate.After(*to) {
			continue
		}
		total += req.Days
	}
	return total, nil
}
