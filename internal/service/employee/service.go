package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	salaryRepo   employee.SalaryRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	salaryRepo employee.SalaryRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		salaryRepo:   salaryRepo,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joinDate, _ := validator.IsValidDate(req.JoinDate)

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Code:     req.Code,
		FullName: req.FullName,
		JoinDate: joinDate,
		IsActive: true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "code", created.Code)
	return employee.NewEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.NewEmployeeResponse(e))
	}
	return resp, nil
}

func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, req employee.DeactivateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !e.IsActive {
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyInactive
	}

	leaveDate, _ := validator.IsValidDate(req.LeaveDate)
	if leaveDate.Before(e.JoinDate) {
		return employee.EmployeeResponse{}, validator.ValidationErrors{{
			Field:   "leave_date",
			Message: "leave_date must not be before join_date",
		}}
	}

	updated, err := s.employeeRepo.Deactivate(ctx, e.ID, leaveDate)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee deactivated", "employee_id", updated.ID, "leave_date", req.LeaveDate)
	return employee.NewEmployeeResponse(updated), nil
}

func (s *EmployeeServiceImpl) SetSalary(ctx context.Context, req employee.SetSalaryRequest) (employee.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.SalaryResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return employee.SalaryResponse{}, err
	}

	effectiveFrom, _ := validator.IsValidDate(req.EffectiveFrom)

	created, err := s.salaryRepo.Create(ctx, employee.Salary{
		EmployeeID:    req.EmployeeID,
		BaseSalary:    req.BaseSalary.Round(2),
		HRAPercentage: req.HRAPercentage.Round(2),
		TAPercentage:  req.TAPercentage.Round(2),
		EffectiveFrom: effectiveFrom,
		Notes:         req.Notes,
	})
	if err != nil {
		return employee.SalaryResponse{}, err
	}

	slog.Info("Salary configured",
		"employee_id", created.EmployeeID,
		"effective_from", req.EffectiveFrom,
		"base_salary", created.BaseSalary.String(),
	)
	return employee.NewSalaryResponse(created), nil
}

func (s *EmployeeServiceImpl) ListSalaries(ctx context.Context, employeeID string) ([]employee.SalaryResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	salaries, err := s.salaryRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.SalaryResponse, 0, len(salaries))
	for _, sal := range salaries {
		resp = append(resp, employee.NewSalaryResponse(sal))
	}
	return resp, nil
}

func (s *EmployeeServiceImpl) CurrentSalary(ctx context.Context, employeeID string, asOf time.Time) (employee.SalaryResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return employee.SalaryResponse{}, err
	}

	sal, err := s.salaryRepo.GetEffective(ctx, employeeID, asOf)
	if err != nil {
		return employee.SalaryResponse{}, fmt.Errorf("salary of employee %s as of %s: %w", employeeID, asOf.Format("2006-01-02"), err)
	}
	return employee.NewSalaryResponse(sal), nil
}
