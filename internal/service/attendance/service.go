package attendance

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/workcalendar"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	calendar       *workcalendar.Calendar
	halfDay        attendance.HalfDayPolicy
	location       *time.Location
}

// NewAttendanceService builds the ledger. location decides which calendar date
// "today" is for check-in and check-out.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	calendar *workcalendar.Calendar,
	halfDay attendance.HalfDayPolicy,
	location *time.Location,
) attendance.AttendanceService {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		calendar:       calendar,
		halfDay:        halfDay,
		location:       location,
	}
}

func (s *AttendanceServiceImpl) activeEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, attendance.ErrUnknownEmployee
		}
		return employee.Employee{}, err
	}
	if !e.IsActive {
		return employee.Employee{}, attendance.ErrUnknownEmployee
	}
	return e, nil
}

func (s *AttendanceServiceImpl) Record(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.activeEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	saved, err := s.attendanceRepo.Upsert(ctx, req.ToEntity())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance recorded", "employee_id", saved.EmployeeID, "date", req.Date, "status", saved.Status)
	return attendance.NewAttendanceResponse(saved), nil
}

func (s *AttendanceServiceImpl) today(now time.Time) time.Time {
	return period.Date(now.In(s.location))
}

func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string, now time.Time) (attendance.AttendanceResponse, error) {
	if _, err := s.activeEmployee(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkIn := now.UTC()
	record, created, err := s.attendanceRepo.CreateIfAbsent(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       s.today(now),
		Status:     attendance.StatusPresent,
		CheckIn:    &checkIn,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if created {
		slog.Info("Employee checked in", "employee_id", employeeID, "at", checkIn)
	}
	return attendance.NewAttendanceResponse(record), nil
}

func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string, now time.Time) (attendance.AttendanceResponse, error) {
	if _, err := s.activeEmployee(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, s.today(now))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}
	if record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOut := now.UTC()
	if checkOut.Before(*record.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeIn
	}

	hours := attendance.ComputeHours(record.Status, record.CheckIn, &checkOut)
	updated, err := s.attendanceRepo.SetCheckOut(ctx, record.ID, checkOut, hours)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Employee checked out", "employee_id", employeeID, "at", checkOut)
	return attendance.NewAttendanceResponse(updated), nil
}

func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(record), nil
}

func (s *AttendanceServiceImpl) Query(ctx context.Context, filter attendance.Filter) iter.Seq2[attendance.Attendance, error] {
	return s.attendanceRepo.Query(ctx, filter)
}

func (s *AttendanceServiceImpl) monthRecords(ctx context.Context, employeeID string, month period.Month) ([]attendance.Attendance, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	var records []attendance.Attendance
	for record, err := range s.attendanceRepo.Query(ctx, attendance.Filter{
		EmployeeID: &employeeID,
		From:       month.Start(),
		To:         month.End(),
		Ascending:  true,
	}) {
		if err != nil {
			return nil, fmt.Errorf("failed to read attendance of %s for %s: %w", employeeID, month, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *AttendanceServiceImpl) Aggregate(ctx context.Context, employeeID string, month period.Month) (attendance.MonthlyCounts, error) {
	records, err := s.monthRecords(ctx, employeeID, month)
	if err != nil {
		return attendance.MonthlyCounts{}, err
	}
	return attendance.Tally(employeeID, month, s.calendar.WorkingDaySet(month), records, s.halfDay), nil
}

func (s *AttendanceServiceImpl) Calendar(ctx context.Context, employeeID string, month period.Month) (attendance.Calendar, error) {
	records, err := s.monthRecords(ctx, employeeID, month)
	if err != nil {
		return attendance.Calendar{}, err
	}
	return attendance.BuildCalendar(employeeID, month, s.calendar.WorkingDaySet(month), records, s.halfDay), nil
}

func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, date time.Time) (int, error) {
	day := period.Date(date)
	if !s.calendar.IsWorkingDay(day) {
		return 0, nil
	}

	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{ActiveOnly: true})
	if err != nil {
		return 0, err
	}

	remarks := "Marked absent: no attendance recorded"
	marked := 0
	for _, e := range employees {
		if e.JoinDate.After(day) {
			continue
		}
		_, created, err := s.attendanceRepo.CreateIfAbsent(ctx, attendance.Attendance{
			EmployeeID: e.ID,
			Date:       day,
			Status:     attendance.StatusAbsent,
			Remarks:    &remarks,
		})
		if err != nil {
			return marked, fmt.Errorf("failed to mark %s absent: %w", e.ID, err)
		}
		if created {
			marked++
		}
	}

	slog.Info("Marked absent employees", "date", day.Format("2006-01-02"), "count", marked)
	return marked, nil
}
