// Package memory implements the repositories on in-process maps. It backs the
// service and handler tests and follows the constraints of the SQL schema.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
)

type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	employees     map[string]employee.Employee
	salaries      map[string]employee.Salary
	attendance    map[string]attendance.Attendance
	leaveSettings map[string]leave.Setting
	leaveRequests map[string]leave.Request
	payrolls      map[string]payroll.Payroll
}

func NewStore() *Store {
	return &Store{
		employees:     make(map[string]employee.Employee),
		salaries:      make(map[string]employee.Salary),
		attendance:    make(map[string]attendance.Attendance),
		leaveSettings: make(map[string]leave.Setting),
		leaveRequests: make(map[string]leave.Request),
		payrolls:      make(map[string]payroll.Payroll),
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

type txKey struct{}

type transactor struct {
	s *Store
}

// Transactor serializes transactions. Writes are not rolled back on error.
func (s *Store) Transactor() database.Transactor {
	return &transactor{s: s}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func (s *Store) Employees() employee.EmployeeRepository { return &employeeRepo{s: s} }

func (s *Store) Salaries() employee.SalaryRepository { return &salaryRepo{s: s} }

func (s *Store) Attendance() attendance.AttendanceRepository { return &attendanceRepo{s: s} }

func (s *Store) LeaveSettings() leave.SettingRepository { return &leaveSettingRepo{s: s} }

func (s *Store) LeaveRequests() leave.RequestRepository { return &leaveRequestRepo{s: s} }

func (s *Store) Payrolls() payroll.PayrollRepository { return &payrollRepo{s: s} }

func dateKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}
