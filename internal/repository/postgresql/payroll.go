package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `id, employee_id, month, base_salary, working_days, present_days, absent_days, leave_days,
	per_day_salary, deduction, net_salary, status, approved_at, paid_at, created_at, updated_at`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var (
		p     payroll.Payroll
		month time.Time
	)
	err := row.Scan(
		&p.ID, &p.EmployeeID, &month, &p.BaseSalary, &p.WorkingDays, &p.PresentDays, &p.AbsentDays, &p.LeaveDays,
		&p.PerDaySalary, &p.Deduction, &p.NetSalary, &p.Status, &p.ApprovedAt, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Month = period.Of(month)
	return p, err
}

func (r *payrollRepository) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to generate payroll id: %w", err)
	}

	query := `
		INSERT INTO payrolls (
			id, employee_id, month, base_salary, working_days, present_days, absent_days, leave_days,
			per_day_salary, deduction, net_salary, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + payrollColumns

	created, err := scanPayroll(q.QueryRow(ctx, query,
		id.String(), p.EmployeeID, p.Month.Start(), p.BaseSalary, p.WorkingDays, p.PresentDays, p.AbsentDays, p.LeaveDays,
		p.PerDaySalary, p.Deduction, p.NetSalary, p.Status,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_payrolls_employee_month") {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	return r.get(ctx, id, false)
}

func (r *payrollRepository) GetByIDForUpdate(ctx context.Context, id string) (payroll.Payroll, error) {
	return r.get(ctx, id, true)
}

func (r *payrollRepository) get(ctx context.Context, id string, forUpdate bool) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) EmployeeIDsForMonth(ctx context.Context, month period.Month) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT employee_id FROM payrolls WHERE month = $1`, month.Start())
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll employees: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan payroll employee: %w", err)
		}
		ids[id] = true
	}

	return ids, rows.Err()
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.Month != nil {
		args = append(args, filter.Month.Start())
		conditions = append(conditions, fmt.Sprintf("month = $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + payrollColumns + ` FROM payrolls`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY month DESC, employee_id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}

	return payrolls, rows.Err()
}

func (r *payrollRepository) Update(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET base_salary = $2, per_day_salary = $3, deduction = $4, net_salary = $5,
			status = $6, approved_at = $7, paid_at = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + payrollColumns

	updated, err := scanPayroll(q.QueryRow(ctx, query,
		p.ID, p.BaseSalary, p.PerDaySalary, p.Deduction, p.NetSalary, p.Status, p.ApprovedAt, p.PaidAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to update payroll: %w", err)
	}

	return updated, nil
}
