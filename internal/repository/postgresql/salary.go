package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) employee.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `id, employee_id, base_salary, hra_percentage, ta_percentage, effective_from, notes, created_at`

func scanSalary(row pgx.Row) (employee.Salary, error) {
	var s employee.Salary
	err := row.Scan(&s.ID, &s.EmployeeID, &s.BaseSalary, &s.HRAPercentage, &s.TAPercentage, &s.EffectiveFrom, &s.Notes, &s.CreatedAt)
	return s, err
}

func (r *salaryRepository) Create(ctx context.Context, s employee.Salary) (employee.Salary, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Salary{}, fmt.Errorf("failed to generate salary id: %w", err)
	}

	query := `
		INSERT INTO employee_salaries (id, employee_id, base_salary, hra_percentage, ta_percentage, effective_from, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + salaryColumns

	created, err := scanSalary(q.QueryRow(ctx, query,
		id.String(), s.EmployeeID, s.BaseSalary, s.HRAPercentage, s.TAPercentage, s.EffectiveFrom, s.Notes,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_employee_salaries_effective") {
			return employee.Salary{}, employee.ErrSalaryEffectiveDateExists
		}
		return employee.Salary{}, fmt.Errorf("failed to create salary: %w", err)
	}

	return created, nil
}

func (r *salaryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]employee.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM employee_salaries WHERE employee_id = $1 ORDER BY effective_from DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	var salaries []employee.Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		salaries = append(salaries, s)
	}

	return salaries, rows.Err()
}

func (r *salaryRepository) GetEffective(ctx context.Context, employeeID string, asOf time.Time) (employee.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM employee_salaries
		WHERE employee_id = $1 AND effective_from <= $2
		ORDER BY effective_from DESC
		LIMIT 1
	`

	s, err := scanSalary(q.QueryRow(ctx, query, employeeID, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Salary{}, employee.ErrSalaryNotFound
		}
		return employee.Salary{}, fmt.Errorf("failed to get effective salary: %w", err)
	}

	return s, nil
}
