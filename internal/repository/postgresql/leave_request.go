package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `id, employee_id, leave_type, from_date, to_date, days, status, reason,
	decided_at, decided_by, rejection_reason, created_at, updated_at`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveType, &lr.FromDate, &lr.ToDate, &lr.Days, &lr.Status, &lr.Reason,
		&lr.DecidedAt, &lr.DecidedBy, &lr.RejectionReason, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

func (r *leaveRequestRepository) Create(ctx context.Context, lr leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type, from_date, to_date, days, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		id.String(), lr.EmployeeID, lr.LeaveType, lr.FromDate, lr.ToDate, lr.Days, lr.Status, lr.Reason,
	))
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	return r.get(ctx, id, false)
}

func (r *leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.Request, error) {
	return r.get(ctx, id, true)
}

func (r *leaveRequestRepository) get(ctx context.Context, id string, forUpdate bool) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.LeaveType != nil {
		args = append(args, *filter.LeaveType)
		conditions = append(conditions, fmt.Sprintf("leave_type = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

func (r *leaveRequestRepository) UpdateDecision(ctx context.Context, lr leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, decided_at = $3, decided_by = $4, rejection_reason = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leaveRequestColumns

	updated, err := scanLeaveRequest(q.QueryRow(ctx, query, lr.ID, lr.Status, lr.DecidedAt, lr.DecidedBy, lr.RejectionReason))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return updated, nil
}

func (r *leaveRequestRepository) SumApprovedDays(ctx context.Context, employeeID, leaveType string, from, to *time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND leave_type = $2
		  AND status = 'approved'
		  AND ($3::date IS NULL OR from_date >= $3::date)
		  AND ($4::date IS NULL OR from_date <= $4::date)
	`

	var total int
	if err := q.QueryRow(ctx, query, employeeID, leaveType, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum approved leave days: %w", err)
	}

	return total, nil
}
