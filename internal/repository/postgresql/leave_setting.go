package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveSettingRepository struct {
	db *database.DB
}

func NewLeaveSettingRepository(db *database.DB) leave.SettingRepository {
	return &leaveSettingRepository{db: db}
}

const leaveSettingColumns = `id, leave_type, annual_days, is_active, created_at, updated_at`

func scanLeaveSetting(row pgx.Row) (leave.Setting, error) {
	var s leave.Setting
	err := row.Scan(&s.ID, &s.LeaveType, &s.AnnualDays, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *leaveSettingRepository) Create(ctx context.Context, s leave.Setting) (leave.Setting, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.Setting{}, fmt.Errorf("failed to generate leave setting id: %w", err)
	}

	query := `
		INSERT INTO leave_settings (id, leave_type, annual_days, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + leaveSettingColumns

	created, err := scanLeaveSetting(q.QueryRow(ctx, query, id.String(), s.LeaveType, s.AnnualDays, s.IsActive))
	if err != nil {
		if isUniqueViolation(err, "uk_leave_settings_type") {
			return leave.Setting{}, leave.ErrLeaveTypeExists
		}
		return leave.Setting{}, fmt.Errorf("failed to create leave setting: %w", err)
	}

	return created, nil
}

func (r *leaveSettingRepository) Update(ctx context.Context, s leave.Setting) (leave.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_settings
		SET annual_days = $2, is_active = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leaveSettingColumns

	updated, err := scanLeaveSetting(q.QueryRow(ctx, query, s.ID, s.AnnualDays, s.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Setting{}, leave.ErrLeaveSettingNotFound
		}
		return leave.Setting{}, fmt.Errorf("failed to update leave setting: %w", err)
	}

	return updated, nil
}

func (r *leaveSettingRepository) GetByID(ctx context.Context, id string) (leave.Setting, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *leaveSettingRepository) GetByType(ctx context.Context, leaveType string) (leave.Setting, error) {
	return r.getOne(ctx, `leave_type = $1`, leaveType)
}

func (r *leaveSettingRepository) getOne(ctx context.Context, where string, arg string) (leave.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveSettingColumns + ` FROM leave_settings WHERE ` + where

	s, err := scanLeaveSetting(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Setting{}, leave.ErrLeaveSettingNotFound
		}
		return leave.Setting{}, fmt.Errorf("failed to get leave setting: %w", err)
	}

	return s, nil
}

func (r *leaveSettingRepository) List(ctx context.Context, activeOnly bool) ([]leave.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveSettingColumns + ` FROM leave_settings`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY leave_type`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave settings: %w", err)
	}
	defer rows.Close()

	var settings []leave.Setting
	for rows.Next() {
		s, err := scanLeaveSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave setting: %w", err)
		}
		settings = append(settings, s)
	}

	return settings, rows.Err()
}
