package postgresql

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, date, status, check_in, check_out, hours, remarks, leave_request_id, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.CheckIn, &a.CheckOut,
		&a.Hours, &a.Remarks, &a.LeaveRequestID, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *attendanceRepository) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, status, check_in, check_out, hours, remarks, leave_request_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			hours = EXCLUDED.hours,
			remarks = EXCLUDED.remarks,
			leave_request_id = EXCLUDED.leave_request_id,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		id.String(), a.EmployeeID, a.Date, a.Status, a.CheckIn, a.CheckOut, a.Hours, a.Remarks, a.LeaveRequestID,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return saved, nil
}

func (r *attendanceRepository) CreateIfAbsent(ctx context.Context, a attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, status, check_in, check_out, hours, remarks, leave_request_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		id.String(), a.EmployeeID, a.Date, a.Status, a.CheckIn, a.CheckOut, a.Hours, a.Remarks, a.LeaveRequestID,
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	// Lost the race or already recorded: hand back the stored row.
	existing, err := r.GetByEmployeeAndDate(ctx, a.EmployeeID, a.Date)
	if err != nil {
		return attendance.Attendance{}, false, err
	}
	return existing, false, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = $1 AND date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) SetCheckOut(ctx context.Context, id string, checkOut time.Time, hours *decimal.Decimal) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out = $2, hours = $3, updated_at = NOW()
		WHERE id = $1 AND check_out IS NULL
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query, id, checkOut, hours))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to check out: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) Query(ctx context.Context, filter attendance.Filter) iter.Seq2[attendance.Attendance, error] {
	var (
		conditions = []string{"date >= $1", "date <= $2"}
		args       = []interface{}{filter.From, filter.To}
	)
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	order := "DESC"
	if filter.Ascending {
		order = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM attendance_records WHERE %s ORDER BY date %s, employee_id`,
		attendanceColumns, strings.Join(conditions, " AND "), order)

	return func(yield func(attendance.Attendance, error) bool) {
		q := GetQuerier(ctx, r.db)

		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			yield(attendance.Attendance{}, fmt.Errorf("failed to query attendance: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			a, err := scanAttendance(rows)
			if err != nil {
				yield(attendance.Attendance{}, fmt.Errorf("failed to scan attendance: %w", err))
				return
			}
			if !yield(a, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(attendance.Attendance{}, fmt.Errorf("failed to iterate attendance: %w", err))
		}
	}
}
