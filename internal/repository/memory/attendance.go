package memory

import (
	"context"
	"iter"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

type attendanceRepo struct {
	s *Store
}

func (r *attendanceRepo) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	key := dateKey(a.EmployeeID, a.Date)
	if existing, ok := r.s.attendance[key]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	} else {
		a.ID = newID()
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	r.s.attendance[key] = a
	return a, nil
}

func (r *attendanceRepo) CreateIfAbsent(ctx context.Context, a attendance.Attendance) (attendance.Attendance, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := dateKey(a.EmployeeID, a.Date)
	if existing, ok := r.s.attendance[key]; ok {
		return existing, false, nil
	}

	now := time.Now()
	a.ID = newID()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.attendance[key] = a
	return a, true, nil
}

func (r *attendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.attendance {
		if a.ID == id {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *attendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attendance[dateKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *attendanceRepo) SetCheckOut(ctx context.Context, id string, checkOut time.Time, hours *decimal.Decimal) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for key, a := range r.s.attendance {
		if a.ID != id {
			continue
		}
		if a.CheckOut != nil {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		a.CheckOut = &checkOut
		a.Hours = hours
		a.UpdatedAt = time.Now()
		r.s.attendance[key] = a
		return a, nil
	}
	return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
}

func (r *attendanceRepo) Query(ctx context.Context, filter attendance.Filter) iter.Seq2[attendance.Attendance, error] {
	return func(yield func(attendance.Attendance, error) bool) {
		r.s.mu.Lock()
		var matched []attendance.Attendance
		for _, a := range r.s.attendance {
			if a.Date.Before(filter.From) || a.Date.After(filter.To) {
				continue
			}
			if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
				continue
			}
			if filter.Status != nil && a.Status != *filter.Status {
				continue
			}
			matched = append(matched, a)
		}
		r.s.mu.Unlock()

		sort.Slice(matched, func(i, j int) bool {
			if matched[i].Date.Equal(matched[j].Date) {
				return matched[i].EmployeeID < matched[j].EmployeeID
			}
			if filter.Ascending {
				return matched[i].Date.Before(matched[j].Date)
			}
			return matched[i].Date.After(matched[j].Date)
		})

		for _, a := range matched {
			if !yield(a, nil) {
				return
			}
		}
	}
}
