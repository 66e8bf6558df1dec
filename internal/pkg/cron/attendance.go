package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	location          *time.Location
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, location *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		location:          location,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("mark_absent_employees", interval, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees closes yesterday: active employees with no record on a
// working day get an absent record.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	yesterday := period.Date(j.now().In(j.location)).AddDate(0, 0, -1)
	_, err := j.attendanceService.MarkAbsent(ctx, yesterday)
	return err
}
