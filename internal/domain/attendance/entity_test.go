package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestComputeHours(t *testing.T) {
	in := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	out := time.Date(2024, 6, 3, 18, 30, 0, 0, time.UTC)

	hours := ComputeHours(StatusPresent, &in, &out)
	require.NotNil(t, hours)
	assert.True(t, decimal.RequireFromString("9.5").Equal(*hours))

	odd := in.Add(7*time.Hour + 20*time.Minute)
	hours = ComputeHours(StatusHalfDay, &in, &odd)
	require.NotNil(t, hours)
	assert.Equal(t, "7.33", hours.StringFixed(2))

	assert.Nil(t, ComputeHours(StatusAbsent, &in, &out))
	assert.Nil(t, ComputeHours(StatusPresent, &in, nil))
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("on_leave")
	require.NoError(t, err)
	assert.Equal(t, StatusOnLeave, st)

	_, err = ParseStatus("late")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func june2024Records() []Attendance {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	return []Attendance{
		{ID: "1", Date: day(3), Status: StatusPresent},
		{ID: "2", Date: day(4), Status: StatusAbsent},
		{ID: "3", Date: day(5), Status: StatusOnLeave},
		{ID: "4", Date: day(6), Status: StatusHalfDay},
		{ID: "5", Date: day(8), Status: StatusAbsent}, // Saturday
	}
}

func weekdays(m period.Month) map[string]bool {
	set := map[string]bool{}
	for d := m.Start(); !d.After(m.End()); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			set[d.Format("2006-01-02")] = true
		}
	}
	return set
}

func TestTally_HalfDayAsPresent(t *testing.T) {
	june := period.Month{Year: 2024, Month: time.June}

	counts := Tally("emp", june, weekdays(june), june2024Records(), HalfDayAsPresent)

	assert.Equal(t, 20, counts.WorkingDays)
	assert.Equal(t, "2", counts.PresentDays.String())
	assert.Equal(t, "1", counts.AbsentDays.String())
	assert.Equal(t, "1", counts.LeaveDays.String())
	assert.Equal(t, 1, counts.HalfDays)
	assert.Equal(t, 16, counts.UnrecordedDays)
	assert.Equal(t, "2024-06", counts.Month)
}

func TestTally_HalfDaySplit(t *testing.T) {
	june := period.Month{Year: 2024, Month: time.June}

	counts := Tally("emp", june, weekdays(june), june2024Records(), HalfDaySplit)

	assert.Equal(t, "1.5", counts.PresentDays.String())
	assert.Equal(t, "1.5", counts.AbsentDays.String())
	assert.Equal(t, "7.5", counts.AttendanceRate().String())
}

func TestMonthlyCounts_AttendanceRateWithoutWorkingDays(t *testing.T) {
	assert.True(t, MonthlyCounts{PresentDays: decimal.NewFromInt(3)}.AttendanceRate().IsZero())
}

func TestBuildCalendar(t *testing.T) {
	june := period.Month{Year: 2024, Month: time.June}

	cal := BuildCalendar("emp", june, weekdays(june), june2024Records(), HalfDayAsPresent)

	require.Len(t, cal.Days, 30)
	assert.Equal(t, "2024-06-01", cal.Days[0].Date)
	assert.Equal(t, "Saturday", cal.Days[0].Weekday)
	assert.False(t, cal.Days[0].WorkingDay)
	assert.Nil(t, cal.Days[0].Status)

	require.NotNil(t, cal.Days[3].Status)
	assert.Equal(t, StatusAbsent, *cal.Days[3].Status)
	assert.Equal(t, "2", *cal.Days[3].RecordID)
	assert.Equal(t, 20, cal.Counts.WorkingDays)
}

func TestRecordAttendanceRequest_Validate(t *testing.T) {
	req := RecordAttendanceRequest{
		EmployeeID: "emp",
		Date:       "2024-06-03",
		Status:     "present",
		CheckIn:    ptr("2024-06-03T09:00:00+07:00"),
		CheckOut:   ptr("2024-06-03T18:30:00+07:00"),
	}
	require.NoError(t, req.Validate())

	a := req.ToEntity()
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), a.Date)
	require.NotNil(t, a.Hours)
	assert.Equal(t, "9.5", a.Hours.String())

	req.CheckOut = ptr("2024-06-03T08:00:00+07:00")
	err := req.Validate()
	assert.ErrorIs(t, err, apperror.ErrValidation)

	req = RecordAttendanceRequest{EmployeeID: "emp", Date: "2024-06-03", Status: "late"}
	assert.ErrorIs(t, req.Validate(), apperror.ErrValidation)
}

func TestListAttendanceRequest_Validate(t *testing.T) {
	req := ListAttendanceRequest{From: "2024-06-01", To: "2024-06-30", Status: ptr("absent"), Order: "asc"}
	require.NoError(t, req.Validate())

	f := req.ToFilter()
	assert.True(t, f.Ascending)
	assert.Equal(t, StatusAbsent, *f.Status)

	req = ListAttendanceRequest{From: "2024-06-30", To: "2024-06-01"}
	assert.Error(t, req.Validate())

	req = ListAttendanceRequest{From: "2023-01-01", To: "2024-06-01"}
	assert.Error(t, req.Validate())
}
