package workcalendar

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar_EveryDayByDefault(t *testing.T) {
	cal, err := New("")
	require.NoError(t, err)

	assert.Equal(t, EveryDay, cal.Rule())
	assert.Equal(t, 30, cal.WorkingDaysCount(period.Month{Year: 2024, Month: time.June}))
	assert.Equal(t, 29, cal.WorkingDaysCount(period.Month{Year: 2024, Month: time.February}))
	assert.Equal(t, 31, cal.WorkingDaysCount(period.Month{Year: 2024, Month: time.December}))
}

func TestCalendar_WeekdaysOnly(t *testing.T) {
	cal, err := New("RRULE:FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR")
	require.NoError(t, err)

	// June 2024 starts on a Saturday: 20 weekdays.
	june := period.Month{Year: 2024, Month: time.June}
	days := cal.WorkingDays(june)
	require.Len(t, days, 20)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC), days[len(days)-1])

	assert.True(t, cal.IsWorkingDay(time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)))
	assert.False(t, cal.IsWorkingDay(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)))

	set := cal.WorkingDaySet(june)
	assert.True(t, set["2024-06-04"])
	assert.False(t, set["2024-06-09"])
}

func TestCalendar_RejectsInvalidRules(t *testing.T) {
	_, err := New("FREQ=SOMETIMES")
	assert.Error(t, err)

	_, err = New("FREQ=DAILY;COUNT=10")
	assert.Error(t, err)
}
