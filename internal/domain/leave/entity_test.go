package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDays(t *testing.T) {
	d := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, ComputeDays(d, d))
	assert.Equal(t, 7, ComputeDays(d, d.AddDate(0, 0, 6)))
	assert.Equal(t, 1, ComputeDays(d, d.AddDate(0, 0, -3)))
	// Month and leap-day boundaries
	assert.Equal(t, 3, ComputeDays(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	// Time of day is ignored
	assert.Equal(t, 2, ComputeDays(d.Add(23*time.Hour), d.AddDate(0, 0, 1)))
}

func TestRequest_Dates(t *testing.T) {
	r := Request{
		FromDate: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
		ToDate:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	dates := r.Dates()
	require.Len(t, dates, 4)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), dates[2])
}

func TestCycle_Bounds(t *testing.T) {
	from, to := CycleCalendarYear.Bounds(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), *to)

	from, to = CycleNone.Bounds(time.Now())
	assert.Nil(t, from)
	assert.Nil(t, to)

	_, err := ParseCycle("monthly")
	assert.ErrorIs(t, err, ErrInvalidCycle)
}

func TestSubmitRequest_Validate(t *testing.T) {
	req := SubmitRequest{EmployeeID: "e", LeaveType: "Annual Leave", FromDate: "2024-06-03", ToDate: "2024-06-05"}
	require.NoError(t, req.Validate())

	from, to := req.Range()
	assert.Equal(t, 3, ComputeDays(from, to))

	req.ToDate = "2024-06-01"
	assert.Error(t, req.Validate())
}
