package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		base        string
		workingDays int
		absentDays  string
		perDay      string
		deduction   string
		net         string
	}{
		{name: "three absences", base: "30000", workingDays: 30, absentDays: "3", perDay: "1000", deduction: "3000", net: "27000"},
		{name: "no absences", base: "30000", workingDays: 30, absentDays: "0", perDay: "1000", deduction: "0", net: "30000"},
		{name: "no working days", base: "30000", workingDays: 0, absentDays: "0", perDay: "0", deduction: "0", net: "30000"},
		{name: "half day split", base: "31000", workingDays: 31, absentDays: "1.5", perDay: "1000", deduction: "1500", net: "29500"},
		{name: "rounding", base: "10000", workingDays: 3, absentDays: "1", perDay: "3333.33", deduction: "3333.33", net: "6666.67"},
		{name: "deduction from unrounded rate", base: "31000", workingDays: 30, absentDays: "3", perDay: "1033.33", deduction: "3100", net: "27900"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(dec(tt.base), tt.workingDays, dec(tt.absentDays))

			assert.True(t, dec(tt.perDay).Equal(got.PerDaySalary), "per day %s", got.PerDaySalary)
			assert.True(t, dec(tt.deduction).Equal(got.Deduction), "deduction %s", got.Deduction)
			assert.True(t, dec(tt.net).Equal(got.NetSalary), "net %s", got.NetSalary)
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusApproved))
	assert.True(t, StatusApproved.CanTransitionTo(StatusPaid))

	assert.False(t, StatusPending.CanTransitionTo(StatusPaid))
	assert.False(t, StatusApproved.CanTransitionTo(StatusPending))
	assert.False(t, StatusPaid.CanTransitionTo(StatusApproved))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
}

func TestSummarize(t *testing.T) {
	june := period.Month{Year: 2024, Month: time.June}
	rows := []Payroll{
		{NetSalary: dec("27000"), Deduction: dec("3000"), Status: StatusPending, WorkingDays: 30, PresentDays: dec("27")},
		{NetSalary: dec("20000"), Deduction: dec("0"), Status: StatusApproved, WorkingDays: 30, PresentDays: dec("30")},
		{NetSalary: dec("15000"), Deduction: dec("0"), Status: StatusPaid, WorkingDays: 0},
	}

	s := Summarize(june, rows)

	assert.Equal(t, "2024-06", s.Month)
	assert.Equal(t, 3, s.EmployeesProcessed)
	assert.True(t, dec("62000").Equal(s.TotalPayroll))
	assert.True(t, dec("3000").Equal(s.TotalDeduction))
	assert.Equal(t, 1, s.PendingApproval)
	assert.Equal(t, 1, s.Approved)
	assert.Equal(t, 1, s.Paid)
	// (90 + 100 + 0) / 3
	assert.True(t, dec("63.33").Equal(s.AvgAttendance), s.AvgAttendance.String())

	empty := Summarize(june, nil)
	assert.True(t, empty.AvgAttendance.IsZero())
}

func TestPayroll_Recalculate(t *testing.T) {
	p := Payroll{BaseSalary: dec("60000"), WorkingDays: 30, AbsentDays: dec("3")}

	p.Recalculate()

	assert.True(t, dec("2000").Equal(p.PerDaySalary))
	assert.True(t, dec("6000").Equal(p.Deduction))
	assert.True(t, dec("54000").Equal(p.NetSalary))
}
