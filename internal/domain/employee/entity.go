package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID        string
	Code      string
	FullName  string
	JoinDate  time.Time
	LeaveDate *time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Salary is one immutable row of an employee's pay history. The row in force on
// a date is the latest one with EffectiveFrom on or before it.
type Salary struct {
	ID            string
	EmployeeID    string
	BaseSalary    decimal.Decimal
	HRAPercentage decimal.Decimal
	TAPercentage  decimal.Decimal
	EffectiveFrom time.Time
	Notes         *string
	CreatedAt     time.Time
}

var hundred = decimal.NewFromInt(100)

// HRA is the house rent allowance amount.
func (s Salary) HRA() decimal.Decimal {
	return s.BaseSalary.Mul(s.HRAPercentage).Div(hundred).Round(2)
}

// TA is the travel allowance amount.
func (s Salary) TA() decimal.Decimal {
	return s.BaseSalary.Mul(s.TAPercentage).Div(hundred).Round(2)
}
