package payroll

import "github.com/shopspring/decimal"

// Amounts are the money fields derived from a base salary and attendance.
type Amounts struct {
	PerDaySalary decimal.Decimal
	Deduction    decimal.Decimal
	NetSalary    decimal.Decimal
}

// Calculate prices absent days at base/workingDays. Leave days are paid and
// not deducted. With no working days nothing is deducted.
//
// The deduction is computed from the unrounded per-day rate so that
// net = base - absent*base/working holds to the cent.
func Calculate(base decimal.Decimal, workingDays int, absentDays decimal.Decimal) Amounts {
	if workingDays <= 0 {
		return Amounts{
			PerDaySalary: decimal.Zero,
			Deduction:    decimal.Zero,
			NetSalary:    base,
		}
	}

	working := decimal.NewFromInt(int64(workingDays))
	deduction := base.Mul(absentDays).Div(working).Round(2)

	return Amounts{
		PerDaySalary: base.Div(working).Round(2),
		Deduction:    deduction,
		NetSalary:    base.Sub(deduction),
	}
}
