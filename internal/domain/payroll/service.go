package payroll

import (
	"context"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
)

// PayrollService computes and moves payroll rows through pending -> approved -> paid.
type PayrollService interface {
	// Process creates pending rows for active employees with a salary and no row yet.
	// Existing rows are left untouched.
	Process(ctx context.Context, month period.Month) (ProcessSummary, error)

	Get(ctx context.Context, id string) (PayrollResponse, error)
	List(ctx context.Context, filter Filter) ([]PayrollResponse, error)

	// Update replaces the base salary of a pending row and recomputes it from
	// the stored day counts. The attendance ledger is not re-read.
	Update(ctx context.Context, req UpdatePayrollRequest) (PayrollResponse, error)

	Approve(ctx context.Context, id string) (PayrollResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollResponse, error)

	MonthSummary(ctx context.Context, month period.Month) (MonthSummary, error)
}
