package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Process(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

func (h *PayrollHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	var req payroll.ProcessRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	month, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.payrollService.Process(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll processed successfully", summary)
}

func (h *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := scopeToCaller(w, r, queryParam(r, "employee_id"))
	if !ok {
		return
	}

	req := payroll.ListPayrollRequest{
		Month:      queryParam(r, "month"),
		EmployeeID: employeeID,
		Status:     queryParam(r, "status"),
	}
	filter, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

func (h *PayrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	month, err := period.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}})
		return
	}

	summary, err := h.payrollService.MonthSummary(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

func (h *PayrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.payrollService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !ensureAccess(w, r, p.EmployeeID) {
		return
	}

	response.Success(w, p)
}

func (h *PayrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayrollRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.payrollService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll updated successfully", updated)
}

func (h *PayrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	approved, err := h.payrollService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll approved successfully", approved)
}

func (h *PayrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	paid, err := h.payrollService.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll marked as paid", paid)
}
