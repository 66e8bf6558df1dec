package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	SetSalary(w http.ResponseWriter, r *http.Request)
	ListSalaries(w http.ResponseWriter, r *http.Request)
	CurrentSalary(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
	now             func() time.Time
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
		now:             time.Now,
	}
}

func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{ActiveOnly: r.URL.Query().Get("active") == "true"}

	employees, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, e)
}

func (h *EmployeeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	var req employee.DeactivateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	e, err := h.employeeService.Deactivate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deactivated successfully", e)
}

func (h *EmployeeHandlerImpl) SetSalary(w http.ResponseWriter, r *http.Request) {
	var req employee.SetSalaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	salary, err := h.employeeService.SetSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary set successfully", salary)
}

func (h *EmployeeHandlerImpl) ListSalaries(w http.ResponseWriter, r *http.Request) {
	salaries, err := h.employeeService.ListSalaries(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, salaries)
}

func (h *EmployeeHandlerImpl) CurrentSalary(w http.ResponseWriter, r *http.Request) {
	asOf := h.now()
	if v := queryParam(r, "as_of"); v != nil {
		d, ok := validator.IsValidDate(*v)
		if !ok {
			response.ValidationError(w, "Validation failed", map[string]string{"as_of": "as_of must match format 2006-01-02"})
			return
		}
		asOf = d
	}

	salary, err := h.employeeService.CurrentSalary(r.Context(), chi.URLParam(r, "id"), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, salary)
}
