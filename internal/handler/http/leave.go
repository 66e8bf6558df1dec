package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListSettings(w http.ResponseWriter, r *http.Request)
	CreateSetting(w http.ResponseWriter, r *http.Request)
	UpdateSetting(w http.ResponseWriter, r *http.Request)

	SubmitRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)

	Balances(w http.ResponseWriter, r *http.Request)
	Days(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func (h *LeaveHandlerImpl) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.leaveService.ListSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

func (h *LeaveHandlerImpl) CreateSetting(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateSettingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	setting, err := h.leaveService.CreateSetting(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave setting created successfully", setting)
}

func (h *LeaveHandlerImpl) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateSettingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	setting, err := h.leaveService.UpdateSetting(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave setting updated successfully", setting)
}

func (h *LeaveHandlerImpl) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	employeeID, ok := resolveEmployee(w, r, &req.EmployeeID)
	if !ok {
		return
	}
	req.EmployeeID = employeeID

	created, err := h.leaveService.SubmitRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

func (h *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := scopeToCaller(w, r, queryParam(r, "employee_id"))
	if !ok {
		return
	}

	filter := leave.RequestFilter{
		EmployeeID: employeeID,
		LeaveType:  queryParam(r, "leave_type"),
	}
	if s := queryParam(r, "status"); s != nil {
		status, err := leave.ParseRequestStatus(*s)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.Status = &status
	}

	requests, err := h.leaveService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (h *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	request, err := h.leaveService.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !ensureAccess(w, r, request.EmployeeID) {
		return
	}

	response.Success(w, request)
}

func (h *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	approved, err := h.leaveService.Approve(r.Context(), leave.ApproveRequest{
		ID:        chi.URLParam(r, "id"),
		DecidedBy: decidedBy(r),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", approved)
}

func (h *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.DecidedBy = decidedBy(r)

	rejected, err := h.leaveService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", rejected)
}

func (h *LeaveHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := resolveEmployee(w, r, queryParam(r, "employee_id"))
	if !ok {
		return
	}

	if leaveType := queryParam(r, "leave_type"); leaveType != nil {
		balance, err := h.leaveService.Balance(r.Context(), employeeID, *leaveType)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, []leave.Balance{balance})
		return
	}

	balances, err := h.leaveService.Balances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

func (h *LeaveHandlerImpl) Days(w http.ResponseWriter, r *http.Request) {
	req := leave.DaysRequest{
		FromDate: r.URL.Query().Get("from"),
		ToDate:   r.URL.Query().Get("to"),
	}
	from, to, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if to.Before(from) {
		response.HandleError(w, validator.ValidationErrors{{Field: "to", Message: "to must not be before from"}})
		return
	}

	response.Success(w, leave.DaysResponse{
		FromDate: req.FromDate,
		ToDate:   req.ToDate,
		Days:     leave.ComputeDays(from, to),
	})
}
