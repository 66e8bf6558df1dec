package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Record(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	now               func() time.Time
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
		now:               time.Now,
	}
}

func (h *AttendanceHandlerImpl) clockEmployee(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req attendance.ClockRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return "", false
		}
	}
	return resolveEmployee(w, r, req.EmployeeID)
}

func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.clockEmployee(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), employeeID, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in", record)
}

func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.clockEmployee(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckOut(r.Context(), employeeID, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", record)
}

func (h *AttendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	record, err := h.attendanceService.Record(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance recorded", record)
}

func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := scopeToCaller(w, r, queryParam(r, "employee_id"))
	if !ok {
		return
	}

	req := attendance.ListAttendanceRequest{
		EmployeeID: employeeID,
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
		Status:     queryParam(r, "status"),
		Order:      r.URL.Query().Get("order"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records := make([]attendance.AttendanceResponse, 0)
	for record, err := range h.attendanceService.Query(r.Context(), req.ToFilter()) {
		if err != nil {
			response.HandleError(w, err)
			return
		}
		records = append(records, attendance.NewAttendanceResponse(record))
	}

	response.Success(w, records)
}

func (h *AttendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !ensureAccess(w, r, record.EmployeeID) {
		return
	}

	response.Success(w, record)
}

func (h *AttendanceHandlerImpl) monthRequest(w http.ResponseWriter, r *http.Request) (attendance.MonthRequest, bool) {
	employeeID, ok := resolveEmployee(w, r, queryParam(r, "employee_id"))
	if !ok {
		return attendance.MonthRequest{}, false
	}
	return attendance.MonthRequest{EmployeeID: employeeID, Month: r.URL.Query().Get("month")}, true
}

func (h *AttendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	req, ok := h.monthRequest(w, r)
	if !ok {
		return
	}
	month, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	counts, err := h.attendanceService.Aggregate(r.Context(), req.EmployeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, counts)
}

func (h *AttendanceHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	req, ok := h.monthRequest(w, r)
	if !ok {
		return
	}
	month, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	cal, err := h.attendanceService.Calendar(r.Context(), req.EmployeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cal)
}
