package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
)

// decodeJSON reads the body into dst and answers 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Debug("Request decode error", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// queryParam returns nil for an absent or blank query parameter.
func queryParam(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	return &v
}

// resolveEmployee picks the employee a request is about. Employees without a
// managing role default to, and are limited to, their own record.
func resolveEmployee(w http.ResponseWriter, r *http.Request, requested *string) (string, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return "", false
	}

	employeeID := p.EmployeeID
	if requested != nil && *requested != "" {
		employeeID = *requested
	}
	if employeeID == "" {
		response.ValidationError(w, "Validation failed", map[string]string{"employee_id": "employee_id is required"})
		return "", false
	}

	if !p.CanAccess(employeeID) {
		response.Forbidden(w, "Access to another employee's records is not allowed")
		return "", false
	}
	return employeeID, true
}

// ensureAccess answers 403 unless the caller may see employeeID's records.
func ensureAccess(w http.ResponseWriter, r *http.Request, employeeID string) bool {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return false
	}
	if !p.CanAccess(employeeID) {
		response.Forbidden(w, "Access to another employee's records is not allowed")
		return false
	}
	return true
}

// scopeToCaller returns the employee filter of a list call: whatever was asked
// for managers, always the caller's own id for everyone else.
func scopeToCaller(w http.ResponseWriter, r *http.Request, requested *string) (*string, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return nil, false
	}
	if p.Role.CanManage() {
		return requested, true
	}
	if p.EmployeeID == "" || (requested != nil && *requested != p.EmployeeID) {
		response.Forbidden(w, "Access to another employee's records is not allowed")
		return nil, false
	}
	own := p.EmployeeID
	return &own, true
}

func decidedBy(r *http.Request) string {
	p, _ := middleware.PrincipalFromContext(r.Context())
	return p.UserID
}
