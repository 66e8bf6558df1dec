package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation errors", validator.ValidationErrors{{Field: "month", Message: "month is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"validation sentinel", apperror.New(apperror.ErrValidation, "bad input"), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"not found", fmt.Errorf("lookup: %w", apperror.New(apperror.ErrNotFound, "payroll not found")), http.StatusNotFound, "NOT_FOUND"},
		{"invalid state", apperror.New(apperror.ErrInvalidState, "payroll is not pending"), http.StatusConflict, "INVALID_STATE"},
		{"conflict", apperror.New(apperror.ErrConflict, "exists"), http.StatusConflict, "CONFLICT"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "base_salary", Message: "base_salary must be greater than 0"}})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "base_salary must be greater than 0", body.Error.Details["base_salary"])
}

func TestInternalErrorHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: password authentication failed"))

	assert.NotContains(t, rec.Body.String(), "password")
}
