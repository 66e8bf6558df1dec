package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// HandleError maps an error to a response by its apperror category.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, "Validation failed", validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, apperror.ErrValidation):
		ValidationError(w, err.Error(), nil)
	case errors.Is(err, apperror.ErrNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, apperror.ErrInvalidState):
		InvalidState(w, err.Error())
	case errors.Is(err, apperror.ErrConflict):
		Conflict(w, err.Error())
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
