package response

import (
	"errors"
	"net/http"

	summary "github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance_summary"
	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrManagerAccessRequired):
		Forbidden(w, "Manager or owner access required")

	// Attendance summary domain errors
	case errors.Is(err, summary.ErrEmployeeIDRequired):
		Forbidden(w, "Employee profile required")
	case errors.Is(err, summary.ErrCompanyIDRequired):
		Forbidden(w, "Company membership required")
	case errors.Is(err, summary.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, summary.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, summary.ErrInvalidReferenceDate):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
