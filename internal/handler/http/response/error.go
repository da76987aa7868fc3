package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// Error codes. Each one has an errors.<code> entry in the i18n catalog.
const (
	CodeBadRequest            = "bad_request"
	CodeUnauthorized          = "unauthorized"
	CodeTokenExpired          = "token_expired"
	CodeInvalidCredentials    = "invalid_credentials"
	CodeForbidden             = "forbidden"
	CodeNotFound              = "not_found"
	CodeValidationFailed      = "validation_failed"
	CodeNotEmployee           = "not_employee"
	CodeAlreadyCheckedIn      = "already_checked_in"
	CodeUserDidNotCheckIn     = "user_did_not_check_in"
	CodeUserAlreadyCheckedOut = "user_already_checked_out"
	CodeRateLimited           = "rate_limited"
	CodeInternal              = "internal"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		code := CodeValidationFailed
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			code = CodeAlreadyCheckedIn
		}
		ValidationError(w, r, code, validationErrs)
		return
	}

	switch {
	// Authentication
	case errors.Is(err, auth.ErrTokenExpired):
		Fail(w, r, http.StatusUnauthorized, CodeTokenExpired)
	case errors.Is(err, auth.ErrInvalidCredentials):
		Fail(w, r, http.StatusUnauthorized, CodeInvalidCredentials)
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, r)

	// Authorization
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, r)

	// Missing resources
	case errors.Is(err, organization.ErrOrganizationNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, r)

	// Check-in / check-out workflow
	case errors.Is(err, attendance.ErrNotEmployee):
		Fail(w, r, http.StatusBadRequest, CodeNotEmployee)
	case errors.Is(err, attendance.ErrUserDidNotCheckIn):
		Fail(w, r, http.StatusBadRequest, CodeUserDidNotCheckIn)
	case errors.Is(err, attendance.ErrUserAlreadyCheckedOut):
		Fail(w, r, http.StatusBadRequest, CodeUserAlreadyCheckedOut)

	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err, "method", r.Method, "path", r.URL.Path)
		InternalServerError(w, r)
	}
}

// ValidationError writes a 422 listing every failed (field, kind) pair.
func ValidationError(w http.ResponseWriter, r *http.Request, code string, errs validator.ValidationErrors) {
	details := make(map[string][]FieldError)
	for _, e := range errs {
		details[e.Field] = append(details[e.Field], FieldError{
			Kind:    e.Kind,
			Message: i18n.Kind(r.Context(), e.Kind),
		})
	}
	writeJSON(w, http.StatusUnprocessableEntity, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: i18n.T(r.Context(), "errors."+code),
			Details: details,
		},
	})
}
