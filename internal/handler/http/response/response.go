package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/i18n"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

// ErrorDetail carries a machine-readable code next to its translation.
// Details lists every failed (field, kind) pair of a validation error.
type ErrorDetail struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details map[string][]FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "encoding_error",
				Message: "Failed to encode response",
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Paginated writes one page of a list with its meta block. The same numbers
// are repeated in the X-Page, X-Per-Page and X-Total headers.
func Paginated(w http.ResponseWriter, data interface{}, meta Meta) {
	w.Header().Set("X-Page", strconv.Itoa(meta.Page))
	w.Header().Set("X-Per-Page", strconv.Itoa(meta.PerPage))
	w.Header().Set("X-Total", strconv.FormatInt(meta.TotalItems, 10))
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
		Meta:    &meta,
	})
}

// Fail writes an error envelope whose message is the translation of errors.<code>.
func Fail(w http.ResponseWriter, r *http.Request, statusCode int, code string) {
	writeJSON(w, statusCode, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: i18n.T(r.Context(), "errors."+code),
		},
	})
}

// Error responses
func BadRequest(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, http.StatusBadRequest, CodeBadRequest)
}

func Unauthorized(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, http.StatusUnauthorized, CodeUnauthorized)
}

func Forbidden(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, http.StatusForbidden, CodeForbidden)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, http.StatusNotFound, CodeNotFound)
}

func TooManyRequests(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, http.StatusTooManyRequests, CodeRateLimited)
}

func InternalServerError(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, http.StatusInternalServerError, CodeInternal)
}
