package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, target string, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h := i18n.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleError(w, r, err)
	}))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleError_StatusAndCode(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{auth.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
		{auth.ErrInvalidToken, http.StatusUnauthorized, CodeUnauthorized},
		{auth.ErrTokenExpired, http.StatusUnauthorized, CodeTokenExpired},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
		{auth.ErrForbidden, http.StatusForbidden, CodeForbidden},
		{organization.ErrOrganizationNotFound, http.StatusNotFound, CodeNotFound},
		{fmt.Errorf("lookup: %w", attendance.ErrAttendanceNotFound), http.StatusNotFound, CodeNotFound},
		{attendance.ErrNotEmployee, http.StatusBadRequest, CodeNotEmployee},
		{attendance.ErrUserDidNotCheckIn, http.StatusBadRequest, CodeUserDidNotCheckIn},
		{attendance.ErrUserAlreadyCheckedOut, http.StatusBadRequest, CodeUserAlreadyCheckedOut},
		{errors.New("connection reset"), http.StatusInternalServerError, CodeInternal},
	}
	for _, c := range cases {
		t.Run(c.code, func(t *testing.T) {
			rec, body := serve(t, "/", c.err)
			assert.Equal(t, c.status, rec.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, c.code, body.Error.Code)
			assert.NotEqual(t, "errors."+c.code, body.Error.Message)
		})
	}
}

func TestHandleError_Validation(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add(validator.Base, attendance.KindOverlap)
	errs.Add("left_at", attendance.KindOnlyOneOpen)
	errs.Add("left_at", attendance.KindOpenMustBeLatest)

	rec, body := serve(t, "/?locale=es", errs)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, CodeValidationFailed, body.Error.Code)
	assert.Equal(t, "La validación falló", body.Error.Message)
	assert.Equal(t, []FieldError{
		{Kind: attendance.KindOnlyOneOpen, Message: "el empleado ya tiene una asistencia abierta"},
		{Kind: attendance.KindOpenMustBeLatest, Message: "una asistencia abierta debe ser la última del empleado"},
	}, body.Error.Details["left_at"])
	assert.Len(t, body.Error.Details[validator.Base], 1)
}

func TestHandleError_AlreadyCheckedIn(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add("left_at", attendance.KindOnlyOneOpen)

	rec, body := serve(t, "/", fmt.Errorf("%w: %w", attendance.ErrAlreadyCheckedIn, errs))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, CodeAlreadyCheckedIn, body.Error.Code)
	assert.Contains(t, body.Error.Details, "left_at")
}

func TestPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []string{"a"}, Meta{Page: 2, PerPage: 1, TotalItems: 3, TotalPages: 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-Page"))
	assert.Equal(t, "1", rec.Header().Get("X-Per-Page"))
	assert.Equal(t, "3", rec.Header().Get("X-Total"))
	assert.JSONEq(t, `{"success":true,"data":["a"],"meta":{"page":2,"per_page":1,"total_items":3,"total_pages":3}}`, rec.Body.String())
}
