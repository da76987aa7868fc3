package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

// RequirePermission rejects principals whose role lacks permission at any
// scope. Scope checks against the target resource stay in the services.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := auth.PrincipalFromContext(r.Context())
			if err != nil {
				response.HandleError(w, r, err)
				return
			}

			if !user.HasPermission(principal.Role, permission) {
				response.HandleError(w, r, auth.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
