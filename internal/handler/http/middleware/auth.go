package middleware

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired turns the token found by jwtauth.Verifier into an
// auth.Principal. The subject is reloaded on every request so a changed role
// or a deleted user takes effect immediately.
func AuthRequired(jwtService jwt.Service, authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				if errors.Is(err, jwtauth.ErrExpired) {
					response.HandleError(w, r, auth.ErrTokenExpired)
					return
				}
				response.HandleError(w, r, auth.ErrUnauthorized)
				return
			}
			if token == nil {
				response.HandleError(w, r, auth.ErrUnauthorized)
				return
			}

			userID, err := jwtService.Subject(token)
			if err != nil {
				response.HandleError(w, r, auth.ErrInvalidToken)
				return
			}

			principal, err := authService.ResolvePrincipal(r.Context(), userID)
			if err != nil {
				response.HandleError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		}
		return http.HandlerFunc(hfn)
	}
}
