package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest
	if err := decodeJSON(r, &loginReq); err != nil {
		slog.Debug("Login decode error", "error", err)
		response.BadRequest(w, r)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, r, err)
		return
	}

	token, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, token)
}
