package auth

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /user_token.
type LoginRequest struct {
	Auth Credentials `json:"auth"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Auth.Email) {
		errs.Add("email", validator.KindBlank)
	}
	if validator.IsEmpty(r.Auth.Password) {
		errs.Add("password", validator.KindBlank)
	}
	return errs.OrNil()
}

type TokenResponse struct {
	JWT       string `json:"jwt"`
	ExpiresAt string `json:"expires_at"`
}
