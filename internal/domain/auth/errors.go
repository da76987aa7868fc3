package auth

import "errors"

var (
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("not allowed to perform this action")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
)
