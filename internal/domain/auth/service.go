package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// ResolvePrincipal reloads the token subject so role and organization are current.
	ResolvePrincipal(ctx context.Context, userID string) (Principal, error)
}
