package auth

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// Principal is the authenticated actor of a request.
type Principal struct {
	UserID         string
	Role           user.Role
	OrganizationID *string
}

// PrincipalOf builds the principal for a stored user.
func PrincipalOf(u user.User) Principal {
	return Principal{
		UserID:         u.ID,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
	}
}

// BelongsTo reports whether the principal is a member of organizationID.
func (p Principal) BelongsTo(organizationID string) bool {
	return p.OrganizationID != nil && *p.OrganizationID == organizationID
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by the auth middleware,
// or ErrUnauthorized when the request was never authenticated.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.UserID == "" {
		return Principal{}, ErrUnauthorized
	}
	return p, nil
}
