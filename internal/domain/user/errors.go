package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
)

// Validation kinds specific to users.
const (
	KindRoleNotAllowed = "not_allowed_in_organization"
)
