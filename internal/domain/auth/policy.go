package auth

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// Resource carries the attributes the policy compares against a principal.
// OrganizationID is nil for resources outside every organization (admins,
// collection-wide actions); OwnerID is the user the resource belongs to.
type Resource struct {
	OrganizationID *string
	OwnerID        string
}

// AnyResource is used for collection-wide actions such as listing organizations.
var AnyResource = Resource{}

func OrganizationResource(organizationID string) Resource {
	return Resource{OrganizationID: &organizationID}
}

// UserResource describes a user record; the user owns itself.
func UserResource(u user.User) Resource {
	return Resource{OrganizationID: u.OrganizationID, OwnerID: u.ID}
}

// AttendanceResource describes attendance data through its owning employee.
func AttendanceResource(employee user.User) Resource {
	return UserResource(employee)
}

// Policy decides whether a principal may perform an action on a resource,
// using user.RolePermissions as its only source of truth. It never mutates state.
type Policy struct {
	onDeny func(Principal, user.Permission)
}

// NewPolicy creates a policy. onDeny, if not nil, is called for every denial.
func NewPolicy(onDeny func(Principal, user.Permission)) *Policy {
	return &Policy{onDeny: onDeny}
}

// Can reports whether principal may perform action on resource.
func (p *Policy) Can(principal Principal, action user.Permission, resource Resource) bool {
	switch user.ScopeFor(principal.Role, action) {
	case user.ScopeAll:
		return true
	case user.ScopeOrganization:
		return resource.OrganizationID != nil && principal.BelongsTo(*resource.OrganizationID)
	case user.ScopeSelf:
		return resource.OwnerID != "" && resource.OwnerID == principal.UserID
	default:
		return false
	}
}

// Authorize is Can returning ErrForbidden on denial.
func (p *Policy) Authorize(principal Principal, action user.Permission, resource Resource) error {
	if p.Can(principal, action, resource) {
		return nil
	}
	if p.onDeny != nil {
		p.onDeny(principal, action)
	}
	return ErrForbidden
}
