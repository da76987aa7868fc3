package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"     // Global administrator, belongs to no organization
	RoleOrgAdmin Role = "org_admin" // Manages users and attendances of one organization
	RoleEmployee Role = "employee"  // Checks in and out
)

// Roles lists every role in capability order.
var Roles = []Role{RoleAdmin, RoleOrgAdmin, RoleEmployee}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOrgAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

type User struct {
	ID             string
	Email          string
	PasswordHash   string
	Role           Role
	OrganizationID *string
	Name           string
	Surname        string
	SecondSurname  *string
	Timezone       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin checks if user is a global admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsOrgAdmin checks if user administers an organization
func (u *User) IsOrgAdmin() bool {
	return u.Role == RoleOrgAdmin
}

// IsEmployee checks if user can check in and out
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// BelongsTo reports whether the user is a member of organizationID.
func (u *User) BelongsTo(organizationID string) bool {
	return u.OrganizationID != nil && *u.OrganizationID == organizationID
}

// FullName joins name, surname and the optional second surname.
func (u *User) FullName() string {
	parts := []string{u.Name, u.Surname}
	if u.SecondSurname != nil && *u.SecondSurname != "" {
		parts = append(parts, *u.SecondSurname)
	}
	return strings.Join(parts, " ")
}

// NormalizeEmail trims and lower-cases an address. Emails are always stored this way.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
