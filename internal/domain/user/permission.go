package user

type Permission string

const (
	// Organizations
	PermissionOrganizationList            Permission = "organization.list"
	PermissionOrganizationView            Permission = "organization.view"
	PermissionOrganizationCreate          Permission = "organization.create"
	PermissionOrganizationUpdate          Permission = "organization.update"
	PermissionOrganizationDelete          Permission = "organization.delete"
	PermissionOrganizationListAttendances Permission = "organization.list_attendances"

	// Users
	PermissionUserList   Permission = "user.list"
	PermissionUserView   Permission = "user.view"
	PermissionUserCreate Permission = "user.create"
	PermissionUserUpdate Permission = "user.update"
	PermissionUserDelete Permission = "user.delete"

	// Attendances
	PermissionAttendanceView     Permission = "attendance.view"
	PermissionAttendanceList     Permission = "attendance.list"
	PermissionAttendanceCreate   Permission = "attendance.create"
	PermissionAttendanceUpdate   Permission = "attendance.update"
	PermissionAttendanceDelete   Permission = "attendance.delete"
	PermissionAttendanceCheckIn  Permission = "attendance.check_in"
	PermissionAttendanceCheckOut Permission = "attendance.check_out"
)

// Scope is how far a granted permission reaches.
type Scope int

const (
	ScopeNone         Scope = iota // Not granted
	ScopeSelf                      // Only resources owned by the principal
	ScopeOrganization              // Only resources of the principal's organization
	ScopeAll                       // Every resource
)

func (s Scope) String() string {
	switch s {
	case ScopeSelf:
		return "self"
	case ScopeOrganization:
		return "organization"
	case ScopeAll:
		return "all"
	default:
		return "none"
	}
}

// RolePermissions is the complete capability matrix. A permission missing from a
// role's map is denied.
var RolePermissions = map[Role]map[Permission]Scope{
	RoleAdmin: {
		// Admin manages everything but has no employee identity to check in with
		PermissionOrganizationList:            ScopeAll,
		PermissionOrganizationView:            ScopeAll,
		PermissionOrganizationCreate:          ScopeAll,
		PermissionOrganizationUpdate:          ScopeAll,
		PermissionOrganizationDelete:          ScopeAll,
		PermissionOrganizationListAttendances: ScopeAll,
		PermissionUserList:                    ScopeAll,
		PermissionUserView:                    ScopeAll,
		PermissionUserCreate:                  ScopeAll,
		PermissionUserUpdate:                  ScopeAll,
		PermissionUserDelete:                  ScopeAll,
		PermissionAttendanceView:              ScopeAll,
		PermissionAttendanceList:              ScopeAll,
		PermissionAttendanceCreate:            ScopeAll,
		PermissionAttendanceUpdate:            ScopeAll,
		PermissionAttendanceDelete:            ScopeAll,
	},
	RoleOrgAdmin: {
		PermissionOrganizationView:            ScopeOrganization,
		PermissionOrganizationListAttendances: ScopeOrganization,
		PermissionUserList:                    ScopeOrganization,
		PermissionUserView:                    ScopeOrganization,
		PermissionUserCreate:                  ScopeOrganization,
		PermissionUserUpdate:                  ScopeOrganization,
		PermissionUserDelete:                  ScopeOrganization,
		PermissionAttendanceView:              ScopeOrganization,
		PermissionAttendanceList:              ScopeOrganization,
		PermissionAttendanceCreate:            ScopeOrganization,
		PermissionAttendanceUpdate:            ScopeOrganization,
		PermissionAttendanceDelete:            ScopeOrganization,
	},
	RoleEmployee: {
		PermissionOrganizationView:   ScopeOrganization,
		PermissionUserView:           ScopeSelf,
		PermissionUserUpdate:         ScopeSelf,
		PermissionUserDelete:         ScopeSelf,
		PermissionAttendanceView:     ScopeSelf,
		PermissionAttendanceList:     ScopeSelf,
		PermissionAttendanceCheckIn:  ScopeSelf,
		PermissionAttendanceCheckOut: ScopeSelf,
	},
}

// ScopeFor returns the scope a role is granted for a permission.
func ScopeFor(role Role, permission Permission) Scope {
	permissions, exists := RolePermissions[role]
	if !exists {
		return ScopeNone
	}
	return permissions[permission]
}

// HasPermission checks if a role has a specific permission at any scope
func HasPermission(role Role, permission Permission) bool {
	return ScopeFor(role, permission) != ScopeNone
}
