package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

var (
	orgOne = "11111111-1111-1111-1111-111111111111"
	orgTwo = "22222222-2222-2222-2222-222222222222"

	admin     = Principal{UserID: "admin", Role: user.RoleAdmin}
	orgAdmin  = Principal{UserID: "org-admin", Role: user.RoleOrgAdmin, OrganizationID: strPtr(orgOne)}
	employee  = Principal{UserID: "employee", Role: user.RoleEmployee, OrganizationID: strPtr(orgOne)}
	colleague = user.User{ID: "colleague", Role: user.RoleEmployee, OrganizationID: strPtr(orgOne)}
	outsider  = user.User{ID: "outsider", Role: user.RoleEmployee, OrganizationID: strPtr(orgTwo)}
	self      = user.User{ID: "employee", Role: user.RoleEmployee, OrganizationID: strPtr(orgOne)}
	adminUser = user.User{ID: "admin", Role: user.RoleAdmin}
)

func TestPolicy_Can(t *testing.T) {
	policy := NewPolicy(nil)

	tests := []struct {
		name      string
		principal Principal
		action    user.Permission
		resource  Resource
		want      bool
	}{
		// Organizations
		{"admin lists organizations", admin, user.PermissionOrganizationList, AnyResource, true},
		{"admin deletes any organization", admin, user.PermissionOrganizationDelete, OrganizationResource(orgTwo), true},
		{"org admin cannot list organizations", orgAdmin, user.PermissionOrganizationList, AnyResource, false},
		{"org admin shows own organization", orgAdmin, user.PermissionOrganizationView, OrganizationResource(orgOne), true},
		{"org admin cannot show other organization", orgAdmin, user.PermissionOrganizationView, OrganizationResource(orgTwo), false},
		{"org admin cannot update own organization", orgAdmin, user.PermissionOrganizationUpdate, OrganizationResource(orgOne), false},
		{"org admin lists own organization attendances", orgAdmin, user.PermissionOrganizationListAttendances, OrganizationResource(orgOne), true},
		{"org admin cannot list other organization attendances", orgAdmin, user.PermissionOrganizationListAttendances, OrganizationResource(orgTwo), false},
		{"employee shows own organization", employee, user.PermissionOrganizationView, OrganizationResource(orgOne), true},
		{"employee cannot show other organization", employee, user.PermissionOrganizationView, OrganizationResource(orgTwo), false},
		{"employee cannot list organization attendances", employee, user.PermissionOrganizationListAttendances, OrganizationResource(orgOne), false},

		// Users
		{"admin updates anyone", admin, user.PermissionUserUpdate, UserResource(outsider), true},
		{"org admin creates in own organization", orgAdmin, user.PermissionUserCreate, OrganizationResource(orgOne), true},
		{"org admin cannot create in other organization", orgAdmin, user.PermissionUserCreate, OrganizationResource(orgTwo), false},
		{"org admin updates colleague", orgAdmin, user.PermissionUserUpdate, UserResource(colleague), true},
		{"org admin cannot update outsider", orgAdmin, user.PermissionUserUpdate, UserResource(outsider), false},
		{"org admin cannot touch admin", orgAdmin, user.PermissionUserDelete, UserResource(adminUser), false},
		{"org admin lists own organization users", orgAdmin, user.PermissionUserList, OrganizationResource(orgOne), true},
		{"employee shows self", employee, user.PermissionUserView, UserResource(self), true},
		{"employee updates self", employee, user.PermissionUserUpdate, UserResource(self), true},
		{"employee deletes self", employee, user.PermissionUserDelete, UserResource(self), true},
		{"employee cannot update colleague", employee, user.PermissionUserUpdate, UserResource(colleague), false},
		{"employee cannot list users", employee, user.PermissionUserList, OrganizationResource(orgOne), false},
		{"employee cannot create users", employee, user.PermissionUserCreate, OrganizationResource(orgOne), false},

		// Attendances
		{"admin creates attendance anywhere", admin, user.PermissionAttendanceCreate, AttendanceResource(outsider), true},
		{"admin cannot check in", admin, user.PermissionAttendanceCheckIn, AttendanceResource(adminUser), false},
		{"org admin creates attendance for colleague", orgAdmin, user.PermissionAttendanceCreate, AttendanceResource(colleague), true},
		{"org admin cannot create attendance for outsider", orgAdmin, user.PermissionAttendanceCreate, AttendanceResource(outsider), false},
		{"org admin cannot check out", orgAdmin, user.PermissionAttendanceCheckOut, AttendanceResource(colleague), false},
		{"employee checks in self", employee, user.PermissionAttendanceCheckIn, AttendanceResource(self), true},
		{"employee cannot check in colleague", employee, user.PermissionAttendanceCheckIn, AttendanceResource(colleague), false},
		{"employee cannot create own attendance directly", employee, user.PermissionAttendanceCreate, AttendanceResource(self), false},
		{"employee cannot delete own attendance", employee, user.PermissionAttendanceDelete, AttendanceResource(self), false},
		{"employee lists own attendances", employee, user.PermissionAttendanceList, AttendanceResource(self), true},
		{"employee cannot list colleague attendances", employee, user.PermissionAttendanceList, AttendanceResource(colleague), false},

		// Unknown role
		{"unknown role is denied", Principal{UserID: "x", Role: "guest"}, user.PermissionUserView, AnyResource, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Can(tt.principal, tt.action, tt.resource))
		})
	}
}

func TestPolicy_Authorize_CallsOnDeny(t *testing.T) {
	var denied []user.Permission
	policy := NewPolicy(func(_ Principal, action user.Permission) {
		denied = append(denied, action)
	})

	require.NoError(t, policy.Authorize(admin, user.PermissionUserDelete, UserResource(outsider)))
	err := policy.Authorize(employee, user.PermissionUserDelete, UserResource(colleague))

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, []user.Permission{user.PermissionUserDelete}, denied)
}

func TestPolicy_OrgScopeNeedsOrganization(t *testing.T) {
	policy := NewPolicy(nil)
	orphan := Principal{UserID: "orphan", Role: user.RoleOrgAdmin}

	assert.False(t, policy.Can(orphan, user.PermissionUserList, OrganizationResource(orgOne)))
	assert.False(t, policy.Can(orgAdmin, user.PermissionUserList, AnyResource))
}

func TestPrincipalFromContext(t *testing.T) {
	_, err := PrincipalFromContext(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	ctx := WithPrincipal(context.Background(), employee)
	got, err := PrincipalFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, employee, got)
	assert.True(t, got.BelongsTo(orgOne))
	assert.False(t, got.BelongsTo(orgTwo))
}
