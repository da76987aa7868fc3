package organization

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func as(u user.User) context.Context {
	return auth.WithPrincipal(context.Background(), auth.PrincipalOf(u))
}

func strPtr(s string) *string { return &s }

func TestOrganizationService_AdminManagesAll(t *testing.T) {
	store := servicetest.NewStore()
	admin := store.AddUser(user.User{Email: "root@example.org", Role: user.RoleAdmin})
	svc := NewOrganizationService(store.Organizations(), auth.NewPolicy(nil))
	ctx := as(admin)

	created, err := svc.Create(ctx, organization.CreateOrganizationRequest{Name: "  Acme "})
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Name)

	_, err = svc.Create(ctx, organization.CreateOrganizationRequest{Name: "ACME"})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has(validator.KindTaken))

	_, err = svc.Create(ctx, organization.CreateOrganizationRequest{Name: ""})
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has(validator.KindBlank))

	updated, err := svc.Update(ctx, organization.UpdateOrganizationRequest{ID: created.ID, Name: strPtr("acme")})
	require.NoError(t, err)
	assert.Equal(t, "acme", updated.Name)

	list, err := svc.List(ctx, organization.OrganizationFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.TotalCount)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, organization.ErrOrganizationNotFound)
}

func TestOrganizationService_MembersOnlyShowOwn(t *testing.T) {
	store := servicetest.NewStore()
	acme := store.AddOrganization("Acme")
	globex := store.AddOrganization("Globex")
	orgAdmin := store.AddUser(user.User{Email: "boss@acme.mx", Role: user.RoleOrgAdmin, OrganizationID: &acme.ID})
	employee := store.AddUser(user.User{Email: "juan@acme.mx", Role: user.RoleEmployee, OrganizationID: &acme.ID})
	svc := NewOrganizationService(store.Organizations(), auth.NewPolicy(nil))

	for _, member := range []user.User{orgAdmin, employee} {
		ctx := as(member)

		got, err := svc.GetByID(ctx, acme.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Name)

		_, err = svc.GetByID(ctx, globex.ID)
		assert.ErrorIs(t, err, auth.ErrForbidden)

		_, err = svc.List(ctx, organization.OrganizationFilter{})
		assert.ErrorIs(t, err, auth.ErrForbidden)

		_, err = svc.Create(ctx, organization.CreateOrganizationRequest{Name: "Initech"})
		assert.ErrorIs(t, err, auth.ErrForbidden)

		_, err = svc.Update(ctx, organization.UpdateOrganizationRequest{ID: acme.ID, Name: strPtr("Acme 2")})
		assert.ErrorIs(t, err, auth.ErrForbidden)

		assert.ErrorIs(t, svc.Delete(ctx, acme.ID), auth.ErrForbidden)
	}
}

func TestOrganizationService_Delete_CascadesUsers(t *testing.T) {
	store := servicetest.NewStore()
	acme := store.AddOrganization("Acme")
	admin := store.AddUser(user.User{Email: "root@example.org", Role: user.RoleAdmin})
	employee := store.AddUser(user.User{Email: "juan@acme.mx", Role: user.RoleEmployee, OrganizationID: &acme.ID})
	svc := NewOrganizationService(store.Organizations(), auth.NewPolicy(nil))

	require.NoError(t, svc.Delete(as(admin), acme.ID))

	_, err := store.Users().GetByID(context.Background(), employee.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
