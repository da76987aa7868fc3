package organization

import "context"

type OrganizationService interface {
	List(ctx context.Context, filter OrganizationFilter) (ListOrganizationResponse, error)
	GetByID(ctx context.Context, id string) (OrganizationResponse, error)
	Create(ctx context.Context, req CreateOrganizationRequest) (OrganizationResponse, error)
	Update(ctx context.Context, req UpdateOrganizationRequest) (OrganizationResponse, error)
	// Delete removes the organization with its users and their attendances.
	Delete(ctx context.Context, id string) error
}
