package organization

import "context"

type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (Organization, error)
	// ExistsByName compares names case-insensitively, ignoring excludeID when set.
	ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error)
	List(ctx context.Context, filter OrganizationFilter) ([]Organization, int64, error)
	Create(ctx context.Context, org Organization) (Organization, error)
	Update(ctx context.Context, org Organization) (Organization, error)
	Delete(ctx context.Context, id string) error
}
