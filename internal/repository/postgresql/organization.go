package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5"
)

type organizationRepositoryImpl struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepositoryImpl{db: db}
}

func scanOrganization(row pgx.Row) (organization.Organization, error) {
	var o organization.Organization
	if err := row.Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, err
	}
	return o, nil
}

// GetByID implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT id, name, created_at, updated_at FROM organizations WHERE id = $1`
	return scanOrganization(q.QueryRow(ctx, query, id))
}

// ExistsByName implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM organizations WHERE lower(name) = lower($1) AND ($2::uuid IS NULL OR id <> $2))`

	var exists bool
	if err := q.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// List implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) List(ctx context.Context, filter organization.OrganizationFilter) ([]organization.Organization, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM organizations`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count organizations: %w", err)
	}

	limit, offset := utils.LimitOffset(filter.Page, filter.PerPage)
	rows, err := q.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM organizations
		ORDER BY name, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []organization.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, err
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return orgs, total, nil
}

// Create implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) Create(ctx context.Context, org organization.Organization) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO organizations (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at`

	created, err := scanOrganization(q.QueryRow(ctx, query, org.Name))
	if err != nil {
		return organization.Organization{}, mapPgError(err)
	}
	return created, nil
}

// Update implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) Update(ctx context.Context, org organization.Organization) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organizations
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`

	updated, err := scanOrganization(q.QueryRow(ctx, query, org.ID, org.Name))
	if err != nil {
		return organization.Organization{}, mapPgError(err)
	}
	return updated, nil
}

// Delete implements organization.OrganizationRepository. Users and their
// attendances are removed by cascade.
func (r *organizationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrOrganizationNotFound
	}
	return nil
}
