package organization

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type OrganizationServiceImpl struct {
	organization.OrganizationRepository
	policy *auth.Policy
}

func NewOrganizationService(organizationRepository organization.OrganizationRepository, policy *auth.Policy) organization.OrganizationService {
	return &OrganizationServiceImpl{
		OrganizationRepository: organizationRepository,
		policy:                 policy,
	}
}

func (s *OrganizationServiceImpl) authorize(ctx context.Context, action user.Permission, resource auth.Resource) error {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	return s.policy.Authorize(principal, action, resource)
}

// List implements organization.OrganizationService.
func (s *OrganizationServiceImpl) List(ctx context.Context, filter organization.OrganizationFilter) (organization.ListOrganizationResponse, error) {
	if err := s.authorize(ctx, user.PermissionOrganizationList, auth.AnyResource); err != nil {
		return organization.ListOrganizationResponse{}, err
	}

	filter.Page, filter.PerPage = utils.NormalizePage(filter.Page, filter.PerPage)
	orgs, total, err := s.OrganizationRepository.List(ctx, filter)
	if err != nil {
		return organization.ListOrganizationResponse{}, fmt.Errorf("failed to list organizations: %w", err)
	}

	resp := organization.ListOrganizationResponse{
		Organizations: make([]organization.OrganizationResponse, 0, len(orgs)),
		TotalCount:    total,
		Page:          filter.Page,
		PerPage:       filter.PerPage,
		TotalPages:    utils.TotalPages(total, filter.PerPage),
	}
	for _, o := range orgs {
		resp.Organizations = append(resp.Organizations, organization.ToResponse(o))
	}
	return resp, nil
}

// GetByID implements organization.OrganizationService.
func (s *OrganizationServiceImpl) GetByID(ctx context.Context, id string) (organization.OrganizationResponse, error) {
	if err := s.authorize(ctx, user.PermissionOrganizationView, auth.OrganizationResource(id)); err != nil {
		return organization.OrganizationResponse{}, err
	}

	org, err := s.OrganizationRepository.GetByID(ctx, id)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}
	return organization.ToResponse(org), nil
}

// Create implements organization.OrganizationService.
func (s *OrganizationServiceImpl) Create(ctx context.Context, req organization.CreateOrganizationRequest) (organization.OrganizationResponse, error) {
	if err := s.authorize(ctx, user.PermissionOrganizationCreate, auth.AnyResource); err != nil {
		return organization.OrganizationResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return organization.OrganizationResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.checkNameAvailable(ctx, name, nil); err != nil {
		return organization.OrganizationResponse{}, err
	}

	created, err := s.OrganizationRepository.Create(ctx, organization.Organization{Name: name})
	if err != nil {
		return organization.OrganizationResponse{}, err
	}
	return organization.ToResponse(created), nil
}

// Update implements organization.OrganizationService.
func (s *OrganizationServiceImpl) Update(ctx context.Context, req organization.UpdateOrganizationRequest) (organization.OrganizationResponse, error) {
	if err := s.authorize(ctx, user.PermissionOrganizationUpdate, auth.OrganizationResource(req.ID)); err != nil {
		return organization.OrganizationResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return organization.OrganizationResponse{}, err
	}

	org, err := s.OrganizationRepository.GetByID(ctx, req.ID)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := s.checkNameAvailable(ctx, name, &org.ID); err != nil {
			return organization.OrganizationResponse{}, err
		}
		org.Name = name
	}

	updated, err := s.OrganizationRepository.Update(ctx, org)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}
	return organization.ToResponse(updated), nil
}

// Delete implements organization.OrganizationService.
func (s *OrganizationServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.authorize(ctx, user.PermissionOrganizationDelete, auth.OrganizationResource(id)); err != nil {
		return err
	}
	return s.OrganizationRepository.Delete(ctx, id)
}

func (s *OrganizationServiceImpl) checkNameAvailable(ctx context.Context, name string, excludeID *string) error {
	exists, err := s.OrganizationRepository.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check organization name: %w", err)
	}
	if exists {
		return validator.ValidationErrors{{Field: "name", Kind: validator.KindTaken}}
	}
	return nil
}
