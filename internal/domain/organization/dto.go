package organization

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const maxNameLength = 255

type OrganizationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

func (r *CreateOrganizationRequest) Validate() error {
	var errs validator.ValidationErrors
	validateName(&errs, r.Name)
	return errs.OrNil()
}

type UpdateOrganizationRequest struct {
	ID   string  `json:"-"`
	Name *string `json:"name,omitempty"`
}

func (r *UpdateOrganizationRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", validator.KindBlank)
	}
	if r.Name != nil {
		validateName(&errs, *r.Name)
	}
	return errs.OrNil()
}

func validateName(errs *validator.ValidationErrors, name string) {
	if validator.IsEmpty(name) {
		errs.Add("name", validator.KindBlank)
	} else if len(strings.TrimSpace(name)) > maxNameLength {
		errs.Add("name", validator.KindTooLong)
	}
}

type OrganizationFilter struct {
	Page    int
	PerPage int
}

type ListOrganizationResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
	TotalCount    int64                  `json:"total_count"`
	Page          int                    `json:"page"`
	PerPage       int                    `json:"per_page"`
	TotalPages    int                    `json:"total_pages"`
}

func ToResponse(o Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		UpdatedAt: o.UpdatedAt.Format(time.RFC3339),
	}
}
