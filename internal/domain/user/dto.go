package user

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// UserResponse represents user data in API responses
type UserResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	OrganizationID *string `json:"organization_id"`
	Name           string  `json:"name"`
	Surname        string  `json:"surname"`
	SecondSurname  *string `json:"second_surname"`
	Timezone       string  `json:"timezone"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// CreateUserRequest represents request to create a user inside an organization.
// OrganizationID comes from the route, never from the body.
type CreateUserRequest struct {
	OrganizationID string  `json:"-"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Role           string  `json:"role"`
	Name           string  `json:"name"`
	Surname        string  `json:"surname"`
	SecondSurname  *string `json:"second_surname,omitempty"`
	Timezone       string  `json:"timezone"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", validator.KindBlank)
	} else if !validator.IsValidEmail(NormalizeEmail(r.Email)) {
		errs.Add("email", validator.KindInvalid)
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", validator.KindBlank)
	} else if len(r.Password) < MinPasswordLength {
		errs.Add("password", validator.KindTooShort)
	}

	switch {
	case validator.IsEmpty(r.Role):
		errs.Add("role", validator.KindBlank)
	case Role(r.Role) == RoleAdmin:
		// Admins have no organization, so none can be created inside one.
		errs.Add("role", KindRoleNotAllowed)
	case !Role(r.Role).IsValid():
		errs.Add("role", validator.KindInvalid)
	}

	if validator.IsEmpty(r.OrganizationID) {
		errs.Add("organization_id", validator.KindBlank)
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", validator.KindBlank)
	}
	if validator.IsEmpty(r.Surname) {
		errs.Add("surname", validator.KindBlank)
	}
	if !validator.IsEmpty(r.Timezone) && !validator.IsValidTimezone(r.Timezone) {
		errs.Add("timezone", validator.KindInvalid)
	}

	return errs.OrNil()
}

// UpdateUserRequest represents request to update a user profile.
// Role and organization cannot be changed through it.
type UpdateUserRequest struct {
	ID            string  `json:"-"`
	Email         *string `json:"email,omitempty"`
	Password      *string `json:"password,omitempty"`
	Name          *string `json:"name,omitempty"`
	Surname       *string `json:"surname,omitempty"`
	SecondSurname *string `json:"second_surname,omitempty"`
	Timezone      *string `json:"timezone,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", validator.KindBlank)
	}

	if r.Email != nil {
		if validator.IsEmpty(*r.Email) {
			errs.Add("email", validator.KindBlank)
		} else if !validator.IsValidEmail(NormalizeEmail(*r.Email)) {
			errs.Add("email", validator.KindInvalid)
		}
	}

	if r.Password != nil {
		if validator.IsEmpty(*r.Password) {
			errs.Add("password", validator.KindBlank)
		} else if len(*r.Password) < MinPasswordLength {
			errs.Add("password", validator.KindTooShort)
		}
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", validator.KindBlank)
	}
	if r.Surname != nil && validator.IsEmpty(*r.Surname) {
		errs.Add("surname", validator.KindBlank)
	}
	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs.Add("timezone", validator.KindInvalid)
	}

	return errs.OrNil()
}

// UserFilter narrows an organization's user list.
type UserFilter struct {
	OrganizationID string
	Role           *Role
	Page           int
	PerPage        int
}

func (f *UserFilter) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(f.OrganizationID) {
		errs.Add("organization_id", validator.KindBlank)
	}
	if f.Role != nil && !f.Role.IsValid() {
		errs.Add("role", validator.KindInvalid)
	}
	return errs.OrNil()
}

// ListUserResponse is one page of users.
type ListUserResponse struct {
	Users      []UserResponse `json:"users"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}

// ToResponse converts a user entity for the API, dropping credentials.
func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Role:           string(u.Role),
		OrganizationID: u.OrganizationID,
		Name:           u.Name,
		Surname:        u.Surname,
		SecondSurname:  u.SecondSurname,
		Timezone:       u.Timezone,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      u.UpdatedAt.Format(time.RFC3339),
	}
}
