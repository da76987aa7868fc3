package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	organizationRepo organization.OrganizationRepository
	policy           *auth.Policy
	defaultTimezone  string
}

func NewUserService(userRepository user.UserRepository, organizationRepository organization.OrganizationRepository, policy *auth.Policy, defaultTimezone string) user.UserService {
	return &UserServiceImpl{
		UserRepository:   userRepository,
		organizationRepo: organizationRepository,
		policy:           policy,
		defaultTimezone:  defaultTimezone,
	}
}

// HashPassword hashes a plain password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Me implements user.UserService.
func (s *UserServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	me, err := s.UserRepository.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, auth.ErrUnauthorized
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user.ToResponse(me), nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	target, err := s.authorizeTarget(ctx, user.PermissionUserView, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(target), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return user.ListUserResponse{}, err
	}
	if err := s.policy.Authorize(principal, user.PermissionUserList, auth.OrganizationResource(filter.OrganizationID)); err != nil {
		return user.ListUserResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return user.ListUserResponse{}, err
	}
	if _, err := s.organizationRepo.GetByID(ctx, filter.OrganizationID); err != nil {
		return user.ListUserResponse{}, err
	}

	filter.Page, filter.PerPage = utils.NormalizePage(filter.Page, filter.PerPage)
	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	resp := user.ListUserResponse{
		Users:      make([]user.UserResponse, 0, len(users)),
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalPages: utils.TotalPages(total, filter.PerPage),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, user.ToResponse(u))
	}
	return resp, nil
}

// Create implements user.UserService. Admins cannot be created here; the
// request fails validation with role not_allowed_in_organization.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := s.policy.Authorize(principal, user.PermissionUserCreate, auth.OrganizationResource(req.OrganizationID)); err != nil {
		return user.UserResponse{}, err
	}

	errs, err := validationErrors(req.Validate())
	if err != nil {
		return user.UserResponse{}, err
	}
	email := user.NormalizeEmail(req.Email)
	if !errs.HasField("email") {
		if err := s.checkEmailAvailable(ctx, &errs, email, nil); err != nil {
			return user.UserResponse{}, err
		}
	}
	if err := errs.OrNil(); err != nil {
		return user.UserResponse{}, err
	}

	if _, err := s.organizationRepo.GetByID(ctx, req.OrganizationID); err != nil {
		return user.UserResponse{}, err
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	timezone := req.Timezone
	if validator.IsEmpty(timezone) {
		timezone = s.defaultTimezone
	}
	organizationID := req.OrganizationID

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:          email,
		PasswordHash:   passwordHash,
		Role:           user.Role(req.Role),
		OrganizationID: &organizationID,
		Name:           strings.TrimSpace(req.Name),
		Surname:        strings.TrimSpace(req.Surname),
		SecondSurname:  trimmedOrNil(req.SecondSurname),
		Timezone:       timezone,
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(created), nil
}

// Update implements user.UserService. Role and organization never change.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	target, err := s.authorizeTarget(ctx, user.PermissionUserUpdate, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	errs, err := validationErrors(req.Validate())
	if err != nil {
		return user.UserResponse{}, err
	}
	if req.Email != nil && !errs.HasField("email") {
		if err := s.checkEmailAvailable(ctx, &errs, user.NormalizeEmail(*req.Email), &target.ID); err != nil {
			return user.UserResponse{}, err
		}
	}
	if err := errs.OrNil(); err != nil {
		return user.UserResponse{}, err
	}

	if req.Email != nil {
		target.Email = user.NormalizeEmail(*req.Email)
	}
	if req.Password != nil {
		if target.PasswordHash, err = HashPassword(*req.Password); err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
	}
	if req.Name != nil {
		target.Name = strings.TrimSpace(*req.Name)
	}
	if req.Surname != nil {
		target.Surname = strings.TrimSpace(*req.Surname)
	}
	if req.SecondSurname != nil {
		target.SecondSurname = trimmedOrNil(req.SecondSurname)
	}
	if req.Timezone != nil {
		target.Timezone = *req.Timezone
	}

	updated, err := s.UserRepository.Update(ctx, target)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated), nil
}

// Delete implements user.UserService. The user's attendances go with it.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.authorizeTarget(ctx, user.PermissionUserDelete, id); err != nil {
		return err
	}
	return s.UserRepository.Delete(ctx, id)
}

func (s *UserServiceImpl) authorizeTarget(ctx context.Context, action user.Permission, id string) (user.User, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return user.User{}, err
	}

	target, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, err
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := s.policy.Authorize(principal, action, auth.UserResource(target)); err != nil {
		return user.User{}, err
	}
	return target, nil
}

func (s *UserServiceImpl) checkEmailAvailable(ctx context.Context, errs *validator.ValidationErrors, email string, excludeID *string) error {
	exists, err := s.UserRepository.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		errs.Add("email", validator.KindTaken)
	}
	return nil
}

// validationErrors unwraps the result of a Validate call so more errors can be appended.
func validationErrors(err error) (validator.ValidationErrors, error) {
	if err == nil {
		return nil, nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return errs, nil
	}
	return nil, err
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
