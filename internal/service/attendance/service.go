package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
)

// AttendanceServiceImpl runs every attendance write as lock employee, read the
// employee's attendances, validate, persist, all inside one transaction.
type AttendanceServiceImpl struct {
	tx postgresql.Transactor
	attendance.AttendanceRepository
	userRepository user.UserRepository
	validator      *attendance.IntervalValidator
	policy         *auth.Policy
	clock          clock.Clock
	metrics        *metrics.Metrics
}

func NewAttendanceService(
	tx postgresql.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	intervalValidator *attendance.IntervalValidator,
	policy *auth.Policy,
	c clock.Clock,
	m *metrics.Metrics,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		userRepository:       userRepository,
		validator:            intervalValidator,
		policy:               policy,
		clock:                c,
		metrics:              m,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if principal.Role != user.RoleEmployee {
		return attendance.AttendanceResponse{}, attendance.ErrNotEmployee
	}

	var created attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		employee, err := s.lockEmployee(ctx, principal.UserID)
		if err != nil {
			return err
		}
		if !employee.IsEmployee() {
			return attendance.ErrNotEmployee
		}
		if err := s.policy.Authorize(principal, user.PermissionAttendanceCheckIn, auth.AttendanceResource(employee)); err != nil {
			return err
		}

		candidate := attendance.Attendance{
			EmployeeID: employee.ID,
			EnteredAt:  s.clock.Now(),
			Timezone:   employee.Timezone,
		}
		if err := s.validate(ctx, candidate, &employee); err != nil {
			var errs validator.ValidationErrors
			if errors.As(err, &errs) && errs.Has(attendance.KindOnlyOneOpen) {
				return fmt.Errorf("%w: %w", attendance.ErrAlreadyCheckedIn, err)
			}
			return err
		}

		created, err = s.AttendanceRepository.Create(ctx, candidate)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.metrics.RecordCheckIn()
	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if principal.Role != user.RoleEmployee {
		return attendance.AttendanceResponse{}, attendance.ErrNotEmployee
	}

	var updated attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		employee, err := s.lockEmployee(ctx, principal.UserID)
		if err != nil {
			return err
		}
		if !employee.IsEmployee() {
			return attendance.ErrNotEmployee
		}
		if err := s.policy.Authorize(principal, user.PermissionAttendanceCheckOut, auth.AttendanceResource(employee)); err != nil {
			return err
		}

		latest, err := s.AttendanceRepository.GetLatestByEmployee(ctx, employee.ID)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrUserDidNotCheckIn
			}
			return fmt.Errorf("failed to get latest attendance: %w", err)
		}
		if !latest.IsOpen() {
			return attendance.ErrUserAlreadyCheckedOut
		}

		now := s.clock.Now()
		latest.LeftAt = &now
		if err := s.validate(ctx, latest, nil); err != nil {
			return err
		}

		updated, err = s.AttendanceRepository.Update(ctx, latest)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.metrics.RecordCheckOut()
	return attendance.ToResponse(updated), nil
}

// GetByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	employee, err := s.getEmployee(ctx, a.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.policy.Authorize(principal, user.PermissionAttendanceView, auth.AttendanceResource(employee)); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(a), nil
}

// ListByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if err := s.policy.Authorize(principal, user.PermissionAttendanceList, auth.AttendanceResource(employee)); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	filter.EmployeeID = &employee.ID
	filter.OrganizationID = nil
	return s.list(ctx, filter)
}

// ListByOrganization implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByOrganization(ctx context.Context, organizationID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if err := s.policy.Authorize(principal, user.PermissionOrganizationListAttendances, auth.OrganizationResource(organizationID)); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	filter.EmployeeID = nil
	filter.OrganizationID = &organizationID
	return s.list(ctx, filter)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.Page, filter.PerPage = utils.NormalizePage(filter.Page, filter.PerPage)
	attendances, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	resp := attendance.ListAttendanceResponse{
		Attendances: make([]attendance.AttendanceResponse, 0, len(attendances)),
		TotalCount:  total,
		Page:        filter.Page,
		PerPage:     filter.PerPage,
		TotalPages:  utils.TotalPages(total, filter.PerPage),
	}
	for _, a := range attendances {
		resp.Attendances = append(resp.Attendances, attendance.ToResponse(a))
	}
	return resp, nil
}

// Create implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var created attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		employee, err := s.lockEmployee(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if err := s.policy.Authorize(principal, user.PermissionAttendanceCreate, auth.AttendanceResource(employee)); err != nil {
			return err
		}
		if err := req.Validate(); err != nil {
			return err
		}

		enteredAt, leftAt := req.Times()
		candidate := attendance.Attendance{
			EmployeeID: employee.ID,
			EnteredAt:  enteredAt,
			LeftAt:     leftAt,
			Timezone:   req.Timezone,
		}
		if validator.IsEmpty(candidate.Timezone) {
			candidate.Timezone = employee.Timezone
		}
		if err := s.validate(ctx, candidate, &employee); err != nil {
			return err
		}

		created, err = s.AttendanceRepository.Create(ctx, candidate)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(created), nil
}

// Update implements attendance.AttendanceService. Moving an attendance to
// another employee needs permission over both employees.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		owner, err := s.lockEmployee(ctx, current.EmployeeID)
		if err != nil {
			return err
		}
		if err := s.policy.Authorize(principal, user.PermissionAttendanceUpdate, auth.AttendanceResource(owner)); err != nil {
			return err
		}
		if err := req.Validate(); err != nil {
			return err
		}

		// Re-read under the owner's lock.
		current, err = s.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		candidate := req.Apply(current)

		var newOwner *user.User
		if candidate.EmployeeID != current.EmployeeID {
			target, err := s.lockEmployee(ctx, candidate.EmployeeID)
			if err != nil {
				return err
			}
			if err := s.policy.Authorize(principal, user.PermissionAttendanceUpdate, auth.AttendanceResource(target)); err != nil {
				return err
			}
			newOwner = &target
		}

		if err := s.validate(ctx, candidate, newOwner); err != nil {
			return err
		}

		updated, err = s.AttendanceRepository.Update(ctx, candidate)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(updated), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.AttendanceRepository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		owner, err := s.lockEmployee(ctx, current.EmployeeID)
		if err != nil {
			return err
		}
		if err := s.policy.Authorize(principal, user.PermissionAttendanceDelete, auth.AttendanceResource(owner)); err != nil {
			return err
		}
		return s.AttendanceRepository.Delete(ctx, id)
	})
}

// validate checks candidate against the employee's stored attendances. It
// must run inside the transaction that holds the employee lock.
func (s *AttendanceServiceImpl) validate(ctx context.Context, candidate attendance.Attendance, employee *user.User) error {
	existing, err := s.AttendanceRepository.ListByEmployee(ctx, candidate.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to list employee attendances: %w", err)
	}

	errs := s.validator.Validate(candidate, employee, existing)
	if len(errs) == 0 {
		return nil
	}

	kinds := make([]string, 0, len(errs))
	for _, e := range errs {
		kinds = append(kinds, e.Kind)
	}
	s.metrics.RecordValidationFailure(kinds...)
	slog.Debug("attendance rejected", "employee_id", candidate.EmployeeID, "errors", errs.Error())
	return errs
}

// lockEmployee loads the user and holds its row lock until the transaction ends.
func (s *AttendanceServiceImpl) lockEmployee(ctx context.Context, id string) (user.User, error) {
	u, err := s.userRepository.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, attendance.ErrEmployeeNotFound
		}
		return user.User{}, fmt.Errorf("failed to lock employee: %w", err)
	}
	return u, nil
}

func (s *AttendanceServiceImpl) getEmployee(ctx context.Context, id string) (user.User, error) {
	u, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, attendance.ErrEmployeeNotFound
		}
		return user.User{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return u, nil
}
