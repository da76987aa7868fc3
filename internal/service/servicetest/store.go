// Package servicetest provides in-memory repositories for service tests.
package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// Store keeps organizations, users and attendances in memory. Its
// transactor serializes units of work, standing in for row locks.
type Store struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	now   func() time.Time
	orgs  map[string]organization.Organization
	users map[string]user.User
	atts  map[string]attendance.Attendance
}

func NewStore() *Store {
	return &Store{
		now:   func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
		orgs:  make(map[string]organization.Organization),
		users: make(map[string]user.User),
		atts:  make(map[string]attendance.Attendance),
	}
}

func newID() string {
	return uuid.NewString()
}

func (s *Store) Organizations() organization.OrganizationRepository { return &orgRepo{s} }
func (s *Store) Users() user.UserRepository                         { return &userRepo{s} }
func (s *Store) Attendances() attendance.AttendanceRepository       { return &attendanceRepo{s} }

// WithinTransaction runs fn while holding the store-wide transaction lock.
// Nested transactions are not supported.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

// AddOrganization seeds an organization.
func (s *Store) AddOrganization(name string) organization.Organization {
	org, _ := s.Organizations().Create(context.Background(), organization.Organization{Name: name})
	return org
}

// AddUser seeds a user. OrganizationID is ignored for admins.
func (s *Store) AddUser(u user.User) user.User {
	if u.Role == user.RoleAdmin {
		u.OrganizationID = nil
	}
	if u.Timezone == "" {
		u.Timezone = "UTC"
	}
	if u.Name == "" {
		u.Name = "Test"
	}
	if u.Surname == "" {
		u.Surname = "User"
	}
	created, err := s.Users().Create(context.Background(), u)
	if err != nil {
		panic(err)
	}
	return created
}

// AddAttendance seeds an attendance without validation.
func (s *Store) AddAttendance(a attendance.Attendance) attendance.Attendance {
	if a.Timezone == "" {
		a.Timezone = "UTC"
	}
	created, err := s.Attendances().Create(context.Background(), a)
	if err != nil {
		panic(err)
	}
	return created
}

// AttendancesOf returns the stored attendances of an employee, oldest first.
func (s *Store) AttendancesOf(employeeID string) []attendance.Attendance {
	all, _ := s.Attendances().ListByEmployee(context.Background(), employeeID)
	return all
}

type orgRepo struct{ s *Store }

func (r *orgRepo) GetByID(_ context.Context, id string) (organization.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orgs[id]
	if !ok {
		return organization.Organization{}, organization.ErrOrganizationNotFound
	}
	return o, nil
}

func (r *orgRepo) ExistsByName(_ context.Context, name string, excludeID *string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orgs {
		if excludeID != nil && o.ID == *excludeID {
			continue
		}
		if strings.EqualFold(o.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *orgRepo) List(_ context.Context, filter organization.OrganizationFilter) ([]organization.Organization, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []organization.Organization
	for _, o := range r.s.orgs {
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, filter.Page, filter.PerPage), int64(len(all)), nil
}

func (r *orgRepo) Create(ctx context.Context, org organization.Organization) (organization.Organization, error) {
	if exists, _ := r.ExistsByName(ctx, org.Name, nil); exists {
		return organization.Organization{}, validator.ValidationErrors{{Field: "name", Kind: validator.KindTaken}}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	org.ID = newID()
	org.CreatedAt, org.UpdatedAt = r.s.now(), r.s.now()
	r.s.orgs[org.ID] = org
	return org, nil
}

func (r *orgRepo) Update(_ context.Context, org organization.Organization) (organization.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orgs[org.ID]
	if !ok {
		return organization.Organization{}, organization.ErrOrganizationNotFound
	}
	stored.Name = org.Name
	stored.UpdatedAt = r.s.now()
	r.s.orgs[org.ID] = stored
	return stored, nil
}

func (r *orgRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orgs[id]; !ok {
		return organization.ErrOrganizationNotFound
	}
	delete(r.s.orgs, id)
	for uid, u := range r.s.users {
		if u.BelongsTo(id) {
			r.s.deleteUserLocked(uid)
		}
	}
	return nil
}

type userRepo struct{ s *Store }

func (r *userRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepo) GetByIDForUpdate(ctx context.Context, id string) (user.User, error) {
	return r.GetByID(ctx, id)
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepo) ExistsByEmail(_ context.Context, email string, excludeID *string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if excludeID != nil && u.ID == *excludeID {
			continue
		}
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) List(_ context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []user.User
	for _, u := range r.s.users {
		if !u.BelongsTo(filter.OrganizationID) {
			continue
		}
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return paginate(all, filter.Page, filter.PerPage), int64(len(all)), nil
}

func (r *userRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	if exists, _ := r.ExistsByEmail(ctx, newUser.Email, nil); exists {
		return user.User{}, validator.ValidationErrors{{Field: "email", Kind: validator.KindTaken}}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newUser.ID = newID()
	newUser.CreatedAt, newUser.UpdatedAt = r.s.now(), r.s.now()
	r.s.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *userRepo) Update(_ context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.users[u.ID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	stored.Email = u.Email
	stored.PasswordHash = u.PasswordHash
	stored.Name = u.Name
	stored.Surname = u.Surname
	stored.SecondSurname = u.SecondSurname
	stored.Timezone = u.Timezone
	stored.UpdatedAt = r.s.now()
	r.s.users[u.ID] = stored
	return stored, nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return user.ErrUserNotFound
	}
	r.s.deleteUserLocked(id)
	return nil
}

func (s *Store) deleteUserLocked(id string) {
	delete(s.users, id)
	for aid, a := range s.atts {
		if a.EmployeeID == id {
			delete(s.atts, aid)
		}
	}
}

type attendanceRepo struct{ s *Store }

func (r *attendanceRepo) withName(a attendance.Attendance) attendance.Attendance {
	if u, ok := r.s.users[a.EmployeeID]; ok {
		a.EmployeeFullName = u.FullName()
	}
	return a
}

func (r *attendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.atts[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.withName(a), nil
}

func (r *attendanceRepo) ListByEmployee(_ context.Context, employeeID string) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []attendance.Attendance
	for _, a := range r.s.atts {
		if a.EmployeeID == employeeID {
			all = append(all, r.withName(a))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].EnteredAt.Before(all[j].EnteredAt) })
	return all, nil
}

func (r *attendanceRepo) GetLatestByEmployee(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	all, _ := r.ListByEmployee(ctx, employeeID)
	if len(all) == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	latest := all[0]
	for _, a := range all[1:] {
		switch {
		case latest.IsOpen():
		case a.IsOpen():
			latest = a
		case a.LeftAt.After(*latest.LeftAt):
			latest = a
		}
	}
	return latest, nil
}

func (r *attendanceRepo) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []attendance.Attendance
	for _, a := range r.s.atts {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.OrganizationID != nil {
			owner := r.s.users[a.EmployeeID]
			if !owner.BelongsTo(*filter.OrganizationID) {
				continue
			}
		}
		all = append(all, r.withName(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].EnteredAt.After(all[j].EnteredAt) })
	return paginate(all, filter.Page, filter.PerPage), int64(len(all)), nil
}

func (r *attendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = newID()
	a.CreatedAt, a.UpdatedAt = r.s.now(), r.s.now()
	r.s.atts[a.ID] = a
	return r.withName(a), nil
}

func (r *attendanceRepo) Update(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.atts[a.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	a.UpdatedAt = r.s.now()
	r.s.atts[a.ID] = a
	return r.withName(a), nil
}

func (r *attendanceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.atts[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.s.atts, id)
	return nil
}

func paginate[T any](items []T, page, perPage int) []T {
	limit, offset := utils.LimitOffset(page, perPage)
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
