package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

func hour(n int) time.Time { return base.Add(time.Duration(n) * time.Hour) }

func TestAttendanceRepository_Create_Success(t *testing.T) {
	db := setupTestDB(t)
	org := createTestOrganization(t, db, "Acme")
	second := "López"
	employee, err := postgresql.NewUserRepository(db).Create(context.Background(), user.User{
		Email: "juan@acme.mx", PasswordHash: "x", Role: user.RoleEmployee, OrganizationID: &org.ID,
		Name: "Juan", Surname: "Pérez", SecondSurname: &second, Timezone: "UTC",
	})
	require.NoError(t, err)

	a := createTestAttendance(t, db, employee.ID, hour(0), timePtr(hour(1)))

	assert.NotEmpty(t, a.ID)
	assert.True(t, a.EnteredAt.Equal(hour(0)))
	assert.True(t, a.LeftAt.Equal(hour(1)))
	assert.Equal(t, "Juan Pérez López", a.EmployeeFullName)
}

func TestAttendanceRepository_Create_OverlapRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	org := createTestOrganization(t, db, "Acme")
	employee := createTestUser(t, db, &org.ID, "juan@acme.mx", user.RoleEmployee)
	createTestAttendance(t, db, employee.ID, hour(0), timePtr(hour(2)))

	_, err := repo.Create(context.Background(), attendance.Attendance{
		EmployeeID: employee.ID, EnteredAt: hour(1), LeftAt: timePtr(hour(3)), Timezone: "UTC",
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, map[string][]string{validator.Base: {attendance.KindOverlap}}, errs.ToMap())

	// Touching intervals are accepted.
	createTestAttendance(t, db, employee.ID, hour(2), timePtr(hour(3)))
}

func TestAttendanceRepository_Create_SecondOpenRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	org := createTestOrganization(t, db, "Acme")
	employee := createTestUser(t, db, &org.ID, "juan@acme.mx", user.RoleEmployee)
	createTestAttendance(t, db, employee.ID, hour(0), nil)

	_, err := repo.Create(context.Background(), attendance.Attendance{
		EmployeeID: employee.ID, EnteredAt: hour(3), Timezone: "UTC",
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has(attendance.KindOverlap) || errs.Has(attendance.KindOnlyOneOpen))
}

func TestAttendanceRepository_Create_OtherEmployeesDoNotConflict(t *testing.T) {
	db := setupTestDB(t)
	org := createTestOrganization(t, db, "Acme")
	juan := createTestUser(t, db, &org.ID, "juan@acme.mx", user.RoleEmployee)
	ana := createTestUser(t, db, &org.ID, "ana@acme.mx", user.RoleEmployee)

	createTestAttendance(t, db, juan.ID, hour(0), nil)
	createTestAttendance(t, db, ana.ID, hour(0), nil)
}

func TestAttendanceRepository_GetLatestByEmployee(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	org := createTestOrganization(t, db, "Acme")
	employee := createTestUser(t, db, &org.ID, "juan@acme.mx", user.RoleEmployee)

	_, err := repo.GetLatestByEmployee(ctx, employee.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	createTestAttendance(t, db, employee.ID, hour(0), timePtr(hour(1)))
	last := createTestAttendance(t, db, employee.ID, hour(2), timePtr(hour(3)))

	latest, err := repo.GetLatestByEmployee(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, last.ID, latest.ID)

	current := createTestAttendance(t, db, employee.ID, hour(4), nil)
	latest, err = repo.GetLatestByEmployee(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, current.ID, latest.ID)
	assert.True(t, latest.IsOpen())
}

func TestAttendanceRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	org := createTestOrganization(t, db, "Acme")
	employee := createTestUser(t, db, &org.ID, "juan@acme.mx", user.RoleEmployee)
	a := createTestAttendance(t, db, employee.ID, hour(0), nil)

	a.LeftAt = timePtr(hour(1))
	a.Timezone = "America/Mexico_City"
	updated, err := repo.Update(ctx, a)
	require.NoError(t, err)
	assert.True(t, updated.LeftAt.Equal(hour(1)))
	assert.Equal(t, "America/Mexico_City", updated.Timezone)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_List_ByOrganization(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	acme := createTestOrganization(t, db, "Acme")
	globex := createTestOrganization(t, db, "Globex")
	juan := createTestUser(t, db, &acme.ID, "juan@acme.mx", user.RoleEmployee)
	ana := createTestUser(t, db, &acme.ID, "ana@acme.mx", user.RoleEmployee)
	homer := createTestUser(t, db, &globex.ID, "homer@globex.mx", user.RoleEmployee)

	createTestAttendance(t, db, juan.ID, hour(0), timePtr(hour(1)))
	newest := createTestAttendance(t, db, ana.ID, hour(2), timePtr(hour(3)))
	createTestAttendance(t, db, homer.ID, hour(0), timePtr(hour(1)))

	list, total, err := repo.List(ctx, attendance.AttendanceFilter{OrganizationID: &acme.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, newest.ID, list[0].ID)

	list, total, err = repo.List(ctx, attendance.AttendanceFilter{EmployeeID: &homer.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, homer.ID, list[0].EmployeeID)
}

// Two concurrent check-ins serialize on the employee row lock, so only one
// sees no open interval.
func TestAttendanceRepository_ConcurrentCheckIns(t *testing.T) {
	db := setupTestDB(t)
	org := createTestOrganization(t, db, "Acme")
	employee := createTestUser(t, db, &org.ID, "juan@acme.mx", user.RoleEmployee)

	tx := postgresql.NewTransactor(db)
	users := postgresql.NewUserRepository(db)
	attendances := postgresql.NewAttendanceRepository(db)

	checkIn := func() error {
		return tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
			if _, err := users.GetByIDForUpdate(ctx, employee.ID); err != nil {
				return err
			}
			existing, err := attendances.ListByEmployee(ctx, employee.ID)
			if err != nil {
				return err
			}
			for _, a := range existing {
				if a.IsOpen() {
					return attendance.ErrAlreadyCheckedIn
				}
			}
			_, err = attendances.Create(ctx, attendance.Attendance{
				EmployeeID: employee.ID, EnteredAt: time.Now().UTC(), Timezone: "UTC",
			})
			return err
		})
	}

	const workers = 5
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- checkIn()
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	}
	assert.Equal(t, 1, succeeded)

	all, err := attendances.ListByEmployee(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
