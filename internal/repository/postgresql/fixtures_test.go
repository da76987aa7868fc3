package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

func createTestOrganization(t *testing.T, db *database.DB, name string) organization.Organization {
	t.Helper()
	org, err := postgresql.NewOrganizationRepository(db).Create(context.Background(), organization.Organization{Name: name})
	require.NoError(t, err)
	return org
}

func createTestUser(t *testing.T, db *database.DB, orgID *string, email string, role user.Role) user.User {
	t.Helper()
	u, err := postgresql.NewUserRepository(db).Create(context.Background(), user.User{
		Email:          email,
		PasswordHash:   "$2a$10$abcdefghijklmnopqrstuv",
		Role:           role,
		OrganizationID: orgID,
		Name:           "Juan",
		Surname:        "Pérez",
		Timezone:       "America/Mexico_City",
	})
	require.NoError(t, err)
	return u
}

func createTestAttendance(t *testing.T, db *database.DB, employeeID string, enteredAt time.Time, leftAt *time.Time) attendance.Attendance {
	t.Helper()
	a, err := postgresql.NewAttendanceRepository(db).Create(context.Background(), attendance.Attendance{
		EmployeeID: employeeID,
		EnteredAt:  enteredAt,
		LeftAt:     leftAt,
		Timezone:   "UTC",
	})
	require.NoError(t, err)
	return a
}

func timePtr(t time.Time) *time.Time { return &t }
