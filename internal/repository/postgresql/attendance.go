package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5"
)

// attendanceSelect joins the employee to build employee_fullname.
const attendanceSelect = `
	SELECT a.id, a.employee_id, a.entered_at, a.left_at, a.timezone, a.created_at, a.updated_at,
		concat_ws(' ', u.name, u.surname, NULLIF(u.second_surname, ''))
	FROM attendances a
	JOIN users u ON u.id = a.employee_id`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.EnteredAt,
		&a.LeftAt,
		&a.Timezone,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.EmployeeFullName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	a.EnteredAt = a.EnteredAt.UTC()
	if a.LeftAt != nil {
		leftAt := a.LeftAt.UTC()
		a.LeftAt = &leftAt
	}
	return a, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		attendances = append(attendances, a)
	}
	return attendances, rows.Err()
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	return scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, attendanceSelect+` WHERE a.employee_id = $1 ORDER BY a.entered_at, a.id`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list attendances by employee: %w", err)
	}
	return collectAttendances(rows)
}

// GetLatestByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetLatestByEmployee(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + `
		WHERE a.employee_id = $1
		ORDER BY a.left_at DESC NULLS FIRST, a.entered_at DESC
		LIMIT 1`
	return scanAttendance(q.QueryRow(ctx, query, employeeID))
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `
		WHERE ($1::uuid IS NULL OR a.employee_id = $1)
		AND ($2::uuid IS NULL OR u.organization_id = $2)`

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a JOIN users u ON u.id = a.employee_id` + where
	if err := q.QueryRow(ctx, countQuery, filter.EmployeeID, filter.OrganizationID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count attendances: %w", err)
	}

	limit, offset := utils.LimitOffset(filter.Page, filter.PerPage)
	query := attendanceSelect + where + `
		ORDER BY a.entered_at DESC, a.id
		LIMIT $3 OFFSET $4`

	rows, err := q.Query(ctx, query, filter.EmployeeID, filter.OrganizationID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendances: %w", err)
	}
	attendances, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}
	return attendances, total, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO attendances (employee_id, entered_at, left_at, timezone)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		a.EmployeeID, a.EnteredAt, a.LeftAt, a.Timezone,
	).Scan(&id)
	if err != nil {
		return attendance.Attendance{}, mapPgError(err)
	}
	return r.GetByID(ctx, id)
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendances
		SET employee_id = $2, entered_at = $3, left_at = $4, timezone = $5, updated_at = NOW()
		WHERE id = $1`,
		a.ID, a.EmployeeID, a.EnteredAt, a.LeftAt, a.Timezone,
	)
	if err != nil {
		return attendance.Attendance{}, mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.GetByID(ctx, a.ID)
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
