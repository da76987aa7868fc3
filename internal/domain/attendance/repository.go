package attendance

import "context"

type AttendanceRepository interface {
	GetByID(ctx context.Context, id string) (Attendance, error)
	// ListByEmployee returns every attendance of the employee, oldest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	// GetLatestByEmployee returns the open attendance if any, else the one that ended last.
	GetLatestByEmployee(ctx context.Context, employeeID string) (Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	Create(ctx context.Context, a Attendance) (Attendance, error)
	Update(ctx context.Context, a Attendance) (Attendance, error)
	Delete(ctx context.Context, id string) error
}
