package attendance

import "context"

// AttendanceService runs attendance operations on behalf of the principal in ctx.
type AttendanceService interface {
	// CheckIn opens an interval for the calling employee at the current time.
	CheckIn(ctx context.Context) (AttendanceResponse, error)
	// CheckOut closes the calling employee's open interval at the current time.
	CheckOut(ctx context.Context) (AttendanceResponse, error)

	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID string, filter AttendanceFilter) (ListAttendanceResponse, error)
	ListByOrganization(ctx context.Context, organizationID string, filter AttendanceFilter) (ListAttendanceResponse, error)
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}
