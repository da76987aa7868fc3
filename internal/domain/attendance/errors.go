package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance not found")
	ErrEmployeeNotFound   = errors.New("employee not found")

	// Check-in / check-out workflow
	ErrNotEmployee           = errors.New("only employees can check in or out")
	ErrAlreadyCheckedIn      = errors.New("employee is already checked in")
	ErrUserDidNotCheckIn     = errors.New("employee did not check in")
	ErrUserAlreadyCheckedOut = errors.New("employee already checked out")
)

// Validation kinds produced by the interval validator.
const (
	KindInFuture             = "in_future"
	KindMustBeAfterEnteredAt = "must_be_after_entered_at"
	KindOnlyForEmployees     = "only_for_employees"
	KindOverlap              = "overlap"
	KindOnlyOneOpen          = "only_one_open_per_employee"
	KindOpenMustBeLatest     = "open_must_be_latest"
	KindOnlyOnePerDay        = "only_one_per_employee_per_day"
)
