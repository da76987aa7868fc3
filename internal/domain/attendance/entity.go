package attendance

import "time"

// Attendance is one presence interval of an employee. LeftAt is nil while the
// employee is checked in.
type Attendance struct {
	ID         string
	EmployeeID string
	EnteredAt  time.Time
	LeftAt     *time.Time
	Timezone   string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Filled by read queries that join the employee.
	EmployeeFullName string
}

// IsOpen reports whether the interval has no end yet.
func (a Attendance) IsOpen() bool {
	return a.LeftAt == nil
}

// Overlaps reports whether a and b share an instant. Intervals are half-open,
// [entered_at, left_at), and an open interval extends forever, so a record may
// start exactly when the previous one ends. Records starting at the same
// instant always overlap.
func (a Attendance) Overlaps(b Attendance) bool {
	if a.EnteredAt.Equal(b.EnteredAt) {
		return true
	}
	return before(a.EnteredAt, b.LeftAt) && before(b.EnteredAt, a.LeftAt)
}

// before reports whether t is earlier than end, where a nil end is +infinity.
func before(t time.Time, end *time.Time) bool {
	return end == nil || t.Before(*end)
}

// Day returns the calendar day of t in the given IANA zone, falling back to UTC.
func Day(t time.Time, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc).Format(time.DateOnly)
}
