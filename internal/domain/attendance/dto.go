package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type AttendanceResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeFullName string  `json:"employee_fullname"`
	EnteredAt        string  `json:"entered_at"`
	LeftAt           *string `json:"left_at"`
	Timezone         string  `json:"timezone"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// CreateAttendanceRequest back-fills an interval for an employee. Timezone
// defaults to the employee's profile timezone.
type CreateAttendanceRequest struct {
	EmployeeID string  `json:"-"`
	EnteredAt  string  `json:"entered_at"`
	LeftAt     *string `json:"left_at,omitempty"`
	Timezone   string  `json:"timezone,omitempty"`

	enteredAt time.Time
	leftAt    *time.Time
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", validator.KindBlank)
	}
	if validator.IsEmpty(r.EnteredAt) {
		errs.Add("entered_at", validator.KindBlank)
	} else if t, ok := validator.IsValidDateTime(r.EnteredAt); ok {
		r.enteredAt = t.UTC()
	} else {
		errs.Add("entered_at", validator.KindInvalid)
	}
	if r.LeftAt != nil {
		if t, ok := validator.IsValidDateTime(*r.LeftAt); ok {
			utc := t.UTC()
			r.leftAt = &utc
		} else {
			errs.Add("left_at", validator.KindInvalid)
		}
	}
	if !validator.IsEmpty(r.Timezone) && !validator.IsValidTimezone(r.Timezone) {
		errs.Add("timezone", validator.KindInvalid)
	}

	return errs.OrNil()
}

// Times returns the timestamps parsed by Validate.
func (r *CreateAttendanceRequest) Times() (time.Time, *time.Time) {
	return r.enteredAt, r.leftAt
}

// UpdateAttendanceRequest changes an existing interval. Only the given fields
// change; an interval cannot be reopened.
type UpdateAttendanceRequest struct {
	ID         string  `json:"-"`
	EmployeeID *string `json:"employee_id,omitempty"`
	EnteredAt  *string `json:"entered_at,omitempty"`
	LeftAt     *string `json:"left_at,omitempty"`
	Timezone   *string `json:"timezone,omitempty"`

	enteredAt *time.Time
	leftAt    *time.Time
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", validator.KindBlank)
	}
	if r.EmployeeID != nil {
		if validator.IsEmpty(*r.EmployeeID) {
			errs.Add("employee_id", validator.KindBlank)
		} else if id, err := uuid.Parse(*r.EmployeeID); err == nil {
			// Stored ids are lower-case; the interval checks compare them as strings.
			canonical := id.String()
			r.EmployeeID = &canonical
		} else {
			errs.Add("employee_id", validator.KindInvalid)
		}
	}
	if r.EnteredAt != nil {
		if t, ok := validator.IsValidDateTime(*r.EnteredAt); ok {
			utc := t.UTC()
			r.enteredAt = &utc
		} else {
			errs.Add("entered_at", validator.KindInvalid)
		}
	}
	if r.LeftAt != nil {
		if t, ok := validator.IsValidDateTime(*r.LeftAt); ok {
			utc := t.UTC()
			r.leftAt = &utc
		} else {
			errs.Add("left_at", validator.KindInvalid)
		}
	}
	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs.Add("timezone", validator.KindInvalid)
	}

	return errs.OrNil()
}

// Apply copies the requested changes onto a.
func (r *UpdateAttendanceRequest) Apply(a Attendance) Attendance {
	if r.EmployeeID != nil {
		a.EmployeeID = *r.EmployeeID
	}
	if r.enteredAt != nil {
		a.EnteredAt = *r.enteredAt
	}
	if r.leftAt != nil {
		a.LeftAt = r.leftAt
	}
	if r.Timezone != nil {
		a.Timezone = *r.Timezone
	}
	return a
}

// AttendanceFilter selects a page of attendances by employee or by organization.
type AttendanceFilter struct {
	EmployeeID     *string
	OrganizationID *string
	Page           int
	PerPage        int
}

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	PerPage     int                  `json:"per_page"`
	TotalPages  int                  `json:"total_pages"`
}

func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		EmployeeFullName: a.EmployeeFullName,
		EnteredAt:        a.EnteredAt.UTC().Format(time.RFC3339),
		Timezone:         a.Timezone,
		CreatedAt:        a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        a.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if a.LeftAt != nil {
		leftAt := a.LeftAt.UTC().Format(time.RFC3339)
		resp.LeftAt = &leftAt
	}
	return resp
}
