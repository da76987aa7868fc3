package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// DefaultClockSkew is how far in the future a timestamp may be and still count as "now".
const DefaultClockSkew = time.Minute

type Rules struct {
	ClockSkew time.Duration
	// OnePerDay rejects a second entered_at (or left_at) on the same calendar day.
	OnePerDay bool
}

// IntervalValidator decides whether an attendance can be stored next to the
// employee's other attendances.
type IntervalValidator struct {
	clock clock.Clock
	rules Rules
}

func NewIntervalValidator(c clock.Clock, rules Rules) *IntervalValidator {
	return &IntervalValidator{clock: c, rules: rules}
}

// Validate checks candidate against existing and returns every violation found.
//
// employee must be set when the candidate's employee_id is being set or
// changed; it is nil otherwise. existing may include the candidate's persisted
// state and records of other employees, both are ignored.
func (v *IntervalValidator) Validate(candidate Attendance, employee *user.User, existing []Attendance) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(candidate.EmployeeID) {
		errs.Add("employee_id", validator.KindBlank)
	}
	if validator.IsEmpty(candidate.Timezone) {
		errs.Add("timezone", validator.KindBlank)
	} else if !validator.IsValidTimezone(candidate.Timezone) {
		errs.Add("timezone", validator.KindInvalid)
	}

	limit := v.clock.Now().Add(v.rules.ClockSkew)
	hasEnteredAt := !candidate.EnteredAt.IsZero()
	if !hasEnteredAt {
		errs.Add("entered_at", validator.KindBlank)
	} else if candidate.EnteredAt.After(limit) {
		errs.Add("entered_at", KindInFuture)
	}

	if candidate.LeftAt != nil {
		if hasEnteredAt && !candidate.LeftAt.After(candidate.EnteredAt) {
			errs.Add("left_at", KindMustBeAfterEnteredAt)
		}
		if candidate.LeftAt.After(limit) {
			errs.Add("left_at", KindInFuture)
		}
	}

	if employee != nil && !employee.IsEmployee() {
		errs.Add("employee_id", KindOnlyForEmployees)
	}

	if !hasEnteredAt {
		return errs
	}

	others := v.othersOf(candidate, existing)

	for _, other := range others {
		if candidate.Overlaps(other) {
			errs.Add(validator.Base, KindOverlap)
			break
		}
	}

	if candidate.IsOpen() {
		for _, other := range others {
			if other.IsOpen() {
				errs.Add("left_at", KindOnlyOneOpen)
				break
			}
		}
		for _, other := range others {
			if other.EnteredAt.After(candidate.EnteredAt) {
				errs.Add("left_at", KindOpenMustBeLatest)
				break
			}
		}
	}

	if v.rules.OnePerDay {
		v.validateOnePerDay(&errs, candidate, others)
	}

	return errs
}

func (v *IntervalValidator) othersOf(candidate Attendance, existing []Attendance) []Attendance {
	others := make([]Attendance, 0, len(existing))
	for _, a := range existing {
		if candidate.ID != "" && a.ID == candidate.ID {
			continue
		}
		if a.EmployeeID != candidate.EmployeeID {
			continue
		}
		others = append(others, a)
	}
	return others
}

// validateOnePerDay compares calendar days in the candidate's own timezone.
func (v *IntervalValidator) validateOnePerDay(errs *validator.ValidationErrors, candidate Attendance, others []Attendance) {
	enteredDay := Day(candidate.EnteredAt, candidate.Timezone)
	for _, other := range others {
		if Day(other.EnteredAt, candidate.Timezone) == enteredDay {
			errs.Add("entered_at", KindOnlyOnePerDay)
			break
		}
	}

	if candidate.LeftAt == nil {
		return
	}
	leftDay := Day(*candidate.LeftAt, candidate.Timezone)
	for _, other := range others {
		if other.LeftAt != nil && Day(*other.LeftAt, candidate.Timezone) == leftDay {
			errs.Add("left_at", KindOnlyOnePerDay)
			break
		}
	}
}
