package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
)

const employeeID = "e1"

var now = time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return time.Date(2024, 3, 15, hour, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func closed(id string, from, to time.Time) Attendance {
	return Attendance{ID: id, EmployeeID: employeeID, EnteredAt: from, LeftAt: ptr(to), Timezone: "UTC"}
}

func open(id string, from time.Time) Attendance {
	return Attendance{ID: id, EmployeeID: employeeID, EnteredAt: from, Timezone: "UTC"}
}

func newValidator(rules Rules) *IntervalValidator {
	return NewIntervalValidator(clock.NewFixed(now), rules)
}

func TestAttendance_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Attendance
		want bool
	}{
		{"disjoint", closed("a", at(8), at(9)), closed("b", at(10), at(11)), false},
		{"touching endpoints", closed("a", at(8), at(9)), closed("b", at(9), at(11)), false},
		{"start inside", closed("a", at(8), at(10)), closed("b", at(9), at(11)), true},
		{"end inside", closed("a", at(9), at(11)), closed("b", at(8), at(10)), true},
		{"contains", closed("a", at(8), at(12)), closed("b", at(9), at(10)), true},
		{"contained", closed("a", at(9), at(10)), closed("b", at(8), at(12)), true},
		{"identical", closed("a", at(8), at(9)), closed("b", at(8), at(9)), true},
		{"same start", closed("a", at(8), at(9)), closed("b", at(8), at(12)), true},
		{"open after closed", open("a", at(10)), closed("b", at(8), at(9)), false},
		{"open before closed", open("a", at(8)), closed("b", at(9), at(10)), true},
		{"two open", open("a", at(8)), open("b", at(9)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestIntervalValidator_Validate_Presence(t *testing.T) {
	v := newValidator(Rules{})

	errs := v.Validate(Attendance{}, nil, nil)

	assert.Equal(t, map[string][]string{
		"employee_id": {validator.KindBlank},
		"timezone":    {validator.KindBlank},
		"entered_at":  {validator.KindBlank},
	}, errs.ToMap())
}

func TestIntervalValidator_Validate_Timestamps(t *testing.T) {
	v := newValidator(Rules{ClockSkew: time.Minute})

	t.Run("valid closed interval", func(t *testing.T) {
		assert.Empty(t, v.Validate(closed("", at(8), at(9)), nil, nil))
	})

	t.Run("within clock skew", func(t *testing.T) {
		assert.Empty(t, v.Validate(open("", now.Add(30*time.Second)), nil, nil))
	})

	t.Run("future entered_at and left_at", func(t *testing.T) {
		errs := v.Validate(closed("", now.Add(time.Hour), now.Add(2*time.Hour)), nil, nil)
		assert.Equal(t, map[string][]string{
			"entered_at": {KindInFuture},
			"left_at":    {KindInFuture},
		}, errs.ToMap())
	})

	t.Run("left_at before entered_at", func(t *testing.T) {
		errs := v.Validate(closed("", at(9), at(8)), nil, nil)
		assert.Equal(t, []string{KindMustBeAfterEnteredAt}, errs.ToMap()["left_at"])
	})

	t.Run("left_at equal to entered_at", func(t *testing.T) {
		errs := v.Validate(closed("", at(9), at(9)), nil, nil)
		assert.True(t, errs.Has(KindMustBeAfterEnteredAt))
	})

	t.Run("unknown timezone", func(t *testing.T) {
		a := closed("", at(8), at(9))
		a.Timezone = "Mars/Olympus_Mons"
		errs := v.Validate(a, nil, nil)
		assert.Equal(t, map[string][]string{"timezone": {validator.KindInvalid}}, errs.ToMap())
	})
}

func TestIntervalValidator_Validate_OnlyForEmployees(t *testing.T) {
	v := newValidator(Rules{})
	candidate := closed("", at(8), at(9))

	for _, role := range []user.Role{user.RoleAdmin, user.RoleOrgAdmin} {
		errs := v.Validate(candidate, &user.User{ID: employeeID, Role: role}, nil)
		assert.Equal(t, map[string][]string{"employee_id": {KindOnlyForEmployees}}, errs.ToMap(), role)
	}

	assert.Empty(t, v.Validate(candidate, &user.User{ID: employeeID, Role: user.RoleEmployee}, nil))
	// The role is only checked when the employee is being set.
	assert.Empty(t, v.Validate(candidate, nil, nil))
}

func TestIntervalValidator_Validate_Overlap(t *testing.T) {
	v := newValidator(Rules{})
	existing := []Attendance{closed("a", at(8), at(10))}

	tests := []struct {
		name      string
		candidate Attendance
		overlap   bool
	}{
		{"before", closed("", at(6), at(7)), false},
		{"ending at start", closed("", at(6), at(8)), false},
		{"starting at end", closed("", at(10), at(11)), false},
		{"straddling start", closed("", at(7), at(9)), true},
		{"straddling end", closed("", at(9), at(11)), true},
		{"inside", closed("", at(8), at(9)), true},
		{"around", closed("", at(7), at(11)), true},
		{"identical", closed("", at(8), at(10)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.candidate, nil, existing)
			if tt.overlap {
				assert.Equal(t, map[string][]string{validator.Base: {KindOverlap}}, errs.ToMap())
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestIntervalValidator_Validate_IgnoresSelfAndOtherEmployees(t *testing.T) {
	v := newValidator(Rules{OnePerDay: true})
	persisted := closed("a", at(8), at(10))
	foreign := closed("b", at(8), at(10))
	foreign.EmployeeID = "e2"

	// Moving the record's end must not collide with its own stored state.
	updated := persisted
	updated.LeftAt = ptr(at(11))

	assert.Empty(t, v.Validate(updated, nil, []Attendance{persisted, foreign}))
}

func TestIntervalValidator_Validate_OpenInterval(t *testing.T) {
	v := newValidator(Rules{})

	t.Run("second open interval", func(t *testing.T) {
		errs := v.Validate(open("", at(12)), nil, []Attendance{open("a", at(9))})
		assert.True(t, errs.Has(KindOnlyOneOpen))
		assert.True(t, errs.Has(KindOverlap))
	})

	t.Run("open interval before a later one", func(t *testing.T) {
		errs := v.Validate(open("", at(8)), nil, []Attendance{closed("a", at(10), at(11))})
		assert.Equal(t, []string{KindOpenMustBeLatest}, errs.ToMap()["left_at"])
	})

	t.Run("open interval after closed ones", func(t *testing.T) {
		existing := []Attendance{closed("a", at(8), at(9)), closed("b", at(10), at(11))}
		assert.Empty(t, v.Validate(open("", at(12)), nil, existing))
	})

	t.Run("closing the only open interval", func(t *testing.T) {
		stored := open("a", at(8))
		closing := stored
		closing.LeftAt = ptr(at(9))
		assert.Empty(t, v.Validate(closing, nil, []Attendance{stored}))
	})
}

func TestIntervalValidator_Validate_CheckInCheckOutScenario(t *testing.T) {
	v := newValidator(Rules{})

	// Checked in at 8, checked out at 10.
	first := closed("a", at(8), at(10))
	existing := []Attendance{first}

	errs := v.Validate(closed("", at(9), at(12)), nil, existing)
	assert.Equal(t, map[string][]string{validator.Base: {KindOverlap}}, errs.ToMap())

	assert.Empty(t, v.Validate(closed("", at(10), at(12)), nil, existing))
}

func TestIntervalValidator_Validate_OnePerDay(t *testing.T) {
	existing := []Attendance{closed("a", at(8), at(10))}
	candidate := closed("", at(12), at(14))

	assert.Empty(t, newValidator(Rules{}).Validate(candidate, nil, existing))

	errs := newValidator(Rules{OnePerDay: true}).Validate(candidate, nil, existing)
	assert.Equal(t, map[string][]string{
		"entered_at": {KindOnlyOnePerDay},
		"left_at":    {KindOnlyOnePerDay},
	}, errs.ToMap())
}

func TestIntervalValidator_Validate_OnePerDayUsesRecordTimezone(t *testing.T) {
	v := newValidator(Rules{OnePerDay: true})
	// 03:00 UTC on the 15th is still the 14th in Mexico City.
	existing := []Attendance{closed("a", at(3), at(4))}
	candidate := closed("", at(12), at(13))

	assert.True(t, v.Validate(candidate, nil, existing).Has(KindOnlyOnePerDay))

	candidate.Timezone = "America/Mexico_City"
	assert.Empty(t, v.Validate(candidate, nil, existing))
}
