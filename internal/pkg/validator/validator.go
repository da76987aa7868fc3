package validator

import (
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"
)

// Base is the field name used for errors that belong to a record as a whole.
const Base = "base"

// Validation error kinds shared by every domain.
const (
	KindBlank    = "blank"
	KindInvalid  = "invalid"
	KindTaken    = "taken"
	KindTooShort = "too_short"
	KindTooLong  = "too_long"
)

// ValidationError is a single (field, kind) pair. Kind is a machine-readable
// key; translating it into text is left to the presentation layer.
type ValidationError struct {
	Field string
	Kind  string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Kind)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a (field, kind) pair.
func (v *ValidationErrors) Add(field, kind string) {
	*v = append(*v, ValidationError{Field: field, Kind: kind})
}

// Has reports whether any error carries the given kind.
func (v ValidationErrors) Has(kind string) bool {
	for _, err := range v {
		if err.Kind == kind {
			return true
		}
	}
	return false
}

// HasField reports whether any error is attached to field.
func (v ValidationErrors) HasField(field string) bool {
	for _, err := range v {
		if err.Field == field {
			return true
		}
	}
	return false
}

// ToMap groups kinds by field, preserving the order in which they were added.
func (v ValidationErrors) ToMap() map[string][]string {
	result := make(map[string][]string)
	for _, err := range v {
		result[err.Field] = append(result[err.Field], err.Kind)
	}
	return result
}

// OrNil returns nil when there are no errors so callers can return it as an error.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsValidTimezone reports whether name is a recognized IANA zone.
// "Local" is rejected because it depends on the host configuration.
func IsValidTimezone(name string) bool {
	if IsEmpty(name) || name == "Local" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+07:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	// Try RFC3339 format (ISO8601 with timezone)
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	// Try RFC3339Nano format (with nanoseconds)
	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}
