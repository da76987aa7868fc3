package postgresql

import (
	"errors"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// constraintErrors maps constraint names from the migrations to the validation
// error the application reports for the same rule.
var constraintErrors = map[string]validator.ValidationError{
	"index_users_on_lower_email":              {Field: "email", Kind: validator.KindTaken},
	"index_organizations_on_lower_name":       {Field: "name", Kind: validator.KindTaken},
	"index_attendances_one_open_per_employee": {Field: "left_at", Kind: attendance.KindOnlyOneOpen},
	"attendances_no_overlap":                  {Field: validator.Base, Kind: attendance.KindOverlap},
}

// mapPgError turns unique and exclusion violations into validation errors so a
// write that slipped past the application checks fails the same way.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if pgErr.Code != pgUniqueViolation && pgErr.Code != pgExclusionViolation {
		return err
	}
	if ve, ok := constraintErrors[pgErr.ConstraintName]; ok {
		return validator.ValidationErrors{ve}
	}
	return err
}
