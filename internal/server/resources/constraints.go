package resources

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes surfaced as field errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

type fieldCode struct {
	field string
	code  string
}

// Constraint names come from the embedded migrations.
var constraintFields = map[string]fieldCode{
	"resources_created_by_fkey":       {"created_by", CodeUserExists},
	"resources_modified_by_fkey":      {"modified_by", CodeUserExists},
	"permissions_aco_aro_key":         {"aro_foreign_key", CodeUnique},
	"permissions_type_check":          {"type", CodeInList},
	"secrets_user_id_fkey":            {"user_id", CodeUserExists},
	"secrets_resource_id_user_id_key": {"user_id", CodeUnique},
}

// constraintError translates a constraint violation raised while writing the
// row at prefix (e.g. "secrets[0]", or "" for the resource itself) into a
// ValidationError. It returns nil when err is not a known violation.
func constraintError(err error, prefix string) *ValidationError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	var fc fieldCode
	switch pgErr.Code {
	case pgNotNullViolation:
		if pgErr.ColumnName == "" {
			return nil
		}
		fc = fieldCode{field: pgErr.ColumnName, code: CodeRequired}
	case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
		var ok bool
		if fc, ok = constraintFields[pgErr.ConstraintName]; !ok {
			return nil
		}
	default:
		return nil
	}

	path := fc.field
	if prefix != "" {
		path = prefix + "." + fc.field
	}
	verr := NewValidationError()
	verr.Add(path, fc.code)
	return verr
}
