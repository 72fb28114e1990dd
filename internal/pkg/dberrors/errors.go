package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint. An empty constraintName matches any unique violation.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	return hasCode(err, codeUniqueViolation, constraintName)
}

// IsForeignKeyError reports a foreign key violation, optionally for one constraint.
func IsForeignKeyError(err error, constraintName string) bool {
	return hasCode(err, codeForeignKeyViolation, constraintName)
}

// IsCheckViolation reports a CHECK constraint failure, e.g. a negative point total.
func IsCheckViolation(err error) bool {
	return hasCode(err, codeCheckViolation, "")
}

// IsNoRows reports whether a single-row query found nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func hasCode(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraintName == "" || pgErr.ConstraintName == constraintName
}
