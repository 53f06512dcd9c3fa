package httperr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsExclusionConflict reports whether err is the reservations table's
// no-overlap exclusion constraint firing (23P01). The losing writer of a
// concurrent booking race lands here when it slipped past the row lock.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation
}

// IsUniqueViolation reports a unique index conflict (23505), used for the
// (reservation, kind) uniqueness of trust ledger entries.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// IsDuplicateObject reports a duplicate DDL object (42710), expected when
// the bootstrap re-applies the exclusion constraint on restart.
func IsDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.DuplicateObject
}
