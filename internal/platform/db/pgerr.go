package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shopvima/shopvima/internal/shared"
)

const uniqueViolation = "23505"

// MapUniqueViolation converts a Postgres unique-constraint error into the
// domain duplicate sentinel; any other error passes through unchanged.
func MapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return shared.ErrDuplicate
	}
	return err
}
