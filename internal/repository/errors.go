package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsDuplicate reports a unique-key violation, which for the audit trail
// means the same assignment event id landed twice.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23505"
}

// IsNotFound reports that the query matched no audit rows.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
