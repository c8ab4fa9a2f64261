package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrSnapshotConflict is returned when a listing snapshot had to be
	// abandoned; the read is safe to retry.
	ErrSnapshotConflict = errors.New("snapshot conflict")
)

// pgCodeErrors lists the SQLSTATEs callers branch on.
var pgCodeErrors = map[string]error{
	pgerrcode.SerializationFailure: ErrSnapshotConflict,
	pgerrcode.DeadlockDetected:     ErrSnapshotConflict,
}

// MapPgError converts driver errors into the repository sentinels above.
// Unknown errors are returned unchanged.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := pgCodeErrors[pgErr.Code]; ok {
			return mapped
		}
	}
	return err
}
