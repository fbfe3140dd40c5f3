package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgDuplicateKeyCode = "23505"

// sqliteCoder is satisfied by *sqlite.Error; Code returns the extended result code.
type sqliteCoder interface {
	Code() int
}

// MapError translates database errors to domain errors.
// It maps sql.ErrNoRows to notFoundErr, and PostgreSQL unique violations (23505)
// or SQLite UNIQUE/PRIMARY KEY constraint failures to duplicateErr.
// Other errors are returned unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgDuplicateKeyCode {
		return duplicateErr
	}

	var coder sqliteCoder
	if errors.As(err, &coder) {
		switch coder.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return duplicateErr
		}
	}

	return err
}

// IsBusy reports whether err is a SQLite lock contention error.
func IsBusy(err error) bool {
	var coder sqliteCoder
	if !errors.As(err, &coder) {
		return false
	}
	primary := coder.Code() & 0xff
	return primary == sqlite3.SQLITE_BUSY || primary == sqlite3.SQLITE_LOCKED
}
