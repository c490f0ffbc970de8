package gcddb

import (
	stdErrors "errors"

	"github.com/lepinkainen/gcdtalker/internal/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// classify maps driver errors onto DataError or ConnectionError using the
// primary SQLite result code.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.IsDataError(err) || errors.IsConnectionError(err) {
		return err
	}

	var sqliteErr *sqlite.Error
	if stdErrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT, sqlite3.SQLITE_MISMATCH, sqlite3.SQLITE_RANGE, sqlite3.SQLITE_TOOBIG:
			return errors.NewDataError(Source, err)
		}
	}
	return errors.NewConnectionError(Source, err)
}
