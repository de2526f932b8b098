package pg

import "errors"

var (
	// ErrInvalidConnString is returned when the connection string cannot be parsed.
	ErrInvalidConnString = errors.New("pg.errors.invalid_conn_string")

	// ErrConnectionFailed is returned when the database is unreachable after
	// all retry attempts.
	ErrConnectionFailed = errors.New("pg.errors.connection_failed")
)
