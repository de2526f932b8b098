package redis

import "errors"

var (
	// ErrInvalidConnURL is returned when the connection URL cannot be parsed.
	ErrInvalidConnURL = errors.New("redis.errors.invalid_conn_url")

	// ErrNotReady is returned when the server does not answer a ping within
	// the configured retry budget.
	ErrNotReady = errors.New("redis.errors.not_ready")
)
