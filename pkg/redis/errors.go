package redis

import "errors"

var (
	// ErrEmptyURL indicates Open was called without a connection URL.
	ErrEmptyURL = errors.New("redis: empty connection URL")

	// ErrParseURL indicates the connection URL could not be parsed.
	ErrParseURL = errors.New("redis: failed to parse connection URL")

	// ErrConnect indicates the server stayed unreachable through all
	// retry attempts.
	ErrConnect = errors.New("redis: failed to establish connection")

	// ErrHealthcheck indicates the readiness probe failed.
	ErrHealthcheck = errors.New("redis: healthcheck failed")
)
