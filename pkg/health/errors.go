package health

import "errors"

var (
	// ErrCheckFailed indicates a readiness check reported an error.
	ErrCheckFailed = errors.New("health check failed")

	// ErrCheckTimeout indicates a readiness check did not finish
	// before its context deadline.
	ErrCheckTimeout = errors.New("health check timed out")
)
