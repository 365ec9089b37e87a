package job

import "errors"

var (
	// ErrPoolRequired indicates NewEnqueuer was called without a
	// database pool.
	ErrPoolRequired = errors.New("job: pool is required")

	// ErrHealthcheck indicates the job queue readiness probe failed.
	ErrHealthcheck = errors.New("job: healthcheck failed")
)
