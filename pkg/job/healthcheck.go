package job

import (
	"context"
	"errors"
)

// Healthcheck returns a readiness probe for the job queue. It pings
// the pool, which covers both connectivity and River's access to its
// tables since they share the pool. Fits health.CheckFunc.
func Healthcheck(e *Enqueuer) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if e == nil || e.pool == nil {
			return ErrHealthcheck
		}
		if err := e.pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheck, err)
		}
		return nil
	}
}
