package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/modkit/internal"
)

// DefaultTimeout applies when Timeout is given a non-positive value.
const DefaultTimeout = 30 * time.Second

// Timeout enforces a deadline on the request. When the handler runs
// past it, a TimeoutError is returned to the error handler.
//
// The handler goroutine keeps running after the deadline; long
// operations should watch the request context to stop early.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			c.SetRequest(r.WithContext(ctx))

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogError("request timeout", "timeout", timeout.String())
					return &TimeoutError{Duration: timeout}
				}
				return ctx.Err()
			}
		}
	}
}
