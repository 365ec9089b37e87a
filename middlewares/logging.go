package middlewares

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/modkit/internal"
)

// statusRecorder is the response surface Logging reads status and
// size from; internal.ResponseWriter satisfies it.
type statusRecorder interface {
	Status() int
	Size() int64
}

// Logging logs one line per request with method, path, status, size,
// and duration. Server errors log at error level.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			status := http.StatusOK
			size := int64(0)
			if rec, ok := c.Response().(statusRecorder); ok {
				status = rec.Status()
				size = rec.Size()
			}

			args := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"bytes", size,
				"duration", elapsed.String(),
			}

			if err != nil || status >= http.StatusInternalServerError {
				if err != nil {
					args = append(args, "error", err)
				}
				c.LogError("request", args...)
			} else {
				c.LogInfo("request", args...)
			}

			return err
		}
	}
}
