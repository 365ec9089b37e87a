package health

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CheckFunc probes a single dependency. It must respect the context
// deadline and return nil when the dependency is usable.
type CheckFunc func(ctx context.Context) error

// Checks maps a dependency name to its readiness probe.
type Checks map[string]CheckFunc

// checkTimeout bounds a single readiness probe so one stuck
// dependency cannot hold the whole endpoint open.
const checkTimeout = 5 * time.Second

// Status values reported per check and for the aggregate response.
const (
	StatusOK   = "ok"
	StatusFail = "fail"
)

// Check is the result of a single readiness probe.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Response is the aggregate readiness report.
type Response struct {
	Status string  `json:"status"`
	Checks []Check `json:"checks,omitempty"`
}

// runChecks executes all probes in parallel and aggregates the
// results. The response status is StatusFail if any probe failed.
func runChecks(ctx context.Context, checks Checks) Response {
	resp := Response{Status: StatusOK}
	if len(checks) == 0 {
		return resp
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, fn := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()

			result := Check{Name: name, Status: StatusOK}
			if err := run(checkCtx, fn); err != nil {
				result.Status = StatusFail
				result.Error = err.Error()
			}

			mu.Lock()
			if result.Status == StatusFail {
				resp.Status = StatusFail
			}
			resp.Checks = append(resp.Checks, result)
			mu.Unlock()
		}()
	}
	wg.Wait()

	return resp
}

// run invokes a probe, converting a panic into an error so a broken
// check cannot take down the health endpoint.
func run(ctx context.Context, fn CheckFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrCheckFailed, r)
		}
	}()
	if err := fn(ctx); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrCheckTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrCheckFailed, err)
	}
	return nil
}
