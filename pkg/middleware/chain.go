package middleware

import (
	"net/http"
	"sync"
)

// Middleware processes a request and decides whether to pass control on.
// Calling next runs the remainder of the chain; returning without calling
// it short-circuits (e.g. after writing a response directly).
type Middleware func(w http.ResponseWriter, r *http.Request, next func() error) error

// Chain is an ordered list of continuation-style middlewares.
//
// This is the generic request/response chain; it is independent from the
// router-bound middleware stack in the internal package and runs in a
// different lifecycle phase. The two are never merged.
type Chain struct {
	mu          sync.RWMutex
	middlewares []Middleware
}

// NewChain creates an empty Chain.
func NewChain() *Chain {
	return &Chain{}
}

// Use appends mw to the chain. Execution order is registration order.
func (c *Chain) Use(mw Middleware) {
	if mw == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middlewares = append(c.middlewares, mw)
}

// Len returns the number of registered middlewares.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.middlewares)
}

// Execute runs the chain from the first middleware. Each middleware
// receives a continuation that invokes the next one; the chain ends
// naturally after the last middleware or early when one declines to call
// its continuation. An error from any middleware (or from its
// continuation) unwinds through the chain to the caller.
func (c *Chain) Execute(w http.ResponseWriter, r *http.Request) error {
	c.mu.RLock()
	middlewares := c.middlewares
	c.mu.RUnlock()

	var step func(i int) error
	step = func(i int) error {
		if i >= len(middlewares) {
			return nil
		}
		return middlewares[i](w, r, func() error {
			return step(i + 1)
		})
	}
	return step(0)
}

// Handler adapts the chain to http.Handler, running final as the
// innermost step after every middleware has passed control on.
// Errors surface through errorFn; pass nil to reply with a bare 500.
func (c *Chain) Handler(final http.Handler, errorFn func(http.ResponseWriter, *http.Request, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.mu.RLock()
		middlewares := c.middlewares
		c.mu.RUnlock()

		var step func(i int) error
		step = func(i int) error {
			if i >= len(middlewares) {
				final.ServeHTTP(w, r)
				return nil
			}
			return middlewares[i](w, r, func() error {
				return step(i + 1)
			})
		}

		if err := step(0); err != nil {
			if errorFn != nil {
				errorFn(w, r, err)
				return
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}
