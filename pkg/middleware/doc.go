// Package middleware provides a continuation-style middleware chain for
// plain net/http request handling.
//
// Each middleware receives the response writer, the request, and a next
// continuation. Calling next runs the rest of the chain; not calling it
// is an explicit short-circuit:
//
//	chain := middleware.NewChain()
//	chain.Use(func(w http.ResponseWriter, r *http.Request, next func() error) error {
//	    if r.Header.Get("X-API-Key") == "" {
//	        w.WriteHeader(http.StatusUnauthorized)
//	        return nil // short-circuit: next never called
//	    }
//	    return next()
//	})
//
// Errors returned by a middleware, or by awaiting its continuation,
// unwind through the chain to the Execute caller, the one place a
// kernel-adjacent failure is allowed to become a user-visible 5xx.
//
// This chain serves the generic request/response phase. The router-bound
// middleware stack (internal.Middleware, wrapping HandlerFunc) is a
// separate mechanism with a separate lifecycle; they are never merged.
package middleware
