// Package middlewares provides the framework-bound middleware that
// ships with modkit applications: request IDs, panic recovery,
// request logging, timeouts, locale negotiation, and CORS.
//
// These middlewares operate on modkit.Context and are registered with
// WithMiddleware or Use; they are distinct from the generic HTTP
// middleware chain that wraps the router.
//
// # Recommended order
//
//	modkit.WithMiddleware(
//	    middlewares.CORS(),                  // preflight before anything else
//	    middlewares.RequestID(),             // ID available to all logging below
//	    middlewares.Recover(),               // catches panics from the rest
//	    middlewares.Logging(),               // logs with status and duration
//	    middlewares.Timeout(5*time.Second),
//	)
//
// # Error handling
//
// Recover and Timeout surface typed errors (PanicError, TimeoutError)
// for the application's error handler:
//
//	modkit.WithErrorHandler(func(c modkit.Context, err error) error {
//	    switch {
//	    case middlewares.IsPanicError(err):
//	        return c.Error(http.StatusInternalServerError, "Internal Server Error")
//	    case middlewares.IsTimeoutError(err):
//	        return c.Error(http.StatusGatewayTimeout, "Gateway Timeout")
//	    }
//	    return err
//	})
package middlewares
