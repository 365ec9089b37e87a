package internal

// Handler declares routes on a router.
//
// Example:
//
//	type BillingModule struct {
//	    repo *repository.Queries
//	}
//
//	func (m *BillingModule) Routes(r modkit.Router) {
//	    r.GET("/invoices", m.listInvoices)
//	    r.POST("/invoices", m.createInvoice)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error triggers the app's error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// This is the router-bound middleware form; the generic continuation
// chain lives in pkg/middleware and runs in a separate phase.
//
// Example:
//
//	func RequireKey(next modkit.HandlerFunc) modkit.HandlerFunc {
//	    return func(c modkit.Context) error {
//	        if c.Header("X-API-Key") == "" {
//	            return c.Error(http.StatusUnauthorized, "missing key")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
