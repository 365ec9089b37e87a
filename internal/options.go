package internal

import (
	"log/slog"

	"github.com/dmitrymomot/modkit/pkg/config"
	"github.com/dmitrymomot/modkit/pkg/eventbus"
	"github.com/dmitrymomot/modkit/pkg/hookchain"
	"github.com/dmitrymomot/modkit/pkg/middleware"
	"github.com/dmitrymomot/modkit/pkg/taskqueue"
)

// Option configures the application.
type Option func(*App)

// WithRegistry sets the registration ledger the app consumes.
// Defaults to the process-wide Default() registry. Tests pass their own
// to keep registration ordering and apply-once verifiable in isolation.
func WithRegistry(r *Registry) Option {
	return func(a *App) {
		if r != nil {
			a.registry = r
		}
	}
}

// WithConfig sets the configuration store exposed through Context.Config.
// Defaults to an empty store (every lookup resolves to "").
func WithConfig(store *config.Store) Option {
	return func(a *App) {
		if store != nil {
			a.config = store
		}
	}
}

// WithMiddleware adds global router-bound middleware.
// Middleware is applied in the order provided, before ledger middlewares.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHTTPMiddleware adds middleware to the generic continuation chain
// that wraps the router. It runs in its own phase, outside the
// router-bound stack.
func WithHTTPMiddleware(mw ...middleware.Middleware) Option {
	return func(a *App) {
		for _, m := range mw {
			a.httpChain.Use(m)
		}
	}
}

// WithHandlers registers modules that declare routes.
// Each handler's Routes method is called during router setup, after the
// ledger's deferred routes are applied.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		if h != nil {
			a.errorHandler = h
		}
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithCustomLogger sets the application logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithHookChain sets a pre-built hook chain (e.g. with a stage timeout).
// The ledger's hooks are still applied onto it.
func WithHookChain(c *hookchain.Chain) Option {
	return func(a *App) {
		if c != nil {
			a.hooks = c
		}
	}
}

// WithEventBus sets a pre-built event bus.
func WithEventBus(b *eventbus.Bus) Option {
	return func(a *App) {
		if b != nil {
			a.events = b
		}
	}
}

// WithTaskQueue sets a pre-built serial task queue.
func WithTaskQueue(q *taskqueue.Queue) Option {
	return func(a *App) {
		if q != nil {
			a.tasks = q
		}
	}
}

// WithHealthChecks enables health check endpoints.
//
// Example:
//
//	modkit.WithHealthChecks(
//	    modkit.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}
