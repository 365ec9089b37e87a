package modkit

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/modkit/internal"
	"github.com/dmitrymomot/modkit/pkg/config"
	"github.com/dmitrymomot/modkit/pkg/eventbus"
	"github.com/dmitrymomot/modkit/pkg/health"
	"github.com/dmitrymomot/modkit/pkg/hookchain"
	"github.com/dmitrymomot/modkit/pkg/logger"
	"github.com/dmitrymomot/modkit/pkg/middleware"
	"github.com/dmitrymomot/modkit/pkg/taskqueue"
)

// Type aliases - public API
type (
	// App hosts the extension kernel and serves HTTP.
	App = internal.App

	// Router is the interface route modules use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	// This is the router-bound form; HTTPMiddleware is the generic
	// continuation form that wraps the router from outside.
	Middleware = internal.Middleware

	// HTTPMiddleware is the generic continuation-style middleware run
	// outside the router.
	HTTPMiddleware = middleware.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// HTTPError is an error with an HTTP status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Registry is the deferred registration ledger feature modules
	// write into before the app exists.
	Registry = internal.Registry

	// RouteDef is a deferred route registration.
	RouteDef = internal.RouteDef

	// ResponseWriter wraps http.ResponseWriter with write hooks and
	// status capture.
	ResponseWriter = internal.ResponseWriter

	// ContextExtractor pulls request-scoped attributes into log
	// records. Used with logger.New and NewWithSentry.
	ContextExtractor = logger.ContextExtractor
)

// Lifecycle stage names, re-exported for modules registering hooks.
const (
	StageBeforeStart     = internal.StageBeforeStart
	StageRouterPrepared  = internal.StageRouterPrepared
	StageServerInstanced = internal.StageServerInstanced
	StageOnReady         = internal.StageOnReady
	StageOnListen        = internal.StageOnListen
	StageOnRequest       = internal.StageOnRequest
	StageOnResponse      = internal.StageOnResponse
)

// Registry errors, re-exported for modules handling registration
// failures.
var (
	ErrRegistryFrozen = internal.ErrRegistryFrozen
	ErrAlreadyApplied = internal.ErrAlreadyApplied
)

// New creates an application and consumes the registration ledger.
// It fails when the ledger was already consumed by another App.
//
// Example:
//
//	app, err := modkit.New(
//	    modkit.WithConfig(store),
//	    modkit.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    modkit.WithHandlers(billing.New(repo)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = app.Run(":8080", modkit.ShutdownHook(db.Shutdown(pool)))
func New(opts ...Option) (*App, error) {
	return internal.New(opts...)
}

// NewRegistry creates an empty ledger, mainly for tests and embedded
// setups that avoid the process-wide default.
func NewRegistry() *Registry {
	return internal.NewRegistry()
}

// DefaultRegistry returns the process-wide ledger modules register
// into from their init functions.
func DefaultRegistry() *Registry {
	return internal.Default()
}

// NewHTTPError creates an error carrying an HTTP status code.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// AsHTTPError extracts an HTTPError from err, or returns nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// App options

// WithRegistry sets the ledger the app consumes instead of the
// process-wide default.
func WithRegistry(r *Registry) Option {
	return internal.WithRegistry(r)
}

// WithConfig sets the configuration store exposed through
// Context.Config.
func WithConfig(store *config.Store) Option {
	return internal.WithConfig(store)
}

// WithMiddleware adds global router-bound middleware, applied in the
// order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHTTPMiddleware adds middleware to the generic chain wrapping
// the router.
func WithHTTPMiddleware(mw ...HTTPMiddleware) Option {
	return internal.WithHTTPMiddleware(mw...)
}

// WithHandlers registers modules that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithHookChain sets a pre-built hook chain, e.g. one with a stage
// timeout.
func WithHookChain(c *hookchain.Chain) Option {
	return internal.WithHookChain(c)
}

// WithEventBus sets a pre-built event bus.
func WithEventBus(b *eventbus.Bus) Option {
	return internal.WithEventBus(b)
}

// WithTaskQueue sets a pre-built serial task queue.
func WithTaskQueue(q *taskqueue.Queue) Option {
	return internal.WithTaskQueue(q)
}

// WithHealthChecks enables liveness and readiness endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// Health options

// WithLivenessPath overrides the default /health/live path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath overrides the default /health/ready path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check, run in parallel
// with the others during the probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the runtime logger used by the server loop.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook runs during startup, before the server accepts
// connections; an error aborts startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook runs during graceful shutdown, after in-flight
// requests and deferred tasks finish.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}
