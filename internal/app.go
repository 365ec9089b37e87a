package internal

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/modkit/pkg/config"
	"github.com/dmitrymomot/modkit/pkg/eventbus"
	"github.com/dmitrymomot/modkit/pkg/health"
	"github.com/dmitrymomot/modkit/pkg/hookchain"
	"github.com/dmitrymomot/modkit/pkg/logger"
	"github.com/dmitrymomot/modkit/pkg/middleware"
	"github.com/dmitrymomot/modkit/pkg/taskqueue"
)

// App hosts the extension kernel: it owns the live hook chain, event
// bus, serial task queue, and middleware chains, consumes the deferred
// registration ledger exactly once, and serves HTTP through chi.
type App struct {
	registry                *Registry
	config                  *config.Store
	logger                  *slog.Logger
	hooks                   *hookchain.Chain
	events                  *eventbus.Bus
	tasks                   *taskqueue.Queue
	httpChain               *middleware.Chain
	router                  chi.Router
	handler                 http.Handler
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	middlewares             []Middleware
	handlers                []Handler
	setupOnce               sync.Once
	setupErr                error
}

// New creates an application and applies the registry's deferred hooks,
// events, and middlewares onto the live components. Routes are applied
// lazily when the router is first needed, between the beforeStart and
// nextPrepared lifecycle stages.
//
// New fails if the registry was already consumed by another App in this
// process (apply-once contract).
func New(opts ...Option) (*App, error) {
	a := &App{
		logger:    logger.NewNope(),
		httpChain: middleware.NewChain(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.registry == nil {
		a.registry = Default()
	}
	if a.config == nil {
		empty, err := config.Load(config.WithDir("."))
		if err != nil {
			return nil, err
		}
		a.config = empty
	}
	if a.hooks == nil {
		a.hooks = hookchain.New()
	}
	if a.events == nil {
		a.events = eventbus.New(eventbus.WithLogger(a.logger))
	}
	if a.tasks == nil {
		a.tasks = taskqueue.New(taskqueue.WithLogger(a.logger))
	}

	if err := a.registry.ApplyHooks(a.hooks); err != nil {
		return nil, err
	}
	if err := a.registry.ApplyEvents(a.events); err != nil {
		return nil, err
	}
	if err := a.registry.ApplyMiddlewares(func(mw Middleware) {
		a.middlewares = append(a.middlewares, mw)
	}, a.httpChain); err != nil {
		return nil, err
	}

	return a, nil
}

// Hooks returns the live hook chain.
func (a *App) Hooks() *hookchain.Chain { return a.hooks }

// Events returns the live event bus.
func (a *App) Events() *eventbus.Bus { return a.events }

// Tasks returns the app's serial task queue.
func (a *App) Tasks() *taskqueue.Queue { return a.tasks }

// Config returns the app's configuration store.
func (a *App) Config() *config.Store { return a.config }

// Handler returns the app's full http.Handler: the generic middleware
// chain wrapping the chi router. It builds the router on first use,
// applying the ledger's routes.
func (a *App) Handler() (http.Handler, error) {
	if err := a.setup(); err != nil {
		return nil, err
	}
	return a.handler, nil
}

// setup builds the router once: ledger routes, module routes, router
// middlewares, health endpoints. After setup the registry is frozen.
func (a *App) setup() error {
	a.setupOnce.Do(func() {
		router := chi.NewRouter()

		if a.notFoundHandler != nil {
			router.NotFound(a.dispatch(a.notFoundHandler))
		}
		if a.methodNotAllowedHandler != nil {
			router.MethodNotAllowed(a.dispatch(a.methodNotAllowedHandler))
		}

		for _, mw := range a.middlewares {
			router.Use(a.adaptMiddleware(mw))
		}

		if a.healthConfig != nil {
			router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
			router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks))
		}

		adapter := &routerAdapter{router: router, app: a}
		if err := a.registry.ApplyRoutes(adapter.applyRoute); err != nil {
			a.setupErr = err
			return
		}
		for _, h := range a.handlers {
			h.Routes(adapter)
		}
		a.registry.Freeze()

		a.router = router
		a.handler = a.httpChain.Handler(router, func(w http.ResponseWriter, r *http.Request, err error) {
			a.logger.ErrorContext(r.Context(), "middleware chain failed", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		})
	})
	return a.setupErr
}

// dispatch wraps a route handler with the per-request lifecycle stages
// and error handling.
func (a *App) dispatch(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)

		defer func() {
			if _, err := a.hooks.Run(r.Context(), StageOnResponse, c); err != nil {
				a.logger.ErrorContext(r.Context(), "response hook failed", slog.Any("error", err))
			}
		}()

		if _, err := a.hooks.Run(r.Context(), StageOnRequest, c); err != nil {
			a.handleError(c, err)
			return
		}

		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError renders an error returned by a handler or hook, unless a
// response already went out.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		if hErr := a.errorHandler(c, err); hErr == nil {
			return
		}
	}
	if httpErr := AsHTTPError(err); httpErr != nil {
		http.Error(c.Response(), httpErr.Message, httpErr.Code)
		return
	}
	http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	app, err := modkit.New(
//	    modkit.WithConfig(store),
//	    modkit.WithHandlers(billing.New(repo)),
//	)
//	...
//	err = app.Run(":8080", modkit.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	return runServer(a, addr, cfg)
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during the readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
