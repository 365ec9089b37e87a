package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/modkit/pkg/config"
	"github.com/dmitrymomot/modkit/pkg/eventbus"
	"github.com/dmitrymomot/modkit/pkg/taskqueue"
)

// Context provides request/response access and helper methods.
// It implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the wrapped http.ResponseWriter.
	Response() http.ResponseWriter

	// SetRequest replaces the underlying request, typically to swap
	// in a derived context.
	SetRequest(r *http.Request)

	// Param returns the URL parameter value by name, or "".
	Param(name string) string

	// Query returns the query parameter value by name, or "".
	Query(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// Get retrieves a request-scoped value stored with Set.
	Get(key any) any

	// Set stores a request-scoped value.
	Set(key, value any)

	// Config resolves a dotted path against the app's config store.
	// Misses return "" per the store contract.
	Config(path string) any

	// Publish emits an event on the app's bus (fire-and-forget).
	Publish(topic string, args ...any)

	// Defer enqueues work onto the app's serial task queue. The task
	// runs after this handler returns, in enqueue order, off the
	// request goroutine.
	Defer(task taskqueue.Task)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect replies with a redirect to url.
	Redirect(code int, url string) error

	// Error creates an HTTPError to return from the handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether the response header has been sent.
	Written() bool

	// Logger returns the request-scoped logger.
	Logger() *slog.Logger

	// LogInfo logs at info level with the request logger.
	LogInfo(msg string, args ...any)

	// LogError logs at error level with the request logger.
	LogError(msg string, args ...any)
}

type appContext struct {
	w      *ResponseWriter
	r      *http.Request
	logger *slog.Logger
	cfg    *config.Store
	events *eventbus.Bus
	tasks  *taskqueue.Queue
	values map[any]any
	mu     sync.RWMutex
}

func newContext(w http.ResponseWriter, r *http.Request, a *App) *appContext {
	return &appContext{
		w:      NewResponseWriter(w),
		r:      r,
		logger: a.logger,
		cfg:    a.config,
		events: a.events,
		tasks:  a.tasks,
	}
}

// context.Context delegation.

func (c *appContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *appContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *appContext) Err() error                  { return c.r.Context().Err() }
func (c *appContext) Value(key any) any {
	c.mu.RLock()
	v, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return v
	}
	return c.r.Context().Value(key)
}

func (c *appContext) Request() *http.Request        { return c.r }
func (c *appContext) Response() http.ResponseWriter { return c.w }

func (c *appContext) SetRequest(r *http.Request) {
	if r != nil {
		c.r = r
	}
}

func (c *appContext) Param(name string) string {
	return chi.URLParam(c.r, name)
}

func (c *appContext) Query(name string) string {
	return c.r.URL.Query().Get(name)
}

func (c *appContext) Header(name string) string {
	return c.r.Header.Get(name)
}

func (c *appContext) SetHeader(name, value string) {
	c.w.Header().Set(name, value)
}

func (c *appContext) Get(key any) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

func (c *appContext) Set(key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = value
}

func (c *appContext) Config(path string) any {
	return c.cfg.Get(path)
}

func (c *appContext) Publish(topic string, args ...any) {
	if c.events != nil {
		// Detach from the request context: listeners may outlive it.
		c.events.Publish(context.WithoutCancel(c.r.Context()), topic, args...)
	}
}

func (c *appContext) Defer(task taskqueue.Task) {
	if c.tasks != nil {
		c.tasks.Enqueue(task)
	}
}

func (c *appContext) JSON(code int, v any) error {
	c.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.w.WriteHeader(code)
	return json.NewEncoder(c.w).Encode(v)
}

func (c *appContext) String(code int, s string) error {
	c.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.w.WriteHeader(code)
	_, err := c.w.Write([]byte(s))
	return err
}

func (c *appContext) NoContent(code int) error {
	c.w.WriteHeader(code)
	return nil
}

func (c *appContext) Redirect(code int, url string) error {
	http.Redirect(c.w, c.r, url, code)
	return nil
}

func (c *appContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *appContext) Written() bool {
	return c.w.Written()
}

func (c *appContext) Logger() *slog.Logger {
	return c.logger
}

func (c *appContext) LogInfo(msg string, args ...any) {
	c.logger.InfoContext(c.r.Context(), msg, args...)
}

func (c *appContext) LogError(msg string, args ...any) {
	c.logger.ErrorContext(c.r.Context(), msg, args...)
}
