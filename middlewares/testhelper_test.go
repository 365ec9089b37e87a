package middlewares_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/modkit/internal"
	"github.com/dmitrymomot/modkit/pkg/taskqueue"
)

// testContext is a minimal internal.Context for middleware tests.
type testContext struct {
	response http.ResponseWriter
	request  *http.Request
	values   map[any]any
	written  bool
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: w,
		request:  r,
		values:   make(map[any]any),
	}
}

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }

func (c *testContext) Value(key any) any {
	if v, ok := c.values[key]; ok {
		return v
	}
	return c.request.Context().Value(key)
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.response }

func (c *testContext) SetRequest(r *http.Request) {
	if r != nil {
		c.request = r
	}
}

func (c *testContext) Param(name string) string { return "" }

func (c *testContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *testContext) Header(name string) string    { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string) { c.response.Header().Set(name, value) }

func (c *testContext) Get(key any) any { return c.values[key] }

func (c *testContext) Set(key, value any) { c.values[key] = value }

func (c *testContext) Config(path string) any { return "" }

func (c *testContext) Publish(topic string, args ...any) {}

func (c *testContext) Defer(task taskqueue.Task) {
	if task != nil {
		_ = task(context.Background())
	}
}

func (c *testContext) JSON(code int, v any) error {
	c.written = true
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	c.written = true
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error {
	c.written = true
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) Redirect(code int, url string) error {
	c.written = true
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) Written() bool { return c.written }

func (c *testContext) Logger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func (c *testContext) LogInfo(msg string, args ...any)  {}
func (c *testContext) LogError(msg string, args ...any) {}
