package hookchain

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Handler transforms the argument list of a stage run.
// The returned slice becomes the input of the next handler in the stage.
type Handler func(ctx context.Context, args []any) ([]any, error)

// Chain is a named-stage sequential transform pipeline.
// Each stage holds an ordered list of handlers; running a stage threads
// the argument list through every handler in registration order.
type Chain struct {
	stages  map[string][]Handler
	timeout time.Duration
	mu      sync.RWMutex
}

// Option configures the Chain.
type Option func(*Chain)

// WithStageTimeout bounds every Run with a deadline.
//
// By default stages run unbounded: a slow handler stalls its stage
// indefinitely, which long-running setup hooks (migrations, warmups)
// depend on. Opt in only when every registered handler honors ctx.
func WithStageTimeout(d time.Duration) Option {
	return func(c *Chain) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates an empty Chain.
func New(opts ...Option) *Chain {
	c := &Chain{stages: make(map[string][]Handler)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register appends handler to the stage's pipeline.
// Handlers run in registration order.
func (c *Chain) Register(stage string, handler Handler) *Chain {
	if handler == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stages[stage] = append(c.stages[stage], handler)
	return c
}

// Run executes the stage's handlers strictly sequentially, feeding each
// handler the previous handler's result. The first handler receives args;
// the last handler's result is returned.
//
// A handler error aborts the stage immediately: later handlers do not run
// and the error propagates to the caller. A stage with no handlers returns
// args unchanged. A panicking handler is converted to an error.
func (c *Chain) Run(ctx context.Context, stage string, args ...any) ([]any, error) {
	c.mu.RLock()
	handlers := slices.Clone(c.stages[stage])
	c.mu.RUnlock()

	if len(handlers) == 0 {
		return args, nil
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	current := args
	for i, h := range handlers {
		next, err := invoke(ctx, h, current)
		if err != nil {
			return nil, fmt.Errorf("hookchain: stage %q handler %d: %w", stage, i, err)
		}
		current = next
	}
	return current, nil
}

// invoke runs a single handler, turning a panic into an error so the
// abort-on-failure contract holds for panics too.
func invoke(ctx context.Context, h Handler, args []any) (result []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h(ctx, args)
}

// HandlerCount returns the number of handlers registered for stage.
func (c *Chain) HandlerCount(stage string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stages[stage])
}
