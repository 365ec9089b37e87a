package taskqueue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Task is a unit of deferred work. The queue owns a task from enqueue
// until it has run exactly once.
type Task func(ctx context.Context) error

// Queue is an unbounded FIFO of deferred tasks with a single-drain
// guarantee: at most one drain loop runs at a time, so tasks never
// overlap and always execute in enqueue order.
//
// Enqueue returns as soon as the task is appended; callers that need a
// completion signal must build one into the task body.
type Queue struct {
	ctx      context.Context
	logger   *slog.Logger
	pending  []Task
	idle     chan struct{}
	draining bool
	mu       sync.Mutex
}

// Option configures the Queue.
type Option func(*Queue)

// WithLogger sets the logger used to report task failures.
func WithLogger(l *slog.Logger) Option {
	return func(q *Queue) {
		if l != nil {
			q.logger = l
		}
	}
}

// WithBaseContext sets the context passed to every task.
// Defaults to context.Background(). The queue does not cancel running
// tasks itself; a task that ignores its context blocks the drain loop
// until it finishes.
func WithBaseContext(ctx context.Context) Option {
	return func(q *Queue) {
		if ctx != nil {
			q.ctx = ctx
		}
	}
}

// New creates an empty Queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		ctx:    context.Background(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		idle:   make(chan struct{}),
	}
	close(q.idle)
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends task to the tail and starts a drain loop if none is
// active. It returns once the task is appended, not when it has run.
// Enqueueing from inside a running task is safe: the active drain loop
// picks the new task up before it exits.
func (q *Queue) Enqueue(task Task) {
	if task == nil {
		return
	}

	q.mu.Lock()
	q.pending = append(q.pending, task)
	if q.draining {
		q.mu.Unlock()
		return
	}
	q.draining = true
	q.idle = make(chan struct{})
	q.mu.Unlock()

	go q.drain()
}

// drain pops and runs tasks until the queue is empty. The pending list
// is re-checked after every task, so tasks appended mid-loop run before
// the draining flag clears.
func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			close(q.idle)
			q.mu.Unlock()
			return
		}
		task := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		if err := q.run(task); err != nil {
			q.logger.Error("queued task failed", slog.Any("error", err))
		}
	}
}

func (q *Queue) run(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return task(q.ctx)
}

// Len returns the number of tasks waiting to run.
// The task currently executing, if any, is not counted.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Wait blocks until the queue is idle (no pending tasks and no active
// drain loop) or ctx is done. Used for graceful shutdown and in tests.
func (q *Queue) Wait(ctx context.Context) error {
	for {
		q.mu.Lock()
		idle := q.idle
		draining := q.draining
		q.mu.Unlock()

		if !draining {
			return nil
		}

		select {
		case <-idle:
			// A task may have restarted the loop between the channel
			// closing and this check; loop to confirm idleness.
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
