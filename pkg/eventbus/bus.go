package eventbus

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"sync"
)

// Listener receives events published to a topic.
// Listeners must not assume they run on the publisher's goroutine.
type Listener func(ctx context.Context, args ...any)

// Bus is a named-topic publish/subscribe broadcaster.
// Topics are exact-match strings; each topic holds an ordered listener list.
// Publishing is fire-and-forget: the publisher never waits for listeners
// and never observes their failures.
type Bus struct {
	logger *slog.Logger
	topics map[string][]Listener
	mu     sync.RWMutex
}

// Option configures the Bus.
type Option func(*Bus)

// WithLogger sets the logger used to report listener panics.
// If not set, listener failures are silently discarded.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates an empty Bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		topics: make(map[string][]Listener),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe appends listener to the topic's list.
// There is no uniqueness constraint: subscribing the same listener twice
// makes it run twice per publish.
func (b *Bus) Subscribe(topic string, listener Listener) *Bus {
	if listener == nil {
		return b
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics[topic] = append(b.topics[topic], listener)
	return b
}

// Unsubscribe removes the first registration of listener from the topic,
// matched by function identity. Removing a listener that was never
// subscribed is a silent no-op.
func (b *Bus) Unsubscribe(topic string, listener Listener) *Bus {
	if listener == nil {
		return b
	}
	target := reflect.ValueOf(listener).Pointer()

	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.topics[topic]
	for i, l := range listeners {
		if reflect.ValueOf(l).Pointer() == target {
			b.topics[topic] = slices.Delete(slices.Clone(listeners), i, i+1)
			break
		}
	}
	return b
}

// Publish delivers args to every listener currently subscribed to topic,
// in registration order, and returns without waiting for them.
// A panicking listener is logged and does not stop subsequent listeners.
func (b *Bus) Publish(ctx context.Context, topic string, args ...any) *Bus {
	b.mu.RLock()
	listeners := slices.Clone(b.topics[topic])
	b.mu.RUnlock()

	if len(listeners) == 0 {
		return b
	}

	// A single goroutine runs the snapshot sequentially so the
	// registration-order guarantee holds within one publish.
	go func() {
		for _, l := range listeners {
			b.invoke(ctx, topic, l, args)
		}
	}()

	return b
}

func (b *Bus) invoke(ctx context.Context, topic string, l Listener, args []any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event listener panicked",
				slog.String("topic", topic),
				slog.Any("panic", r))
		}
	}()
	l(ctx, args...)
}

// ListenerCount returns the number of listeners subscribed to topic.
func (b *Bus) ListenerCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
