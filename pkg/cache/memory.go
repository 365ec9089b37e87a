package cache

import (
	"container/list"
	"context"
	"fmt"
	"path"
	"sync"
	"time"
)

// memEntry is a cached value with its key and expiry.
type memEntry[V any] struct {
	expiresAt time.Time // zero means never expires
	value     V
	key       string
}

func (e *memEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-process cache with TTL expiry and optional LRU
// eviction when a maximum entry count is set.
//
// Lookups go through a map; recency ordering lives in a doubly-linked
// list with the most recently used entries at the front. A background
// reaper removes expired entries on the configured interval.
type Memory[V any] struct {
	items   map[string]*list.Element
	lru     *list.List
	locks   map[string]time.Time
	opts    *memoryOptions
	onEvict func(key string, value V)
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewMemory creates an in-memory cache.
//
// Example:
//
//	c := cache.NewMemory[string](
//	    cache.WithDefaultTTL(5 * time.Minute),
//	    cache.WithMaxEntries(10000),
//	)
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		items: make(map[string]*list.Element),
		lru:   list.New(),
		locks: make(map[string]time.Time),
		opts:  o,
		done:  make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.reaper()
	}

	return m
}

// SetEvictCallback registers fn to run whenever an entry leaves the
// cache: LRU eviction, expiry, Delete, DeletePattern, or Clear.
func (m *Memory[V]) SetEvictCallback(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Get returns the value for key, marking it as recently used.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}

	e := elem.Value.(*memEntry[V])
	if e.expired(time.Now()) {
		m.removeElement(elem)
		var zero V
		return zero, ErrNotFound
	}

	m.lru.MoveToFront(elem)

	return e.value, nil
}

// Set stores value under key. See Cache for the TTL semantics.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*memEntry[V])
		e.value = value
		e.expiresAt = expiresAt
		m.lru.MoveToFront(elem)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		if oldest := m.lru.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}

	elem := m.lru.PushFront(&memEntry[V]{key: key, value: value, expiresAt: expiresAt})
	m.items[key] = elem

	return nil
}

// Has reports whether key exists and has not expired. Unlike Get it
// does not refresh recency.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return false, nil
	}
	if elem.Value.(*memEntry[V]).expired(time.Now()) {
		m.removeElement(elem)
		return false, nil
	}

	return true, nil
}

// Delete removes key.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if elem, ok := m.items[key]; ok {
		m.removeElement(elem)
	}

	return nil
}

// DeletePattern removes every key matching the glob pattern, using
// path.Match syntax ("session:*", "user:?:avatar").
func (m *Memory[V]) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	for key, elem := range m.items {
		ok, err := path.Match(pattern, key)
		if err != nil {
			return fmt.Errorf("cache: bad pattern %q: %w", pattern, err)
		}
		if ok {
			m.removeElement(elem)
		}
	}

	return nil
}

// Clear removes every entry.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if m.onEvict != nil {
		for _, elem := range m.items {
			e := elem.Value.(*memEntry[V])
			m.onEvict(e.key, e.value)
		}
	}

	m.items = make(map[string]*list.Element)
	m.lru.Init()

	return nil
}

// TryLock acquires a named lock for ttl, failing with ErrLockHeld
// when another holder has it and it has not expired.
func (m *Memory[V]) TryLock(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	now := time.Now()
	if until, ok := m.locks[key]; ok && now.Before(until) {
		return ErrLockHeld
	}
	if ttl <= 0 {
		ttl = m.opts.defaultTTL
	}
	m.locks[key] = now.Add(ttl)

	return nil
}

// Unlock releases a named lock.
func (m *Memory[V]) Unlock(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.locks, key)
	return nil
}

// Close stops the reaper and marks the cache closed. Idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)

	return nil
}

func (m *Memory[V]) reaper() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

// deleteExpired sweeps from the LRU tail, where expired entries
// cluster.
func (m *Memory[V]) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for elem := m.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*memEntry[V]).expired(now) {
			m.removeElement(elem)
		}
		elem = prev
	}
	for key, until := range m.locks {
		if now.After(until) {
			delete(m.locks, key)
		}
	}
}

// removeElement drops an entry and fires the eviction callback.
// Caller holds the mutex.
func (m *Memory[V]) removeElement(elem *list.Element) {
	m.lru.Remove(elem)
	e := elem.Value.(*memEntry[V])
	delete(m.items, e.key)

	if m.onEvict != nil {
		m.onEvict(e.key, e.value)
	}
}

var (
	_ Cache[any] = (*Memory[any])(nil)
	_ Locker     = (*Memory[any])(nil)
)
