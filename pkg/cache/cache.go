package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value store with per-entry TTL.
//
// TTL semantics for Set:
//   - positive: entry expires after the duration
//   - zero: the backend's configured default TTL applies
//   - negative: entry never expires
type Cache[V any] interface {
	// Get returns the value for key, or ErrNotFound when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (V, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Has reports whether key exists and has not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Delete removes key. Removing an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching a glob pattern, e.g.
	// "session:*".
	DeletePattern(ctx context.Context, pattern string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Locker is a minimal lock surface for single-winner coordination,
// e.g. making sure only one instance runs a migration.
type Locker interface {
	// TryLock acquires key for ttl. It returns ErrLockHeld without
	// blocking when someone else holds the lock.
	TryLock(ctx context.Context, key string, ttl time.Duration) error

	// Unlock releases key. Releasing an expired or absent lock is
	// not an error.
	Unlock(ctx context.Context, key string) error
}

// Marshaler converts values to and from bytes for backends that store
// byte strings, such as Redis.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

var loadGroup singleflight.Group

type loadResult[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet returns the cached value for key, loading it with fn on a
// miss. Concurrent misses for the same key are collapsed into a single
// fn call; the loaded value is cached best-effort with the TTL fn
// returns. When fn fails, nothing is cached and the error is returned.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := loadGroup.Do(key, func() (any, error) {
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return loadResult[V]{val: val, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	r := v.(loadResult[V])
	_ = c.Set(ctx, key, r.val, r.ttl)

	return r.val, nil
}
