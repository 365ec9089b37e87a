package cache

import "errors"

var (
	// ErrNotFound indicates the key is absent or its entry expired.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrClosed indicates an operation on a closed cache.
	ErrClosed = errors.New("cache: closed")

	// ErrMarshal indicates value serialization failed.
	ErrMarshal = errors.New("cache: marshal failed")

	// ErrUnmarshal indicates value deserialization failed.
	ErrUnmarshal = errors.New("cache: unmarshal failed")

	// ErrLockHeld indicates TryLock lost the race for a key.
	ErrLockHeld = errors.New("cache: lock already held")
)
