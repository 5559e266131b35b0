// Package storage is the key/value persistence layer. It wraps a durable
// Backend and degrades to an in-process map whenever the backend is
// unavailable or failing, so callers never see a storage error.
package storage

import (
	"context"
	"errors"
)

// ErrUnavailable marks a permanent backend failure (disabled, sandboxed,
// closed). Operations that fail with it are not retried.
var ErrUnavailable = errors.New("storage backend unavailable")

// Backend is a durable string key/value store.
type Backend interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear deletes every key owned by the backend.
	Clear(ctx context.Context) error
}
