package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// checkKey is written and deleted once to test the durable backend.
const checkKey = "__storage_test__"

// RetryConfig bounds the retries of a single durable operation.
type RetryConfig struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryConfig returns three attempts spaced 100ms apart.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts: 3,
		Delay:    100 * time.Millisecond,
	}
}

// Adapter is the failure-tolerant front of a Backend. Every write is
// mirrored into the shared State so that reads can be served from memory
// when the backend cannot answer. No method returns an error.
type Adapter struct {
	backend Backend
	state   *State
	retry   RetryConfig
	logger  *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithRetry overrides the retry policy.
func WithRetry(cfg RetryConfig) Option {
	return func(a *Adapter) { a.retry = cfg }
}

// WithLogger sets the logger used for degraded-path diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an Adapter over backend sharing state. A nil backend means
// memory-only operation. A nil state gets a private State.
func New(backend Backend, state *State, opts ...Option) *Adapter {
	if state == nil {
		state = NewState()
	}
	a := &Adapter{
		backend: backend,
		state:   state,
		retry:   DefaultRetryConfig(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// UsingFallback reports whether the durable path has been disabled.
func (a *Adapter) UsingFallback() bool {
	return a.state.Availability() == AvailabilityUnavailable
}

// Get returns the value stored under key, preferring the durable backend
// and falling back to memory. Durable hits are mirrored into memory. A read
// that still fails after retries disables the durable path, so a value
// rebuilt from the fallback never overwrites the durable copy.
func (a *Adapter) Get(ctx context.Context, key string) (string, bool) {
	if a.available(ctx) {
		var (
			value string
			found bool
		)
		err := a.withRetry(ctx, func(ctx context.Context) error {
			var err error
			value, found, err = a.backend.Get(ctx, key)
			return err
		})
		if err == nil {
			if found {
				a.state.memSet(key, value)
			}
			return value, found
		}
		a.logger.Error("storage get failed, reading memory fallback", "key", key, "err", err)
		a.markUnavailable(err)
	}
	return a.state.memGet(key)
}

// Set stores value under key. It reports false when the durable write
// failed; the value is kept in memory regardless.
func (a *Adapter) Set(ctx context.Context, key, value string) bool {
	ok := true
	if a.available(ctx) {
		err := a.withRetry(ctx, func(ctx context.Context) error {
			return a.backend.Set(ctx, key, value)
		})
		if err != nil {
			a.logger.Error("storage set failed, keeping value in memory only", "key", key, "err", err)
			a.markUnavailable(err)
			ok = false
		}
	}
	a.state.memSet(key, value)
	return ok
}

// Remove deletes key from the backend and from memory.
func (a *Adapter) Remove(ctx context.Context, key string) bool {
	ok := true
	if a.available(ctx) {
		err := a.withRetry(ctx, func(ctx context.Context) error {
			return a.backend.Remove(ctx, key)
		})
		if err != nil {
			a.logger.Error("storage remove failed", "key", key, "err", err)
			ok = false
		}
	}
	a.state.memDelete(key)
	return ok
}

// Clear deletes all keys from the backend and from memory.
func (a *Adapter) Clear(ctx context.Context) bool {
	ok := true
	if a.available(ctx) {
		err := a.withRetry(ctx, func(ctx context.Context) error {
			return a.backend.Clear(ctx)
		})
		if err != nil {
			a.logger.Error("storage clear failed", "err", err)
			ok = false
		}
	}
	a.state.memClear()
	return ok
}

// available returns the cached verdict, probing the backend on first use.
func (a *Adapter) available(ctx context.Context) bool {
	switch a.state.Availability() {
	case AvailabilityAvailable:
		return true
	case AvailabilityUnavailable:
		return false
	}

	if a.backend == nil {
		a.markUnavailable(ErrUnavailable)
		return false
	}
	if err := a.checkBackend(ctx); err != nil {
		a.markUnavailable(err)
		return false
	}
	a.state.setAvailability(AvailabilityAvailable)
	return true
}

func (a *Adapter) checkBackend(ctx context.Context) error {
	if err := a.backend.Set(ctx, checkKey, checkKey); err != nil {
		return err
	}
	return a.backend.Remove(ctx, checkKey)
}

func (a *Adapter) markUnavailable(cause error) {
	if a.state.Availability() == AvailabilityUnavailable {
		return
	}
	a.state.setAvailability(AvailabilityUnavailable)
	a.logger.Warn("durable storage is not available, using in-memory fallback", "cause", cause)
}

// withRetry runs op up to the configured number of attempts. Permanent
// errors and context cancellation end the loop immediately.
func (a *Adapter) withRetry(ctx context.Context, op func(context.Context) error) error {
	attempts := max(a.retry.Attempts, 1)

	var lastErr error
	for attempt := range attempts {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isTransient(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(a.retry.Delay):
		}
	}
	return lastErr
}

func isTransient(err error) bool {
	if errors.Is(err, ErrUnavailable) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
