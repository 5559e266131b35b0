package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedBackend wraps Memory and fails operations on demand.
type scriptedBackend struct {
	*Memory

	mu        sync.Mutex
	calls     map[string]int
	failAll   error
	failCount map[string]int // op -> remaining transient failures
}

func newScriptedBackend() *scriptedBackend {
	return &scriptedBackend{
		Memory:    NewMemory(),
		calls:     make(map[string]int),
		failCount: make(map[string]int),
	}
}

func (b *scriptedBackend) fail(op string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[op]++
	if b.failAll != nil {
		return b.failAll
	}
	if b.failCount[op] > 0 {
		b.failCount[op]--
		return errors.New("transient " + op + " failure")
	}
	return nil
}

func (b *scriptedBackend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *scriptedBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := b.fail("get"); err != nil {
		return "", false, err
	}
	return b.Memory.Get(ctx, key)
}

func (b *scriptedBackend) Set(ctx context.Context, key, value string) error {
	if err := b.fail("set"); err != nil {
		return err
	}
	return b.Memory.Set(ctx, key, value)
}

func (b *scriptedBackend) Remove(ctx context.Context, key string) error {
	if err := b.fail("remove"); err != nil {
		return err
	}
	return b.Memory.Remove(ctx, key)
}

func (b *scriptedBackend) Clear(ctx context.Context) error {
	if err := b.fail("clear"); err != nil {
		return err
	}
	return b.Memory.Clear(ctx)
}

func noDelay() Option {
	return WithRetry(RetryConfig{Attempts: 3, Delay: 0})
}

func TestAdapter_RoundTripThroughBackend(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	a := New(b, NewState(), noDelay())

	require.True(t, a.Set(ctx, "k", "v"))
	v, ok := a.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	durable, ok, _ := b.Memory.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", durable)
	assert.False(t, a.UsingFallback())
}

func TestAdapter_AvailabilityCheckedOnce(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	a := New(b, NewState(), noDelay())

	a.Set(ctx, "a", "1")
	a.Set(ctx, "b", "2")
	a.Get(ctx, "a")

	// One availability write plus two real writes.
	assert.Equal(t, 3, b.count("set"))
	// One availability delete only.
	assert.Equal(t, 1, b.count("remove"))

	_, ok, _ := b.Memory.Get(ctx, checkKey)
	assert.False(t, ok, "availability key must be cleaned up")
}

func TestAdapter_BackendAlwaysFailing(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	b.failAll = errors.New("quota exceeded")
	state := NewState()
	a := New(b, state, noDelay())

	require.True(t, SetJSON(ctx, a, "k", map[string]int{"a": 1}))
	got := GetJSON(ctx, a, "k", map[string]int{})
	assert.Equal(t, map[string]int{"a": 1}, got)

	assert.True(t, a.UsingFallback())
	assert.Equal(t, AvailabilityUnavailable, state.Availability())

	// The failed availability check is the only backend contact; later calls skip it.
	assert.Equal(t, 1, b.count("set"))
	assert.Zero(t, b.count("get"))
}

func TestAdapter_TransientSetIsRetried(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	a := New(b, NewState(), noDelay())
	a.Get(ctx, "warmup") // availability check

	b.failCount["set"] = 2
	require.True(t, a.Set(ctx, "k", "v"))

	// availability check + 2 failures + 1 success
	assert.Equal(t, 4, b.count("set"))
	assert.False(t, a.UsingFallback())
}

func TestAdapter_SetExhaustingRetriesDegrades(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	a := New(b, NewState(), noDelay())
	a.Get(ctx, "warmup")

	b.failCount["set"] = 3
	assert.False(t, a.Set(ctx, "k", "v"), "durable write failed")
	assert.True(t, a.UsingFallback())

	v, ok := a.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v, "value served from memory")
}

func TestAdapter_PermanentErrorNotRetried(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	a := New(b, NewState(), noDelay())
	a.Get(ctx, "warmup")
	getsBefore := b.count("get")

	b.failAll = ErrUnavailable
	_, ok := a.Get(ctx, "missing")
	assert.False(t, ok)
	assert.Equal(t, getsBefore+1, b.count("get"))
}

func TestAdapter_GetFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	a := New(b, NewState(), noDelay())
	require.True(t, a.Set(ctx, "k", "v"))

	b.failCount["get"] = 3
	v, ok := a.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	assert.True(t, a.UsingFallback(), "an exhausted read disables the backend")
}

func TestAdapter_TransientGetIsRetried(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	a := New(b, NewState(), noDelay())
	require.True(t, a.Set(ctx, "k", "v"))

	b.failCount["get"] = 2
	v, ok := a.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	assert.False(t, a.UsingFallback())
}

func TestAdapter_DurableHitsAreMirrored(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	require.NoError(t, b.Memory.Set(ctx, "saved", "from-last-run"))
	state := NewState()
	a := New(b, state, noDelay())

	v, ok := a.Get(ctx, "saved")
	require.True(t, ok)
	assert.Equal(t, "from-last-run", v)

	mem, ok := state.memGet("saved")
	require.True(t, ok)
	assert.Equal(t, "from-last-run", mem)
}

func TestAdapter_FailedReadKeepsDurableValue(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	require.NoError(t, b.Memory.Set(ctx, "k", "durable"))
	a := New(b, NewState(), noDelay())

	b.failCount["get"] = 3
	_, ok := a.Get(ctx, "k")
	assert.False(t, ok, "memory has nothing for a key never read")

	a.Set(ctx, "k", "rebuilt")
	durable, _, _ := b.Memory.Get(ctx, "k")
	assert.Equal(t, "durable", durable)

	v, _ := a.Get(ctx, "k")
	assert.Equal(t, "rebuilt", v, "the session keeps its own value in memory")
}

func TestAdapter_ClearIsRetried(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	a := New(b, NewState(), noDelay())
	require.True(t, a.Set(ctx, "k", "v"))

	b.failCount["clear"] = 2
	require.True(t, a.Clear(ctx))
	assert.Equal(t, 3, b.count("clear"))
	_, ok, _ := b.Memory.Get(ctx, "k")
	assert.False(t, ok)
}

func TestAdapter_NilBackendIsMemoryOnly(t *testing.T) {
	ctx := context.Background()
	a := New(nil, nil)

	assert.True(t, a.Set(ctx, "k", "v"))
	v, ok := a.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	assert.True(t, a.UsingFallback())
}

func TestAdapter_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	a := New(b, NewState(), noDelay())

	a.Set(ctx, "a", "1")
	a.Set(ctx, "b", "2")

	require.True(t, a.Remove(ctx, "a"))
	_, ok := a.Get(ctx, "a")
	assert.False(t, ok)

	require.True(t, a.Clear(ctx))
	_, ok = a.Get(ctx, "b")
	assert.False(t, ok)
	_, ok, _ = b.Memory.Get(ctx, "b")
	assert.False(t, ok)
}

func TestAdapter_SharedStateAcrossAdapters(t *testing.T) {
	ctx := context.Background()
	b := newScriptedBackend()
	b.failAll = errors.New("disabled")
	state := NewState()

	first := New(b, state, noDelay())
	first.Set(ctx, "k", "v")

	second := New(b, state, noDelay())
	v, ok := second.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, 1, b.count("set"), "verdict is shared, no second check")

	state.ResetAll()
	assert.Equal(t, AvailabilityUnknown, state.Availability())
	_, ok = second.Get(ctx, "k")
	assert.False(t, ok)
}

func TestGetJSON_MalformedReturnsDefault(t *testing.T) {
	ctx := context.Background()
	a := New(NewMemory(), NewState(), noDelay())
	a.Set(ctx, "k", "{not json")

	type rec struct{ N int }
	got := GetJSON(ctx, a, "k", rec{N: 7})
	assert.Equal(t, rec{N: 7}, got)
}

func TestGetJSON_MissingReturnsDefault(t *testing.T) {
	a := New(NewMemory(), NewState())
	assert.Equal(t, 42, GetJSON(context.Background(), a, "nope", 42))
}

func TestSetJSON_UnencodableValue(t *testing.T) {
	a := New(NewMemory(), NewState())
	assert.False(t, SetJSON(context.Background(), a, "ch", make(chan int)))
}
