package playback

import (
	"errors"
	"sync"
	"time"

	"github.com/abhisek/vizlearn/internal/clock"
)

// ErrEmptyScript is returned when constructing an engine without steps.
var ErrEmptyScript = errors.New("playback: script has no steps")

// Engine is the play/pause/step/seek state machine for one step script.
//
// Auto-advance timers fire on their own goroutine, so every transition is
// serialized by mu. At most one timer is pending; each arm bumps gen and a
// fire carrying an older generation is dropped. Callbacks run outside the
// lock.
type Engine struct {
	mu    sync.Mutex
	steps []Step
	clock clock.Clock

	state State
	timer clock.Timer
	gen   uint64

	// stepStartedAt is when the active step began playing. Elapsed time is
	// always derived from it, never accumulated.
	stepStartedAt time.Time
	// frozenElapsed is the elapsed time shown while stopped.
	frozenElapsed time.Duration

	closed     bool
	onComplete func()
	onChange   func(State)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock driving auto-advance.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// OnComplete registers a callback invoked every time the engine comes to
// rest on the last step.
func OnComplete(fn func()) Option {
	return func(e *Engine) { e.onComplete = fn }
}

// OnChange registers a callback invoked after every state change.
func OnChange(fn func(State)) Option {
	return func(e *Engine) { e.onChange = fn }
}

// New creates an engine at Stopped(0).
func New(steps []Step, opts ...Option) (*Engine, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyScript
	}
	e := &Engine{
		steps: steps,
		clock: clock.Real(),
		state: Stopped{Step: 0},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.stepStartedAt = e.clock.Now()
	return e, nil
}

// Steps returns the script.
func (e *Engine) Steps() []Step {
	return e.steps
}

func (e *Engine) last() int {
	return len(e.steps) - 1
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Snapshot returns the current state with timing details.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.state.Index()
	step := e.steps[i]
	snap := Snapshot{
		ActiveIndex:  i,
		IsRunning:    e.state.IsRunning(),
		StepCount:    len(e.steps),
		Step:         step,
		StepDuration: step.Duration(),
		StepElapsed:  e.frozenElapsed,
	}
	if snap.IsRunning {
		snap.StepElapsed = min(e.clock.Now().Sub(e.stepStartedAt), snap.StepDuration)
	}
	return snap
}

// Play starts auto-advance. Playing from the last step restarts at 0.
// Playing while already running is a no-op.
func (e *Engine) Play() {
	e.mu.Lock()
	if e.closed || e.state.IsRunning() {
		e.mu.Unlock()
		return
	}
	i := e.state.Index()
	if i == e.last() {
		i = 0
	}
	notify := e.transition(Running{Step: i})
	e.mu.Unlock()
	notify()
}

// Pause stops auto-advance at the current step.
func (e *Engine) Pause() {
	e.mu.Lock()
	if e.closed || !e.state.IsRunning() {
		e.mu.Unlock()
		return
	}
	notify := e.transition(Stopped{Step: e.state.Index()})
	e.mu.Unlock()
	notify()
}

// Toggle pauses a running engine and plays a stopped one.
func (e *Engine) Toggle() {
	if e.State().IsRunning() {
		e.Pause()
		return
	}
	e.Play()
}

// Next moves one step forward. It does nothing while running or on the
// last step.
func (e *Engine) Next() {
	e.stepBy(1)
}

// Prev moves one step back. It does nothing while running or on the
// first step.
func (e *Engine) Prev() {
	e.stepBy(-1)
}

func (e *Engine) stepBy(delta int) {
	e.mu.Lock()
	if e.closed || e.state.IsRunning() {
		e.mu.Unlock()
		return
	}
	i := e.clamp(e.state.Index() + delta)
	if i == e.state.Index() {
		e.mu.Unlock()
		return
	}
	notify := e.transition(Stopped{Step: i})
	e.mu.Unlock()
	notify()
}

// Reset stops playback at the first step.
func (e *Engine) Reset() {
	e.Seek(0)
}

// Seek stops playback at step i, clamped to the script.
func (e *Engine) Seek(i int) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	notify := e.transition(Stopped{Step: e.clamp(i)})
	e.mu.Unlock()
	notify()
}

// Close cancels any pending auto-advance. The engine ignores all later
// calls.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.cancelTimer()
}

func (e *Engine) clamp(i int) int {
	return min(max(i, 0), e.last())
}

// transition moves to next, rearming or cancelling the timer, and returns
// the callbacks to run once the lock is released. Callers hold mu.
func (e *Engine) transition(next State) func() {
	prev := e.state
	now := e.clock.Now()

	if next.IsRunning() || next.Index() != prev.Index() {
		e.stepStartedAt = now
		e.frozenElapsed = 0
	} else if prev.IsRunning() {
		e.frozenElapsed = min(now.Sub(e.stepStartedAt), e.steps[prev.Index()].Duration())
	}

	e.cancelTimer()
	e.state = next
	if next.IsRunning() {
		e.arm(next.Index())
	}

	changed := prev != next
	completed := changed && e.isComplete(next) && !e.isComplete(prev)
	onChange, onComplete := e.onChange, e.onComplete

	return func() {
		if changed && onChange != nil {
			onChange(next)
		}
		if completed && onComplete != nil {
			onComplete()
		}
	}
}

func (e *Engine) isComplete(s State) bool {
	return s.Index() == e.last() && !s.IsRunning()
}

func (e *Engine) cancelTimer() {
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// arm schedules the auto-advance for step i. Callers hold mu and have
// already cancelled the previous timer.
func (e *Engine) arm(i int) {
	gen := e.gen
	e.timer = e.clock.AfterFunc(e.steps[i].Duration(), func() {
		e.fire(gen)
	})
}

func (e *Engine) fire(gen uint64) {
	e.mu.Lock()
	if e.closed || gen != e.gen || !e.state.IsRunning() {
		e.mu.Unlock()
		return
	}
	e.timer = nil

	i := e.state.Index()
	var next State = Stopped{Step: i}
	if i < e.last() {
		next = Running{Step: i + 1}
	}
	notify := e.transition(next)
	e.mu.Unlock()
	notify()
}
