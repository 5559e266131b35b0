// Package playback drives a step script forward over time or on demand,
// independent of how the steps are drawn.
package playback

import "time"

// DefaultStepDuration is used for steps with a missing or non-positive
// duration.
const DefaultStepDuration = 2000 * time.Millisecond

// Step is one timed unit of a visualization's explanatory sequence.
type Step struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Explanation string `json:"explanation" yaml:"explanation"`
	DurationMs  int    `json:"durationMs,omitempty" yaml:"durationMs,omitempty"`
}

// Duration returns how long the step plays before auto-advancing.
func (s Step) Duration() time.Duration {
	if s.DurationMs <= 0 {
		return DefaultStepDuration
	}
	return time.Duration(s.DurationMs) * time.Millisecond
}

// State is the playback position. It is either Stopped or Running.
type State interface {
	// Index returns the active step index.
	Index() int
	// IsRunning reports whether an auto-advance is pending.
	IsRunning() bool

	isState()
}

// Stopped is the idle state at Step.
type Stopped struct{ Step int }

// Running is the auto-advancing state at Step.
type Running struct{ Step int }

func (s Stopped) Index() int    { return s.Step }
func (Stopped) IsRunning() bool { return false }
func (Stopped) isState()        {}
func (s Running) Index() int    { return s.Step }
func (Running) IsRunning() bool { return true }
func (Running) isState()        {}

// Snapshot is a point-in-time view of the engine for rendering.
type Snapshot struct {
	ActiveIndex  int
	IsRunning    bool
	StepCount    int
	Step         Step
	StepElapsed  time.Duration
	StepDuration time.Duration
}

// Progress returns the fraction of the active step that has elapsed,
// in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.StepDuration <= 0 {
		return 0
	}
	return min(1, max(0, float64(s.StepElapsed)/float64(s.StepDuration)))
}

// AtEnd reports whether the sequence is complete.
func (s Snapshot) AtEnd() bool {
	return s.ActiveIndex == s.StepCount-1 && !s.IsRunning
}
