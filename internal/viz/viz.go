// Package viz draws the terminal illustrations that accompany each
// visualization and practice question.
//
// An illustration only ever sees the active step and whether playback is
// running; anything it animates beyond that it derives from the wall clock.
package viz

import (
	"fmt"
	"time"
)

// Props is what a visualization illustration receives.
type Props struct {
	ActiveStepIndex int
	IsRunning       bool
}

// Renderer draws one visualization at the given size.
type Renderer interface {
	Render(p Props, width, height int) string
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(p Props, width, height int) string

func (f RendererFunc) Render(p Props, width, height int) string {
	return f(p, width, height)
}

// Factory builds a Renderer. Factories run lazily on first use.
type Factory func() Renderer

// PracticeProps is what a practice-question illustration receives.
type PracticeProps struct {
	Variables map[string]float64
	// UserAnswer is nil until the learner submits.
	UserAnswer    *float64
	CorrectAnswer float64
	CaseKind      string
	IsRunning     bool
}

// PracticeRenderer draws the illustration for a practice question.
type PracticeRenderer interface {
	RenderPractice(p PracticeProps, width, height int) string
}

// now is the animation clock. Tests replace it.
var now = time.Now

// frame returns a counter that advances every d.
func frame(d time.Duration) int {
	return int(now().UnixNano() / int64(d))
}

// RenderError is returned by the safe render helpers when an illustration
// panics.
type RenderError struct {
	Value any
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("illustration failed: %v", e.Value)
}

// SafeRender calls r.Render and turns a panic into a *RenderError so a
// broken illustration cannot take down the screen that hosts it.
func SafeRender(r Renderer, p Props, width, height int) (out string, err error) {
	defer func() {
		if v := recover(); v != nil {
			out, err = "", &RenderError{Value: v}
		}
	}()
	if r == nil {
		return "", &RenderError{Value: "no illustration"}
	}
	return r.Render(p, width, height), nil
}

// SafeRenderPractice is SafeRender for practice illustrations.
func SafeRenderPractice(r PracticeRenderer, p PracticeProps, width, height int) (out string, err error) {
	defer func() {
		if v := recover(); v != nil {
			out, err = "", &RenderError{Value: v}
		}
	}()
	if r == nil {
		return "", &RenderError{Value: "no illustration"}
	}
	return r.RenderPractice(p, width, height), nil
}
