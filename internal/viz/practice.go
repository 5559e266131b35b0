package viz

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vizlearn/internal/physics"
)

// animation runs once from 0 to 1 after it is started.
type animation struct {
	mu      sync.Mutex
	started time.Time
	length  time.Duration
}

// progress starts the animation on the first running call and reports
// how far along it is.
func (a *animation) progress(running bool) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !running {
		if a.started.IsZero() {
			return 0
		}
		return 1
	}
	if a.started.IsZero() {
		a.started = now()
	}
	if a.length <= 0 {
		return 1
	}
	return math.Min(1, float64(now().Sub(a.started))/float64(a.length))
}

// PracticeFor returns a fresh illustration for a practice case kind, or
// nil for an unknown kind.
func PracticeFor(caseKind string) PracticeRenderer {
	switch {
	case strings.HasPrefix(caseKind, "glbb"):
		return &GLBBPractice{}
	case strings.HasPrefix(caseKind, "projectile"):
		return &ProjectilePractice{}
	}
	return nil
}

// GLBBPractice animates a car over t seconds and marks the learner's
// answer against the correct one.
type GLBBPractice struct {
	anim animation
}

func (g *GLBBPractice) RenderPractice(p PracticeProps, width, height int) string {
	v0, a, t := p.Variables["v0"], p.Variables["a"], p.Variables["t"]
	g.anim.length = time.Duration(t * float64(time.Second))
	prog := g.anim.progress(p.IsRunning)

	c := newCanvas(width, height)
	road := c.h - 2
	c.hline(0, c.w-1, road+1, '▔', stBorder)

	user := 0.0
	if p.UserAnswer != nil {
		user = *p.UserAnswer
	}
	elapsed := prog * t
	dist := physics.Distance(v0, a, elapsed)
	vel := physics.Velocity(v0, a, elapsed)

	if p.CaseKind == "glbb-distance" {
		maxDist := math.Max(math.Max(p.CorrectAnswer, user), 10) * 1.5
		scale := func(d float64) int { return int(d / maxDist * float64(c.w-6)) }
		c.text(scale(p.CorrectAnswer), 1, "⚑ target", stOK)
		if p.UserAnswer != nil {
			st := stBad
			if math.Abs(user-p.CorrectAnswer) <= 0.5 {
				st = stOK
			}
			c.text(scale(user), 2, fmt.Sprintf("⚑ you: %g", user), st)
		}
		c.text(scale(dist), road, "▄█▄▶", stBlue)
	} else {
		c.text(int(prog*float64(c.w-6)), road, "▄█▄▶", stBlue)
		if p.UserAnswer != nil {
			c.text(1, 1, fmt.Sprintf("you: %g m/s   target: %g m/s", user, p.CorrectAnswer), stDim)
		}
	}
	c.text(1, 0, fmt.Sprintf("t: %.2f s   v: %.2f m/s   s: %.2f m", elapsed, vel, dist), stText)
	if !p.IsRunning && p.UserAnswer == nil {
		c.centerText(c.h/2, "Submit an answer to run the simulation", stDim)
	}
	return c.String()
}

// ProjectilePractice animates the launch and draws target lines for the
// correct and submitted answers.
type ProjectilePractice struct {
	anim animation
}

func (pp *ProjectilePractice) RenderPractice(p PracticeProps, width, height int) string {
	l := physics.LaunchFrom(p.Variables)
	pp.anim.length = time.Duration(math.Max(l.FlightTime(), 1) * float64(time.Second))
	prog := pp.anim.progress(p.IsRunning)

	user := 0.0
	if p.UserAnswer != nil {
		user = *p.UserAnswer
	}
	maxX := math.Max(math.Max(l.Range(), 20), math.Max(p.CorrectAnswer, user)) * 1.2
	maxY := math.Max(math.Max(l.MaxHeight(), p.CorrectAnswer), math.Max(user, 10)) * 1.5
	if p.CaseKind == "projectile-range" {
		maxY = math.Max(l.MaxHeight(), 10) * 1.5
	}

	c := newCanvas(width, height)
	mark := func(v float64, label string, st *lipgloss.Style) {
		if p.CaseKind == "projectile-range" {
			x := int(math.Round(v / maxX * float64(c.w-1)))
			c.vline(x, 1, c.h-2, '┊', st)
			c.text(x+1, 1, label, st)
			return
		}
		y := c.h - 1 - int(math.Round(v/maxY*float64(c.h-1)))
		c.hline(0, c.w-1, y, '┄', st)
		c.text(c.w-len([]rune(label))-1, y, label, st)
	}

	mark(p.CorrectAnswer, fmt.Sprintf("target: %gm", p.CorrectAnswer), stOK)
	if p.UserAnswer != nil {
		st := stBad
		if math.Abs(user-p.CorrectAnswer) <= 0.5 {
			st = stOK
		}
		mark(user, fmt.Sprintf("you: %gm", user), st)
	}
	drawTrajectory(c, l, prog, maxX, maxY)

	c.text(1, 0, fmt.Sprintf("v₀: %g m/s  θ: %g°", l.V0, l.AngleDeg), stText)
	if !p.IsRunning && p.UserAnswer == nil {
		c.centerText(c.h/2, "Submit an answer to launch", stDim)
	}
	return c.String()
}
