package viz

import (
	"fmt"
	"time"

	"github.com/abhisek/vizlearn/internal/physics"
)

// Demo parameters for the playback illustrations.
const (
	glbbV0 = 4.0
	glbbA  = 2.0
	glbbT  = 6.0

	parabolaV0    = 20.0
	parabolaAngle = 45.0
)

const motionFrame = 50 * time.Millisecond

// loopPhase returns a value in [0, 1] that repeats every period while
// running and holds at 1 when stopped.
func loopPhase(running bool, period time.Duration) float64 {
	if !running {
		return 1
	}
	steps := int(period / motionFrame)
	return float64(frame(motionFrame)%(steps+1)) / float64(steps)
}

// GLBB illustrates uniformly accelerated straight-line motion with a car.
func GLBB() Renderer {
	return RendererFunc(renderGLBB)
}

func renderGLBB(p Props, width, height int) string {
	c := newCanvas(width, height)
	road := c.h - 2
	c.hline(0, c.w-1, road+1, '▔', stBorder)

	total := physics.Distance(glbbV0, glbbA, glbbT)
	t := 0.0
	switch p.ActiveStepIndex {
	case 3:
		t = loopPhase(p.IsRunning, 4*time.Second) * glbbT
	case 4:
		t = glbbT
	}
	s := physics.Distance(glbbV0, glbbA, t)
	v := physics.Velocity(glbbV0, glbbA, t)

	x := int(s / total * float64(c.w-6))
	c.text(x, road, "▄█▄▶", stAccent)

	switch p.ActiveStepIndex {
	case 0:
		c.text(1, 0, "Constant acceleration: velocity changes by the same amount every second.", stText)
	case 1:
		c.text(1, 0, "v = v₀ + a·t", stPacket)
		c.text(1, 1, "s = v₀·t + ½·a·t²", stPacket)
		c.text(1, 2, "v² = v₀² + 2·a·s", stPacket)
	case 2:
		c.text(1, 0, fmt.Sprintf("v₀ = %.0f m/s   a = %.0f m/s²   t = %.0f s", glbbV0, glbbA, glbbT), stActive)
	case 3, 4:
		st := stText
		if p.ActiveStepIndex == 4 {
			st = stOK
		}
		c.text(1, 0, fmt.Sprintf("t = %5.2f s   v = %6.2f m/s   s = %7.2f m", t, v, s), st)
	}
	return c.String()
}

// Parabola illustrates projectile motion.
func Parabola() Renderer {
	return RendererFunc(renderParabola)
}

func renderParabola(p Props, width, height int) string {
	c := newCanvas(width, height-1)
	l := physics.Launch{V0: parabolaV0, AngleDeg: parabolaAngle, G: physics.DefaultGravity}
	drawTrajectory(c, l, loopPhase(p.IsRunning, 3*time.Second), l.Range(), l.MaxHeight()*1.2)

	info := fmt.Sprintf("v₀ = %.0f m/s  θ = %.0f°  H = %.1f m  R = %.1f m",
		l.V0, l.AngleDeg, l.MaxHeight(), l.Range())
	return c.String() + "\n" + stDim.Render(info)
}

// drawTrajectory plots the path up to fraction phase of the flight, with
// the projectile at its head.
func drawTrajectory(c *canvas, l physics.Launch, phase, maxX, maxY float64) {
	c.hline(0, c.w-1, c.h-1, '▁', stBorder)
	ft := l.FlightTime()
	if ft <= 0 {
		return
	}
	samples := c.w * 2
	for i := 0; i <= samples; i++ {
		x, y := l.Position(ft * float64(i) / float64(samples))
		c.plot(x, y, maxX, maxY, '·', stDim)
	}
	x, y := l.Position(ft * phase)
	c.plot(x, y, maxX, maxY, '●', stAccent)
}
