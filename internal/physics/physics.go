// Package physics holds the closed-form kinematics used by the practice
// illustrations. Angles are in degrees, everything else in SI units.
package physics

import "math"

// DefaultGravity is used when a problem does not give g.
const DefaultGravity = 9.8

// Velocity is the speed after t seconds of uniform acceleration a from v0.
func Velocity(v0, a, t float64) float64 {
	return v0 + a*t
}

// Distance is the displacement after t seconds of uniform acceleration a
// from v0.
func Distance(v0, a, t float64) float64 {
	return v0*t + 0.5*a*t*t
}

// Launch is a projectile fired from ground level.
type Launch struct {
	V0       float64
	AngleDeg float64
	G        float64
}

// LaunchFrom reads v0, angle and an optional g from problem variables.
func LaunchFrom(vars map[string]float64) Launch {
	l := Launch{V0: vars["v0"], AngleDeg: vars["angle"], G: DefaultGravity}
	if g, ok := vars["g"]; ok && g > 0 {
		l.G = g
	}
	return l
}

func (l Launch) rad() float64 {
	return l.AngleDeg * math.Pi / 180
}

// Components returns the horizontal and initial vertical velocity.
func (l Launch) Components() (vx, vy float64) {
	r := l.rad()
	return l.V0 * math.Cos(r), l.V0 * math.Sin(r)
}

// FlightTime is the time until the projectile lands again.
func (l Launch) FlightTime() float64 {
	if l.G <= 0 {
		return 0
	}
	_, vy := l.Components()
	return 2 * vy / l.G
}

// MaxHeight is v0² sin²θ / 2g.
func (l Launch) MaxHeight() float64 {
	if l.G <= 0 {
		return 0
	}
	_, vy := l.Components()
	return vy * vy / (2 * l.G)
}

// Range is v0² sin 2θ / g.
func (l Launch) Range() float64 {
	if l.G <= 0 {
		return 0
	}
	return l.V0 * l.V0 * math.Sin(2*l.rad()) / l.G
}

// Position returns the projectile's coordinates at time t. Height never
// goes below ground.
func (l Launch) Position(t float64) (x, y float64) {
	vx, vy := l.Components()
	return vx * t, math.Max(0, vy*t-0.5*l.G*t*t)
}
