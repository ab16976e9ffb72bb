package components

import "gonum.org/v1/gonum/spatial/r3"

// Position is a body's physics-state position.
type Position struct {
	X, Y, Z float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r3.Vec { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// Set overwrites the position from a vector.
func (p *Position) Set(v r3.Vec) { p.X, p.Y, p.Z = v.X, v.Y, v.Z }

// Velocity is a body's linear velocity in units per second.
type Velocity struct {
	X, Y, Z float64
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// Set overwrites the velocity from a vector.
func (v *Velocity) Set(u r3.Vec) { v.X, v.Y, v.Z = u.X, u.Y, u.Z }

// Force accumulates forces applied during a tick.
// The integrator consumes and clears it.
type Force struct {
	X, Y, Z float64
}

// Vec returns the accumulated force as a vector.
func (f Force) Vec() r3.Vec { return r3.Vec{X: f.X, Y: f.Y, Z: f.Z} }

// Add accumulates a force.
func (f *Force) Add(v r3.Vec) {
	f.X += v.X
	f.Y += v.Y
	f.Z += v.Z
}

// Clear resets the accumulator.
func (f *Force) Clear() { f.X, f.Y, f.Z = 0, 0, 0 }

// Spin is cosmetic rotation. It never feeds back into physics.
type Spin struct {
	AngVel r3.Vec // radians per second about each axis
	Angle  r3.Vec // accumulated orientation (Euler, radians)
}
