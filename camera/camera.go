// Package camera provides a 3D orbit camera rig and the scripted
// camera path used during a giant impact.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/config"
)

// Rig is an orbit camera: a position looking at a target.
type Rig struct {
	Position r3.Vec
	Target   r3.Vec

	// Home is where Reset and invalid frames return to
	Home       r3.Vec
	HomeTarget r3.Vec

	FollowLerp        float64
	FollowMaxDistance float64
	FOV               float64

	// Distance constraints for Dolly
	MinDistance, MaxDistance float64
}

// New creates a rig at the configured default position looking at the origin.
func New(cfg config.CameraConfig) *Rig {
	home := r3.Vec{X: cfg.DefaultPosition[0], Y: cfg.DefaultPosition[1], Z: cfg.DefaultPosition[2]}
	return &Rig{
		Position:          home,
		Home:              home,
		FollowLerp:        cfg.FollowLerp,
		FollowMaxDistance: cfg.FollowMaxDistance,
		FOV:               cfg.FOV,
		MinDistance:       2,
		MaxDistance:       2000,
	}
}

// Set places the camera. Non-finite components fall back to the home
// position and home target.
func (r *Rig) Set(pos, lookAt r3.Vec) {
	r.Position = pos
	if !finite(pos) {
		r.Position = r.Home
	}
	r.Target = lookAt
	if !finite(lookAt) {
		r.Target = r.HomeTarget
	}
}

// SetHome makes pos/lookAt the Reset destination and moves there.
func (r *Rig) SetHome(pos, lookAt r3.Vec) {
	r.Set(pos, lookAt)
	r.Home = r.Position
	r.HomeTarget = r.Target
}

// Reset returns the camera to its home framing.
func (r *Rig) Reset() {
	r.Position = r.Home
	r.Target = r.HomeTarget
}

// Follow eases the look target toward target and pulls the camera in
// when it is farther than FollowMaxDistance.
func (r *Rig) Follow(target r3.Vec) {
	if !finite(target) {
		return
	}
	r.Target = lerp(r.Target, target, r.FollowLerp)

	d := r3.Sub(r.Position, target)
	dist := r3.Norm(d)
	if dist > r.FollowMaxDistance && dist > 0 {
		want := r3.Add(target, r3.Scale(r.FollowMaxDistance/dist, d))
		r.Position = lerp(r.Position, want, r.FollowLerp)
	}
}

// Distance returns the distance from camera to target.
func (r *Rig) Distance() float64 {
	return r3.Norm(r3.Sub(r.Position, r.Target))
}

// Orbit rotates the camera around the target by yaw (about +Y) and
// pitch (toward the poles) in radians. Pitch stops short of the poles.
func (r *Rig) Orbit(yaw, pitch float64) {
	off := r3.Sub(r.Position, r.Target)
	dist := r3.Norm(off)
	if dist == 0 {
		return
	}
	theta := math.Atan2(off.X, off.Z) + yaw
	phi := math.Acos(clamp(off.Y/dist, -1, 1)) - pitch
	phi = clamp(phi, 0.05, math.Pi-0.05)

	r.Position = r3.Add(r.Target, r3.Vec{
		X: dist * math.Sin(phi) * math.Sin(theta),
		Y: dist * math.Cos(phi),
		Z: dist * math.Sin(phi) * math.Cos(theta),
	})
}

// Dolly scales the camera distance by factor, clamped to the rig limits.
func (r *Rig) Dolly(factor float64) {
	off := r3.Sub(r.Position, r.Target)
	dist := r3.Norm(off)
	if dist == 0 || factor <= 0 {
		return
	}
	next := clamp(dist*factor, r.MinDistance, r.MaxDistance)
	r.Position = r3.Add(r.Target, r3.Scale(next/dist, off))
}

// lerp moves a toward b by t.
func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

func finite(v r3.Vec) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
