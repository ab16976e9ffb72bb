package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Giant impact phases, in seconds of wall time since the timeline started.
const (
	approachEnd = 4.0
	closeUpEnd  = 8.0

	orbitRadius = 150.0
	orbitHeight = 25.0
	orbitSpeed  = 0.2
)

var (
	approachPos = r3.Vec{Y: 35, Z: 260}
	closeUpPos  = r3.Vec{Y: 20, Z: 120}
)

// GiantImpact drives the camera and simulation speed during a giant
// impact: a slowed wide approach, a slower close-up, then an orbit.
type GiantImpact struct {
	Elapsed float64
	playing bool
}

// Start restarts the timeline.
func (g *GiantImpact) Start() {
	g.Elapsed = 0
	g.playing = true
}

// Stop ends the timeline.
func (g *GiantImpact) Stop() {
	g.playing = false
	g.Elapsed = 0
}

// Playing reports whether the timeline is running.
func (g *GiantImpact) Playing() bool { return g.playing }

// Update advances the timeline by the unscaled frame delta, moves the
// rig, and returns the time scale for the simulation. The scale is 1
// when the timeline is not playing.
func (g *GiantImpact) Update(dt float64, r *Rig) float64 {
	if !g.playing {
		return 1
	}
	g.Elapsed += dt

	switch {
	case g.Elapsed < approachEnd:
		r.Position = lerp(r.Position, approachPos, 0.03)
		r.Target = lerp(r.Target, r3.Vec{}, 0.1)
		return 0.7
	case g.Elapsed < closeUpEnd:
		r.Position = lerp(r.Position, closeUpPos, 0.05)
		return 0.3
	default:
		t := g.Elapsed - closeUpEnd
		want := r3.Vec{
			X: math.Cos(orbitSpeed*t) * orbitRadius,
			Y: orbitHeight,
			Z: math.Sin(orbitSpeed*t) * orbitRadius,
		}
		r.Position = lerp(r.Position, want, 0.08)
		r.Target = r3.Vec{}
		return 0.5
	}
}
