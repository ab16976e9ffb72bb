package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/effects"
)

const (
	particleScale = 0.35 // world size per unit of point size
	ringBands     = 6
)

// ParticleRenderer renders effect particles and flash shapes.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all effects with additive blending. Must be called inside
// BeginMode3D, after opaque geometry.
func (r *ParticleRenderer) Draw(fx []effects.Effect) {
	rl.BeginBlendMode(rl.BlendAdditive)
	defer rl.EndBlendMode()

	for _, e := range fx {
		if e.Finished() {
			continue
		}
		switch v := e.(type) {
		case *effects.Sparks:
			r.drawHalo(v.Halo)
			r.drawEmitter(v.Emitter)
		case *effects.Emitter:
			r.drawEmitter(v)
		case *effects.Flash:
			rl.DrawSphereEx(vec(v.Pos), float32(v.Scale), 16, 16, rgba(v.Color, v.Opacity))
		case *effects.Ring:
			r.drawRing(v)
		}
	}
}

func (r *ParticleRenderer) drawEmitter(e *effects.Emitter) {
	opacity := e.Opacity()
	if opacity <= 0 {
		return
	}
	s := float32(e.PointSize() * particleScale)
	size := rl.NewVector3(s, s, s)
	particles := e.Particles()
	for i := range particles {
		p := &particles[i]
		if !p.Visible() {
			continue
		}
		rl.DrawCubeV(vec(p.Pos), size, rgba(p.Color, opacity*p.Fraction()))
	}
}

// drawHalo draws the leading-edge glow as a disc facing the travel direction.
func (r *ParticleRenderer) drawHalo(h effects.Halo) {
	if h.Opacity <= 0 || h.Radius <= 0 {
		return
	}
	axis, angle := discRotation(h.Normal)
	c := rgba(effects.HaloColor, h.Opacity)
	for k := 1; k <= ringBands; k++ {
		rl.DrawCircle3D(vec(h.Pos), float32(h.Radius*float64(k)/ringBands), axis, angle, c)
	}
}

// drawRing draws the shockwave as concentric circles in the horizontal plane.
func (r *ParticleRenderer) drawRing(ring *effects.Ring) {
	inner := ring.InnerRadius * ring.Scale
	outer := ring.OuterRadius * ring.Scale
	c := rgba(ring.Color, ring.Opacity)
	axis := rl.NewVector3(1, 0, 0)
	for k := 0; k <= ringBands; k++ {
		radius := inner + (outer-inner)*float64(k)/ringBands
		rl.DrawCircle3D(vec(ring.Pos), float32(radius), axis, 90, c)
	}
}

// discRotation returns the axis/angle (degrees) turning the XY plane's
// normal onto n.
func discRotation(n r3.Vec) (rl.Vector3, float32) {
	z := r3.Vec{Z: 1}
	if r3.Norm(n) == 0 {
		return rl.NewVector3(1, 0, 0), 0
	}
	n = r3.Unit(n)
	axis := r3.Cross(z, n)
	if r3.Norm(axis) < 1e-9 {
		if n.Z < 0 {
			return rl.NewVector3(1, 0, 0), 180
		}
		return rl.NewVector3(1, 0, 0), 0
	}
	angle := math.Acos(math.Max(-1, math.Min(1, r3.Dot(z, n))))
	return vec(r3.Unit(axis)), float32(angle * 180 / math.Pi)
}
