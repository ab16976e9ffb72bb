// Package renderer draws bodies and effects with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/game"
	"github.com/pthm-cable/orrery/systems"
)

const (
	smoothRes = 18 // lat/long resolution for unshaped bodies

	// Tidal stretch at full deformation
	stretchAlong   = 0.35
	squeezeAcross  = 0.12
	ambientShare   = 0.18
	emissiveWeight = 0.35
)

// BodyRenderer draws bodies as lat/long triangle spheres shaded by the
// scene's light source.
type BodyRenderer struct {
	grid []r3.Vec // scratch vertex grid, reused across bodies
}

// NewBodyRenderer creates a body renderer.
func NewBodyRenderer() *BodyRenderer {
	return &BodyRenderer{}
}

// Draw renders every body. Must be called inside BeginMode3D.
func (r *BodyRenderer) Draw(bodies []game.BodyView, ambient float64) {
	light, hasLight := lightSource(bodies)
	for i := range bodies {
		b := &bodies[i]
		if b.Light > 0 {
			// Light sources are self-lit
			rl.DrawSphereEx(vec(b.Position), float32(b.Radius), 24, 24, rgba(b.Color, 1))
			continue
		}
		dir := r3.Unit(r3.Vec{X: 1, Y: 0.6, Z: 0.8})
		if hasLight {
			dir = r3.Sub(light, b.Position)
			if r3.Norm(dir) > 0 {
				dir = r3.Unit(dir)
			}
		}
		r.drawBody(b, dir, ambient)
	}
}

// lightSource returns the position of the brightest light body.
func lightSource(bodies []game.BodyView) (r3.Vec, bool) {
	best := -1
	for i := range bodies {
		if bodies[i].Light > 0 && (best < 0 || bodies[i].Light > bodies[best].Light) {
			best = i
		}
	}
	if best < 0 {
		return r3.Vec{}, false
	}
	return bodies[best].Position, true
}

func (r *BodyRenderer) drawBody(b *game.BodyView, toLight r3.Vec, ambient float64) {
	res := smoothRes
	if b.Shape != nil && b.Shape.Lumpy {
		res = b.Shape.Res
	}
	if cap(r.grid) < res*res {
		r.grid = make([]r3.Vec, res*res)
	}
	grid := r.grid[:res*res]

	for i := 0; i < res; i++ {
		lat := math.Pi * (float64(i)/float64(res-1) - 0.5)
		for j := 0; j < res; j++ {
			lon := 2 * math.Pi * float64(j) / float64(res)
			h := systems.HeightAt(b.Shape, i, j)
			v := r3.Vec{
				X: math.Cos(lat) * math.Cos(lon),
				Y: math.Sin(lat),
				Z: math.Cos(lat) * math.Sin(lon),
			}
			v = rotate(r3.Scale(b.Radius*h, v), b.Angle)
			v = deform(v, b.DeformDir, b.DeformAmount)
			grid[i*res+j] = r3.Add(b.Position, v)
		}
	}

	glow := b.EmissiveIntensity * emissiveWeight
	for i := 0; i < res-1; i++ {
		for j := 0; j < res; j++ {
			jn := (j + 1) % res
			p00 := grid[i*res+j]
			p10 := grid[(i+1)*res+j]
			p01 := grid[i*res+jn]
			p11 := grid[(i+1)*res+jn]
			r.face(p00, p10, p01, b, toLight, ambient, glow)
			r.face(p10, p11, p01, b, toLight, ambient, glow)
		}
	}
}

// face draws one counter-clockwise triangle with Lambert shading.
func (r *BodyRenderer) face(a, b, c r3.Vec, body *game.BodyView, toLight r3.Vec, ambient, glow float64) {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	if r3.Norm(n) == 0 {
		return
	}
	diffuse := math.Max(0, r3.Dot(r3.Unit(n), toLight))
	light := ambient * (ambientShare + (1-ambientShare)*diffuse)
	rl.DrawTriangle3D(vec(a), vec(b), vec(c), shade(body.Color, light, body.Emissive, glow))
}

// rotate applies XYZ Euler angles.
func rotate(v, angle r3.Vec) r3.Vec {
	if angle == (r3.Vec{}) {
		return v
	}
	sz, cz := math.Sincos(angle.Z)
	v = r3.Vec{X: v.X*cz - v.Y*sz, Y: v.X*sz + v.Y*cz, Z: v.Z}
	sy, cy := math.Sincos(angle.Y)
	v = r3.Vec{X: v.X*cy + v.Z*sy, Y: v.Y, Z: -v.X*sy + v.Z*cy}
	sx, cx := math.Sincos(angle.X)
	return r3.Vec{X: v.X, Y: v.Y*cx - v.Z*sx, Z: v.Y*sx + v.Z*cx}
}

// deform stretches v along dir and thins it across.
func deform(v, dir r3.Vec, amount float64) r3.Vec {
	if amount <= 0 || r3.Norm(dir) == 0 {
		return v
	}
	along := r3.Scale(r3.Dot(v, dir), dir)
	across := r3.Sub(v, along)
	return r3.Add(
		r3.Scale(1+stretchAlong*amount, along),
		r3.Scale(1-squeezeAcross*amount, across),
	)
}
