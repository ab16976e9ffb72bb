// Package systems provides the physics passes run over body components:
// gravity, integration, collision, merging and deformation.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultDirection is used wherever a direction is derived from a
// vector too short to normalize.
var DefaultDirection = r3.Vec{X: 1}

// degenerateLenSq is the squared length below which a vector has no direction.
const degenerateLenSq = 1e-12

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Direction returns the unit vector of v, or fallback when v is degenerate.
func Direction(v, fallback r3.Vec) r3.Vec {
	if r3.Norm2(v) < degenerateLenSq {
		return fallback
	}
	return r3.Unit(v)
}

// Lerp interpolates between a and b by t.
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// Finite reports whether every component of v is finite.
func Finite(v r3.Vec) bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Tangents returns two unit vectors spanning the plane perpendicular to n.
// up seeds the first tangent; if n is parallel to up, the x axis is used.
func Tangents(n, up r3.Vec) (r3.Vec, r3.Vec) {
	t1 := r3.Cross(n, up)
	if r3.Norm2(t1) < 1e-6 {
		t1 = DefaultDirection
	} else {
		t1 = r3.Unit(t1)
	}
	t2 := Direction(r3.Cross(n, t1), r3.Vec{Y: 1})
	return t1, t2
}
