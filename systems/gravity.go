package systems

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// GravitySolver pulls every body toward a single anchor, the heaviest
// live body. There are no mutual forces between the other bodies.
type GravitySolver struct {
	G             float64
	MinDistanceSq float64
}

// NewGravitySolver creates a solver with the given constant and near-field cutoff.
func NewGravitySolver(g, minDistanceSq float64) *GravitySolver {
	return &GravitySolver{G: g, MinDistanceSq: minDistanceSq}
}

// SelectAnchor returns the index of the heaviest live body, or -1 if none.
// Ties go to the first body encountered.
func SelectAnchor(refs []BodyRef) int {
	anchor := -1
	best := 0.0
	for i := range refs {
		if !refs[i].Alive() {
			continue
		}
		if anchor < 0 || refs[i].Body.Mass > best {
			anchor = i
			best = refs[i].Body.Mass
		}
	}
	return anchor
}

// ForceOn returns the force the anchor exerts on a body at pos with mass m.
// ok is false when the body is inside the near-field cutoff.
func (s *GravitySolver) ForceOn(anchorPos r3.Vec, anchorMass float64, pos r3.Vec, m float64) (r3.Vec, bool) {
	d := r3.Sub(anchorPos, pos)
	r2 := r3.Norm2(d)
	if r2 < s.MinDistanceSq {
		return r3.Vec{}, false
	}
	mag := s.G * anchorMass * m / r2
	return r3.Scale(mag, r3.Unit(d)), true
}

// Apply accumulates anchor gravity on every other live body.
// It returns the anchor index, or -1 when fewer than two bodies are live.
func (s *GravitySolver) Apply(refs []BodyRef) int {
	if LiveCount(refs) < 2 {
		return -1
	}
	anchor := SelectAnchor(refs)
	if anchor < 0 {
		return -1
	}
	a := &refs[anchor]
	anchorPos := a.Pos.Vec()

	for i := range refs {
		if i == anchor || !refs[i].Alive() {
			continue
		}
		f, ok := s.ForceOn(anchorPos, a.Body.Mass, refs[i].Pos.Vec(), refs[i].Body.Mass)
		if !ok {
			continue
		}
		refs[i].Force.Add(f)
	}
	return anchor
}
