package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

// DeformationSolver sets cosmetic squash targets for bodies about to touch.
type DeformationSolver struct {
	NearFactor    float64
	ContactFactor float64
	EaseRate      float64
}

// NewDeformationSolver creates a solver. Pairs farther apart than
// nearFactor*sumR are ignored; deformation is full at contactFactor*sumR.
func NewDeformationSolver(nearFactor, contactFactor, easeRate float64) *DeformationSolver {
	return &DeformationSolver{NearFactor: nearFactor, ContactFactor: contactFactor, EaseRate: easeRate}
}

// Strength returns the deformation target for a pair at dist with summed radius sumR.
func (s *DeformationSolver) Strength(dist, sumR float64) float64 {
	if sumR <= 0 || dist > s.NearFactor*sumR {
		return 0
	}
	contact := s.ContactFactor * sumR
	return Clamp01(1 - (dist-contact)/contact)
}

// Apply resets every target, then raises targets for close live pairs.
func (s *DeformationSolver) Apply(refs []BodyRef) {
	for i := range refs {
		if refs[i].Deform != nil {
			refs[i].Deform.Target = 0
		}
	}
	if LiveCount(refs) < 2 {
		return
	}

	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			a, b := &refs[i], &refs[j]
			if !a.Alive() || !b.Alive() || a.Deform == nil || b.Deform == nil {
				continue
			}
			d := r3.Sub(b.Visual.Position, a.Visual.Position)
			dist := r3.Norm(d)
			t := s.Strength(dist, a.Body.Radius+b.Body.Radius)
			if t <= 0 {
				continue
			}
			dir := Direction(d, DefaultDirection)
			setDeform(a, dir, t)
			setDeform(b, r3.Scale(-1, dir), t)
		}
	}
}

// Ease moves each amount a fraction of the way toward its target.
func (s *DeformationSolver) Ease(d *components.Deform) {
	d.Amount += (d.Target - d.Amount) * s.EaseRate
}

func setDeform(b *BodyRef, dir r3.Vec, t float64) {
	if t >= b.Deform.Target {
		b.Deform.Dir = dir
		b.Deform.Target = t
	}
}
