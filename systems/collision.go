package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

// CollisionDetector finds overlapping pairs using rendered positions.
type CollisionDetector struct {
	GenericFudge float64
	ImpactFudge  float64
}

// NewCollisionDetector creates a detector with the given threshold multipliers.
func NewCollisionDetector(genericFudge, impactFudge float64) *CollisionDetector {
	return &CollisionDetector{GenericFudge: genericFudge, ImpactFudge: impactFudge}
}

// IsImpactPair reports whether the roles form a primary/impactor pairing.
func IsImpactPair(a, b components.Role) bool {
	return (a == components.RolePrimary && b == components.RoleImpactor) ||
		(a == components.RoleImpactor && b == components.RolePrimary)
}

// Threshold returns the contact distance for two bodies.
func (d *CollisionDetector) Threshold(ra, rb float64, roleA, roleB components.Role) float64 {
	fudge := d.GenericFudge
	if IsImpactPair(roleA, roleB) {
		fudge = d.ImpactFudge
	}
	return (ra + rb) * fudge
}

// Touching reports whether two bodies at the given centres are in contact.
func (d *CollisionDetector) Touching(pa, pb r3.Vec, ra, rb float64, roleA, roleB components.Role) bool {
	return r3.Norm(r3.Sub(pa, pb)) < d.Threshold(ra, rb, roleA, roleB)
}

// Detect walks every unordered live pair in order and calls resolve for
// each pair in contact. Liveness is re-checked before each pair, so a
// body consumed by resolve is never offered again in the same pass.
// It returns the number of pairs resolve accepted.
func (d *CollisionDetector) Detect(refs []BodyRef, resolve func(a, b *BodyRef) bool) int {
	fired := 0
	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			a, b := &refs[i], &refs[j]
			if !a.Alive() || !b.Alive() {
				continue
			}
			if !d.Touching(a.Visual.Position, b.Visual.Position, a.Body.Radius, b.Body.Radius, a.ID.Role, b.ID.Role) {
				continue
			}
			if resolve(a, b) {
				fired++
			}
		}
	}
	return fired
}
