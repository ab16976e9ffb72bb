package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

// Outcome is the kind of resolution a touching pair receives.
type Outcome uint8

const (
	OutcomeMerge     Outcome = iota // Both bodies replaced by one conserved body
	OutcomeExplosion                // Impactor destroyed, primary untouched
)

// String returns the outcome name used in logs and telemetry.
func (o Outcome) String() string {
	if o == OutcomeExplosion {
		return "explosion"
	}
	return "merge"
}

// Classify decides how a pair is resolved. For explosions it also
// returns which argument is the primary (0 or 1).
func Classify(a, b components.Role) (Outcome, int) {
	switch {
	case a == components.RolePrimary && b == components.RoleImpactor:
		return OutcomeExplosion, 0
	case a == components.RoleImpactor && b == components.RolePrimary:
		return OutcomeExplosion, 1
	}
	return OutcomeMerge, -1
}

// MergeInput is one side of a merge.
type MergeInput struct {
	Mass   float64
	Radius float64
	Pos    r3.Vec
	Vel    r3.Vec
}

// MergeResult is the conserved state of a merged body.
type MergeResult struct {
	Mass   float64
	Radius float64
	Pos    r3.Vec
	Vel    r3.Vec
}

// ComputeMerge conserves mass and momentum. The radius preserves
// summed volume and the position is the mass-weighted centre.
func ComputeMerge(a, b MergeInput) MergeResult {
	m := a.Mass + b.Mass
	ratio := 0.5
	if m > 0 {
		ratio = a.Mass / m
	}

	var vel r3.Vec
	if m > 0 {
		vel = r3.Scale(1/m, r3.Add(r3.Scale(a.Mass, a.Vel), r3.Scale(b.Mass, b.Vel)))
	}

	return MergeResult{
		Mass:   m,
		Radius: math.Cbrt(a.Radius*a.Radius*a.Radius + b.Radius*b.Radius*b.Radius),
		Pos:    r3.Add(r3.Scale(ratio, a.Pos), r3.Scale(1-ratio, b.Pos)),
		Vel:    vel,
	}
}

// Impact describes where an impactor struck a primary.
type Impact struct {
	Normal r3.Vec // unit direction from primary centre toward the impactor
	Point  r3.Vec // on the primary surface
}

// ComputeImpact places the impact point on the primary's surface along
// the line to the impactor. offset scales the primary radius (just under
// 1 keeps effects from z-fighting with the surface).
func ComputeImpact(primaryPos, impactorPos r3.Vec, primaryRadius, offset float64) Impact {
	n := Direction(r3.Sub(impactorPos, primaryPos), DefaultDirection)
	return Impact{
		Normal: n,
		Point:  r3.Add(primaryPos, r3.Scale(primaryRadius*offset, n)),
	}
}

// IsMoltenMerge reports whether either side is a merge subject.
func IsMoltenMerge(a, b components.Role) bool {
	return a == components.RoleMergeSubject || b == components.RoleMergeSubject
}
