package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

func TestComputeMergeConservation(t *testing.T) {
	a := MergeInput{Mass: 10, Radius: 1, Pos: r3.Vec{X: 0}, Vel: r3.Vec{X: 2}}
	b := MergeInput{Mass: 30, Radius: 2, Pos: r3.Vec{X: 4}, Vel: r3.Vec{Y: 1}}

	got := ComputeMerge(a, b)

	if got.Mass != 40 {
		t.Errorf("mass = %v, want 40", got.Mass)
	}
	if want := (r3.Vec{X: 0.5, Y: 0.75}); !nearVec(got.Vel, want, 1e-12) {
		t.Errorf("velocity = %v, want %v", got.Vel, want)
	}
	// Mass-weighted centre: 0.25*0 + 0.75*4 = 3
	if want := (r3.Vec{X: 3}); !nearVec(got.Pos, want, 1e-12) {
		t.Errorf("position = %v, want %v", got.Pos, want)
	}
	if want := math.Cbrt(9); !near(got.Radius, want, 1e-12) {
		t.Errorf("radius = %v, want %v", got.Radius, want)
	}

	// Momentum before equals momentum after
	before := r3.Add(r3.Scale(a.Mass, a.Vel), r3.Scale(b.Mass, b.Vel))
	after := r3.Scale(got.Mass, got.Vel)
	if !nearVec(before, after, 1e-12) {
		t.Errorf("momentum %v -> %v", before, after)
	}
}

func TestComputeMergeSymmetric(t *testing.T) {
	a := MergeInput{Mass: 3, Radius: 1, Pos: r3.Vec{X: -1, Z: 2}, Vel: r3.Vec{X: 1}}
	b := MergeInput{Mass: 7, Radius: 1.5, Pos: r3.Vec{Y: 5}, Vel: r3.Vec{Z: -2}}

	ab := ComputeMerge(a, b)
	ba := ComputeMerge(b, a)

	if !near(ab.Mass, ba.Mass, eps) || !near(ab.Radius, ba.Radius, eps) ||
		!nearVec(ab.Pos, ba.Pos, 1e-12) || !nearVec(ab.Vel, ba.Vel, 1e-12) {
		t.Errorf("merge depends on argument order: %+v vs %+v", ab, ba)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		a, b        components.Role
		wantOutcome Outcome
		wantPrimary int
	}{
		{"primary first", components.RolePrimary, components.RoleImpactor, OutcomeExplosion, 0},
		{"impactor first", components.RoleImpactor, components.RolePrimary, OutcomeExplosion, 1},
		{"two generics", components.RoleGeneric, components.RoleGeneric, OutcomeMerge, -1},
		{"primary and subject", components.RolePrimary, components.RoleMergeSubject, OutcomeMerge, -1},
		{"two impactors", components.RoleImpactor, components.RoleImpactor, OutcomeMerge, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			outcome, primary := Classify(tc.a, tc.b)
			if outcome != tc.wantOutcome || primary != tc.wantPrimary {
				t.Errorf("Classify() = (%v, %d), want (%v, %d)", outcome, primary, tc.wantOutcome, tc.wantPrimary)
			}
		})
	}
}

func TestComputeImpact(t *testing.T) {
	imp := ComputeImpact(r3.Vec{}, r3.Vec{X: -3, Y: 4}, 6, 0.98)

	if want := (r3.Vec{X: -0.6, Y: 0.8}); !nearVec(imp.Normal, want, 1e-12) {
		t.Errorf("normal = %v, want %v", imp.Normal, want)
	}
	if d := r3.Norm(imp.Point); !near(d, 6*0.98, 1e-12) {
		t.Errorf("impact point at distance %v, want %v", d, 6*0.98)
	}
}

func TestComputeImpactDegenerate(t *testing.T) {
	imp := ComputeImpact(r3.Vec{X: 1}, r3.Vec{X: 1}, 2, 1)

	if imp.Normal != DefaultDirection {
		t.Errorf("normal = %v, want default %v", imp.Normal, DefaultDirection)
	}
	if !Finite(imp.Point) {
		t.Errorf("impact point not finite: %v", imp.Point)
	}
}
