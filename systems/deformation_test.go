package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

func TestDeformationStrength(t *testing.T) {
	s := NewDeformationSolver(1.4, 0.7, 0.15)

	tests := []struct {
		name string
		dist float64
		want float64
	}{
		{"beyond near range", 15, 0},
		{"at near range", 14, 0},
		{"at contact", 7, 1},
		{"inside contact clamps", 2, 1},
		{"halfway", 10.5, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Strength(tc.dist, 10); !near(got, tc.want, 1e-9) {
				t.Errorf("Strength(%v, 10) = %v, want %v", tc.dist, got, tc.want)
			}
		})
	}
}

func TestDeformationApply(t *testing.T) {
	s := NewDeformationSolver(1.4, 0.7, 0.15)
	refs := []BodyRef{
		newRef("a", components.RoleGeneric, 1, 5, r3.Vec{}),
		newRef("b", components.RoleGeneric, 1, 5, r3.Vec{X: 7}),
		newRef("far", components.RoleGeneric, 1, 5, r3.Vec{X: 500}),
	}
	refs[2].Deform.Target = 0.9 // stale from a previous tick

	s.Apply(refs)

	if !near(refs[0].Deform.Target, 1, 1e-9) || !near(refs[1].Deform.Target, 1, 1e-9) {
		t.Errorf("targets = %v, %v, want 1, 1", refs[0].Deform.Target, refs[1].Deform.Target)
	}
	if !nearVec(refs[0].Deform.Dir, r3.Vec{X: 1}, 1e-12) || !nearVec(refs[1].Deform.Dir, r3.Vec{X: -1}, 1e-12) {
		t.Errorf("directions = %v, %v, want toward each other", refs[0].Deform.Dir, refs[1].Deform.Dir)
	}
	if refs[2].Deform.Target != 0 {
		t.Errorf("far body target = %v, want reset to 0", refs[2].Deform.Target)
	}
}

func TestDeformationEase(t *testing.T) {
	s := NewDeformationSolver(1.4, 0.7, 0.5)
	d := &components.Deform{Target: 1}

	s.Ease(d)
	s.Ease(d)

	if !near(d.Amount, 0.75, 1e-12) {
		t.Errorf("amount after two eases = %v, want 0.75", d.Amount)
	}
}
