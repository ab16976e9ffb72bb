package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

func TestCollisionThreshold(t *testing.T) {
	d := NewCollisionDetector(0.9, 1.05)

	tests := []struct {
		name   string
		dist   float64
		ra, rb float64
		roleA  components.Role
		roleB  components.Role
		want   bool
	}{
		{"generic outside", 3.7, 2, 2, components.RoleGeneric, components.RoleGeneric, false},
		{"generic inside", 3.5, 2, 2, components.RoleGeneric, components.RoleGeneric, true},
		{"impact pair uses wider fudge", 4.1, 2, 2, components.RolePrimary, components.RoleImpactor, true},
		{"impact pair reversed", 4.1, 2, 2, components.RoleImpactor, components.RolePrimary, true},
		{"merge subject uses generic", 4.1, 2, 2, components.RolePrimary, components.RoleMergeSubject, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := d.Touching(r3.Vec{}, r3.Vec{X: tc.dist}, tc.ra, tc.rb, tc.roleA, tc.roleB)
			if got != tc.want {
				t.Errorf("Touching(dist=%v) = %v, want %v (threshold %v)",
					tc.dist, got, tc.want, d.Threshold(tc.ra, tc.rb, tc.roleA, tc.roleB))
			}
		})
	}
}

func TestDetectUsesVisualPositions(t *testing.T) {
	d := NewCollisionDetector(0.9, 1.05)
	refs := []BodyRef{
		newRef("a", components.RoleGeneric, 1, 2, r3.Vec{}),
		newRef("b", components.RoleGeneric, 1, 2, r3.Vec{X: 100}),
	}
	// Physics says far apart, visuals say touching
	refs[1].Visual.Position = r3.Vec{X: 1}

	n := d.Detect(refs, func(a, b *BodyRef) bool { return true })
	if n != 1 {
		t.Errorf("Detect fired %d times, want 1", n)
	}
}

func TestDetectFiresOncePerBody(t *testing.T) {
	d := NewCollisionDetector(0.9, 1.05)
	refs := []BodyRef{
		newRef("a", components.RoleGeneric, 1, 2, r3.Vec{}),
		newRef("b", components.RoleGeneric, 1, 2, r3.Vec{X: 1}),
		newRef("c", components.RoleGeneric, 1, 2, r3.Vec{X: 2}),
	}

	var pairs [][2]string
	n := d.Detect(refs, func(a, b *BodyRef) bool {
		pairs = append(pairs, [2]string{a.ID.Name, b.ID.Name})
		a.Life.Alive = false
		b.Life.Alive = false
		return true
	})

	// a-b resolves first and consumes both; c has no live partner left
	if n != 1 || len(pairs) != 1 || pairs[0] != [2]string{"a", "b"} {
		t.Errorf("resolved pairs = %v (n=%d), want [[a b]]", pairs, n)
	}
}

func TestDetectSkipsDead(t *testing.T) {
	d := NewCollisionDetector(0.9, 1.05)
	refs := []BodyRef{
		newRef("a", components.RoleGeneric, 1, 2, r3.Vec{}),
		newRef("b", components.RoleGeneric, 1, 2, r3.Vec{X: 1}),
	}
	refs[0].Life.Alive = false

	if n := d.Detect(refs, func(a, b *BodyRef) bool {
		t.Error("resolve called for dead body")
		return true
	}); n != 0 {
		t.Errorf("Detect fired %d times, want 0", n)
	}
}

func TestDetectCountsOnlyAcceptedPairs(t *testing.T) {
	d := NewCollisionDetector(0.9, 1.05)
	refs := []BodyRef{
		newRef("a", components.RoleGeneric, 1, 2, r3.Vec{}),
		newRef("b", components.RoleGeneric, 1, 2, r3.Vec{X: 1}),
		newRef("c", components.RoleGeneric, 1, 2, r3.Vec{X: 2}),
	}

	calls := 0
	n := d.Detect(refs, func(a, b *BodyRef) bool {
		calls++
		return a.ID.Name == "a" && b.ID.Name == "c"
	})

	// every pair touches, only a-c is taken
	if calls != 3 {
		t.Errorf("resolve called %d times, want 3", calls)
	}
	if n != 1 {
		t.Errorf("Detect = %d, want 1 accepted pair", n)
	}
}
