package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

type integratorFixture struct {
	world  *ecs.World
	mapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Force,
		components.Body,
		components.Spin,
		components.Lifecycle,
	]
}

func newIntegratorFixture() *integratorFixture {
	w := ecs.NewWorld()
	return &integratorFixture{
		world: w,
		mapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Force,
			components.Body,
			components.Spin,
			components.Lifecycle,
		](w),
	}
}

func (f *integratorFixture) spawn(vel r3.Vec, force r3.Vec, mass float64, life components.Lifecycle) ecs.Entity {
	pos := components.Position{}
	v := components.Velocity{X: vel.X, Y: vel.Y, Z: vel.Z}
	fr := components.Force{X: force.X, Y: force.Y, Z: force.Z}
	body := components.Body{Mass: mass, Radius: 1}
	spin := components.Spin{AngVel: r3.Vec{Y: 1}}
	return f.mapper.NewEntity(&pos, &v, &fr, &body, &spin, &life)
}

func TestIntegratorFixedSteps(t *testing.T) {
	f := newIntegratorFixture()
	e := f.spawn(r3.Vec{X: 6}, r3.Vec{}, 1, components.Lifecycle{Alive: true, Attached: true})

	s := NewIntegrator(f.world, 1.0/60.0, 10, 0)

	// Half a step accumulates without moving
	if n := s.Step(1.0 / 120.0); n != 0 {
		t.Errorf("substeps = %d, want 0", n)
	}
	// The second half completes one step
	if n := s.Step(1.0 / 120.0); n != 1 {
		t.Errorf("substeps = %d, want 1", n)
	}

	pos, _, _, _, spin, _ := f.mapper.Get(e)
	if !near(pos.X, 0.1, 1e-9) {
		t.Errorf("x = %v, want 0.1", pos.X)
	}
	if !near(spin.Angle.Y, 1.0/60.0, 1e-12) {
		t.Errorf("spin angle = %v, want %v", spin.Angle.Y, 1.0/60.0)
	}
}

func TestIntegratorSubStepCap(t *testing.T) {
	f := newIntegratorFixture()
	f.spawn(r3.Vec{X: 1}, r3.Vec{}, 1, components.Lifecycle{Alive: true, Attached: true})

	s := NewIntegrator(f.world, 1.0/60.0, 10, 0)
	if n := s.Step(1.0); n != 10 {
		t.Errorf("substeps = %d, want cap of 10", n)
	}
	// Excess time was dropped, so a tiny step does nothing
	if n := s.Step(0.001); n != 0 {
		t.Errorf("substeps after cap = %d, want 0", n)
	}
}

func TestIntegratorForceConsumedOnce(t *testing.T) {
	f := newIntegratorFixture()
	e := f.spawn(r3.Vec{}, r3.Vec{X: 60}, 2, components.Lifecycle{Alive: true, Attached: true})

	s := NewIntegrator(f.world, 1.0/60.0, 10, 0)
	s.Step(3.0 / 60.0)

	_, vel, force, _, _, _ := f.mapper.Get(e)
	// dv = F/m*h = 60/2/60 = 0.5, applied in the first substep only
	if !near(vel.X, 0.5, 1e-9) {
		t.Errorf("vx = %v, want 0.5", vel.X)
	}
	if force.Vec() != (r3.Vec{}) {
		t.Errorf("force not cleared: %v", force.Vec())
	}
}

func TestIntegratorSkipsDetachedAndDead(t *testing.T) {
	f := newIntegratorFixture()
	detached := f.spawn(r3.Vec{X: 5}, r3.Vec{}, 1, components.Lifecycle{Alive: true, Attached: false})
	dead := f.spawn(r3.Vec{X: 5}, r3.Vec{}, 1, components.Lifecycle{Alive: false, Attached: true})

	s := NewIntegrator(f.world, 1.0/60.0, 10, 0)
	s.Step(0.5)

	for _, e := range []ecs.Entity{detached, dead} {
		pos, _, _, _, _, _ := f.mapper.Get(e)
		if pos.X != 0 {
			t.Errorf("skipped body moved to x=%v", pos.X)
		}
	}
}

func TestIntegratorDamping(t *testing.T) {
	f := newIntegratorFixture()
	e := f.spawn(r3.Vec{X: 10}, r3.Vec{}, 1, components.Lifecycle{Alive: true, Attached: true})

	s := NewIntegrator(f.world, 1.0/60.0, 10, 0.5)
	for i := 0; i < 60; i++ {
		s.Step(1.0 / 60.0)
	}

	_, vel, _, _, _, _ := f.mapper.Get(e)
	// (1-0.5)^(1/60) applied 60 times halves the speed
	if !near(vel.X, 5, 1e-6) {
		t.Errorf("vx after 1s = %v, want 5", vel.X)
	}
}
