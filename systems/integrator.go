package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

// Integrator advances attached bodies with a fixed-step semi-implicit
// Euler scheme. Frame time is accumulated and consumed in whole steps.
type Integrator struct {
	filter ecs.Filter6[
		components.Position,
		components.Velocity,
		components.Force,
		components.Body,
		components.Spin,
		components.Lifecycle,
	]

	step        float64
	maxSubSteps int
	damping     float64
	accumulator float64

	// Rejected counts bodies whose update produced non-finite state
	// during the last Step call.
	Rejected int
}

// NewIntegrator creates an integrator over all bodies in w.
func NewIntegrator(w *ecs.World, step float64, maxSubSteps int, damping float64) *Integrator {
	if maxSubSteps < 1 {
		maxSubSteps = 1
	}
	return &Integrator{
		filter: *ecs.NewFilter6[
			components.Position,
			components.Velocity,
			components.Force,
			components.Body,
			components.Spin,
			components.Lifecycle,
		](w),
		step:        step,
		maxSubSteps: maxSubSteps,
		damping:     damping,
	}
}

// Step advances the simulation by dt seconds and returns the number of
// substeps taken. Time beyond the substep cap is dropped; a sub-step
// remainder carries over to the next call.
func (s *Integrator) Step(dt float64) int {
	s.Rejected = 0
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return 0
	}

	s.accumulator += dt
	n := 0
	for s.accumulator >= s.step && n < s.maxSubSteps {
		s.substep(n == 0)
		s.accumulator -= s.step
		n++
	}
	if n == s.maxSubSteps && s.accumulator >= s.step {
		s.accumulator = 0
	}

	// Forces are per-tick; clear them even when no substep ran.
	if n == 0 {
		s.clearForces()
	}
	return n
}

// Reset discards accumulated time.
func (s *Integrator) Reset() {
	s.accumulator = 0
}

func (s *Integrator) substep(applyForces bool) {
	h := s.step
	keep := math.Pow(1-s.damping, h)

	query := s.filter.Query()
	for query.Next() {
		pos, vel, force, body, spin, life := query.Get()

		if !life.Alive || !life.Attached {
			force.Clear()
			continue
		}

		v := vel.Vec()
		if applyForces && body.Mass > 0 {
			v = r3.Add(v, r3.Scale(h/body.Mass, force.Vec()))
		}
		if applyForces {
			force.Clear()
		}
		v = r3.Scale(keep, v)
		x := r3.Add(pos.Vec(), r3.Scale(h, v))

		if !Finite(v) || !Finite(x) {
			s.Rejected++
			continue
		}
		vel.Set(v)
		pos.Set(x)

		spin.Angle = r3.Add(spin.Angle, r3.Scale(h, spin.AngVel))
	}
}

func (s *Integrator) clearForces() {
	query := s.filter.Query()
	for query.Next() {
		_, _, force, _, _, _ := query.Get()
		force.Clear()
	}
}
