package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/effects"
	"github.com/pthm-cable/orrery/systems"
	"github.com/pthm-cable/orrery/telemetry"
)

// Step advances the simulation by dt seconds of simulation time.
// Rendering is left to the caller.
func (g *Game) Step(dt float64) {
	g.perfCollector.StartTick()

	// 0. Merged bodies whose delay has elapsed
	g.perfCollector.StartPhase(telemetry.PhaseMergeQueue)
	g.drainMerges()

	refs := g.gatherRefs()
	live := systems.LiveCount(refs)

	// 1. Anchor gravity
	g.perfCollector.StartPhase(telemetry.PhaseGravity)
	if g.mode.Gravity() && live >= 2 {
		g.gravity.Apply(refs)
	}

	// 2. Integration
	g.perfCollector.StartPhase(telemetry.PhaseIntegrate)
	g.integrator.Step(dt)
	if n := g.integrator.Rejected; n > 0 {
		slog.Warn("rejected non-finite body state", "tick", g.tick, "bodies", n)
		g.collector.RecordRejected(n)
	}

	// 3. Visual sync and per-body hooks
	g.perfCollector.StartPhase(telemetry.PhaseSync)
	g.syncVisuals(refs)
	g.runHooks(refs, dt)

	// 4-5. Collisions, resolved as they are found
	g.perfCollector.StartPhase(telemetry.PhaseCollision)
	if g.mode.Collisions() && live >= 2 {
		g.collisions.Detect(refs, func(a, b *systems.BodyRef) bool {
			return g.HandleMerger(a.Entity, b.Entity)
		})
	}

	// 6. Deformation
	g.perfCollector.StartPhase(telemetry.PhaseDeformation)
	if g.mode.Deformation() {
		g.deformation.Apply(refs)
	}

	// 7. Effects
	g.perfCollector.StartPhase(telemetry.PhaseEffects)
	g.effects, _ = effects.UpdateAll(g.effects, dt)

	// 8. Scene script
	g.perfCollector.StartPhase(telemetry.PhaseScenario)
	if g.build != nil && g.build.Script != nil {
		g.build.Script.Update(dt, g)
	}

	// 9. Prune
	g.perfCollector.StartPhase(telemetry.PhasePrune)
	g.cleanupDead()

	// 10. Telemetry
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.tick++

	g.perfCollector.EndTick()
}

// syncVisuals copies physics state into the render transform and eases
// deformation toward its target.
func (g *Game) syncVisuals(refs []systems.BodyRef) {
	for i := range refs {
		r := &refs[i]
		if !r.Alive() {
			continue
		}
		r.Visual.Position = r.Pos.Vec()
		r.Visual.Angle = g.spinMap.Get(r.Entity).Angle
		g.deformation.Ease(r.Deform)
		g.lifetimes.UpdateSpeed(r.ID.ID, r3.Norm(r.Vel.Vec()))
	}
}

// runHooks calls each live body's custom update in live-body order.
func (g *Game) runHooks(refs []systems.BodyRef, dt float64) {
	if len(g.hooks) == 0 {
		return
	}
	for i := range refs {
		if fn, ok := g.hooks[refs[i].ID.ID]; ok && refs[i].Alive() {
			fn(dt)
		}
	}
}
