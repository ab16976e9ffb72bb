package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/scenario"
	"github.com/pthm-cable/orrery/systems"
	"github.com/pthm-cable/orrery/telemetry"
)

// PendingMerge is a merged body waiting to appear. The two source bodies
// are already dead; the result is created when the due tick starts.
type PendingMerge struct {
	Due    int32
	Spec   scenario.BodySpec
	Molten bool
}

// HandleMerger resolves contact between two bodies. It returns true when
// the pair was resolved. Calls with a dead, missing, detached or
// handle-less body are ignored, so a pair resolves at most once.
func (g *Game) HandleMerger(a, b ecs.Entity) bool {
	if a == b {
		return false
	}
	ra, okA := g.ref(a)
	rb, okB := g.ref(b)
	if !okA || !okB {
		slog.Warn("merge with missing body", "tick", g.tick)
		return false
	}
	if !ra.Alive() || !rb.Alive() {
		return false
	}
	if ra.Visual.Handle == 0 || rb.Visual.Handle == 0 || !ra.Life.Attached || !rb.Life.Attached {
		slog.Warn("merge with detached body", "tick", g.tick, "body_a", ra.ID.Name, "body_b", rb.ID.Name)
		return false
	}

	outcome, primary := systems.Classify(ra.ID.Role, rb.ID.Role)
	if outcome == systems.OutcomeExplosion {
		if primary == 0 {
			g.explode(&ra, &rb)
		} else {
			g.explode(&rb, &ra)
		}
		return true
	}

	if g.mode.OneShotMerge() {
		if g.mergeFired {
			return false
		}
		g.mergeFired = true
	}
	g.merge(&ra, &rb)
	return true
}

// explode destroys the impactor against the primary and spawns the
// impact effects on the primary's surface. The primary is untouched.
func (g *Game) explode(primary, impactor *systems.BodyRef) {
	kill(impactor.Life)
	impactor.Life.Attached = false

	impact := systems.ComputeImpact(
		primary.Visual.Position,
		impactor.Visual.Position,
		primary.Body.Radius,
		g.cfg.Collision.SurfaceOffset,
	)
	g.addEffects(g.factory.Impact(impact.Point, impact.Normal, primary.Body.Radius)...)

	speed := r3.Norm(r3.Sub(impactor.Vel.Vec(), primary.Vel.Vec()))
	g.recordImpact(telemetry.ImpactExplosion, primary, impactor, impact.Point, impactor.Body.Mass, speed)
	g.collector.RecordExplosion()
}

// merge kills both bodies and queues the conserved result.
func (g *Game) merge(a, b *systems.BodyRef) {
	kill(a.Life)
	kill(b.Life)

	res := systems.ComputeMerge(
		systems.MergeInput{Mass: a.Body.Mass, Radius: a.Body.Radius, Pos: a.Pos.Vec(), Vel: a.Vel.Vec()},
		systems.MergeInput{Mass: b.Body.Mass, Radius: b.Body.Radius, Pos: b.Pos.Vec(), Vel: b.Vel.Vec()},
	)

	// Ties go to the second body
	heavier := b
	if a.Body.Mass > b.Body.Mass {
		heavier = a
	}

	molten := systems.IsMoltenMerge(a.ID.Role, b.ID.Role)
	spec := scenario.BodySpec{
		Name:       g.cfg.Merge.MergedPrefix + a.ID.Name,
		TextureKey: heavier.ID.TextureKey,
		Mass:       res.Mass,
		Radius:     res.Radius,
		Position:   res.Pos,
		Velocity:   res.Vel,
		Color:      heavier.Visual.Color,
	}
	kind := telemetry.ImpactMerge
	if molten {
		spec.Name = g.cfg.Merge.MoltenName
		spec.TextureKey = g.cfg.Merge.MoltenTexture
		spec.Color = g.cfg.Merge.MoltenColor
		kind = telemetry.ImpactMolten
	}
	spec.Role = scenario.RoleFromName(spec.Name)

	g.pending = append(g.pending, PendingMerge{
		Due:    g.tick + int32(g.cfg.Merge.DelayTicks),
		Spec:   spec,
		Molten: molten,
	})

	speed := r3.Norm(r3.Sub(a.Vel.Vec(), b.Vel.Vec()))
	g.recordImpact(kind, a, b, res.Pos, res.Mass, speed)
	g.collector.RecordMerge()
}

// drainMerges creates every pending merge that is due, in queue order.
func (g *Game) drainMerges() {
	if len(g.pending) == 0 {
		return
	}
	rest := g.pending[:0]
	var due []PendingMerge
	for _, p := range g.pending {
		if p.Due <= g.tick {
			due = append(due, p)
		} else {
			rest = append(rest, p)
		}
	}
	g.pending = rest

	for _, p := range due {
		e := g.spawnBody(p.Spec)
		if p.Molten {
			v := g.visualMap.Get(e)
			v.Emissive = g.cfg.Merge.MoltenEmissive
			v.EmissiveIntensity = g.cfg.Merge.MoltenEmissiveIntensity
			g.addEffects(g.factory.MoltenFlash(p.Spec.Position)...)
		} else {
			g.addEffects(g.factory.Explosion(p.Spec.Position, g.cfg.Merge.ExplosionColor)...)
		}
		slog.Info("merged body created", "tick", g.tick, "body", p.Spec.Name, "mass", p.Spec.Mass, "radius", p.Spec.Radius)
	}
}

// PendingMerges returns the number of queued merge results.
func (g *Game) PendingMerges() int { return len(g.pending) }

func (g *Game) recordImpact(kind telemetry.ImpactKind, a, b *systems.BodyRef, pos r3.Vec, mass, speed float64) {
	ev := telemetry.NewImpactEvent(g.tick, kind, a.ID.Name, b.ID.Name, pos, mass, speed)
	g.impacts = append(g.impacts, ev)
	for _, r := range []*systems.BodyRef{a, b} {
		if !r.Alive() {
			g.lifetimes.MarkDead(r.ID.ID, g.tick, kind)
		}
	}
	slog.Info("impact", "event", ev)
}

// kill marks a body dead and hidden. It is the only place Alive is cleared.
func kill(life *components.Lifecycle) {
	life.Alive = false
	life.Visible = false
}
