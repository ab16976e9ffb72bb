package game

import (
	"log/slog"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/effects"
	"github.com/pthm-cable/orrery/scenario"
	"github.com/pthm-cable/orrery/systems"
)

// spawnBody creates a body entity from spec and appends it to the
// live-body list. Emitters and the one-shot surface are attached here.
func (g *Game) spawnBody(spec scenario.BodySpec) ecs.Entity {
	id := g.nextID
	g.nextID++
	handle := g.nextHandle
	g.nextHandle++

	ident := components.Identity{ID: id, Name: spec.Name, TextureKey: spec.TextureKey, Role: spec.Role}
	pos := components.Position{}
	pos.Set(spec.Position)
	vel := components.Velocity{}
	vel.Set(spec.Velocity)
	force := components.Force{}
	body := components.Body{Mass: spec.Mass, Radius: spec.Radius}
	spin := components.Spin{AngVel: spec.Spin}
	life := components.Lifecycle{Alive: true, Visible: true, Attached: true}

	entity := g.bodyMapper.NewEntity(&ident, &pos, &vel, &force, &body, &spin, &life)

	g.visualMap.Add(entity, &components.Visual{
		Handle:   handle,
		Position: spec.Position,
		Color:    spec.Color,
	})
	g.deformMap.Add(entity, &components.Deform{})

	shape := components.Shape{}
	if spec.Lumpy {
		systems.ApplyLumpy(&shape, g.rng.Int63(), systems.LumpyParams{
			Amplitude:  g.cfg.Lumpy.Amplitude,
			Frequency:  g.cfg.Lumpy.Frequency,
			Jitter:     g.cfg.Lumpy.Jitter,
			Resolution: g.cfg.Lumpy.Resolution,
		})
	}
	g.shapeMap.Add(entity, &shape)

	if spec.Light > 0 {
		g.lightMap.Add(entity, &components.Light{Intensity: spec.Light})
	}

	g.bodies = append(g.bodies, entity)
	g.lifetimes.Register(id, spec.Name, g.tick)
	g.collector.RecordBodyCreated()

	if spec.Trail {
		g.addEffects(g.factory.Trail(g.heatSource(entity, spec.HeatTarget, g.cfg.Trail.Range)))
	}
	if spec.Sparks {
		sparks := g.factory.Sparks(g.heatSource(entity, spec.HeatTarget, g.cfg.Sparks.Range))
		g.addEffects(sparks)
		g.SetCustomUpdate(id, g.glowHook(entity, sparks))
	}

	slog.Debug("body created", "tick", g.tick, "body", spec.Name, "role", spec.Role.String(), "mass", spec.Mass)
	return entity
}

// heatSource samples a body for an emitter. Strength is the body's
// proximity to the body named target, or 0 when there is no target.
func (g *Game) heatSource(e ecs.Entity, target string, rangeDist float64) effects.Source {
	return effects.SourceFunc(func() (effects.SourceState, bool) {
		ref, ok := g.ref(e)
		if !ok || !ref.Alive() || !ref.Life.Attached {
			return effects.SourceState{}, false
		}
		state := effects.SourceState{
			Pos:    ref.Visual.Position,
			Vel:    ref.Vel.Vec(),
			Radius: ref.Body.Radius,
		}
		if target != "" {
			if tpos, _, found := g.BodyState(target); found {
				state.Strength = effects.Proximity(state.Pos, tpos, rangeDist)
			}
		}
		return state, true
	})
}

// glowHook lights the leading face of a heated body from its spark halo.
func (g *Game) glowHook(e ecs.Entity, sparks *effects.Sparks) func(dt float64) {
	return func(dt float64) {
		if !g.world.Alive(e) || !g.visualMap.HasAll(e) {
			return
		}
		v := g.visualMap.Get(e)
		v.Emissive = 0xff5a1a
		v.EmissiveIntensity = 2 * sparks.Halo.Opacity
	}
}

// SetCustomUpdate installs a per-body hook run every tick after visual
// sync. A nil fn removes the hook. Hooks are dropped when the body is pruned.
func (g *Game) SetCustomUpdate(id uint32, fn func(dt float64)) {
	if fn == nil {
		delete(g.hooks, id)
		return
	}
	g.hooks[id] = fn
}

// addEffects appends effects to the live list.
func (g *Game) addEffects(list ...effects.Effect) {
	g.effects = append(g.effects, list...)
	g.collector.RecordEffects(len(list))
}

// ref gathers the component pointers of e. ok is false when the entity
// is gone or is not a body.
func (g *Game) ref(e ecs.Entity) (systems.BodyRef, bool) {
	if !g.world.Alive(e) || !g.idMap.HasAll(e) || !g.visualMap.HasAll(e) {
		return systems.BodyRef{}, false
	}
	return systems.BodyRef{
		Entity: e,
		ID:     g.idMap.Get(e),
		Pos:    g.posMap.Get(e),
		Vel:    g.velMap.Get(e),
		Force:  g.forceMap.Get(e),
		Body:   g.bodyMap.Get(e),
		Life:   g.lifeMap.Get(e),
		Visual: g.visualMap.Get(e),
		Deform: g.deformMap.Get(e),
	}, true
}

// gatherRefs rebuilds the pointer view of the live-body list in order.
func (g *Game) gatherRefs() []systems.BodyRef {
	g.refs = g.refs[:0]
	for _, e := range g.bodies {
		if r, ok := g.ref(e); ok {
			g.refs = append(g.refs, r)
		}
	}
	return g.refs
}

// find returns the live body whose name matches, case-insensitively.
func (g *Game) find(name string) (systems.BodyRef, bool) {
	for _, e := range g.bodies {
		r, ok := g.ref(e)
		if ok && r.Alive() && strings.EqualFold(r.ID.Name, name) {
			return r, true
		}
	}
	return systems.BodyRef{}, false
}

// BodyCount returns the number of live bodies.
func (g *Game) BodyCount() int {
	n := 0
	for _, e := range g.bodies {
		if r, ok := g.ref(e); ok && r.Alive() {
			n++
		}
	}
	return n
}

// cleanupDead removes dead bodies from the world and the live-body list.
func (g *Game) cleanupDead() {
	// First pass: collect dead entities (must complete before modifying)
	type deadInfo struct {
		entity ecs.Entity
		id     uint32
	}
	var toRemove []deadInfo

	live := g.bodies[:0]
	for _, e := range g.bodies {
		if !g.world.Alive(e) {
			continue
		}
		life := g.lifeMap.Get(e)
		if life.Alive {
			live = append(live, e)
			continue
		}
		toRemove = append(toRemove, deadInfo{entity: e, id: g.idMap.Get(e).ID})
	}
	for i := len(live); i < len(g.bodies); i++ {
		g.bodies[i] = ecs.Entity{}
	}
	g.bodies = live

	// Second pass: remove entities
	for _, dead := range toRemove {
		delete(g.hooks, dead.id)
		if stats := g.lifetimes.Remove(dead.id); stats != nil {
			slog.Debug("body removed",
				"tick", g.tick,
				"body", stats.Name,
				"cause", string(stats.Cause),
				"survival_ticks", stats.SurvivalTicks(),
				"peak_speed", stats.PeakSpeed,
			)
		}
		g.world.RemoveEntity(dead.entity)
		g.collector.RecordBodyPruned()
	}
}

// removeAll drops every body regardless of liveness.
func (g *Game) removeAll() {
	for _, e := range g.bodies {
		if g.world.Alive(e) {
			g.world.RemoveEntity(e)
		}
	}
	g.bodies = g.bodies[:0]
	g.refs = g.refs[:0]
	clear(g.hooks)
	g.lifetimes.Clear()
}
