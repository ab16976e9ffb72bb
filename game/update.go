package game

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

// Update advances one displayed frame. frameDelta is wall time; the
// giant impact timeline runs on it directly and scales the time the
// simulation sees.
func (g *Game) Update(frameDelta float64) {
	g.perfCollector.RecordFrame()
	if g.paused {
		return
	}

	g.timeScale = 1
	if g.timeline.Playing() {
		g.timeScale = g.timeline.Update(frameDelta, g.rig)
	}

	g.Step(frameDelta * g.timeScale)

	if !g.timeline.Playing() && g.follow != "" {
		if pos, _, ok := g.BodyState(g.follow); ok {
			g.rig.Follow(pos)
		} else {
			g.follow = ""
		}
	}
}

// UpdateHeadless advances one fixed physics step with no frame pacing.
func (g *Game) UpdateHeadless() {
	g.Step(g.cfg.Physics.FixedStep)
}

// BodyView is the render state of one live body.
type BodyView struct {
	ID                uint32
	Name              string
	TextureKey        string
	Role              components.Role
	Position          r3.Vec
	Angle             r3.Vec
	Radius            float64
	Mass              float64
	Speed             float64
	Color             uint32
	Emissive          uint32
	EmissiveIntensity float64
	Light             float64
	DeformDir         r3.Vec
	DeformAmount      float64
	Shape             *components.Shape
}

// Bodies returns the render state of every visible live body in
// live-body order.
func (g *Game) Bodies() []BodyView {
	out := make([]BodyView, 0, len(g.bodies))
	for _, e := range g.bodies {
		r, ok := g.ref(e)
		if !ok || !r.Alive() || !r.Life.Visible {
			continue
		}
		v := BodyView{
			ID:                r.ID.ID,
			Name:              r.ID.Name,
			TextureKey:        r.ID.TextureKey,
			Role:              r.ID.Role,
			Position:          r.Visual.Position,
			Angle:             r.Visual.Angle,
			Radius:            r.Body.Radius,
			Mass:              r.Body.Mass,
			Speed:             r3.Norm(r.Vel.Vec()),
			Color:             r.Visual.Color,
			Emissive:          r.Visual.Emissive,
			EmissiveIntensity: r.Visual.EmissiveIntensity,
			DeformDir:         r.Deform.Dir,
			DeformAmount:      r.Deform.Amount,
			Shape:             g.shapeMap.Get(e),
		}
		if g.lightMap.HasAll(e) {
			v.Light = g.lightMap.Get(e).Intensity
		}
		out = append(out, v)
	}
	return out
}

// Status is a one-frame summary for the HUD.
type Status struct {
	Mode      string
	Tick      int32
	Bodies    int
	Effects   int
	Pending   int
	TimeScale float64
	Paused    bool
	Following string
	Banner    string
	Ambient   float64
	Sequence  bool
}

// Status returns the current HUD summary.
func (g *Game) Status() Status {
	return Status{
		Mode:      g.mode.String(),
		Tick:      g.tick,
		Bodies:    g.BodyCount(),
		Effects:   len(g.effects),
		Pending:   len(g.pending),
		TimeScale: g.timeScale,
		Paused:    g.paused,
		Following: g.follow,
		Banner:    g.banner,
		Ambient:   g.ambient,
		Sequence:  g.sequence != nil,
	}
}
