package game

import (
	"fmt"
	"log/slog"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/effects"
	"github.com/pthm-cable/orrery/scenario"
)

// Start runs a setup. A sequence plays its first step; anything else
// is loaded as a single scene.
func (g *Game) Start(s *scenario.Setup) {
	g.sequence = nil
	g.banner = ""
	if scenario.IsSequence(s) {
		g.sequence = scenario.NewSequence(s.Steps)
		slog.Info("sequence started", "steps", g.sequence.Len())
		g.NextStep()
		return
	}
	g.logLoad(g.LoadScene(s))
}

// NextStep loads the next scene of a running sequence. Past the last
// step the sequence ends and the current scene keeps running. It
// returns false when no step was loaded.
func (g *Game) NextStep() bool {
	if g.sequence == nil {
		return false
	}
	step, ok := g.sequence.Next()
	if !ok {
		slog.Info("sequence finished", "steps", g.sequence.Len())
		g.sequence = nil
		g.banner = ""
		return false
	}
	g.logLoad(g.LoadScene(step))
	g.banner = fmt.Sprintf("Step %d / %d: %s", g.sequence.Index()+1, g.sequence.Len(), strings.ToUpper(g.mode.String()))
	return true
}

// Banner returns the sequence step caption, or "" outside a sequence.
func (g *Game) Banner() string { return g.banner }

// LoadScene replaces the running scene with one built from s. The scene
// is always loaded; a non-nil error says how it was degraded.
func (g *Game) LoadScene(s *scenario.Setup) error {
	b, err := scenario.BuildScene(s)
	g.Reset()

	g.setup = s
	g.build = b
	g.mode = b.Mode
	for _, spec := range b.Bodies {
		g.spawnBody(spec)
	}

	home := g.rig.Home
	if b.CameraPosition != nil {
		home = *b.CameraPosition
	}
	var lookAt r3.Vec
	if b.CameraLookAt != nil {
		lookAt = *b.CameraLookAt
	}
	g.rig.SetHome(home, lookAt)

	if b.Choreography {
		g.timeline.Start()
	}

	slog.Info("scene loaded", "tick", g.tick, "mode", g.mode.String(), "bodies", len(b.Bodies))
	return err
}

// Restart reloads the current setup from its initial state.
func (g *Game) Restart() {
	if g.setup == nil {
		g.Reset()
		return
	}
	g.logLoad(g.LoadScene(g.setup))
}

// Reset disposes every body and effect and drops all pending merges.
// The scene description is kept so Restart can rebuild it.
func (g *Game) Reset() {
	g.writeImpacts()

	effects.DisposeAll(g.effects)
	clear(g.effects)
	g.effects = g.effects[:0]
	g.pending = g.pending[:0]
	g.removeAll()

	g.impacts = g.impacts[:0]
	g.impactsWritten = 0
	g.build = nil
	g.mode = scenario.ModeDefault
	g.mergeFired = false
	g.ambient = 1
	g.follow = ""
	g.timeline.Stop()
	g.timeScale = 1
	g.integrator.Reset()
}

func (g *Game) logLoad(err error) {
	if err != nil {
		slog.Warn("scene degraded", "tick", g.tick, "error", err)
	}
}

// Controls returns the key-bound actions of the running scene.
func (g *Game) Controls() []scenario.Control {
	if g.build == nil {
		return nil
	}
	return g.build.Controls
}

// RunControl runs the scene action bound to key.
func (g *Game) RunControl(key string) bool {
	if g.build == nil {
		return false
	}
	c, ok := g.build.Control(key)
	if !ok {
		return false
	}
	slog.Info("control", "tick", g.tick, "key", c.Key, "label", c.Label)
	c.Run(g)
	return true
}

// BodyState returns the physics position and velocity of the live body
// named name.
func (g *Game) BodyState(name string) (pos, vel r3.Vec, ok bool) {
	r, ok := g.find(name)
	if !ok {
		return r3.Vec{}, r3.Vec{}, false
	}
	return r.Pos.Vec(), r.Vel.Vec(), true
}

// SetBodyState teleports the live body named name.
func (g *Game) SetBodyState(name string, pos, vel r3.Vec) bool {
	r, ok := g.find(name)
	if !ok {
		return false
	}
	r.Pos.Set(pos)
	r.Vel.Set(vel)
	r.Visual.Position = pos
	return true
}

// Ambient returns the ambient light level.
func (g *Game) Ambient() float64 { return g.ambient }

// SetAmbient sets the ambient light level.
func (g *Game) SetAmbient(level float64) { g.ambient = level }

// FrameCamera points the camera from pos at lookAt.
func (g *Game) FrameCamera(pos, lookAt r3.Vec) {
	g.follow = ""
	g.rig.Set(pos, lookAt)
}

// SetFollow makes the camera track the live body named name.
// An empty name stops following.
func (g *Game) SetFollow(name string) {
	g.follow = name
}

// Following returns the name of the followed body.
func (g *Game) Following() string { return g.follow }
