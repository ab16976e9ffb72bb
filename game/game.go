// Package game owns the simulation: the ECS world of bodies, the live
// effect list, the pending merge queue and the per-tick step order.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/effects"
	"github.com/pthm-cable/orrery/scenario"
	"github.com/pthm-cable/orrery/systems"
	"github.com/pthm-cable/orrery/telemetry"
)

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	// Entity mapper for the physics-side components every body has
	bodyMapper *ecs.Map7[
		components.Identity,
		components.Position,
		components.Velocity,
		components.Force,
		components.Body,
		components.Spin,
		components.Lifecycle,
	]

	// Individual component mappers for lookups
	idMap     *ecs.Map1[components.Identity]
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	forceMap  *ecs.Map1[components.Force]
	bodyMap   *ecs.Map1[components.Body]
	spinMap   *ecs.Map1[components.Spin]
	lifeMap   *ecs.Map1[components.Lifecycle]
	visualMap *ecs.Map1[components.Visual]
	deformMap *ecs.Map1[components.Deform]
	shapeMap  *ecs.Map1[components.Shape]
	lightMap  *ecs.Map1[components.Light]

	// Systems
	gravity     *systems.GravitySolver
	integrator  *systems.Integrator
	collisions  *systems.CollisionDetector
	deformation *systems.DeformationSolver
	factory     *effects.ImpactEffectFactory

	// Live-body list in creation order; refs is rebuilt from it every tick
	bodies []ecs.Entity
	refs   []systems.BodyRef

	effects []effects.Effect
	hooks   map[uint32]func(dt float64)
	pending []PendingMerge

	// Scene
	setup      *scenario.Setup
	build      *scenario.Build
	mode       scenario.Mode
	sequence   *scenario.Sequence
	mergeFired bool
	ambient    float64
	banner     string

	// Camera
	rig       *camera.Rig
	timeline  camera.GiantImpact
	timeScale float64
	follow    string

	// State
	tick       int32
	paused     bool
	nextID     uint32
	nextHandle uint32

	// Telemetry
	collector      *telemetry.Collector
	perfCollector  *telemetry.PerfCollector
	lifetimes      *telemetry.LifetimeTracker
	outputManager  *telemetry.OutputManager
	impacts        []telemetry.ImpactEvent
	impactsWritten int
	logStats       bool
	statsCallback  func(telemetry.WindowStats)
}

// NewGameWithOptions creates a game and loads opts.Setup.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rng,
		bodyMapper: ecs.NewMap7[
			components.Identity,
			components.Position,
			components.Velocity,
			components.Force,
			components.Body,
			components.Spin,
			components.Lifecycle,
		](world),
		idMap:     ecs.NewMap1[components.Identity](world),
		posMap:    ecs.NewMap1[components.Position](world),
		velMap:    ecs.NewMap1[components.Velocity](world),
		forceMap:  ecs.NewMap1[components.Force](world),
		bodyMap:   ecs.NewMap1[components.Body](world),
		spinMap:   ecs.NewMap1[components.Spin](world),
		lifeMap:   ecs.NewMap1[components.Lifecycle](world),
		visualMap: ecs.NewMap1[components.Visual](world),
		deformMap: ecs.NewMap1[components.Deform](world),
		shapeMap:  ecs.NewMap1[components.Shape](world),
		lightMap:  ecs.NewMap1[components.Light](world),

		gravity:     systems.NewGravitySolver(cfg.Physics.GravityConstant, cfg.Physics.MinDistanceSq),
		integrator:  systems.NewIntegrator(world, cfg.Physics.FixedStep, cfg.Physics.MaxSubSteps, cfg.Physics.LinearDamping),
		collisions:  systems.NewCollisionDetector(cfg.Collision.GenericFudge, cfg.Collision.ImpactFudge),
		deformation: systems.NewDeformationSolver(cfg.Deformation.NearFactor, cfg.Deformation.ContactFactor, cfg.Deformation.EaseRate),
		factory:     effects.NewImpactEffectFactory(cfg, rng),

		hooks:      make(map[uint32]func(dt float64)),
		ambient:    1,
		rig:        camera.New(cfg.Camera),
		timeScale:  1,
		nextID:     1,
		nextHandle: 1,

		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.FixedStep32),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		lifetimes:     telemetry.NewLifetimeTracker(),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if opts.Setup != nil {
		g.Start(opts.Setup)
	}
	return g
}

// Tick returns the number of completed steps.
func (g *Game) Tick() int32 { return g.tick }

// Mode returns the running scene's mode.
func (g *Game) Mode() scenario.Mode { return g.mode }

// Camera returns the camera rig.
func (g *Game) Camera() *camera.Rig { return g.rig }

// TimeScale returns the multiplier applied to frame time last update.
func (g *Game) TimeScale() float64 { return g.timeScale }

// Effects returns the live effects. The slice is only valid until the next step.
func (g *Game) Effects() []effects.Effect { return g.effects }

// Impacts returns every merge and explosion resolved since the scene loaded.
func (g *Game) Impacts() []telemetry.ImpactEvent { return g.impacts }

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config { return g.cfg }

// Paused reports whether Update skips the simulation.
func (g *Game) Paused() bool { return g.paused }

// SetPaused pauses or resumes Update.
func (g *Game) SetPaused(p bool) { g.paused = p }

// Unload releases every body and effect and closes telemetry output.
func (g *Game) Unload() {
	g.Reset()
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

// PerfStats returns timing statistics over the current perf window.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perfCollector.Stats() }
