package main

import (
	"math"
	"strings"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/game"
	"github.com/pthm-cable/orrery/scenario"
)

// horizon is how many target durations a run may take before it counts
// as a miss.
const horizon = 3.0

// RunResult is the outcome of one headless run.
type RunResult struct {
	Hit        bool
	ImpactTime float64 // seconds of simulated time, valid when Hit
	ClosestGap float64 // smallest surface gap between impactor and primary
}

// FitnessEvaluator runs headless simulations and scores impact timing.
type FitnessEvaluator struct {
	params *ParamVector
	base   *scenario.Setup
	cfg    *config.Config
	target float64
	seed   int64

	mu      sync.Mutex
	lastRun RunResult
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, base *scenario.Setup, cfg *config.Config, target float64, seed int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params: params,
		base:   base,
		cfg:    cfg,
		target: target,
		seed:   seed,
	}
}

// LastRun returns the result of the most recent evaluation.
func (fe *FitnessEvaluator) LastRun() RunResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastRun
}

// Evaluate computes fitness for raw parameter values (lower = better).
// A hit scores the squared timing error. A miss scores worse than any
// hit within the horizon and improves as the closest approach shrinks.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	res := fe.Run(fe.params.Apply(fe.base, raw))

	fe.mu.Lock()
	fe.lastRun = res
	fe.mu.Unlock()

	return fe.score(res)
}

func (fe *FitnessEvaluator) score(res RunResult) float64 {
	if res.Hit {
		d := res.ImpactTime - fe.target
		return d * d
	}
	worst := (horizon - 1) * fe.target
	return worst*worst + 1 + res.ClosestGap*res.ClosestGap
}

// Run plays setup headless until the first impact event or the horizon.
func (fe *FitnessEvaluator) Run(setup *scenario.Setup) RunResult {
	g := game.NewGameWithOptions(game.Options{
		Seed:   fe.seed,
		Config: fe.cfg,
		Setup:  setup,
	})
	defer g.Unload()

	var impactor, primary string
	if imp, prim, ok := Roles(setup.Objects); ok {
		impactor, primary = setup.Objects[imp].Name, setup.Objects[prim].Name
	}

	step := fe.cfg.Physics.FixedStep
	maxTicks := int(math.Ceil(horizon * fe.target / step))
	res := RunResult{ClosestGap: math.Inf(1)}
	start := g.Tick()

	for i := 0; i < maxTicks; i++ {
		g.UpdateHeadless()
		if len(g.Impacts()) > 0 {
			res.Hit = true
			res.ImpactTime = float64(g.Tick()-start) * step
			res.ClosestGap = 0
			return res
		}
		if gap, ok := surfaceGap(g.Bodies(), impactor, primary); ok && gap < res.ClosestGap {
			res.ClosestGap = gap
		}
	}
	if math.IsInf(res.ClosestGap, 1) {
		res.ClosestGap = 0
	}
	return res
}

// surfaceGap returns the distance between the surfaces of two named bodies.
func surfaceGap(bodies []game.BodyView, a, b string) (float64, bool) {
	var va, vb *game.BodyView
	for i := range bodies {
		switch {
		case strings.EqualFold(bodies[i].Name, a):
			va = &bodies[i]
		case strings.EqualFold(bodies[i].Name, b):
			vb = &bodies[i]
		}
	}
	if va == nil || vb == nil {
		return 0, false
	}
	return r3.Norm(r3.Sub(va.Position, vb.Position)) - va.Radius - vb.Radius, true
}
