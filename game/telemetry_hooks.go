package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/effects"
	"github.com/pthm-cable/orrery/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and writes output.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
	g.writeImpacts()
}

// writeImpacts appends impact records not yet written to impacts.csv.
func (g *Game) writeImpacts() {
	if g.outputManager == nil || g.impactsWritten >= len(g.impacts) {
		return
	}
	if err := g.outputManager.WriteImpacts(g.impacts[g.impactsWritten:]); err != nil {
		slog.Error("failed to write impacts", "error", err)
		return
	}
	g.impactsWritten = len(g.impacts)
}

// sample observes the scene for the closing stats window.
func (g *Game) sample() telemetry.Sample {
	var s telemetry.Sample
	for _, e := range g.bodies {
		r, ok := g.ref(e)
		if !ok || !r.Alive() {
			continue
		}
		s.LiveBodies++
		s.Speeds = append(s.Speeds, r3.Norm(r.Vel.Vec()))
	}

	s.LiveEffects = len(g.effects)
	for _, fx := range g.effects {
		var em *effects.Emitter
		switch v := fx.(type) {
		case *effects.Emitter:
			em = v
		case *effects.Sparks:
			em = v.Emitter
		default:
			continue
		}
		s.LiveParticles += em.Alive()
		if em.State() == effects.StateActive {
			s.Opacities = append(s.Opacities, em.Opacity())
		}
	}
	return s
}
