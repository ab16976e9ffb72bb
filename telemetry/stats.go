package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Scene size at window end
	LiveBodies    int `csv:"bodies"`
	LiveEffects   int `csv:"effects"`
	LiveParticles int `csv:"particles"`

	// Events during window
	Merges         int `csv:"merges"`
	Explosions     int `csv:"explosions"`
	EffectsSpawned int `csv:"effects_spawned"`
	BodiesCreated  int `csv:"bodies_created"`
	BodiesPruned   int `csv:"bodies_pruned"`
	RejectedSteps  int `csv:"rejected_steps"`

	// Motion (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedMax  float64 `csv:"speed_max"`

	OpacityMean float64 `csv:"emitter_opacity_mean"`
}

// ComputeSpeedStats returns the mean, sample standard deviation and
// maximum of values. The deviation is 0 for fewer than two values.
func ComputeSpeedStats(values []float64) (mean, std, max float64) {
	switch len(values) {
	case 0:
		return 0, 0, 0
	case 1:
		return values[0], 0, values[0]
	}
	mean, std = stat.MeanStdDev(values, nil)
	return mean, std, floats.Max(values)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.LiveBodies),
		slog.Int("effects", s.LiveEffects),
		slog.Int("particles", s.LiveParticles),
		slog.Int("merges", s.Merges),
		slog.Int("explosions", s.Explosions),
		slog.Int("effects_spawned", s.EffectsSpawned),
		slog.Int("bodies_created", s.BodiesCreated),
		slog.Int("bodies_pruned", s.BodiesPruned),
		slog.Int("rejected_steps", s.RejectedSteps),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("emitter_opacity_mean", s.OpacityMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"bodies", s.LiveBodies,
		"effects", s.LiveEffects,
		"particles", s.LiveParticles,
		"merges", s.Merges,
		"explosions", s.Explosions,
		"effects_spawned", s.EffectsSpawned,
		"bodies_created", s.BodiesCreated,
		"bodies_pruned", s.BodiesPruned,
		"rejected_steps", s.RejectedSteps,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_max", s.SpeedMax,
		"emitter_opacity_mean", s.OpacityMean,
	)
}
