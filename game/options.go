package game

import (
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/scenario"
	"github.com/pthm-cable/orrery/telemetry"
)

// Options configures a new game instance.
type Options struct {
	Seed           int64   // RNG seed for effects and procedural shapes
	LogStats       bool    // Output window stats via slog
	StatsWindowSec float64 // Stats window size in seconds (0 = use config)
	OutputDir      string  // Directory for CSV logs and config snapshot

	// Config is the configuration to run with. Nil uses config.Cfg().
	Config *config.Config

	// Setup is the scene (or sequence) loaded at start. Nil starts empty.
	Setup *scenario.Setup

	// StatsCallback is called with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}
