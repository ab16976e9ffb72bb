package telemetry

import "math"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	merges         int
	explosions     int
	effectsSpawned int
	bodiesCreated  int
	bodiesPruned   int
	rejectedSteps  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	// float32 steps such as 1/60 land just below whole tick counts.
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordMerge records a generic merge.
func (c *Collector) RecordMerge() {
	c.merges++
}

// RecordExplosion records an impactor destroyed against a primary.
func (c *Collector) RecordExplosion() {
	c.explosions++
}

// RecordEffects records n newly spawned effects.
func (c *Collector) RecordEffects(n int) {
	c.effectsSpawned += n
}

// RecordBodyCreated records a body entering the simulation.
func (c *Collector) RecordBodyCreated() {
	c.bodiesCreated++
}

// RecordBodyPruned records a dead body removed from the world.
func (c *Collector) RecordBodyPruned() {
	c.bodiesPruned++
}

// RecordRejected records integration results discarded as non-finite.
func (c *Collector) RecordRejected(n int) {
	c.rejectedSteps += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the scene state observed when a window closes.
type Sample struct {
	LiveBodies    int
	LiveEffects   int
	LiveParticles int
	Speeds        []float64 // speed of every live body
	Opacities     []float64 // opacity of every live emitter
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	speedMean, speedStd, speedMax := ComputeSpeedStats(s.Speeds)
	opacityMean, _, _ := ComputeSpeedStats(s.Opacities)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		LiveBodies:    s.LiveBodies,
		LiveEffects:   s.LiveEffects,
		LiveParticles: s.LiveParticles,

		Merges:         c.merges,
		Explosions:     c.explosions,
		EffectsSpawned: c.effectsSpawned,
		BodiesCreated:  c.bodiesCreated,
		BodiesPruned:   c.bodiesPruned,
		RejectedSteps:  c.rejectedSteps,

		SpeedMean:   speedMean,
		SpeedStd:    speedStd,
		SpeedMax:    speedMax,
		OpacityMean: opacityMean,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.merges = 0
	c.explosions = 0
	c.effectsSpawned = 0
	c.bodiesCreated = 0
	c.bodiesPruned = 0
	c.rejectedSteps = 0

	return stats
}

// Reset discards the current window and restarts it at tick.
func (c *Collector) Reset(tick int32) {
	c.Flush(tick, Sample{})
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
