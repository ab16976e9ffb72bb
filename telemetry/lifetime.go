package telemetry

// LifetimeStats tracks one body from creation to removal.
type LifetimeStats struct {
	Name      string
	BirthTick int32
	DeathTick int32
	Cause     ImpactKind // how the body died; empty while alive or on reset
	PeakSpeed float64
}

// SurvivalTicks returns how long the body lived.
func (s *LifetimeStats) SurvivalTicks() int32 {
	return s.DeathTick - s.BirthTick
}

// LifetimeTracker manages per-body lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new body.
func (lt *LifetimeTracker) Register(id uint32, name string, birthTick int32) {
	lt.stats[id] = &LifetimeStats{Name: name, BirthTick: birthTick}
}

// Get returns the lifetime stats for a body, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// MarkDead records the tick and cause of death. Later calls are ignored.
func (lt *LifetimeTracker) MarkDead(id uint32, tick int32, cause ImpactKind) {
	if s := lt.stats[id]; s != nil && s.Cause == "" {
		s.DeathTick = tick
		s.Cause = cause
	}
}

// UpdateSpeed tracks peak speed.
func (lt *LifetimeTracker) UpdateSpeed(id uint32, speed float64) {
	if s := lt.stats[id]; s != nil && speed > s.PeakSpeed {
		s.PeakSpeed = speed
	}
}

// Remove removes a body's stats and returns them (for logging).
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// Clear drops every tracked body.
func (lt *LifetimeTracker) Clear() {
	clear(lt.stats)
}

// Count returns the number of tracked bodies.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
