package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Step phase names, in execution order.
const (
	PhaseMergeQueue  = "merge_queue"
	PhaseGravity     = "gravity"
	PhaseIntegrate   = "integrate"
	PhaseSync        = "sync"
	PhaseCollision   = "collision"
	PhaseDeformation = "deformation"
	PhaseEffects     = "effects"
	PhaseScenario    = "scenario"
	PhasePrune       = "prune"
	PhaseTelemetry   = "telemetry"
)

var phaseOrder = [...]string{
	PhaseMergeQueue, PhaseGravity, PhaseIntegrate, PhaseSync,
	PhaseCollision, PhaseDeformation, PhaseEffects, PhaseScenario,
	PhasePrune, PhaseTelemetry,
}

const numPhases = len(phaseOrder)

// Phases lists the step phases in execution order.
func Phases() []string {
	return phaseOrder[:]
}

func phaseIndex(name string) int {
	for i, p := range phaseOrder {
		if p == name {
			return i
		}
	}
	return -1
}

// stepTiming is one step's wall time, split by phase.
type stepTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector keeps the timings of the last N steps in a ring.
type PerfCollector struct {
	now func() time.Time

	ring  []stepTiming
	next  int
	count int

	cur       stepTiming
	stepStart time.Time
	mark      time.Time
	running   int // index of the open phase, -1 when none

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	return newPerfCollector(windowSize, time.Now)
}

func newPerfCollector(windowSize int, now func() time.Time) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:     now,
		ring:    make([]stepTiming, windowSize),
		running: -1,
	}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.stepStart = p.now()
	p.cur = stepTiming{}
	p.running = -1
}

// StartPhase closes the open phase and opens phase. Unknown names close
// the open phase without starting a new one.
func (p *PerfCollector) StartPhase(phase string) {
	t := p.now()
	p.closePhase(t)
	p.mark = t
	p.running = phaseIndex(phase)
}

func (p *PerfCollector) closePhase(t time.Time) {
	if p.running >= 0 {
		p.cur.phases[p.running] += t.Sub(p.mark)
	}
	p.running = -1
}

// EndTick closes the step and stores it in the ring.
func (p *PerfCollector) EndTick() {
	t := p.now()
	p.closePhase(t)
	p.cur.total = t.Sub(p.stepStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame marks a displayed frame. The gap since the previous mark
// is the frame time.
func (p *PerfCollector) RecordFrame() {
	t := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = t.Sub(p.lastFrame)
	}
	p.lastFrame = t
}

// PerfStats summarises the collector's window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	// Average duration and share of the average step, per phase.
	// Phases that never ran are absent.
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Graphical mode only
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes the window summary.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	totals := make([]float64, p.count)
	var phaseSum [numPhases]time.Duration
	var seen [numPhases]bool
	for i := 0; i < p.count; i++ {
		st := &p.ring[i]
		totals[i] = float64(st.total)
		for k, d := range st.phases {
			if d > 0 {
				seen[k] = true
			}
			phaseSum[k] += d
		}
	}
	sort.Float64s(totals)

	mean := stat.Mean(totals, nil)
	s.AvgTickDuration = time.Duration(mean)
	s.MinTickDuration = time.Duration(totals[0])
	s.MaxTickDuration = time.Duration(totals[len(totals)-1])
	s.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))
	if mean > 0 {
		s.TicksPerSecond = float64(time.Second) / mean
	}

	for k, name := range phaseOrder {
		if !seen[k] {
			continue
		}
		avg := phaseSum[k] / time.Duration(p.count)
		s.PhaseAvg[name] = avg
		if mean > 0 {
			s.PhasePct[name] = float64(avg) / mean * 100
		}
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	P95TickUS      int64   `csv:"p95_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	MergeQueuePct  float64 `csv:"merge_queue_pct"`
	GravityPct     float64 `csv:"gravity_pct"`
	IntegratePct   float64 `csv:"integrate_pct"`
	SyncPct        float64 `csv:"sync_pct"`
	CollisionPct   float64 `csv:"collision_pct"`
	DeformationPct float64 `csv:"deformation_pct"`
	EffectsPct     float64 `csv:"effects_pct"`
	ScenarioPct    float64 `csv:"scenario_pct"`
	PrunePct       float64 `csv:"prune_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		P95TickUS:      s.P95TickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		MergeQueuePct:  s.PhasePct[PhaseMergeQueue],
		GravityPct:     s.PhasePct[PhaseGravity],
		IntegratePct:   s.PhasePct[PhaseIntegrate],
		SyncPct:        s.PhasePct[PhaseSync],
		CollisionPct:   s.PhasePct[PhaseCollision],
		DeformationPct: s.PhasePct[PhaseDeformation],
		EffectsPct:     s.PhasePct[PhaseEffects],
		ScenarioPct:    s.PhasePct[PhaseScenario],
		PrunePct:       s.PhasePct[PhasePrune],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
