package telemetry

import (
	"math"
	"testing"
)

func TestComputeSpeedStats(t *testing.T) {
	tests := []struct {
		name              string
		values            []float64
		wantMean, wantStd float64
		wantMax           float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{4}, 4, 0, 4},
		{"five", []float64{1, 2, 3, 4, 5}, 3, math.Sqrt(2.5), 5},
		{"constant", []float64{7, 7, 7}, 7, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, max := ComputeSpeedStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
			if max != tt.wantMax {
				t.Errorf("max = %v, want %v", max, tt.wantMax)
			}
		})
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(5, 1.0/60)
	if c.WindowDurationTicks() != 300 {
		t.Fatalf("window = %d ticks, want 300", c.WindowDurationTicks())
	}
	if c.ShouldFlush(299) {
		t.Error("flush before window end")
	}
	if !c.ShouldFlush(300) {
		t.Error("no flush at window end")
	}

	c.RecordMerge()
	c.RecordExplosion()
	c.RecordEffects(3)
	c.RecordBodyCreated()
	c.RecordBodyCreated()
	c.RecordBodyPruned()
	c.RecordRejected(2)

	s := c.Flush(300, Sample{LiveBodies: 2, LiveEffects: 3, LiveParticles: 900, Speeds: []float64{0, 26}})
	if s.Merges != 1 || s.Explosions != 1 || s.EffectsSpawned != 3 ||
		s.BodiesCreated != 2 || s.BodiesPruned != 1 || s.RejectedSteps != 2 {
		t.Errorf("counters = %+v", s)
	}
	if s.LiveParticles != 900 || s.SpeedMean != 13 || s.SpeedMax != 26 {
		t.Errorf("sample = %+v", s)
	}
	if math.Abs(s.SimTimeSec-5) > 1e-6 {
		t.Errorf("sim_time = %v, want 5", s.SimTimeSec)
	}

	// Counters reset and the window restarts at the flush tick
	next := c.Flush(400, Sample{})
	if next.Merges != 0 || next.Explosions != 0 || next.WindowStartTick != 300 {
		t.Errorf("second window = %+v", next)
	}
	if c.ShouldFlush(699) || !c.ShouldFlush(700) {
		t.Error("window not restarted at last flush")
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, "Asteroid", 10)
	lt.UpdateSpeed(1, 20)
	lt.UpdateSpeed(1, 12)
	lt.MarkDead(1, 70, ImpactExplosion)
	lt.MarkDead(1, 90, ImpactMerge)

	s := lt.Remove(1)
	if s == nil || s.Cause != ImpactExplosion || s.SurvivalTicks() != 60 || s.PeakSpeed != 20 {
		t.Errorf("lifetime = %+v", s)
	}
	if lt.Count() != 0 || lt.Remove(1) != nil {
		t.Error("body still tracked after Remove")
	}
}

func TestCollectorWindowTicks(t *testing.T) {
	tests := []struct {
		name string
		sec  float64
		dt   float32
		want int32
	}{
		{"5s at 60Hz", 5, 1.0 / 60, 300},
		{"10s at 60Hz", 10, 1.0 / 60, 600},
		{"1s at 30Hz", 1, 1.0 / 30, 30},
		{"3s at 120Hz", 3, 1.0 / 120, 360},
		{"shorter than a tick", 0.001, 1.0 / 60, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewCollector(tt.sec, tt.dt).WindowDurationTicks(); got != tt.want {
				t.Errorf("window = %d ticks, want %d", got, tt.want)
			}
		})
	}
}
