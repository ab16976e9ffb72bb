package effects

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

// counterSpawn stamps each slot with the order it was written in.
func counterSpawn() SpawnFunc {
	n := 0
	return func(_ *rand.Rand, _ SourceState, p *Particle) {
		p.Life = float64(n)
		n++
	}
}

func TestEmitterRingSaturation(t *testing.T) {
	const capacity = 16
	e := NewEmitter(Config{Capacity: capacity, FixedStep: 1.0 / 60.0, FadeFactor: 0.9, FinishEpsilon: 0.02},
		nil, counterSpawn(), nil, rand.New(rand.NewSource(1)))

	e.Spawn(2*capacity, SourceState{})

	if e.Alive() != capacity {
		t.Errorf("alive = %d, want %d", e.Alive(), capacity)
	}
	if e.Cursor() != 2*capacity {
		t.Errorf("cursor = %d, want %d", e.Cursor(), 2*capacity)
	}
	// Every slot was overwritten by the second lap
	for i, p := range e.Particles() {
		if want := float64(capacity + i); p.Life != want {
			t.Errorf("slot %d holds spawn #%v, want #%v", i, p.Life, want)
		}
	}
}

func TestEmitterPartialFill(t *testing.T) {
	e := NewEmitter(Config{Capacity: 10, FixedStep: 1.0 / 60.0, FadeFactor: 0.9},
		nil, counterSpawn(), nil, rand.New(rand.NewSource(1)))

	e.Spawn(4, SourceState{})
	e.Spawn(3, SourceState{})

	if e.Alive() != 7 || e.Cursor() != 7 {
		t.Errorf("alive/cursor = %d/%d, want 7/7", e.Alive(), e.Cursor())
	}
}

func TestEmitterOpacityFollowsStrength(t *testing.T) {
	strength := 0.0
	src := SourceFunc(func() (SourceState, bool) {
		return SourceState{Vel: r3.Vec{X: 1}, Strength: strength}, true
	})
	e := NewEmitter(Config{Capacity: 100, BaseOpacity: 0.1, MinSpawn: 2, MaxExtraSpawn: 14,
		FixedStep: 1.0 / 60.0, FadeFactor: 0.92, FinishEpsilon: 0.02},
		src, nil, nil, rand.New(rand.NewSource(1)))

	tests := []struct {
		strength    float64
		wantOpacity float64
		wantSpawned uint64
	}{
		{0, 0.1, 2},
		{0.5, 0.55, 9},
		{1, 1, 16},
	}

	var total uint64
	for _, tc := range tests {
		strength = tc.strength
		e.Update(1.0 / 60.0)
		total += tc.wantSpawned

		if math.Abs(e.Opacity()-tc.wantOpacity) > 1e-12 {
			t.Errorf("strength %v: opacity = %v, want %v", tc.strength, e.Opacity(), tc.wantOpacity)
		}
		if e.Cursor() != total {
			t.Errorf("strength %v: cursor = %d, want %d", tc.strength, e.Cursor(), total)
		}
		if e.State() != StateActive {
			t.Errorf("state = %v, want active", e.State())
		}
	}
}

func TestEmitterTerminatesAfterSourceLoss(t *testing.T) {
	alive := true
	src := SourceFunc(func() (SourceState, bool) {
		return SourceState{Vel: r3.Vec{X: 1}, Strength: 1}, alive
	})
	e := NewEmitter(Config{Capacity: 50, BaseOpacity: 0.1, MinSpawn: 2, MaxExtraSpawn: 14,
		FixedStep: 1.0 / 60.0, FadeFactor: 0.92, FinishEpsilon: 0.02},
		src, nil, nil, rand.New(rand.NewSource(1)))

	for i := 0; i < 5; i++ {
		e.Update(1.0 / 60.0)
	}
	alive = false

	prev := e.Opacity()
	ticks := 0
	for !e.Finished() {
		e.Update(1.0 / 60.0)
		ticks++
		if !e.Finished() && e.Opacity() >= prev {
			t.Fatalf("opacity did not decrease: %v -> %v", prev, e.Opacity())
		}
		prev = e.Opacity()
		if ticks > 1000 {
			t.Fatal("emitter never finished")
		}
	}

	// 0.92^k < 0.02 first holds at k = 47
	if ticks != 47 {
		t.Errorf("finished after %d ticks, want 47", ticks)
	}
	if e.Alive() != 0 || len(e.Particles()) != 0 {
		t.Errorf("buffers not released: alive=%d", e.Alive())
	}

	// A returning source does not revive a finished emitter
	alive = true
	e.Update(1.0 / 60.0)
	if !e.Finished() || e.Cursor() == 0 {
		t.Errorf("finished emitter changed state")
	}
}

func TestEmitterFixedStepIgnoresFrameDelta(t *testing.T) {
	spawn := func(_ *rand.Rand, _ SourceState, p *Particle) { p.Vel = r3.Vec{X: 60} }
	a := NewEmitter(Config{Capacity: 1, FixedStep: 1.0 / 60.0, FadeFactor: 0.5}, nil, spawn, nil, rand.New(rand.NewSource(1)))
	b := NewEmitter(Config{Capacity: 1, FixedStep: 1.0 / 60.0, FadeFactor: 0.5}, nil, spawn, nil, rand.New(rand.NewSource(1)))
	a.Spawn(1, SourceState{})
	b.Spawn(1, SourceState{})

	a.Update(1.0 / 60.0)
	b.Update(0.25)

	if a.Particles()[0].Pos != b.Particles()[0].Pos {
		t.Errorf("positions differ: %v vs %v", a.Particles()[0].Pos, b.Particles()[0].Pos)
	}
	if got := a.Particles()[0].Pos.X; math.Abs(got-1) > 1e-12 {
		t.Errorf("x = %v, want 1", got)
	}
}

func TestTrailDirectionDefault(t *testing.T) {
	cfg := testConfig(t)
	src := SourceFunc(func() (SourceState, bool) {
		return SourceState{Strength: 1}, true // stationary source
	})
	trail := NewTrail(cfg.Trail, cfg.Effects.FixedStep, src, rand.New(rand.NewSource(3)))
	trail.Update(1.0 / 60.0)

	if trail.Alive() != 16 {
		t.Fatalf("spawned %d, want 16 at full strength", trail.Alive())
	}
	for i, p := range trail.Particles() {
		if !finite(p.Pos) || !finite(p.Vel) {
			t.Fatalf("particle %d not finite: %+v", i, p)
		}
	}

	// Trail streams backwards from the default +x travel direction
	var sum r3.Vec
	for _, p := range trail.Particles() {
		sum = r3.Add(sum, p.Vel)
	}
	if sum.X >= 0 {
		t.Errorf("mean trail velocity %v should point along -x", sum)
	}
}

func TestSparksCountAndHalo(t *testing.T) {
	cfg := testConfig(t)
	state := SourceState{Pos: r3.Vec{X: -10}, Vel: r3.Vec{X: 28}, Radius: 1, Strength: 1}
	alive := true
	src := SourceFunc(func() (SourceState, bool) { return state, alive })

	s := NewSparks(cfg.Sparks, cfg.Effects.FixedStep, src, rand.New(rand.NewSource(5)))
	s.Update(1.0 / 60.0)

	// (1 + 14*1) * clamp(28/28) = 15
	if s.Cursor() != 15 {
		t.Errorf("spawned %d, want 15", s.Cursor())
	}
	for _, p := range s.Particles() {
		if p.MaxLife < cfg.Sparks.MinLife || p.MaxLife > cfg.Sparks.MinLife+cfg.Sparks.ExtraLife {
			t.Errorf("life %v outside configured range", p.MaxLife)
		}
	}

	// Halo sits ahead of the body; 0.9*clamp(28/30) = 0.84
	if s.Halo.Pos.X <= state.Pos.X {
		t.Errorf("halo at %v, want ahead of %v", s.Halo.Pos, state.Pos)
	}
	if math.Abs(s.Halo.Opacity-0.84) > 1e-9 {
		t.Errorf("halo opacity = %v, want 0.84", s.Halo.Opacity)
	}

	alive = false
	s.Update(1.0 / 60.0)
	if s.Halo.Opacity != 0 {
		t.Errorf("halo opacity after source loss = %v, want 0", s.Halo.Opacity)
	}
}

func TestSparksLowSpeedClamp(t *testing.T) {
	cfg := testConfig(t)
	src := SourceFunc(func() (SourceState, bool) {
		return SourceState{Vel: r3.Vec{X: 1}, Radius: 1, Strength: 0}, true
	})
	s := NewSparks(cfg.Sparks, cfg.Effects.FixedStep, src, rand.New(rand.NewSource(5)))
	s.Update(1.0 / 60.0)

	// floor(1 * 0.35) = 0
	if s.Cursor() != 0 {
		t.Errorf("spawned %d at low speed and zero heat, want 0", s.Cursor())
	}
}

func TestDebrisBurst(t *testing.T) {
	cfg := testConfig(t)
	point := r3.Vec{X: -5.88}
	normal := r3.Vec{X: -1}
	radius := 6.0

	d := NewDebris(cfg.Debris, cfg.Effects.FixedStep, point, normal, radius, rand.New(rand.NewSource(9)))

	if d.Alive() != 900 {
		t.Fatalf("debris count = %d, want 900", d.Alive())
	}
	for i, p := range d.Particles() {
		off := r3.Sub(p.Pos, point)
		lift := r3.Dot(off, normal)
		if math.Abs(lift-radius*cfg.Debris.Lift) > 1e-9 {
			t.Fatalf("particle %d lifted %v, want %v", i, lift, radius*cfg.Debris.Lift)
		}
		planar := r3.Norm(r3.Sub(off, r3.Scale(lift, normal)))
		if planar > radius*cfg.Debris.Spread+1e-9 {
			t.Fatalf("particle %d spread %v beyond %v", i, planar, radius*cfg.Debris.Spread)
		}
		if r3.Dot(p.Vel, normal) < cfg.Debris.NormalSpeed {
			t.Fatalf("particle %d not thrown outward: %v", i, p.Vel)
		}
	}

	size := d.PointSize()
	ticks := 0
	for !d.Finished() {
		d.Update(1.0 / 60.0)
		ticks++
		if ticks == 1 && d.PointSize() <= size {
			t.Error("debris point size should grow")
		}
		if ticks > 500 {
			t.Fatal("debris never finished")
		}
	}
	// 0.96^k < 0.02 first holds at k = 96
	if ticks != 96 {
		t.Errorf("debris finished after %d ticks, want 96", ticks)
	}
}

func finite(v r3.Vec) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func TestEmitterFinishesAtThreshold(t *testing.T) {
	cfg := Config{Capacity: 4, FixedStep: 1.0 / 60.0, FadeFactor: 0.5, FinishEpsilon: 0.25}
	e := NewEmitter(cfg, nil, counterSpawn(), nil, rand.New(rand.NewSource(1)))
	ring := NewRing(config.RingConfig{Growth: 1, Fade: 0.5, FinishEpsilon: 0.25, Opacity: 1}, r3.Vec{})

	e.Update(1.0 / 60.0) // 0.5
	ring.Update(1.0 / 60.0)
	if e.Finished() || ring.Finished() {
		t.Fatal("finished above the threshold")
	}
	e.Update(1.0 / 60.0) // 0.25, exactly the threshold
	ring.Update(1.0 / 60.0)
	if !e.Finished() {
		t.Errorf("emitter at opacity %v not finished, threshold %v", e.Opacity(), cfg.FinishEpsilon)
	}
	if !ring.Finished() {
		t.Errorf("ring at opacity %v not finished", ring.Opacity)
	}
}
