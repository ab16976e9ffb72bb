package effects

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/systems"
)

// State is the lifecycle stage of an emitter.
type State uint8

const (
	StateIdle     State = iota // Created, not yet updated
	StateActive                // Source alive: spawning and decaying
	StateFading                // Source gone: opacity decays until at or below FinishEpsilon
	StateFinished              // Buffers released
)

// Particle is one slot of an emitter's ring buffer.
type Particle struct {
	Pos     r3.Vec
	Vel     r3.Vec
	Life    float64 // seconds remaining, only meaningful when MaxLife > 0
	MaxLife float64 // 0 means the particle lives until overwritten
	Color   uint32
}

// Visible reports whether the particle still contributes to the image.
func (p *Particle) Visible() bool {
	return p.MaxLife == 0 || p.Life > 0
}

// Fraction returns the remaining life in [0, 1]. Immortal particles return 1.
func (p *Particle) Fraction() float64 {
	if p.MaxLife == 0 {
		return 1
	}
	return systems.Clamp01(p.Life / p.MaxLife)
}

// SourceState is what an emitter samples from the body driving it.
type SourceState struct {
	Pos      r3.Vec
	Vel      r3.Vec
	Radius   float64
	Strength float64 // 0..1 proximity-driven intensity
}

// Speed returns the source speed.
func (s SourceState) Speed() float64 {
	return r3.Norm(s.Vel)
}

// Direction returns the unit travel direction, or the default direction
// when the source is nearly stationary.
func (s SourceState) Direction() r3.Vec {
	if r3.Norm2(s.Vel) < 1e-6 {
		return systems.DefaultDirection
	}
	return r3.Unit(s.Vel)
}

// Source supplies the emitter with the driving body's state.
// ok is false once the body is dead or removed.
type Source interface {
	Sample() (state SourceState, ok bool)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (SourceState, bool)

// Sample calls f.
func (f SourceFunc) Sample() (SourceState, bool) { return f() }

// Proximity returns clamp(1 - dist/rangeDist, 0, 1).
func Proximity(a, b r3.Vec, rangeDist float64) float64 {
	if rangeDist <= 0 {
		return 0
	}
	return systems.Clamp01(1 - r3.Norm(r3.Sub(a, b))/rangeDist)
}

// SpawnFunc initializes a freshly written slot.
type SpawnFunc func(rng *rand.Rand, src SourceState, p *Particle)

// FieldFunc applies the velocity field and damping to one particle for a
// step of h seconds. Position is advanced by the emitter afterwards.
type FieldFunc func(p *Particle, src SourceState, h float64)

// CountFunc returns how many particles to spawn this tick.
type CountFunc func(src SourceState) int

// Config parameterizes an emitter.
type Config struct {
	Kind          Kind
	Capacity      int
	BaseOpacity   float64 // opacity at zero strength
	MinSpawn      float64
	MaxExtraSpawn float64
	FixedStep     float64 // particle integration step, independent of frame delta
	FadeFactor    float64 // multiplicative opacity decay while fading
	FinishEpsilon float64
	PointSize     float64
	Growth        float64 // per-tick point size multiplier, 0 or 1 = none
	Color         uint32
}

// Emitter is a fixed-capacity ring buffer of particles. Writes advance a
// monotonic cursor modulo capacity, so once full the oldest slots are
// overwritten first.
type Emitter struct {
	cfg    Config
	source Source
	spawn  SpawnFunc
	field  FieldFunc
	count  CountFunc
	rng    *rand.Rand

	particles []Particle
	cursor    uint64
	alive     int

	state   State
	opacity float64
	scale   float64
	last    SourceState
}

// NewEmitter creates an emitter. source may be nil for a one-shot burst,
// in which case the emitter starts fading immediately at full opacity.
func NewEmitter(cfg Config, source Source, spawn SpawnFunc, field FieldFunc, rng *rand.Rand) *Emitter {
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.Growth == 0 {
		cfg.Growth = 1
	}
	e := &Emitter{
		cfg:       cfg,
		source:    source,
		spawn:     spawn,
		field:     field,
		rng:       rng,
		particles: make([]Particle, cfg.Capacity),
		opacity:   cfg.BaseOpacity,
		scale:     1,
	}
	if source == nil {
		e.state = StateFading
		e.opacity = 1
	}
	return e
}

// SetCount overrides the default spawn-count formula.
func (e *Emitter) SetCount(f CountFunc) {
	e.count = f
}

// Spawn writes n particles at the cursor. Once more than Capacity
// particles have been spawned the oldest are overwritten.
func (e *Emitter) Spawn(n int, src SourceState) {
	if e.state == StateFinished || n <= 0 {
		return
	}
	capacity := uint64(len(e.particles))
	for k := 0; k < n; k++ {
		p := &e.particles[e.cursor%capacity]
		*p = Particle{Color: e.cfg.Color}
		if e.spawn != nil {
			e.spawn(e.rng, src, p)
		}
		e.cursor++
		if e.alive < len(e.particles) {
			e.alive++
		}
	}
}

// Update samples the source, spawns, decays opacity and integrates every
// slot with the fixed particle step. The frame delta only matters to
// the caller's time scale; particle motion is frame-rate independent.
func (e *Emitter) Update(dt float64) {
	if e.state == StateFinished {
		return
	}

	src, ok := e.sample()
	if ok && e.state != StateFading {
		e.state = StateActive
		e.last = src
		e.opacity = e.cfg.BaseOpacity + (1-e.cfg.BaseOpacity)*systems.Clamp01(src.Strength)
		e.Spawn(e.spawnCount(src), src)
	} else {
		e.state = StateFading
		e.opacity *= e.cfg.FadeFactor
	}

	e.integrate(e.last)
	e.scale *= e.cfg.Growth

	if e.state == StateFading && e.opacity <= e.cfg.FinishEpsilon {
		e.Dispose()
	}
}

func (e *Emitter) sample() (SourceState, bool) {
	if e.source == nil {
		return SourceState{}, false
	}
	return e.source.Sample()
}

func (e *Emitter) spawnCount(src SourceState) int {
	if e.count != nil {
		return e.count(src)
	}
	s := systems.Clamp01(src.Strength)
	return int(math.Floor(e.cfg.MinSpawn + e.cfg.MaxExtraSpawn*s))
}

func (e *Emitter) integrate(src SourceState) {
	h := e.cfg.FixedStep
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		if !p.Visible() {
			continue
		}
		if e.field != nil {
			e.field(p, src, h)
		}
		p.Pos = r3.Add(p.Pos, r3.Scale(h, p.Vel))
		if p.MaxLife > 0 {
			p.Life -= h
		}
	}
}

// Finished reports whether the emitter has released its buffers.
func (e *Emitter) Finished() bool {
	return e.state == StateFinished
}

// Dispose releases the particle buffer. It is safe to call more than once.
func (e *Emitter) Dispose() {
	e.state = StateFinished
	e.particles = nil
	e.alive = 0
}

// Kind returns the configured effect kind.
func (e *Emitter) Kind() Kind { return e.cfg.Kind }

// State returns the lifecycle stage.
func (e *Emitter) State() State { return e.state }

// Opacity returns the current whole-emitter opacity.
func (e *Emitter) Opacity() float64 { return e.opacity }

// PointSize returns the current point size including growth.
func (e *Emitter) PointSize() float64 { return e.cfg.PointSize * e.scale }

// Alive returns the number of written slots, saturating at capacity.
func (e *Emitter) Alive() int { return e.alive }

// Cursor returns the total number of particles ever spawned.
func (e *Emitter) Cursor() uint64 { return e.cursor }

// Capacity returns the slot count.
func (e *Emitter) Capacity() int { return e.cfg.Capacity }

// Particles returns the written slots. The slice aliases internal storage
// and is only valid until the next Update.
func (e *Emitter) Particles() []Particle {
	return e.particles[:e.alive]
}

// LastSource returns the most recent source sample.
func (e *Emitter) LastSource() SourceState { return e.last }
