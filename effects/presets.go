package effects

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/systems"
)

// Colors used by the built-in presets.
const (
	TrailColor = 0xffaa33
	HaloColor  = 0xff9a2a
	RingColor  = 0xfff2aa
	FlashColor = 0xffffff
)

var up = r3.Vec{Y: 1}

// centered returns a uniform sample in [-0.5, 0.5).
func centered(rng *rand.Rand) float64 {
	return rng.Float64() - 0.5
}

func randomCube(rng *rand.Rand, size float64) r3.Vec {
	return r3.Vec{X: centered(rng) * size, Y: centered(rng) * size, Z: centered(rng) * size}
}

// NewTrail creates the flame trail that streams behind an approaching body.
// Strength rises as the source nears its target; the trail fades out once
// the source is gone.
func NewTrail(cfg config.TrailConfig, step float64, src Source, rng *rand.Rand) *Emitter {
	spawn := func(rng *rand.Rand, s SourceState, p *Particle) {
		back := r3.Scale(-1, s.Direction())
		jitter := cfg.PositionJitter + rng.Float64()*cfg.ExtraPositionJitter
		p.Pos = r3.Add(s.Pos, randomCube(rng, jitter))
		speed := cfg.MinSpeed + rng.Float64()*cfg.ExtraSpeed
		p.Vel = r3.Add(r3.Scale(speed, back), randomCube(rng, 2*cfg.VelocityJitter))
	}
	field := func(p *Particle, s SourceState, h float64) {
		p.Vel = r3.Scale(cfg.Damping-cfg.DampingStrength*systems.Clamp01(s.Strength), p.Vel)
	}

	return NewEmitter(Config{
		Kind:          KindTrail,
		Capacity:      cfg.Capacity,
		BaseOpacity:   cfg.BaseOpacity,
		MinSpawn:      cfg.MinSpawn,
		MaxExtraSpawn: cfg.MaxExtraSpawn,
		FixedStep:     step,
		FadeFactor:    cfg.FadeFactor,
		FinishEpsilon: cfg.FinishEpsilon,
		PointSize:     cfg.PointSize,
		Color:         TrailColor,
	}, src, spawn, field, rng)
}

// Halo is the glow on the leading face of a heated body.
type Halo struct {
	Pos     r3.Vec
	Normal  r3.Vec // faces along the travel direction
	Radius  float64
	Opacity float64
}

// Sparks is a heat spark emitter plus its leading-edge halo.
type Sparks struct {
	*Emitter
	Halo Halo
	cfg  config.SparksConfig
}

// NewSparks creates the spark shower thrown off a body heating up on approach.
func NewSparks(cfg config.SparksConfig, step float64, src Source, rng *rand.Rand) *Sparks {
	spawn := func(rng *rand.Rand, s SourceState, p *Particle) {
		dir := s.Direction()
		heat := systems.Clamp01(s.Strength)
		speed := s.Speed()

		t1, t2 := systems.Tangents(dir, up)
		r := s.Radius * (cfg.RingMin + rng.Float64()*cfg.RingExtra)
		a := rng.Float64() * 2 * math.Pi
		h := centered(rng) * r * cfg.RingHeight
		offset := r3.Add(r3.Add(r3.Scale(math.Cos(a)*r, t1), r3.Scale(math.Sin(a)*r, t2)), r3.Scale(h, up))
		p.Pos = r3.Add(s.Pos, offset)

		back := r3.Scale(-1, dir)
		base := systems.Direction(r3.Add(back, randomCube(rng, 0.9)), back)
		vmag := 10 + 22*heat + math.Min(speed, 40)*(0.2+0.35*heat) + rng.Float64()*10
		p.Vel = r3.Scale(vmag, base)

		p.MaxLife = cfg.MinLife + rng.Float64()*cfg.ExtraLife
		p.Life = p.MaxLife
		p.Color = sparkColor(rng)
	}
	field := func(p *Particle, s SourceState, h float64) {
		p.Vel = r3.Scale(cfg.Damping, p.Vel)
		p.Vel.Y -= cfg.Sag * systems.Clamp01(s.Strength) * h
	}

	e := NewEmitter(Config{
		Kind:          KindSparks,
		Capacity:      cfg.Capacity,
		BaseOpacity:   1,
		FixedStep:     step,
		FadeFactor:    cfg.FadeFactor,
		FinishEpsilon: cfg.FinishEpsilon,
		PointSize:     cfg.PointSize,
	}, src, spawn, field, rng)
	e.SetCount(func(s SourceState) int {
		heat := systems.Clamp01(s.Strength)
		factor := systems.Clamp(s.Speed()/cfg.SpeedRef, cfg.MinSpeedFactor, cfg.MaxSpeedFactor)
		return int(math.Floor((cfg.MinSpawn + cfg.MaxExtraSpawn*heat) * factor))
	})

	return &Sparks{Emitter: e, cfg: cfg}
}

// Update advances the sparks and repositions the halo.
func (s *Sparks) Update(dt float64) {
	s.Emitter.Update(dt)
	if s.State() != StateActive {
		s.Halo.Opacity = 0
		return
	}

	src := s.LastSource()
	dir := src.Direction()
	heat := systems.Clamp01(src.Strength)
	alpha := (0.15 + 0.75*heat) * systems.Clamp(src.Speed()/s.cfg.HaloSpeedRef, 0.4, 1.2)

	s.Halo = Halo{
		Pos:     r3.Add(src.Pos, r3.Scale(src.Radius*s.cfg.HaloOffset, dir)),
		Normal:  dir,
		Radius:  src.Radius * s.cfg.HaloOffset,
		Opacity: systems.Clamp(alpha, 0, s.cfg.HaloMaxOpacity),
	}
}

func sparkColor(rng *rand.Rand) uint32 {
	c := rng.Float64()
	switch {
	case c > 0.86:
		return 0xffffff
	case c > 0.55:
		return 0xffbf40
	default:
		return 0xff731f
	}
}

// NewDebris creates the one-shot burst of rock thrown up from an impact
// point. normal must be a unit vector pointing out of the struck body.
func NewDebris(cfg config.DebrisConfig, step float64, point, normal r3.Vec, radius float64, rng *rand.Rand) *Emitter {
	t1, t2 := systems.Tangents(normal, up)

	spawn := func(rng *rand.Rand, _ SourceState, p *Particle) {
		r := rng.Float64() * radius * cfg.Spread
		a := rng.Float64() * 2 * math.Pi
		offset := r3.Add(r3.Add(r3.Scale(math.Cos(a)*r, t1), r3.Scale(math.Sin(a)*r, t2)), r3.Scale(radius*cfg.Lift, normal))
		p.Pos = r3.Add(point, offset)

		normalSpeed := cfg.NormalSpeed + rng.Float64()*cfg.ExtraNormalSpeed
		swirl := cfg.TangentSpeed + rng.Float64()*cfg.ExtraTangentSpeed
		p.Vel = r3.Add(
			r3.Scale(normalSpeed, normal),
			r3.Add(r3.Scale(centered(rng)*swirl, t1), r3.Scale(centered(rng)*swirl, t2)),
		)
		p.Color = debrisColor(rng)
	}
	drift := r3.Scale(cfg.Drift, normal)
	field := func(p *Particle, _ SourceState, h float64) {
		p.Vel = r3.Add(r3.Scale(cfg.Damping, p.Vel), r3.Scale(h, drift))
	}

	e := NewEmitter(Config{
		Kind:          KindDebris,
		Capacity:      cfg.Count,
		FixedStep:     step,
		FadeFactor:    cfg.Fade,
		FinishEpsilon: cfg.FinishEpsilon,
		PointSize:     cfg.PointSize,
		Growth:        cfg.Growth,
	}, nil, spawn, field, rng)
	e.Spawn(cfg.Count, SourceState{Pos: point})
	return e
}

func debrisColor(rng *rand.Rand) uint32 {
	c := rng.Float64()
	switch {
	case c > 0.88:
		return 0xffffff
	case c > 0.55:
		return 0xc7c7cc
	case c > 0.25:
		return 0x7a8085
	default:
		return 0x383a40
	}
}
