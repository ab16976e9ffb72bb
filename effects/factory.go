package effects

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/config"
)

// ImpactEffectFactory builds the effect sets spawned by collisions and
// the emitters attached to approaching bodies.
type ImpactEffectFactory struct {
	cfg *config.Config
	rng *rand.Rand
}

// NewImpactEffectFactory creates a factory drawing randomness from rng.
func NewImpactEffectFactory(cfg *config.Config, rng *rand.Rand) *ImpactEffectFactory {
	return &ImpactEffectFactory{cfg: cfg, rng: rng}
}

// Impact returns the flash, shockwave ring and debris burst for an
// impactor striking a primary at point. normal points out of the primary.
func (f *ImpactEffectFactory) Impact(point, normal r3.Vec, primaryRadius float64) []Effect {
	return []Effect{
		NewFlash(f.cfg.Flash, point, FlashColor),
		NewRing(f.cfg.Ring, point),
		NewDebris(f.cfg.Debris, f.cfg.Effects.FixedStep, point, normal, primaryRadius, f.rng),
	}
}

// Explosion returns a single colored flash, used when two ordinary bodies merge.
func (f *ImpactEffectFactory) Explosion(point r3.Vec, color uint32) []Effect {
	return []Effect{NewFlash(f.cfg.Flash, point, color)}
}

// MoltenFlash returns the flash and ring shown when a molten body forms.
func (f *ImpactEffectFactory) MoltenFlash(point r3.Vec) []Effect {
	return []Effect{
		NewFlash(f.cfg.Flash, point, FlashColor),
		NewRing(f.cfg.Ring, point),
	}
}

// Trail returns a flame trail driven by src.
func (f *ImpactEffectFactory) Trail(src Source) *Emitter {
	return NewTrail(f.cfg.Trail, f.cfg.Effects.FixedStep, src, f.rng)
}

// Sparks returns a heat spark emitter driven by src.
func (f *ImpactEffectFactory) Sparks(src Source) *Sparks {
	return NewSparks(f.cfg.Sparks, f.cfg.Effects.FixedStep, src, f.rng)
}
