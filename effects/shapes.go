package effects

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/config"
)

// Flash is an expanding sphere of light that fades linearly.
type Flash struct {
	Pos     r3.Vec
	Scale   float64
	Opacity float64
	Color   uint32

	growth   float64
	fadeStep float64
	done     bool
}

// NewFlash creates a flash at pos.
func NewFlash(cfg config.FlashConfig, pos r3.Vec, color uint32) *Flash {
	return &Flash{
		Pos:      pos,
		Scale:    cfg.Scale,
		Opacity:  1,
		Color:    color,
		growth:   cfg.Growth,
		fadeStep: cfg.FadeStep,
	}
}

// Update grows the flash and lowers its opacity by a fixed step.
func (f *Flash) Update(dt float64) {
	if f.done {
		return
	}
	f.Scale *= f.growth
	f.Opacity -= f.fadeStep
	if f.Opacity <= 0 {
		f.Opacity = 0
		f.done = true
	}
}

// Finished reports whether the flash has faded out.
func (f *Flash) Finished() bool { return f.done }

// Dispose marks the flash finished.
func (f *Flash) Dispose() { f.done = true }

// Kind returns KindFlash.
func (f *Flash) Kind() Kind { return KindFlash }

// Ring is a flat shockwave that expands in the horizontal plane.
type Ring struct {
	Pos         r3.Vec
	InnerRadius float64
	OuterRadius float64
	Scale       float64
	Opacity     float64
	Color       uint32

	growth  float64
	fade    float64
	epsilon float64
	done    bool
}

// NewRing creates a shockwave ring at pos.
func NewRing(cfg config.RingConfig, pos r3.Vec) *Ring {
	return &Ring{
		Pos:         pos,
		InnerRadius: cfg.InnerRadius,
		OuterRadius: cfg.OuterRadius,
		Scale:       1,
		Opacity:     cfg.Opacity,
		Color:       RingColor,
		growth:      cfg.Growth,
		fade:        cfg.Fade,
		epsilon:     cfg.FinishEpsilon,
	}
}

// Update expands the ring and decays its opacity geometrically.
func (r *Ring) Update(dt float64) {
	if r.done {
		return
	}
	r.Scale *= r.growth
	r.Opacity *= r.fade
	if r.Opacity <= r.epsilon {
		r.done = true
	}
}

// Finished reports whether the ring has faded out.
func (r *Ring) Finished() bool { return r.done }

// Dispose marks the ring finished.
func (r *Ring) Dispose() { r.done = true }

// Kind returns KindRing.
func (r *Ring) Kind() Kind { return KindRing }
