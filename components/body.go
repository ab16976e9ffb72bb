package components

import "gonum.org/v1/gonum/spatial/r3"

// Body holds the physical properties of a celestial body.
type Body struct {
	Mass   float64
	Radius float64
}

// Lifecycle tracks whether a body participates in the simulation.
type Lifecycle struct {
	Alive    bool // Cleared exactly once when the body merges or explodes
	Visible  bool
	Attached bool // Present in the physics simulation
}

// Visual is the render-side transform and styling of a body.
// Handle 0 means the body has no visual and cannot take part in merges.
type Visual struct {
	Handle            uint32
	Position          r3.Vec
	Angle             r3.Vec
	Color             uint32 // 0xRRGGBB
	Emissive          uint32 // 0xRRGGBB
	EmissiveIntensity float64
}

// Deform is the cosmetic squash applied to a body approaching another.
type Deform struct {
	Dir    r3.Vec  // unit direction toward the other body
	Target float64 // 0..1, recomputed every tick
	Amount float64 // eased toward Target
}

// Shape holds the one-shot procedural surface perturbation.
type Shape struct {
	Lumpy   bool      // Set once the perturbation has been applied
	Heights []float64 // radial scale per sample, row-major lat/long grid
	Res     int       // samples per axis
}
