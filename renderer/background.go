package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// starDistance keeps the sky inside the default far clip plane.
const starDistance = 900

// BackgroundRenderer draws a fixed star field that stays centred on the
// camera, so it never parallaxes.
type BackgroundRenderer struct {
	dirs   []r3.Vec
	colors []rl.Color
}

// NewBackgroundRenderer scatters count stars uniformly over the sky.
func NewBackgroundRenderer(count int, seed int64) *BackgroundRenderer {
	rng := rand.New(rand.NewSource(seed))
	b := &BackgroundRenderer{
		dirs:   make([]r3.Vec, count),
		colors: make([]rl.Color, count),
	}
	for i := range b.dirs {
		z := 2*rng.Float64() - 1
		a := 2 * math.Pi * rng.Float64()
		s := math.Sqrt(1 - z*z)
		b.dirs[i] = r3.Vec{X: s * math.Cos(a), Y: s * math.Sin(a), Z: z}

		// Mostly dim white, a few warm or cool
		v := uint8(120 + rng.Intn(136))
		c := rl.Color{R: v, G: v, B: v, A: 255}
		switch rng.Intn(10) {
		case 0:
			c.B = v / 2
		case 1:
			c.R = v / 2
		}
		b.colors[i] = c
	}
	return b
}

// Draw renders the stars. Must be called inside BeginMode3D.
func (b *BackgroundRenderer) Draw(cam rl.Camera3D) {
	eye := r3.Vec{X: float64(cam.Position.X), Y: float64(cam.Position.Y), Z: float64(cam.Position.Z)}
	for i, d := range b.dirs {
		rl.DrawPoint3D(vec(r3.Add(eye, r3.Scale(starDistance, d))), b.colors[i])
	}
}
