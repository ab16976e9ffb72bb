package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// rgba converts a 0xRRGGBB color and an opacity in [0, 1].
func rgba(c uint32, alpha float64) rl.Color {
	return rl.Color{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: uint8(clamp01(alpha) * 255),
	}
}

// shade scales a 0xRRGGBB color by light and adds an emissive term.
func shade(c uint32, light float64, emissive uint32, glow float64) rl.Color {
	ch := func(shift uint) uint8 {
		base := float64((c>>shift)&0xff) * light
		base += float64((emissive>>shift)&0xff) * glow
		if base > 255 {
			base = 255
		}
		return uint8(base)
	}
	return rl.Color{R: ch(16), G: ch(8), B: ch(0), A: 255}
}

func vec(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
