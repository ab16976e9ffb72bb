package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/orrery/components"
)

// LumpyParams shapes the procedural rock surface.
type LumpyParams struct {
	Amplitude  float64 // displacement scale in body radii
	Frequency  float64 // lower = bigger lumps
	Jitter     float64 // high-frequency roughness
	Resolution int     // samples per axis
}

// ApplyLumpy fills shape with radial scale factors sampled from simplex
// noise over the unit sphere. It only ever runs once per shape; later
// calls are no-ops and return false.
func ApplyLumpy(shape *components.Shape, seed int64, p LumpyParams) bool {
	if shape == nil || shape.Lumpy {
		return false
	}
	res := p.Resolution
	if res < 4 {
		res = 4
	}

	coarse := opensimplex.New(seed)
	fine := opensimplex.New(seed + 1)

	heights := make([]float64, res*res)
	for i := 0; i < res; i++ {
		lat := math.Pi * (float64(i)/float64(res-1) - 0.5)
		for j := 0; j < res; j++ {
			lon := 2 * math.Pi * float64(j) / float64(res)
			x := math.Cos(lat) * math.Cos(lon)
			y := math.Sin(lat)
			z := math.Cos(lat) * math.Sin(lon)

			f := p.Frequency
			h := coarse.Eval3(x*f, y*f, z*f) + 0.5*coarse.Eval3(x*f*4, y*f*4, z*f*4)
			r := fine.Eval3(x*10, y*10, z*10)

			disp := Clamp(h*0.18+r*p.Jitter*0.12, -0.35, 0.45)
			heights[i*res+j] = 1 + disp*p.Amplitude
		}
	}

	shape.Heights = heights
	shape.Res = res
	shape.Lumpy = true
	return true
}

// HeightAt returns the radial scale for a surface direction given in
// latitude/longitude sample indices. An unshaped body returns 1.
func HeightAt(shape *components.Shape, i, j int) float64 {
	if shape == nil || !shape.Lumpy || shape.Res == 0 {
		return 1
	}
	i = ((i % shape.Res) + shape.Res) % shape.Res
	j = ((j % shape.Res) + shape.Res) % shape.Res
	return shape.Heights[i*shape.Res+j]
}
