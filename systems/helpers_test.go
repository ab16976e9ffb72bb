package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

const eps = 1e-9

var nextTestID uint32

// newRef builds a live, attached body with a visual handle, positioned at
// pos in both physics and visual space.
func newRef(name string, role components.Role, mass, radius float64, pos r3.Vec) BodyRef {
	nextTestID++
	p := &components.Position{}
	p.Set(pos)
	return BodyRef{
		ID:     &components.Identity{ID: nextTestID, Name: name, TextureKey: name, Role: role},
		Pos:    p,
		Vel:    &components.Velocity{},
		Force:  &components.Force{},
		Body:   &components.Body{Mass: mass, Radius: radius},
		Life:   &components.Lifecycle{Alive: true, Visible: true, Attached: true},
		Visual: &components.Visual{Handle: nextTestID, Position: pos},
		Deform: &components.Deform{},
	}
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func nearVec(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}
