package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orrery/components"
)

// BodyRef is a pointer view of one body's components, gathered in
// live-body order so passes that depend on ordering see bodies the
// same way every tick.
type BodyRef struct {
	Entity ecs.Entity
	ID     *components.Identity
	Pos    *components.Position
	Vel    *components.Velocity
	Force  *components.Force
	Body   *components.Body
	Life   *components.Lifecycle
	Visual *components.Visual
	Deform *components.Deform
}

// Alive reports whether the referenced body is still live.
func (b *BodyRef) Alive() bool {
	return b.Life != nil && b.Life.Alive
}

// LiveCount returns the number of live bodies in refs.
func LiveCount(refs []BodyRef) int {
	n := 0
	for i := range refs {
		if refs[i].Alive() {
			n++
		}
	}
	return n
}
