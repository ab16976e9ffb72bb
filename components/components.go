// Package components defines ECS components for celestial bodies.
package components

// Role classifies a body for merge and explosion resolution.
// It is assigned once when the body is created and never re-derived.
type Role uint8

const (
	RoleGeneric      Role = iota // Plain body, merges with anything it touches
	RolePrimary                  // Planet that survives impacts (Earth)
	RoleImpactor                 // Small body destroyed on impact with a primary (asteroid)
	RoleMergeSubject             // Body whose merge produces a molten result (Theia)
)

// Identity names a body and carries its role.
type Identity struct {
	ID         uint32
	Name       string
	TextureKey string
	Role       Role
}

// Light marks a body that emits light (the star of a scene).
type Light struct {
	Intensity float64
}
