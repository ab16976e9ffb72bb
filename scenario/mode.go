package scenario

import (
	"strings"

	"github.com/pthm-cable/orrery/components"
)

// Mode selects which physics passes run for a scene.
type Mode string

const (
	ModeDefault        Mode = ""
	ModeCollision      Mode = "collision"
	ModeSolarSystem    Mode = "solar_system"
	ModeOrbit          Mode = "orbit"
	ModeSolarEclipse   Mode = "solar_eclipse"
	ModeLunarEclipse   Mode = "lunar_eclipse"
	ModePlanetBirth    Mode = "planet_birth"
	ModeAsteroidImpact Mode = "asteroid_impact"
	ModeGiantImpact    Mode = "giant_impact"
	ModeSequence       Mode = "sequence"
)

// Gravity reports whether the anchor pulls on other bodies.
func (m Mode) Gravity() bool {
	switch m {
	case ModeCollision, ModePlanetBirth, ModeAsteroidImpact:
		return false
	}
	return true
}

// Collisions reports whether contacts are resolved.
func (m Mode) Collisions() bool {
	switch m {
	case ModeSolarEclipse, ModeLunarEclipse:
		return false
	}
	return true
}

// Deformation reports whether bodies squash as they approach.
func (m Mode) Deformation() bool {
	return m == ModeGiantImpact
}

// OneShotMerge reports whether only the first generic merge may fire.
func (m Mode) OneShotMerge() bool {
	return m == ModeGiantImpact
}

// String returns the mode tag, or "default".
func (m Mode) String() string {
	if m == ModeDefault {
		return "default"
	}
	return string(m)
}

// ParseMode normalizes a scenario type tag.
func ParseMode(s string) Mode {
	return Mode(strings.ToLower(strings.TrimSpace(s)))
}

// RoleFromName derives a body's role from its declared name.
// Matching is a case-insensitive substring test; the first match wins.
func RoleFromName(name string) components.Role {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "asteroid"):
		return components.RoleImpactor
	case strings.Contains(n, "theia"):
		return components.RoleMergeSubject
	case strings.Contains(n, "earth"):
		return components.RolePrimary
	}
	return components.RoleGeneric
}

// DetectMode resolves the mode of a scene. The declared type is used
// unless the objects force a special scene: any Theia makes it a giant
// impact, and Earth together with an asteroid makes it an asteroid impact.
func DetectMode(s *Setup) Mode {
	if s == nil {
		return ModeDefault
	}
	declared := s.ScenarioType
	if declared == "" {
		declared = s.Type
	}
	mode := ParseMode(declared)

	var hasTheia, hasEarth, hasAsteroid bool
	for _, o := range s.Objects {
		n := strings.ToLower(o.Name)
		hasTheia = hasTheia || strings.Contains(n, "theia")
		hasEarth = hasEarth || strings.Contains(n, "earth")
		hasAsteroid = hasAsteroid || strings.Contains(n, "asteroid")
	}
	if hasTheia {
		mode = ModeGiantImpact
	}
	if hasEarth && hasAsteroid {
		mode = ModeAsteroidImpact
	}
	return mode
}
