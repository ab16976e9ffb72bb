package scenario

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

// TheiaLaunch is the velocity given to a merge subject when a giant
// impact starts.
var TheiaLaunch = r3.Vec{X: -8}

func vec(x, y, z float64) *r3.Vec { return &r3.Vec{X: x, Y: y, Z: z} }

func buildDefault(s *Setup) (*Build, error) {
	bodies, err := BodiesFromObjects(s.Objects)
	return &Build{Bodies: bodies}, requireBodies(bodies, err)
}

// buildCollision uses the declared bodies, or two equal planets on a
// head-on course when none are given.
func buildCollision(s *Setup) (*Build, error) {
	if len(s.Objects) == 0 {
		return &Build{
			Bodies: []BodySpec{
				planet("Planet-A", "Mars", 50, 3, r3.Vec{X: -40}, r3.Vec{X: 10}),
				planet("Planet-B", "Neptune", 50, 3, r3.Vec{X: 40}, r3.Vec{X: -10}),
			},
			CameraPosition: vec(0, 30, 90),
		}, nil
	}
	return buildDefault(s)
}

// buildPlanetBirth uses the declared bodies, or a ring of fragments
// falling inward that merge into one planet.
func buildPlanetBirth(s *Setup) (*Build, error) {
	if len(s.Objects) > 0 {
		return buildDefault(s)
	}
	const (
		fragments = 8
		ringR     = 40.0
		speed     = 6.0
	)
	bodies := make([]BodySpec, 0, fragments)
	for i := 0; i < fragments; i++ {
		a := 2 * math.Pi * float64(i) / fragments
		pos := r3.Vec{X: ringR * math.Cos(a), Z: ringR * math.Sin(a)}
		vel := r3.Scale(-speed/ringR, pos)
		bodies = append(bodies, planet(fragmentName(i), "Mars", 10, 1.5, pos, vel))
	}
	return &Build{Bodies: bodies, CameraPosition: vec(0, 60, 90)}, nil
}

func fragmentName(i int) string {
	return fmt.Sprintf("Fragment-%d", i+1)
}

// buildSolarSystem uses the declared bodies, or a star with planets on
// circular orbits.
func buildSolarSystem(s *Setup) (*Build, error) {
	if len(s.Objects) > 0 {
		return buildDefault(s)
	}
	const (
		g       = 10.0
		sunMass = 10000.0
	)
	sun := planet("Sun", "Sun", sunMass, 10, r3.Vec{}, r3.Vec{})
	sun.Light = 1
	bodies := []BodySpec{sun}
	orbits := []struct {
		name   string
		dist   float64
		radius float64
	}{
		{"Mercury", 25, 0.8},
		{"Venus", 38, 1.4},
		{"Earth", 52, 1.5},
		{"Mars", 68, 1.1},
		{"Jupiter", 95, 4},
	}
	for _, o := range orbits {
		v := math.Sqrt(g * sunMass / o.dist)
		bodies = append(bodies, planet(o.name, o.name, 1, o.radius, r3.Vec{X: o.dist}, r3.Vec{Z: -v}))
	}
	return &Build{Bodies: bodies, CameraPosition: vec(0, 80, 180)}, nil
}

// buildAsteroidImpact places a fixed Earth and an incoming asteroid.
// Declared objects are ignored.
func buildAsteroidImpact(_ *Setup) (*Build, error) {
	earth := planet("Earth", "Earth", 999999, 6, r3.Vec{}, r3.Vec{})
	asteroid := planet("Asteroid", "Mars", 5, 1, r3.Vec{X: -160, Y: 22}, r3.Vec{X: 26, Y: -3.5})
	asteroid.Role = components.RoleImpactor
	asteroid.Spin = r3.Vec{X: 0.6, Y: 1, Z: 0.3}
	asteroid.Lumpy = true
	asteroid.Trail = true
	asteroid.Sparks = true
	asteroid.HeatTarget = earth.Name

	return &Build{
		Bodies:         []BodySpec{earth, asteroid},
		CameraPosition: vec(0, 40, 140),
		CameraLookAt:   vec(0, 0, 0),
	}, nil
}

// buildGiantImpact uses the declared bodies, or a proto-Earth and Theia
// when none are given. Every merge subject is launched at TheiaLaunch.
func buildGiantImpact(s *Setup) (*Build, error) {
	var bodies []BodySpec
	var err error
	if len(s.Objects) > 0 {
		bodies, err = BodiesFromObjects(s.Objects)
	} else {
		bodies = []BodySpec{
			planet("Earth", "Earth", 1000, 6, r3.Vec{}, r3.Vec{}),
			planet("Theia", "Theia", 100, 3, r3.Vec{X: 60}, r3.Vec{}),
		}
	}
	for i := range bodies {
		if bodies[i].Role == components.RoleMergeSubject {
			bodies[i].Velocity = TheiaLaunch
		}
	}
	return &Build{Bodies: bodies, Choreography: true}, requireBodies(bodies, err)
}

func buildSolarEclipse(_ *Setup) (*Build, error) {
	sun, earth, moon := eclipseBodies(r3.Vec{Z: -5})
	script := &eclipseScript{
		moon:      moon.Name,
		moonStart: r3.Vec{X: 5, Z: -5},
		eye:       earth.Name,
		lookAt:    sun.Name,
	}
	return &Build{
		Bodies:         []BodySpec{sun, earth, moon},
		CameraPosition: vec(0, 10, 90),
		CameraLookAt:   vec(0, 0, 0),
		Script:         script,
		Controls:       []Control{{Key: "enter", Label: "Start eclipse", Run: script.Start}},
	}, nil
}

func buildLunarEclipse(_ *Setup) (*Build, error) {
	sun, earth, moon := eclipseBodies(r3.Vec{Z: 8})
	script := &eclipseScript{
		moon:      moon.Name,
		moonStart: r3.Vec{X: 5, Z: 8},
		eye:       earth.Name,
		lookAt:    moon.Name,
	}
	return &Build{
		Bodies:         []BodySpec{sun, earth, moon},
		CameraPosition: vec(0, 10, 40),
		CameraLookAt:   vec(0, 0, 0),
		Script:         script,
		Controls:       []Control{{Key: "enter", Label: "Start eclipse", Run: script.Start}},
	}, nil
}

// eclipseBodies returns a distant Sun, Earth at the origin and the Moon
// at moonPos. The masses are light so the anchor barely moves anything.
func eclipseBodies(moonPos r3.Vec) (sun, earth, moon BodySpec) {
	sun = planet("Sun", "Sun", 1, 20, r3.Vec{Z: -300}, r3.Vec{})
	sun.Light = 1
	earth = planet("Earth", "Earth", 0.8, 1.5, r3.Vec{}, r3.Vec{})
	moon = planet("Moon", "Moon", 0.2, 0.5, moonPos, r3.Vec{})
	return sun, earth, moon
}

func planet(name, key string, mass, radius float64, pos, vel r3.Vec) BodySpec {
	return BodySpec{
		Name:       name,
		TextureKey: key,
		Role:       RoleFromName(name),
		Mass:       mass,
		Radius:     radius,
		Position:   pos,
		Velocity:   vel,
		Color:      ColorFor(key),
	}
}
