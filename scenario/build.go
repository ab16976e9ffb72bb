package scenario

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

// BodySpec is the initial state of one body produced by a builder.
type BodySpec struct {
	Name       string
	TextureKey string
	Role       components.Role
	Mass       float64
	Radius     float64
	Position   r3.Vec
	Velocity   r3.Vec
	Spin       r3.Vec
	Color      uint32
	Light      float64 // > 0 marks a light source

	Lumpy bool // apply the procedural rock surface once at creation

	// Trail and Sparks attach emitters whose strength follows the
	// body's proximity to the body named HeatTarget.
	Trail      bool
	Sparks     bool
	HeatTarget string
}

// Scene is the running simulation as seen by scene scripts and controls.
type Scene interface {
	BodyState(name string) (pos, vel r3.Vec, ok bool)
	SetBodyState(name string, pos, vel r3.Vec) bool
	Ambient() float64
	SetAmbient(level float64)
	FrameCamera(pos, lookAt r3.Vec)
}

// Script is per-tick scene logic.
type Script interface {
	Update(dt float64, s Scene)
}

// Control is a scene action bound to a key.
type Control struct {
	Key   string // lowercase key name, e.g. "enter"
	Label string
	Run   func(s Scene)
}

// Build is a fully described scene ready to be instantiated.
type Build struct {
	Mode           Mode
	Bodies         []BodySpec
	CameraPosition *r3.Vec
	CameraLookAt   *r3.Vec
	Script         Script
	Controls       []Control

	// Choreography starts the giant-impact camera timeline.
	Choreography bool
}

// Control returns the control bound to key.
func (b *Build) Control(key string) (Control, bool) {
	key = strings.ToLower(key)
	for _, c := range b.Controls {
		if c.Key == key {
			return c, true
		}
	}
	return Control{}, false
}

// Builder turns a setup into a scene.
type Builder func(s *Setup) (*Build, error)

var builders = map[Mode]Builder{
	ModeCollision:      buildCollision,
	ModeSolarSystem:    buildSolarSystem,
	ModeOrbit:          buildSolarSystem,
	ModeSolarEclipse:   buildSolarEclipse,
	ModeLunarEclipse:   buildLunarEclipse,
	ModePlanetBirth:    buildPlanetBirth,
	ModeAsteroidImpact: buildAsteroidImpact,
	ModeGiantImpact:    buildGiantImpact,
}

// Modes returns every mode with a dedicated builder.
func Modes() []Mode {
	return []Mode{
		ModeCollision, ModeSolarSystem, ModeOrbit, ModeSolarEclipse,
		ModeLunarEclipse, ModePlanetBirth, ModeAsteroidImpact, ModeGiantImpact,
	}
}

// BuildScene detects the mode of s and runs its builder.
//
// The returned Build is never nil. A non-nil error describes how the
// scene was degraded (unknown type, skipped objects, no objects); the
// caller logs it and runs whatever was built.
func BuildScene(s *Setup) (*Build, error) {
	if s == nil {
		return &Build{}, fmt.Errorf("building scene: %w", ErrNoObjects)
	}
	mode := DetectMode(s)

	builder, ok := builders[mode]
	var unknown error
	if !ok {
		builder = buildDefault
		if mode != ModeDefault {
			unknown = fmt.Errorf("%w %q, using bodies from data", ErrUnknownScenario, mode)
		}
	}

	b, err := builder(s)
	if b == nil {
		b = &Build{}
	}
	b.Mode = mode
	if b.CameraPosition == nil && s.CameraPosition != nil {
		p := s.CameraPosition.Vec()
		b.CameraPosition = &p
	}
	if b.CameraLookAt == nil && s.CameraLookAt != nil {
		p := s.CameraLookAt.Vec()
		b.CameraLookAt = &p
	}
	return b, errors.Join(unknown, err)
}

// BodiesFromObjects converts declared objects into body specs, skipping
// invalid ones. The returned error joins every skipped object's error.
func BodiesFromObjects(objs []ObjectSpec) ([]BodySpec, error) {
	bodies := make([]BodySpec, 0, len(objs))
	var errs []error
	for _, o := range objs {
		if err := o.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		bodies = append(bodies, bodyFromObject(o))
	}
	return bodies, errors.Join(errs...)
}

func bodyFromObject(o ObjectSpec) BodySpec {
	mass := o.Mass
	if mass == 0 {
		mass = DefaultMass
	}
	key := o.TextureKey
	if key == "" {
		key = o.Name
	}
	b := BodySpec{
		Name:       o.Name,
		TextureKey: key,
		Role:       RoleFromName(o.Name),
		Mass:       mass,
		Radius:     o.Size,
		Position:   o.Position.Vec(),
		Velocity:   o.Velocity.Vec(),
		Color:      ColorFor(key),
	}
	if strings.Contains(strings.ToLower(o.Name), "sun") {
		b.Light = 1
	}
	return b
}

// requireBodies reports ErrNoObjects alongside any conversion error
// when nothing usable was declared.
func requireBodies(bodies []BodySpec, err error) error {
	if len(bodies) == 0 {
		return errors.Join(fmt.Errorf("building scene: %w", ErrNoObjects), err)
	}
	return err
}

// Index returns the position of the first body named name, or -1.
func Index(bodies []BodySpec, name string) int {
	for i := range bodies {
		if strings.EqualFold(bodies[i].Name, name) {
			return i
		}
	}
	return -1
}

var palette = map[string]uint32{
	"sun":         0xffcc33,
	"mercury":     0x9a8f85,
	"venus":       0xe3c27a,
	"earth":       0x3a6fd8,
	"moon":        0xbfbfbf,
	"mars":        0xb5532c,
	"jupiter":     0xd2a574,
	"saturn":      0xe6d19b,
	"uranus":      0x9fd8e0,
	"neptune":     0x3b5bd9,
	"pluto":       0xcbb8a0,
	"theia":       0x8d7b6a,
	"moltenearth": 0xffaa00,
}

// ColorFor returns the display color for a texture key.
func ColorFor(textureKey string) uint32 {
	k := strings.ToLower(strings.ReplaceAll(textureKey, "-", ""))
	if c, ok := palette[k]; ok {
		return c
	}
	return 0xaaaaaa
}
