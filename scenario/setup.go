// Package scenario defines the scene data contract, detects which
// simulation mode a scene runs in, and builds the initial bodies.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoObjects is reported when a data-driven scene has no usable objects.
	ErrNoObjects = errors.New("scenario has no objects")
	// ErrUnknownScenario is reported when no builder matches the scenario type.
	ErrUnknownScenario = errors.New("unknown scenario type")
	// ErrInvalidObject is reported for an object with unusable mass or size.
	ErrInvalidObject = errors.New("invalid object")
)

// DefaultMass is used for objects that omit a mass.
const DefaultMass = 1.0

// Vec3 is a position or velocity as written in scene files.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec converts to a gonum vector.
func (v Vec3) Vec() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// FromVec converts a gonum vector.
func FromVec(v r3.Vec) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// ObjectSpec is one body as declared in a scene file.
// Size is the body radius.
type ObjectSpec struct {
	Name       string  `yaml:"name"`
	TextureKey string  `yaml:"textureKey"`
	Size       float64 `yaml:"size"`
	Mass       float64 `yaml:"mass,omitempty"`
	Position   Vec3    `yaml:"position"`
	Velocity   Vec3    `yaml:"velocity"`
}

// Setup is a scene description. Type is accepted as an alias for
// ScenarioType. A sequence carries its scenes in Steps.
type Setup struct {
	ScenarioType   string       `yaml:"scenarioType,omitempty"`
	Type           string       `yaml:"type,omitempty"`
	Objects        []ObjectSpec `yaml:"objects,omitempty"`
	CameraPosition *Vec3        `yaml:"cameraPosition,omitempty"`
	CameraLookAt   *Vec3        `yaml:"cameraLookAt,omitempty"`
	Steps          []Setup      `yaml:"steps,omitempty"`
}

// Parse decodes a scene from YAML or JSON.
func Parse(data []byte) (*Setup, error) {
	var s Setup
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}

// Load reads and decodes a scene file.
func Load(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteYAML writes the scene to path.
func (s *Setup) WriteYAML(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}

// Validate checks that the object can become a body.
func (o ObjectSpec) Validate() error {
	if !(o.Size > 0) || math.IsInf(o.Size, 0) {
		return fmt.Errorf("%w %q: size %v", ErrInvalidObject, o.Name, o.Size)
	}
	if o.Mass < 0 || math.IsNaN(o.Mass) || math.IsInf(o.Mass, 0) {
		return fmt.Errorf("%w %q: mass %v", ErrInvalidObject, o.Name, o.Mass)
	}
	for _, v := range []Vec3{o.Position, o.Velocity} {
		if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
			return fmt.Errorf("%w %q: non-finite vector", ErrInvalidObject, o.Name)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
