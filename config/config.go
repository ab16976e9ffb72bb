// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Collision   CollisionConfig   `yaml:"collision"`
	Merge       MergeConfig       `yaml:"merge"`
	Deformation DeformationConfig `yaml:"deformation"`
	Lumpy       LumpyConfig       `yaml:"lumpy"`
	Effects     EffectsConfig     `yaml:"effects"`
	Trail       TrailConfig       `yaml:"trail"`
	Sparks      SparksConfig      `yaml:"sparks"`
	Debris      DebrisConfig      `yaml:"debris"`
	Flash       FlashConfig       `yaml:"flash"`
	Ring        RingConfig        `yaml:"ring"`
	Camera      CameraConfig      `yaml:"camera"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds rigid-body integration parameters.
type PhysicsConfig struct {
	GravityConstant float64 `yaml:"gravity_constant"` // Stylized G, not SI
	MinDistanceSq   float64 `yaml:"min_distance_sq"`  // Pairs closer than this get no force
	FixedStep       float64 `yaml:"fixed_step"`       // Integrator substep in seconds
	MaxSubSteps     int     `yaml:"max_substeps"`     // Cap on substeps per Step call
	LinearDamping   float64 `yaml:"linear_damping"`   // Fraction of velocity lost per second
}

// CollisionConfig holds collision threshold parameters.
type CollisionConfig struct {
	GenericFudge  float64 `yaml:"generic_fudge"`  // Threshold multiplier on summed radii
	ImpactFudge   float64 `yaml:"impact_fudge"`   // Multiplier for primary/impactor pairs
	SurfaceOffset float64 `yaml:"surface_offset"` // Impact point as a fraction of primary radius
}

// MergeConfig holds merge resolution parameters.
type MergeConfig struct {
	DelayTicks              int     `yaml:"delay_ticks"` // Ticks between merge and appearance of the result
	MoltenName              string  `yaml:"molten_name"`
	MoltenTexture           string  `yaml:"molten_texture"`
	MergedPrefix            string  `yaml:"merged_prefix"`
	MoltenColor             uint32  `yaml:"molten_color"`
	MoltenEmissive          uint32  `yaml:"molten_emissive"`
	MoltenEmissiveIntensity float64 `yaml:"molten_emissive_intensity"`
	ExplosionColor          uint32  `yaml:"explosion_color"`
}

// DeformationConfig holds near-collision deformation parameters.
type DeformationConfig struct {
	NearFactor    float64 `yaml:"near_factor"`    // Pairs beyond NearFactor*sumR are ignored
	ContactFactor float64 `yaml:"contact_factor"` // Full deformation at ContactFactor*sumR
	EaseRate      float64 `yaml:"ease_rate"`      // Per-tick ease toward target
}

// LumpyConfig holds procedural surface perturbation parameters.
type LumpyConfig struct {
	Amplitude  float64 `yaml:"amplitude"`
	Frequency  float64 `yaml:"frequency"`
	Jitter     float64 `yaml:"jitter"`
	Resolution int     `yaml:"resolution"` // Height samples per axis
}

// EffectsConfig holds parameters shared by all effects.
type EffectsConfig struct {
	FixedStep float64 `yaml:"fixed_step"` // Particle sub-step, independent of frame delta
}

// TrailConfig holds flame trail emitter parameters.
type TrailConfig struct {
	Capacity            int     `yaml:"capacity"`
	Range               float64 `yaml:"range"` // Distance at which strength reaches zero
	BaseOpacity         float64 `yaml:"base_opacity"`
	MinSpawn            float64 `yaml:"min_spawn"`
	MaxExtraSpawn       float64 `yaml:"max_extra_spawn"`
	MinSpeed            float64 `yaml:"min_speed"`
	ExtraSpeed          float64 `yaml:"extra_speed"`
	VelocityJitter      float64 `yaml:"velocity_jitter"`
	PositionJitter      float64 `yaml:"position_jitter"`
	ExtraPositionJitter float64 `yaml:"extra_position_jitter"`
	Damping             float64 `yaml:"damping"`
	DampingStrength     float64 `yaml:"damping_strength"` // Damping = Damping - DampingStrength*s
	FadeFactor          float64 `yaml:"fade_factor"`
	FinishEpsilon       float64 `yaml:"finish_epsilon"`
	PointSize           float64 `yaml:"point_size"`
}

// SparksConfig holds heat spark emitter parameters.
type SparksConfig struct {
	Capacity       int     `yaml:"capacity"`
	Range          float64 `yaml:"range"`
	MinSpawn       float64 `yaml:"min_spawn"`
	MaxExtraSpawn  float64 `yaml:"max_extra_spawn"`
	SpeedRef       float64 `yaml:"speed_ref"` // Speed at which emission is unscaled
	MinSpeedFactor float64 `yaml:"min_speed_factor"`
	MaxSpeedFactor float64 `yaml:"max_speed_factor"`
	RingMin        float64 `yaml:"ring_min"`   // Ring radius as a fraction of body radius
	RingExtra      float64 `yaml:"ring_extra"` // Random extra ring radius fraction
	RingHeight     float64 `yaml:"ring_height"`
	MinLife        float64 `yaml:"min_life"`
	ExtraLife      float64 `yaml:"extra_life"`
	Damping        float64 `yaml:"damping"`
	Sag            float64 `yaml:"sag"`         // Downward pull scaled by heat
	HaloOffset     float64 `yaml:"halo_offset"` // Halo distance ahead of the body in radii
	HaloSpeedRef   float64 `yaml:"halo_speed_ref"`
	HaloMaxOpacity float64 `yaml:"halo_max_opacity"`
	FadeFactor     float64 `yaml:"fade_factor"`
	FinishEpsilon  float64 `yaml:"finish_epsilon"`
	PointSize      float64 `yaml:"point_size"`
}

// DebrisConfig holds impact debris burst parameters.
type DebrisConfig struct {
	Count             int     `yaml:"count"`
	Spread            float64 `yaml:"spread"` // Tangent-plane spawn radius in primary radii
	Lift              float64 `yaml:"lift"`   // Normal offset in primary radii
	NormalSpeed       float64 `yaml:"normal_speed"`
	ExtraNormalSpeed  float64 `yaml:"extra_normal_speed"`
	TangentSpeed      float64 `yaml:"tangent_speed"`
	ExtraTangentSpeed float64 `yaml:"extra_tangent_speed"`
	Damping           float64 `yaml:"damping"`
	Drift             float64 `yaml:"drift"`
	Fade              float64 `yaml:"fade"`
	Growth            float64 `yaml:"growth"`
	FinishEpsilon     float64 `yaml:"finish_epsilon"`
	PointSize         float64 `yaml:"point_size"`
}

// FlashConfig holds impact flash parameters.
type FlashConfig struct {
	Scale    float64 `yaml:"scale"`
	Growth   float64 `yaml:"growth"`
	FadeStep float64 `yaml:"fade_step"` // Subtracted from opacity each tick
}

// RingConfig holds shockwave ring parameters.
type RingConfig struct {
	InnerRadius   float64 `yaml:"inner_radius"`
	OuterRadius   float64 `yaml:"outer_radius"`
	Opacity       float64 `yaml:"opacity"`
	Growth        float64 `yaml:"growth"`
	Fade          float64 `yaml:"fade"`
	FinishEpsilon float64 `yaml:"finish_epsilon"`
}

// CameraConfig holds camera rig parameters.
type CameraConfig struct {
	DefaultPosition   [3]float64 `yaml:"default_position"`
	FollowLerp        float64    `yaml:"follow_lerp"`
	FollowMaxDistance float64    `yaml:"follow_max_distance"`
	FOV               float64    `yaml:"fov"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FixedStep32 float32 // Physics.FixedStep as float32
	ScreenW32   float32 // Screen.Width as float32
	ScreenH32   float32 // Screen.Height as float32
	TicksPerSec int     // 1 / Physics.FixedStep, rounded
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values that would stall or destabilize the tick loop.
func (c *Config) validate() error {
	if c.Physics.FixedStep <= 0 {
		return fmt.Errorf("physics.fixed_step must be positive, got %v", c.Physics.FixedStep)
	}
	if c.Effects.FixedStep <= 0 {
		return fmt.Errorf("effects.fixed_step must be positive, got %v", c.Effects.FixedStep)
	}
	if c.Trail.Capacity <= 0 || c.Sparks.Capacity <= 0 {
		return fmt.Errorf("emitter capacities must be positive (trail=%d sparks=%d)", c.Trail.Capacity, c.Sparks.Capacity)
	}
	if c.Trail.FadeFactor <= 0 || c.Trail.FadeFactor >= 1 {
		return fmt.Errorf("trail.fade_factor must be in (0,1), got %v", c.Trail.FadeFactor)
	}
	if c.Sparks.FadeFactor <= 0 || c.Sparks.FadeFactor >= 1 {
		return fmt.Errorf("sparks.fade_factor must be in (0,1), got %v", c.Sparks.FadeFactor)
	}
	if c.Debris.Fade <= 0 || c.Debris.Fade >= 1 {
		return fmt.Errorf("debris.fade must be in (0,1), got %v", c.Debris.Fade)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FixedStep32 = float32(c.Physics.FixedStep)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.TicksPerSec = int(1/c.Physics.FixedStep + 0.5)

	if c.Physics.MaxSubSteps < 1 {
		c.Physics.MaxSubSteps = 1
	}
	if c.Merge.DelayTicks < 0 {
		c.Merge.DelayTicks = 0
	}
	if c.Debris.Count < 0 {
		c.Debris.Count = 0
	}
	if c.Lumpy.Resolution < 4 {
		c.Lumpy.Resolution = 4
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
