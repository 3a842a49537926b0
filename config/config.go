// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Sim       SimConfig       `yaml:"sim"`
	Arena     ArenaConfig     `yaml:"arena"`
	Prey      PreyConfig      `yaml:"prey"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Spawner   SpawnerConfig   `yaml:"spawner"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Vec3 is a YAML-friendly 3D vector.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// R3 converts to a gonum vector.
func (v Vec3) R3() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// SimConfig holds the two simulation clocks.
type SimConfig struct {
	FixedDT       float64 `yaml:"fixed_dt"`        // Seconds per fixed (physics) tick
	FrameDT       float64 `yaml:"frame_dt"`        // Default seconds per frame for the headless loop
	MaxFixedSteps int     `yaml:"max_fixed_steps"` // Cap on fixed ticks run by a single frame
}

// ArenaConfig describes the reference plane the arena bounds derive from.
// A plane of scale 1 spans 10x10 world units.
type ArenaConfig struct {
	Position Vec3 `yaml:"position"`
	Scale    Vec3 `yaml:"scale"`
}

// PreyConfig holds the foraging agent's tunables.
type PreyConfig struct {
	Spawn  Vec3    `yaml:"spawn"`
	Radius float64 `yaml:"radius"` // Trigger collider radius
	Hunger float64 `yaml:"hunger"` // Starting hunger, 0..100

	HungerDecayRate        float64 `yaml:"hunger_decay_rate"`        // Hunger lost per second while walking
	HungerGain             float64 `yaml:"hunger_gain"`              // Hunger restored per food item
	SprintHungerMultiplier float64 `yaml:"sprint_hunger_multiplier"` // Decay multiplier while sprinting

	DetectionRange float64 `yaml:"detection_range"`
	FOV            float64 `yaml:"fov"` // Full cone angle in degrees

	NormalSpeed             float64 `yaml:"normal_speed"`
	SprintSpeed             float64 `yaml:"sprint_speed"`
	DirectionChangeInterval float64 `yaml:"direction_change_interval"`

	SprintAffordMargin float64 `yaml:"sprint_afford_margin"` // Hunger that must remain after a sprint
	SprintWorthMargin  float64 `yaml:"sprint_worth_margin"`  // Minimum hunger saved by sprinting

	ScanInterval     float64 `yaml:"scan_interval"`
	RotationDuration float64 `yaml:"rotation_duration"`
	ScanMinAngle     float64 `yaml:"scan_min_angle"` // Degrees
	ScanMaxAngle     float64 `yaml:"scan_max_angle"` // Degrees
}

// EnemyConfig holds the hunting agent's tunables.
type EnemyConfig struct {
	Spawn  Vec3    `yaml:"spawn"`
	Radius float64 `yaml:"radius"`

	PatrolSpeed             float64 `yaml:"patrol_speed"`
	DirectionChangeInterval float64 `yaml:"direction_change_interval"`

	DetectionRange float64 `yaml:"detection_range"`
	FOV            float64 `yaml:"fov"` // Full cone angle in degrees

	NormalSpeed    float64 `yaml:"normal_speed"`
	SprintSpeed    float64 `yaml:"sprint_speed"`
	SprintDuration float64 `yaml:"sprint_duration"`
	SprintCooldown float64 `yaml:"sprint_cooldown"`
}

// SpawnerConfig holds food spawning parameters.
type SpawnerConfig struct {
	SpawnInterval float64 `yaml:"spawn_interval"`
	MaxFood       int     `yaml:"max_food"`
	SpawnHeight   float64 `yaml:"spawn_height"`
	InitialFood   int     `yaml:"initial_food"` // Food placed when a session starts
	FoodRadius    float64 `yaml:"food_radius"`
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of sim time per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks averaged per clock by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FixedTicksPerSecond float64 // 1 / Sim.FixedDT
	ArenaHalfWidth      float64 // Arena.Scale.X * 10 / 2
	ArenaHalfLength     float64 // Arena.Scale.Z * 10 / 2
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
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

	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Sim.FixedDT > 0 {
		c.Derived.FixedTicksPerSecond = 1 / c.Sim.FixedDT
	}
	c.Derived.ArenaHalfWidth = c.Arena.Scale.X * 10 / 2
	c.Derived.ArenaHalfLength = c.Arena.Scale.Z * 10 / 2
}

// Refresh recomputes derived values after fields were edited in place.
func (c *Config) Refresh() {
	c.computeDerived()
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
