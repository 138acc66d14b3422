package prefabs

import (
	"fmt"

	"github.com/milk9111/tilephysics/physics"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the engine configuration prefab.
const ConfigFile = "physics.yaml"

// PhysicsConfig is the tunable part of the simulation. Fields missing from
// the YAML keep their defaults.
type PhysicsConfig struct {
	Gravity            Vec2    `yaml:"gravity"`
	MaxSpeed           float64 `yaml:"max_speed"`
	TicksPerSecond     int     `yaml:"ticks_per_second"`
	ClampToLevel       bool    `yaml:"clamp_to_level"`
	HazardDamage       int     `yaml:"hazard_damage"`
	InvulnerableFrames int     `yaml:"invulnerable_frames"`
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:            Vec2{X: physics.DefaultGravity.X, Y: physics.DefaultGravity.Y},
		MaxSpeed:           physics.DefaultMaxSpeed,
		TicksPerSecond:     60,
		ClampToLevel:       true,
		HazardDamage:       1,
		InvulnerableFrames: 60,
	}
}

func ParsePhysicsConfig(data []byte) (PhysicsConfig, error) {
	cfg := DefaultPhysicsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultPhysicsConfig(), err
	}
	if cfg.TicksPerSecond <= 0 {
		return DefaultPhysicsConfig(), fmt.Errorf("ticks_per_second must be positive, got %d", cfg.TicksPerSecond)
	}
	return cfg, nil
}

// LoadPhysicsConfig reads name (ConfigFile when empty). On error the
// defaults are returned alongside it.
func LoadPhysicsConfig(name string) (PhysicsConfig, error) {
	if name == "" {
		name = ConfigFile
	}
	data, err := Load(name)
	if err != nil {
		return DefaultPhysicsConfig(), fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	cfg, err := ParsePhysicsConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("prefabs: parse %s: %w", name, err)
	}
	return cfg, nil
}

// Step is the fixed simulation step in seconds.
func (c PhysicsConfig) Step() float64 {
	return 1 / float64(c.TicksPerSecond)
}

// EngineConfig converts to the engine's settings. World bounds come from
// the loaded level, not from here.
func (c PhysicsConfig) EngineConfig() physics.Config {
	return physics.Config{Gravity: c.Gravity.Vector(), MaxSpeed: c.MaxSpeed}
}
