package components

import "github.com/pthm-cable/forage/config"

// Capabilities holds the perception and locomotion knobs of an agent.
type Capabilities struct {
	DetectionRange float64
	FOV            float64 // full cone angle in degrees

	PatrolSpeed float64 // used while the agent has nothing to pursue, 0 means NormalSpeed
	NormalSpeed float64
	SprintSpeed float64

	DirectionChangeInterval float64
}

// PreyCapabilities returns capabilities for the foraging agent.
func PreyCapabilities(cfg *config.PreyConfig) Capabilities {
	return Capabilities{
		DetectionRange:          cfg.DetectionRange,
		FOV:                     cfg.FOV,
		NormalSpeed:             cfg.NormalSpeed,
		SprintSpeed:             cfg.SprintSpeed,
		DirectionChangeInterval: cfg.DirectionChangeInterval,
	}
}

// EnemyCapabilities returns capabilities for the hunting agent.
func EnemyCapabilities(cfg *config.EnemyConfig) Capabilities {
	return Capabilities{
		DetectionRange:          cfg.DetectionRange,
		FOV:                     cfg.FOV,
		PatrolSpeed:             cfg.PatrolSpeed,
		NormalSpeed:             cfg.NormalSpeed,
		SprintSpeed:             cfg.SprintSpeed,
		DirectionChangeInterval: cfg.DirectionChangeInterval,
	}
}

// SpeedFor returns the speed for the given mode.
func (c Capabilities) SpeedFor(mode SpeedMode) float64 {
	if mode == SpeedSprint {
		return c.SprintSpeed
	}
	return c.NormalSpeed
}

// Patrol returns the speed used while wandering.
func (c Capabilities) Patrol() float64 {
	if c.PatrolSpeed > 0 {
		return c.PatrolSpeed
	}
	return c.NormalSpeed
}
