// Package main tunes prey parameters with CMA-ES so the forager survives as
// long as possible against the enemy.
package main

import (
	"github.com/pthm-cable/forage/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Perception
			{
				Name: "detection_range", Path: "prey.detection_range", Min: 5, Max: 40,
				get:  func(c *config.Config) float64 { return c.Prey.DetectionRange },
				set:  func(c *config.Config, v float64) { c.Prey.DetectionRange = v },
			},
			{
				Name: "fov", Path: "prey.fov", Min: 20, Max: 180,
				get:  func(c *config.Config) float64 { return c.Prey.FOV },
				set:  func(c *config.Config, v float64) { c.Prey.FOV = v },
			},
			// Scanning
			{
				Name: "scan_interval", Path: "prey.scan_interval", Min: 1, Max: 15,
				get:  func(c *config.Config) float64 { return c.Prey.ScanInterval },
				set:  func(c *config.Config, v float64) { c.Prey.ScanInterval = v },
			},
			{
				Name: "rotation_duration", Path: "prey.rotation_duration", Min: 0.1, Max: 2,
				get:  func(c *config.Config) float64 { return c.Prey.RotationDuration },
				set:  func(c *config.Config, v float64) { c.Prey.RotationDuration = v },
			},
			// Movement
			{
				Name: "direction_change_interval", Path: "prey.direction_change_interval", Min: 0.5, Max: 8,
				get:  func(c *config.Config) float64 { return c.Prey.DirectionChangeInterval },
				set:  func(c *config.Config, v float64) { c.Prey.DirectionChangeInterval = v },
			},
			{
				Name: "sprint_speed", Path: "prey.sprint_speed", Min: 3, Max: 10,
				get:  func(c *config.Config) float64 { return c.Prey.SprintSpeed },
				set:  func(c *config.Config, v float64) { c.Prey.SprintSpeed = v },
			},
			{
				Name: "sprint_multiplier", Path: "prey.sprint_hunger_multiplier", Min: 1, Max: 4,
				get:  func(c *config.Config) float64 { return c.Prey.SprintHungerMultiplier },
				set:  func(c *config.Config, v float64) { c.Prey.SprintHungerMultiplier = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg and refreshes its
// derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
	cfg.Refresh()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}
