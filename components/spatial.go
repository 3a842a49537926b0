package components

import "gonum.org/v1/gonum/spatial/r3"

// Transform is an entity's world pose.
type Transform struct {
	Position r3.Vec
	Rotation r3.Rotation
	Scale    r3.Vec
}

// SpeedMode selects which configured speed an agent moves at.
type SpeedMode uint8

const (
	SpeedNormal SpeedMode = iota
	SpeedSprint
)

// Motion holds an agent's horizontal heading and current speed.
type Motion struct {
	Direction r3.Vec // unit vector, y = 0
	Mode      SpeedMode
	Speed     float64 // world units per second
}
