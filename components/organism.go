package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/arena"
)

// Scan is an in-progress look-around rotation.
// While Active the agent does not move or make decisions.
type Scan struct {
	Active   bool
	Start    r3.Rotation
	End      r3.Rotation
	Elapsed  float64 // seconds
	Duration float64 // seconds
}

// Forager is the prey agent state.
type Forager struct {
	Hunger    float64 // 0..100
	Target    ecs.Entity
	HasTarget bool

	DirTimer  float64 // seconds since the last heading change
	ScanTimer float64 // seconds without a visible target
	Scan      Scan

	Bounds arena.Bounds // last refreshed play area
}

// SprintCycle alternates between sprinting and cooling down.
type SprintCycle struct {
	Sprinting     bool
	SprintTimer   float64 // seconds of sprint left
	CooldownTimer float64 // seconds of cooldown left
}

// Hunter is the enemy agent state.
type Hunter struct {
	Target    ecs.Entity // tracked prey, bound at spawn
	HasTarget bool       // latched once the target is seen, never cleared

	Sprint   SprintCycle
	DirTimer float64

	Bounds arena.Bounds
}
