package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/arena"
)

// EndReason says why a session ended.
type EndReason uint8

const (
	ReasonNone EndReason = iota
	ReasonStarved
	ReasonCaptured
)

// String returns the display name for an EndReason.
func (r EndReason) String() string {
	switch r {
	case ReasonStarved:
		return "starved"
	case ReasonCaptured:
		return "captured"
	}
	return "none"
}

// PlaneSource looks up the live arena reference plane. Returns nil when the
// arena entity is gone.
type PlaneSource interface {
	ArenaPlane() *arena.Plane
}

// Destroyer removes entities from the world once no query is open.
type Destroyer interface {
	DestroyObject(e ecs.Entity)
}

// GameOverTrigger ends the session.
type GameOverTrigger interface {
	TriggerGameOver(reason EndReason)
}

// SpawnGate decides whether the spawner may create food right now.
type SpawnGate interface {
	CanSpawnFood() bool
}

// FoodFactory creates a food entity.
type FoodFactory interface {
	SpawnFood(pos r3.Vec) ecs.Entity
}

// Recorder receives gameplay events for telemetry.
type Recorder interface {
	FoodEaten(prey ecs.Entity, hunger float64)
	FoodSpawned(food ecs.Entity, pos r3.Vec)
	ScanStarted(prey ecs.Entity)
	HeadingChanged(e ecs.Entity)
	Sprinted(e ecs.Entity)
	TargetSighted(hunter, target ecs.Entity)
	Captured(hunter, target ecs.Entity)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) FoodEaten(ecs.Entity, float64)        {}
func (NopRecorder) FoodSpawned(ecs.Entity, r3.Vec)       {}
func (NopRecorder) ScanStarted(ecs.Entity)               {}
func (NopRecorder) HeadingChanged(ecs.Entity)            {}
func (NopRecorder) Sprinted(ecs.Entity)                  {}
func (NopRecorder) TargetSighted(ecs.Entity, ecs.Entity) {}
func (NopRecorder) Captured(ecs.Entity, ecs.Entity)      {}
