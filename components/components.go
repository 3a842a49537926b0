// Package components defines ECS components for the simulation.
package components

// Tag classifies entities for world queries and contact dispatch.
type Tag uint8

const (
	TagNone Tag = iota
	TagPlayer
	TagEnemy
	TagFood
	TagArena
)

// Tagged attaches a tag to an entity.
type Tagged struct {
	Tag Tag
}

// Food marks a consumable food item.
type Food struct {
	SpawnTick int32 // fixed tick the item was created on
}

// Arena marks the reference plane entity the play area derives from.
type Arena struct{}

// Collider is a sphere trigger used for overlap detection.
type Collider struct {
	Radius float64
}
