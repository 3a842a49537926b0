package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/arena"
	"github.com/pthm-cable/forage/components"
)

// QueryByTag returns every live entity carrying tag.
func (g *Game) QueryByTag(tag components.Tag) []ecs.Entity {
	var out []ecs.Entity
	query := g.tagFilter.Query()
	for query.Next() {
		if query.Get().Tag == tag {
			out = append(out, query.Entity())
		}
	}
	return out
}

// firstByTag returns the first live entity carrying tag.
func (g *Game) firstByTag(tag components.Tag) (ecs.Entity, bool) {
	query := g.tagFilter.Query()
	for query.Next() {
		if query.Get().Tag == tag {
			e := query.Entity()
			query.Close()
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// Prey returns the prey entity, if it is still in the world.
func (g *Game) Prey() (ecs.Entity, bool) { return g.firstByTag(components.TagPlayer) }

// Enemy returns the enemy entity, if it is still in the world.
func (g *Game) Enemy() (ecs.Entity, bool) { return g.firstByTag(components.TagEnemy) }

// ArenaPlane returns the reference plane of the live arena entity, or nil
// when the arena has been removed.
func (g *Game) ArenaPlane() *arena.Plane {
	query := g.arenaFilter.Query()
	if !query.Next() {
		return nil
	}
	tr, _ := query.Get()
	p := arena.Plane{Position: tr.Position, Scale: tr.Scale}
	query.Close()
	return &p
}

// DestroyObject schedules e for removal at the end of the current fixed tick.
// Removing an entity twice is harmless.
func (g *Game) DestroyObject(e ecs.Entity) {
	g.pending = append(g.pending, e)
}

// flushDestroyed removes entities queued by DestroyObject. Must not be called
// while a query is open.
func (g *Game) flushDestroyed() {
	for _, e := range g.pending {
		if g.world.Alive(e) {
			g.world.RemoveEntity(e)
		}
	}
	g.pending = g.pending[:0]
}

// Transform returns the transform of e, or nil if e is gone.
func (g *Game) Transform(e ecs.Entity) *components.Transform {
	if !g.world.Alive(e) || !g.transforms.HasAll(e) {
		return nil
	}
	return g.transforms.Get(e)
}
