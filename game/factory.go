package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/systems"
)

var unitScale = r3.Vec{X: 1, Y: 1, Z: 1}

// spawnWorld creates the arena, the two agents and the initial food.
func (g *Game) spawnWorld() {
	g.spawnArena()
	g.spawnPrey()
	g.spawnEnemy()

	for i := 0; i < g.cfg.Spawner.InitialFood; i++ {
		if !g.spawner.TrySpawn() {
			break
		}
	}
}

// spawnArena creates the reference plane entity.
func (g *Game) spawnArena() ecs.Entity {
	tr := components.Transform{
		Position: g.cfg.Arena.Position.R3(),
		Rotation: systems.Identity,
		Scale:    g.cfg.Arena.Scale.R3(),
	}
	marker := components.Arena{}
	tag := components.Tagged{Tag: components.TagArena}
	return g.arenaMap.NewEntity(&tr, &marker, &tag)
}

// spawnPrey creates the foraging agent with a random starting heading.
func (g *Game) spawnPrey() ecs.Entity {
	pc := &g.cfg.Prey
	dir := systems.RandomHeading(g.rng)
	caps := components.PreyCapabilities(pc)

	tr := components.Transform{Position: pc.Spawn.R3(), Rotation: systems.LookRotation(dir), Scale: unitScale}
	mo := components.Motion{Direction: dir, Mode: components.SpeedNormal, Speed: caps.NormalSpeed}
	fo := components.Forager{Hunger: systems.ClampHunger(pc.Hunger)}
	if plane := g.ArenaPlane(); plane != nil {
		fo.Bounds = g.indexBounds.Update(plane)
	}
	col := components.Collider{Radius: pc.Radius}
	tag := components.Tagged{Tag: components.TagPlayer}

	return g.preyMap.NewEntity(&tr, &mo, &fo, &caps, &col, &tag)
}

// spawnEnemy creates the hunting agent and binds it to the prey found by tag.
func (g *Game) spawnEnemy() ecs.Entity {
	ec := &g.cfg.Enemy
	dir := systems.RandomHeading(g.rng)
	caps := components.EnemyCapabilities(ec)

	var target ecs.Entity
	if players := g.QueryByTag(components.TagPlayer); len(players) > 0 {
		target = players[0]
	} else {
		g.logger.Warn("no player found, enemy spawned without a target")
	}

	tr := components.Transform{Position: ec.Spawn.R3(), Rotation: systems.LookRotation(dir), Scale: unitScale}
	mo := components.Motion{Direction: dir, Mode: components.SpeedNormal, Speed: caps.Patrol()}
	h := components.Hunter{Target: target}
	if plane := g.ArenaPlane(); plane != nil {
		h.Bounds = g.indexBounds.Update(plane)
	}
	col := components.Collider{Radius: ec.Radius}
	tag := components.Tagged{Tag: components.TagEnemy}

	return g.enemyMap.NewEntity(&tr, &mo, &h, &caps, &col, &tag)
}

// SpawnFood creates a food item at pos. It implements systems.FoodFactory.
func (g *Game) SpawnFood(pos r3.Vec) ecs.Entity {
	tr := components.Transform{Position: pos, Rotation: systems.Identity, Scale: unitScale}
	f := components.Food{SpawnTick: g.tick}
	col := components.Collider{Radius: g.cfg.Spawner.FoodRadius}
	tag := components.Tagged{Tag: components.TagFood}
	return g.foodMap.NewEntity(&tr, &f, &col, &tag)
}
