package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/arena"
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
)

// stubPlanes serves a fixed plane, or nil to simulate a missing arena.
type stubPlanes struct {
	plane *arena.Plane
}

func (s *stubPlanes) ArenaPlane() *arena.Plane { return s.plane }

// queueDestroyer collects destroy requests and applies them on flush.
type queueDestroyer struct {
	world   *ecs.World
	pending []ecs.Entity
}

func (d *queueDestroyer) DestroyObject(e ecs.Entity) {
	d.pending = append(d.pending, e)
}

func (d *queueDestroyer) flush() {
	for _, e := range d.pending {
		if d.world.Alive(e) {
			d.world.RemoveEntity(e)
		}
	}
	d.pending = d.pending[:0]
}

type gameOverSpy struct {
	reasons []EndReason
}

func (g *gameOverSpy) TriggerGameOver(r EndReason) {
	g.reasons = append(g.reasons, r)
}

// countingRecorder tallies events.
type countingRecorder struct {
	NopRecorder
	eaten, spawned, scans, turns, sprints, sightings, captures int
}

func (c *countingRecorder) FoodEaten(ecs.Entity, float64)        { c.eaten++ }
func (c *countingRecorder) FoodSpawned(ecs.Entity, r3.Vec)       { c.spawned++ }
func (c *countingRecorder) ScanStarted(ecs.Entity)               { c.scans++ }
func (c *countingRecorder) HeadingChanged(ecs.Entity)            { c.turns++ }
func (c *countingRecorder) Sprinted(ecs.Entity)                  { c.sprints++ }
func (c *countingRecorder) TargetSighted(ecs.Entity, ecs.Entity) { c.sightings++ }
func (c *countingRecorder) Captured(ecs.Entity, ecs.Entity)      { c.captures++ }

// testWorld bundles a world with the collaborators the agent systems need.
type testWorld struct {
	t         *testing.T
	cfg       *config.Config
	world     *ecs.World
	rng       *rand.Rand
	planes    *stubPlanes
	destroyer *queueDestroyer
	mover     *BodyMover
	index     *FoodIndex

	agents *ecs.Map6[components.Transform, components.Motion, components.Forager,
		components.Capabilities, components.Collider, components.Tagged]
	hunters *ecs.Map6[components.Transform, components.Motion, components.Hunter,
		components.Capabilities, components.Collider, components.Tagged]
	food *ecs.Map4[components.Transform, components.Food, components.Collider, components.Tagged]

	transforms *ecs.Map1[components.Transform]
	motions    *ecs.Map1[components.Motion]
	foragers   *ecs.Map1[components.Forager]
	hunterMap  *ecs.Map1[components.Hunter]
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	w := ecs.NewWorld()
	plane := &arena.Plane{Scale: r3.Vec{X: 2, Y: 1, Z: 2}} // 20x20 centred on origin
	return &testWorld{
		t:         t,
		cfg:       config.Default(),
		world:     w,
		rng:       rand.New(rand.NewSource(7)),
		planes:    &stubPlanes{plane: plane},
		destroyer: &queueDestroyer{world: w},
		mover:     NewBodyMover(w),
		index:     NewFoodIndex(w, 5),
		agents: ecs.NewMap6[components.Transform, components.Motion, components.Forager,
			components.Capabilities, components.Collider, components.Tagged](w),
		hunters: ecs.NewMap6[components.Transform, components.Motion, components.Hunter,
			components.Capabilities, components.Collider, components.Tagged](w),
		food:       ecs.NewMap4[components.Transform, components.Food, components.Collider, components.Tagged](w),
		transforms: ecs.NewMap1[components.Transform](w),
		motions:    ecs.NewMap1[components.Motion](w),
		foragers:   ecs.NewMap1[components.Forager](w),
		hunterMap:  ecs.NewMap1[components.Hunter](w),
	}
}

func (tw *testWorld) bounds() arena.Bounds {
	return arena.FromPlane(*tw.planes.plane)
}

func (tw *testWorld) addPrey(pos, dir r3.Vec) ecs.Entity {
	caps := components.PreyCapabilities(&tw.cfg.Prey)
	tr := components.Transform{Position: pos, Rotation: LookRotation(dir), Scale: r3.Vec{X: 1, Y: 1, Z: 1}}
	mo := components.Motion{Direction: dir, Mode: components.SpeedNormal, Speed: caps.NormalSpeed}
	fo := components.Forager{Hunger: tw.cfg.Prey.Hunger, Bounds: tw.bounds()}
	col := components.Collider{Radius: tw.cfg.Prey.Radius}
	tag := components.Tagged{Tag: components.TagPlayer}
	return tw.agents.NewEntity(&tr, &mo, &fo, &caps, &col, &tag)
}

func (tw *testWorld) addEnemy(pos, dir r3.Vec, target ecs.Entity) ecs.Entity {
	caps := components.EnemyCapabilities(&tw.cfg.Enemy)
	tr := components.Transform{Position: pos, Rotation: LookRotation(dir), Scale: r3.Vec{X: 1, Y: 1, Z: 1}}
	mo := components.Motion{Direction: dir, Speed: caps.Patrol()}
	h := components.Hunter{Target: target, Bounds: tw.bounds()}
	col := components.Collider{Radius: tw.cfg.Enemy.Radius}
	tag := components.Tagged{Tag: components.TagEnemy}
	return tw.hunters.NewEntity(&tr, &mo, &h, &caps, &col, &tag)
}

func (tw *testWorld) addFood(pos r3.Vec) ecs.Entity {
	tr := components.Transform{Position: pos, Rotation: Identity, Scale: r3.Vec{X: 1, Y: 1, Z: 1}}
	f := components.Food{}
	col := components.Collider{Radius: tw.cfg.Spawner.FoodRadius}
	tag := components.Tagged{Tag: components.TagFood}
	return tw.food.NewEntity(&tr, &f, &col, &tag)
}

// SpawnFood implements FoodFactory.
func (tw *testWorld) SpawnFood(pos r3.Vec) ecs.Entity {
	return tw.addFood(pos)
}

func (tw *testWorld) preySystem() *PreySystem {
	return NewPreySystem(tw.world, &tw.cfg.Prey, tw.rng, tw.index, tw.planes, tw.mover, tw.destroyer)
}

func (tw *testWorld) enemySystem(gameOver GameOverTrigger) *EnemySystem {
	return NewEnemySystem(tw.world, &tw.cfg.Enemy, tw.rng, tw.planes, tw.mover, tw.destroyer, gameOver)
}
