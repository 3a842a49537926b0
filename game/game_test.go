package game

import (
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTestGame builds a game with no spawning and a far-away, blind enemy,
// after applying mutate to the defaults.
func newTestGame(t *testing.T, mutate func(*config.Config), opts ...func(*Options)) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Spawner.SpawnInterval = 1e9
	cfg.Spawner.InitialFood = 0
	cfg.Prey.ScanInterval = 1000
	cfg.Enemy.DetectionRange = 0
	cfg.Enemy.Spawn = config.Vec3{X: 20, Y: 0.5, Z: 20}
	if mutate != nil {
		mutate(cfg)
	}
	cfg.Refresh()

	o := Options{Config: cfg, Seed: 11, Logger: quietLogger}
	for _, fn := range opts {
		fn(&o)
	}
	g, err := NewGame(o)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

type probes struct {
	transforms *ecs.Map1[components.Transform]
	motions    *ecs.Map1[components.Motion]
	foragers   *ecs.Map1[components.Forager]
}

func probe(g *Game) probes {
	w := g.World()
	return probes{
		transforms: ecs.NewMap1[components.Transform](w),
		motions:    ecs.NewMap1[components.Motion](w),
		foragers:   ecs.NewMap1[components.Forager](w),
	}
}

func mustPrey(t *testing.T, g *Game) ecs.Entity {
	t.Helper()
	e, ok := g.Prey()
	require.True(t, ok, "prey missing")
	return e
}

// Scenario 1: no food in range for three direction-change intervals.
func TestScenarioWanderWithoutFood(t *testing.T) {
	g := newTestGame(t, nil)
	p := probe(g)
	prey := mustPrey(t, g)

	dt := g.Config().Sim.FixedDT
	// A few extra ticks absorb timer rounding on the last interval
	ticks := int(math.Round(g.Config().Prey.DirectionChangeInterval*3/dt)) + 5

	heading := p.motions.Get(prey).Direction
	hunger := p.foragers.Get(prey).Hunger
	changes := 0

	for i := 0; i < ticks; i++ {
		g.FixedTick(dt)

		mo := p.motions.Get(prey)
		fo := p.foragers.Get(prey)
		require.False(t, fo.HasTarget, "tick %d: target found with no food", i)
		require.Equal(t, components.SpeedNormal, mo.Mode, "tick %d: sprint without target", i)
		require.Less(t, fo.Hunger, hunger, "tick %d: hunger did not decrease", i)
		hunger = fo.Hunger

		if mo.Direction != heading {
			changes++
			heading = mo.Direction
		}
	}

	assert.GreaterOrEqual(t, changes, 3)
	assert.False(t, g.Session().Over())
}

// Scenario 2: food at distance 4 straight ahead with default tuning.
func TestScenarioWalkToNearbyFood(t *testing.T) {
	g := newTestGame(t, nil)
	p := probe(g)
	prey := mustPrey(t, g)

	p.motions.Get(prey).Direction = r3.Vec{Z: 1}
	pos := p.transforms.Get(prey).Position
	g.SpawnFood(r3.Vec{X: pos.X, Y: pos.Y, Z: pos.Z + 4})

	g.FixedTick(g.Config().Sim.FixedDT)

	fo := p.foragers.Get(prey)
	mo := p.motions.Get(prey)
	assert.True(t, fo.HasTarget, "food ahead was not perceived")
	assert.Equal(t, components.SpeedNormal, mo.Mode)
	assert.Equal(t, g.Config().Prey.NormalSpeed, mo.Speed)
}

// Scenario 3: hunger hits exactly zero.
func TestScenarioStarvation(t *testing.T) {
	var reasons []systems.EndReason
	g := newTestGame(t, nil, func(o *Options) {
		o.GameOverCallback = func(_ telemetry.SessionSummary, r systems.EndReason) {
			reasons = append(reasons, r)
		}
	})
	p := probe(g)
	prey := mustPrey(t, g)

	p.foragers.Get(prey).Hunger = 0
	g.FrameTick(g.Config().Sim.FrameDT)

	require.True(t, g.Session().Over())
	assert.Equal(t, systems.ReasonStarved, g.Session().Reason())
	assert.Zero(t, g.Session().TimeScale())

	// Further polls and triggers change nothing
	g.FrameTick(g.Config().Sim.FrameDT)
	g.Session().TriggerGameOver(systems.ReasonCaptured)
	assert.Equal(t, systems.ReasonStarved, g.Session().Reason())
	assert.Equal(t, []systems.EndReason{systems.ReasonStarved}, reasons)

	// Time is frozen
	tick := g.Tick()
	for i := 0; i < 100; i++ {
		g.Step(g.Config().Sim.FrameDT)
	}
	assert.Equal(t, tick, g.Tick())
}

// Scenario 4: the enemy never leaves the arena while patrolling.
func TestScenarioEnemyPatrolBounded(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) {
		c.Prey.HungerDecayRate = 0
		c.Prey.Spawn = config.Vec3{X: -20, Y: 0.5, Z: -20}
		c.Enemy.Spawn = config.Vec3{X: 24, Y: 0.5, Z: 24}
	})
	p := probe(g)
	enemy, ok := g.Enemy()
	require.True(t, ok)

	half := g.Config().Derived.ArenaHalfWidth
	for i := 0; i < 5000 && !g.Session().Over(); i++ {
		g.FixedTick(g.Config().Sim.FixedDT)
		pos := p.transforms.Get(enemy).Position
		require.LessOrEqual(t, math.Abs(pos.X), half, "tick %d: enemy left the arena at %v", i, pos)
		require.LessOrEqual(t, math.Abs(pos.Z), half, "tick %d: enemy left the arena at %v", i, pos)
	}
	assert.False(t, g.Chasing())
}

func TestPreyEatsFood(t *testing.T) {
	g := newTestGame(t, nil)
	p := probe(g)
	prey := mustPrey(t, g)

	p.foragers.Get(prey).Hunger = 50
	pos := p.transforms.Get(prey).Position
	g.SpawnFood(pos)
	require.Equal(t, 1, g.FoodCount())

	g.FixedTick(g.Config().Sim.FixedDT)

	assert.Equal(t, 0, g.FoodCount(), "food not consumed")
	hunger, ok := g.PreyHunger()
	require.True(t, ok)
	assert.Greater(t, hunger, 70.0)
	assert.Equal(t, 1, g.Summary().FoodEaten)
}

func TestEnemyCapturesPrey(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) {
		c.Enemy.Spawn = config.Vec3{X: 0.5, Y: 0.5, Z: 0}
	})

	g.FixedTick(g.Config().Sim.FixedDT)

	require.True(t, g.Session().Over())
	assert.Equal(t, systems.ReasonCaptured, g.Session().Reason())
	_, alive := g.Prey()
	assert.False(t, alive, "captured prey still in the world")
	assert.Empty(t, g.QueryByTag(components.TagPlayer))
}

func TestEnemyBoundToPlayer(t *testing.T) {
	g := newTestGame(t, nil)
	prey := mustPrey(t, g)
	enemy, ok := g.Enemy()
	require.True(t, ok)

	hunters := ecs.NewMap1[components.Hunter](g.World())
	assert.Equal(t, prey, hunters.Get(enemy).Target)
}

func TestSpawnerGatedByHunger(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) {
		c.Spawner.SpawnInterval = 1
		c.Prey.HungerDecayRate = 0
	})
	frameDt := g.Config().Sim.FrameDT

	for i := 0; i < 180; i++ {
		g.Step(frameDt)
	}
	assert.Equal(t, 0, g.FoodCount(), "spawned while the prey was full")

	p := probe(g)
	p.foragers.Get(mustPrey(t, g)).Hunger = 60
	g.Step(frameDt)
	assert.Equal(t, 1, g.FoodCount(), "spawn should follow as soon as the gate opens")
}

func TestMissingArenaKeepsRunning(t *testing.T) {
	g := newTestGame(t, nil)
	arenas := g.QueryByTag(components.TagArena)
	require.Len(t, arenas, 1)

	g.DestroyObject(arenas[0])
	g.FixedTick(g.Config().Sim.FixedDT)
	assert.Nil(t, g.ArenaPlane())

	for i := 0; i < 50; i++ {
		g.FixedTick(g.Config().Sim.FixedDT)
	}
	_, ok := g.Prey()
	assert.True(t, ok)
}

func TestRestartStartsFreshSession(t *testing.T) {
	g := newTestGame(t, nil)
	p := probe(g)
	p.foragers.Get(mustPrey(t, g)).Hunger = 0
	g.FrameTick(g.Config().Sim.FrameDT)
	require.True(t, g.Session().Over())
	old := g.Session()

	g.Restart()

	assert.NotEqual(t, old.ID(), g.Session().ID())
	assert.True(t, old.Over(), "old session lost its terminal state")
	assert.False(t, g.Session().Over())
	assert.Equal(t, 1.0, g.Session().TimeScale())
	assert.Zero(t, g.Tick())
	assert.Equal(t, 2, g.Sessions())

	hunger, ok := g.PreyHunger()
	require.True(t, ok)
	assert.Equal(t, g.Config().Prey.Hunger, hunger)
}

func TestRunWritesOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var windows int
	g := newTestGame(t, func(c *config.Config) {
		c.Prey.HungerDecayRate = 50
	}, func(o *Options) {
		o.OutputDir = dir
		o.StatsWindowSec = 0.5
		o.StatsCallback = func(telemetry.WindowStats) { windows++ }
	})

	summary := g.Run(100000)
	require.NoError(t, g.Close())

	assert.Equal(t, "starved", summary.Reason)
	assert.Greater(t, summary.Ticks, int32(0))
	assert.Positive(t, windows)

	for _, name := range []string{"telemetry.csv", "events.csv", "perf.csv", "sessions.csv", "config.yaml"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sessions.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "one summary row expected")
	assert.Contains(t, lines[1], "starved")
}

func TestRunStopsAtTickLimit(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) {
		c.Prey.HungerDecayRate = 0
	})
	summary := g.Run(200)
	assert.GreaterOrEqual(t, summary.Ticks, int32(200))
	assert.Equal(t, "none", summary.Reason)
	assert.False(t, g.Session().Over())
}

func TestTransformLookup(t *testing.T) {
	g := newTestGame(t, nil)
	prey := mustPrey(t, g)

	tr := g.Transform(prey)
	require.NotNil(t, tr)
	assert.Equal(t, g.Config().Prey.Spawn.R3(), tr.Position)

	food := g.SpawnFood(r3.Vec{X: 3, Y: 0.5})
	require.NotNil(t, g.Transform(food))
	g.DestroyObject(food)
	g.FixedTick(g.Config().Sim.FixedDT)
	assert.Nil(t, g.Transform(food), "removed entity still has a transform")
}

func TestSprintRecordedByTag(t *testing.T) {
	g := newTestGame(t, nil)
	prey := mustPrey(t, g)
	enemy, ok := g.Enemy()
	require.True(t, ok)

	rec := &gameRecorder{g: g}
	rec.Sprinted(prey)
	rec.Sprinted(enemy)
	rec.Sprinted(enemy)

	stats := g.collector.Flush(g.Tick(), g.worldState())
	assert.Equal(t, 1, stats.PreySprintTicks)
	assert.Equal(t, 2, stats.EnemySprintTicks)
}

func TestPerfTracksClocksSeparately(t *testing.T) {
	g := newTestGame(t, nil)

	g.Step(5 * g.Config().Sim.FixedDT)

	stats := g.perfCollector.Stats()
	assert.Equal(t, 5, stats.Fixed.Samples)
	assert.Equal(t, 1, stats.Frame.Samples)
	assert.Contains(t, stats.Fixed.PhaseAvg, telemetry.PhasePrey)
	assert.NotContains(t, stats.Fixed.PhaseAvg, telemetry.PhaseSpawner)
	assert.Contains(t, stats.Frame.PhaseAvg, telemetry.PhaseSpawner)
	assert.NotContains(t, stats.Frame.PhaseAvg, telemetry.PhasePrey)
}

func TestPerfPhasesMatchRegistry(t *testing.T) {
	reg := systems.NewSystemRegistry()
	for clock, phases := range map[string][]string{
		telemetry.ClockFixed: telemetry.FixedPhases,
		telemetry.ClockFrame: telemetry.FramePhases,
	} {
		var ids []string
		for _, info := range reg.ByCategory(clock) {
			ids = append(ids, info.ID)
		}
		assert.Equal(t, phases, ids, clock)
	}
}
