// Package game hosts the forage simulation: it owns the ECS world, drives the
// fixed and frame clocks, and coordinates sessions.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/arena"
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

// Game holds the complete game state.
type Game struct {
	cfg      *config.Config
	opts     Options
	seed     int64
	rng      *rand.Rand
	logger   *slog.Logger
	registry *systems.SystemRegistry

	world *ecs.World

	// Entity mappers
	preyMap *ecs.Map6[
		components.Transform,
		components.Motion,
		components.Forager,
		components.Capabilities,
		components.Collider,
		components.Tagged,
	]
	enemyMap *ecs.Map6[
		components.Transform,
		components.Motion,
		components.Hunter,
		components.Capabilities,
		components.Collider,
		components.Tagged,
	]
	foodMap  *ecs.Map4[components.Transform, components.Food, components.Collider, components.Tagged]
	arenaMap *ecs.Map3[components.Transform, components.Arena, components.Tagged]

	// Individual component mappers for lookups
	transforms *ecs.Map1[components.Transform]
	tags       *ecs.Map1[components.Tagged]

	tagFilter   ecs.Filter1[components.Tagged]
	arenaFilter ecs.Filter2[components.Transform, components.Arena]

	// Systems
	index       *systems.FoodIndex
	indexBounds *arena.Tracker
	mover       *systems.BodyMover
	prey        *systems.PreySystem
	enemy       *systems.EnemySystem
	contacts    *systems.ContactSystem
	spawner     *systems.FoodSpawner

	session  *Session
	clock    *Clock
	pending  []ecs.Entity
	sessions int

	// State
	tick        int32
	simTime     float64
	lastFrameDt float64
	totals      sessionTotals
	summarized  bool

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	metrics       *telemetry.Metrics
	events        []telemetry.Event
}

// sessionTotals counts events over a whole session.
type sessionTotals struct {
	foodEaten   int
	foodSpawned int
	scans       int
}

// NewGame creates a game and starts its first session.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.config()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:           cfg,
		opts:          opts,
		seed:          opts.Seed,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		logger:        logger.With("seed", opts.Seed),
		registry:      systems.NewSystemRegistry(),
		clock:         NewClock(cfg.Sim.FixedDT, cfg.Sim.MaxFixedSteps),
		collector:     telemetry.NewCollector(statsWindow, cfg.Sim.FixedDT),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		outputManager: om,
		metrics:       opts.Metrics,
	}

	g.logStartup()
	g.startSession()
	return g, nil
}

// startSession builds a fresh world and session.
func (g *Game) startSession() {
	w := ecs.NewWorld()
	g.world = w

	g.preyMap = ecs.NewMap6[
		components.Transform,
		components.Motion,
		components.Forager,
		components.Capabilities,
		components.Collider,
		components.Tagged,
	](w)
	g.enemyMap = ecs.NewMap6[
		components.Transform,
		components.Motion,
		components.Hunter,
		components.Capabilities,
		components.Collider,
		components.Tagged,
	](w)
	g.foodMap = ecs.NewMap4[components.Transform, components.Food, components.Collider, components.Tagged](w)
	g.arenaMap = ecs.NewMap3[components.Transform, components.Arena, components.Tagged](w)
	g.transforms = ecs.NewMap1[components.Transform](w)
	g.tags = ecs.NewMap1[components.Tagged](w)
	g.tagFilter = *ecs.NewFilter1[components.Tagged](w)
	g.arenaFilter = *ecs.NewFilter2[components.Transform, components.Arena](w)

	g.index = systems.NewFoodIndex(w, foodCellSize(g.cfg))
	g.indexBounds = arena.NewTracker("food_index")
	g.mover = systems.NewBodyMover(w)

	g.prey = systems.NewPreySystem(w, &g.cfg.Prey, g.rng, g.index, g, g.mover, g)
	g.session = NewSession(g.prey, g.logger, g.Tick)
	g.session.OnGameOver(g.onGameOver)
	g.enemy = systems.NewEnemySystem(w, &g.cfg.Enemy, g.rng, g, g.mover, g, g.session)
	g.contacts = systems.NewContactSystem(w)
	g.contacts.Register(components.TagPlayer, g.prey)
	g.contacts.Register(components.TagEnemy, g.enemy)
	g.spawner = systems.NewFoodSpawner(w, &g.cfg.Spawner, g.rng, g.session, g, g)

	rec := &gameRecorder{g: g}
	g.prey.SetRecorder(rec)
	g.enemy.SetRecorder(rec)
	g.spawner.SetRecorder(rec)

	g.clock.Reset()
	g.pending = g.pending[:0]
	g.tick = 0
	g.simTime = 0
	g.lastFrameDt = g.cfg.Sim.FrameDT
	g.totals = sessionTotals{}
	g.summarized = false
	g.sessions++
	g.collector.SetSession(g.session.ID().String())
	g.collector.Reset(0)

	g.spawnWorld()

	g.session.Logger().Info("session started",
		"number", g.sessions,
		"food", g.spawner.Count(),
	)
	g.emit(telemetry.Event{Kind: telemetry.EventSessionStart, Detail: fmt.Sprintf("session %d", g.sessions)})
}

// foodCellSize picks the food index cell size from the prey's view distance.
func foodCellSize(cfg *config.Config) float64 {
	if cfg.Prey.DetectionRange >= 1 {
		return cfg.Prey.DetectionRange / 2
	}
	return 1
}

// Restart abandons the current session and starts a new one in a fresh world.
func (g *Game) Restart() {
	if !g.summarized {
		g.finishSession(g.session.Reason())
	}
	g.startSession()
}

// Step advances the simulation by one frame: scale frameDt by the session time
// scale, run the fixed ticks that are due, then run the frame tick.
func (g *Game) Step(frameDt float64) {
	scaled := frameDt * g.session.TimeScale()
	g.lastFrameDt = scaled

	steps := g.clock.Advance(scaled)
	for i := 0; i < steps && !g.session.Over(); i++ {
		g.FixedTick(g.clock.FixedDT())
	}

	g.FrameTick(scaled)
}

// FixedTick runs one physics step. Hunger and sprint timers use the most
// recent frame delta.
func (g *Game) FixedTick(dt float64) {
	frameDt := g.lastFrameDt

	g.perfCollector.BeginFixed()
	g.perfCollector.StartPhase(telemetry.PhaseFoodIndex)
	g.index.Rebuild(g.indexBounds.Update(g.ArenaPlane()))

	g.perfCollector.StartPhase(telemetry.PhasePrey)
	g.prey.FixedTick(dt, frameDt)

	g.perfCollector.StartPhase(telemetry.PhaseEnemy)
	g.enemy.FixedTick(dt, frameDt)

	g.perfCollector.StartPhase(telemetry.PhaseContacts)
	g.contacts.Update()

	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.flushDestroyed()
	g.perfCollector.End()

	g.tick++
	g.simTime += dt
	if h, ok := g.prey.Hunger(); ok {
		g.collector.SampleHunger(h)
	}
	g.metrics.FixedTick()
}

// FrameTick runs the per-frame systems.
func (g *Game) FrameTick(dt float64) {
	g.lastFrameDt = dt

	g.perfCollector.BeginFrame()
	g.perfCollector.StartPhase(telemetry.PhaseScan)
	g.prey.FrameTick(dt)

	g.perfCollector.StartPhase(telemetry.PhaseSpawner)
	g.spawner.Update(dt)

	g.perfCollector.StartPhase(telemetry.PhaseCoordinator)
	g.session.Update()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.updateTelemetry()
	g.perfCollector.End()
}

// Run steps with the configured frame delta until the session ends or
// maxTicks fixed ticks have run (0 = no limit), and returns the summary.
func (g *Game) Run(maxTicks int32) telemetry.SessionSummary {
	frameDt := g.cfg.Sim.FrameDT
	for !g.session.Over() {
		if maxTicks > 0 && g.tick >= maxTicks {
			break
		}
		g.Step(frameDt)
	}
	return g.Summary()
}

// Summary describes the current session so far.
func (g *Game) Summary() telemetry.SessionSummary {
	hunger, _ := g.prey.Hunger()
	return telemetry.SessionSummary{
		Session:     g.session.ID().String(),
		Seed:        g.seed,
		Reason:      g.session.Reason().String(),
		Ticks:       g.tick,
		SimTimeSec:  g.simTime,
		FoodEaten:   g.totals.foodEaten,
		FoodSpawned: g.totals.foodSpawned,
		Scans:       g.totals.scans,
		FinalHunger: hunger,
	}
}

// Close flushes pending output and closes the output files.
func (g *Game) Close() error {
	if !g.summarized {
		g.finishSession(g.session.Reason())
	}
	g.flushEvents()
	return g.outputManager.Close()
}

// Tick returns the number of fixed ticks run in the current session.
func (g *Game) Tick() int32 { return g.tick }

// SimTime returns the simulated seconds of the current session.
func (g *Game) SimTime() float64 { return g.simTime }

// Session returns the current session.
func (g *Game) Session() *Session { return g.session }

// Config returns the game configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// World returns the ECS world of the current session.
func (g *Game) World() *ecs.World { return g.world }

// Sessions returns how many sessions have been started.
func (g *Game) Sessions() int { return g.sessions }

// PreyHunger returns the prey's hunger, if the prey exists.
func (g *Game) PreyHunger() (float64, bool) { return g.prey.Hunger() }

// FoodCount returns the number of food items in the arena.
func (g *Game) FoodCount() int { return g.spawner.Count() }

// Chasing reports whether the enemy has locked onto the prey.
func (g *Game) Chasing() bool { return g.enemy.Chasing() }
