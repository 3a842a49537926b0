package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/telemetry"
)

// gameRecorder feeds system events into the collector, metrics and event log.
type gameRecorder struct {
	g *Game
}

func (r *gameRecorder) FoodEaten(prey ecs.Entity, hunger float64) {
	r.g.totals.foodEaten++
	r.g.collector.RecordFoodEaten()
	r.g.metrics.FoodEaten()
	r.g.emit(telemetry.NewFoodEatenEvent(r.g.tick, prey.ID(), 0, hunger))
}

func (r *gameRecorder) FoodSpawned(food ecs.Entity, pos r3.Vec) {
	r.g.totals.foodSpawned++
	r.g.collector.RecordFoodSpawned()
	r.g.metrics.FoodSpawned()
	r.g.emit(telemetry.NewFoodSpawnedEvent(r.g.tick, food.ID(), fmt.Sprintf("%.2f,%.2f,%.2f", pos.X, pos.Y, pos.Z)))
}

func (r *gameRecorder) ScanStarted(prey ecs.Entity) {
	r.g.totals.scans++
	r.g.collector.RecordScan()
	r.g.emit(telemetry.NewScanEvent(r.g.tick, prey.ID()))
}

func (r *gameRecorder) HeadingChanged(ecs.Entity) {
	r.g.collector.RecordHeadingChange()
}

func (r *gameRecorder) Sprinted(e ecs.Entity) {
	tag := components.TagNone
	if r.g.world.Alive(e) && r.g.tags.HasAll(e) {
		tag = r.g.tags.Get(e).Tag
	}
	r.g.collector.RecordSprint(tag)
}

func (r *gameRecorder) TargetSighted(hunter, target ecs.Entity) {
	r.g.collector.RecordDetection()
	r.g.emit(telemetry.NewDetectionEvent(r.g.tick, hunter.ID(), target.ID()))
	r.g.session.Logger().Debug("target sighted", "tick", r.g.tick)
}

func (r *gameRecorder) Captured(hunter, target ecs.Entity) {
	r.g.collector.RecordCapture()
	r.g.emit(telemetry.NewCaptureEvent(r.g.tick, hunter.ID(), target.ID()))
}

// emit stamps ev with the session and time and queues it for events.csv.
func (g *Game) emit(ev telemetry.Event) {
	if g.outputManager == nil {
		return
	}
	ev.Session = g.session.ID().String()
	ev.Tick = g.tick
	ev.SimTime = g.simTime
	g.events = append(g.events, ev)
}

// flushEvents writes queued events.
func (g *Game) flushEvents() {
	if len(g.events) == 0 {
		return
	}
	if err := g.outputManager.WriteEvents(g.events); err != nil {
		g.logger.Error("failed to write events", "error", err)
	}
	g.events = g.events[:0]
}

// worldState samples the state reported at the end of a stats window.
func (g *Game) worldState() telemetry.WorldState {
	hunger, alive := g.prey.Hunger()
	return telemetry.WorldState{
		PreyAlive:    alive,
		Hunger:       hunger,
		FoodOnField:  g.spawner.Count(),
		EnemyChasing: g.enemy.Chasing(),
	}
}

// updateTelemetry refreshes the metrics and flushes the stats window when due.
func (g *Game) updateTelemetry() {
	if g.metrics != nil {
		g.metrics.SetState(g.worldState(), g.session.Over())
	}

	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.worldState())
	perfStats := g.perfCollector.Stats()

	if g.opts.StatsCallback != nil {
		g.opts.StatsCallback(stats)
	}

	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			g.logger.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
		g.flushEvents()
	}
}
