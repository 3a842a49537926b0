package telemetry

import "github.com/pthm-cable/forage/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64
	session             string

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	foodEaten        int
	foodSpawned      int
	scans            int
	headingChanges   int
	detections       int
	captures         int
	preySprintTicks  int
	enemySprintTicks int

	hunger []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per fixed tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		hunger:              make([]float64, 0, ticksPerWindow),
	}
}

// SetSession labels subsequent windows with a session id.
func (c *Collector) SetSession(id string) {
	c.session = id
}

// RecordFoodEaten records the prey eating a food item.
func (c *Collector) RecordFoodEaten() {
	c.foodEaten++
}

// RecordFoodSpawned records a new food item.
func (c *Collector) RecordFoodSpawned() {
	c.foodSpawned++
}

// RecordScan records the start of a scan.
func (c *Collector) RecordScan() {
	c.scans++
}

// RecordHeadingChange records a random re-direction.
func (c *Collector) RecordHeadingChange() {
	c.headingChanges++
}

// RecordDetection records an enemy spotting its target.
func (c *Collector) RecordDetection() {
	c.detections++
}

// RecordCapture records a capture.
func (c *Collector) RecordCapture() {
	c.captures++
}

// RecordSprint records one fixed tick spent sprinting by an agent with the given tag.
func (c *Collector) RecordSprint(tag components.Tag) {
	if tag == components.TagPlayer {
		c.preySprintTicks++
	} else {
		c.enemySprintTicks++
	}
}

// SampleHunger records the prey hunger for one fixed tick.
func (c *Collector) SampleHunger(h float64) {
	c.hunger = append(c.hunger, h)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WorldState is the snapshot sampled at the end of a window.
type WorldState struct {
	PreyAlive    bool
	Hunger       float64
	FoodOnField  int
	EnemyChasing bool
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, state WorldState) WindowStats {
	mean, p10, p50, p90 := ComputeHungerStats(c.hunger)

	var sprintFraction float64
	if n := len(c.hunger); n > 0 {
		sprintFraction = float64(c.preySprintTicks) / float64(n)
	}

	stats := WindowStats{
		Session:         c.session,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		PreyAlive:    state.PreyAlive,
		FoodOnField:  state.FoodOnField,
		EnemyChasing: state.EnemyChasing,

		FoodEaten:      c.foodEaten,
		FoodSpawned:    c.foodSpawned,
		ScansStarted:   c.scans,
		HeadingChanges: c.headingChanges,
		Detections:     c.detections,
		Captures:       c.captures,

		PreyTicks:        len(c.hunger),
		PreySprintTicks:  c.preySprintTicks,
		SprintFraction:   sprintFraction,
		EnemySprintTicks: c.enemySprintTicks,

		HungerMean: mean,
		HungerP10:  p10,
		HungerP50:  p50,
		HungerP90:  p90,
		HungerLast: state.Hunger,
	}

	c.Reset(currentTick)
	return stats
}

// Reset clears the counters and starts a new window at tick.
func (c *Collector) Reset(tick int32) {
	c.windowStartTick = tick
	c.foodEaten = 0
	c.foodSpawned = 0
	c.scans = 0
	c.headingChanges = 0
	c.detections = 0
	c.captures = 0
	c.preySprintTicks = 0
	c.enemySprintTicks = 0
	c.hunger = c.hunger[:0]
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
