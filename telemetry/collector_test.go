package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/forage/components"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1, 0.02)
	if got := c.WindowDurationTicks(); got != 50 {
		t.Fatalf("WindowDurationTicks = %d, want 50", got)
	}
	if c.ShouldFlush(49) {
		t.Error("ShouldFlush(49) = true before the window ends")
	}
	if !c.ShouldFlush(50) {
		t.Error("ShouldFlush(50) = false at the window end")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1, 0.5)
	c.SetSession("abc")

	c.RecordFoodEaten()
	c.RecordFoodSpawned()
	c.RecordFoodSpawned()
	c.RecordScan()
	c.RecordHeadingChange()
	c.RecordDetection()
	c.RecordCapture()
	c.RecordSprint(components.TagPlayer)
	c.RecordSprint(components.TagEnemy)
	c.RecordSprint(components.TagEnemy)
	for _, h := range []float64{80, 60, 40, 20} {
		c.SampleHunger(h)
	}

	stats := c.Flush(4, WorldState{PreyAlive: true, Hunger: 20, FoodOnField: 3, EnemyChasing: true})

	checks := []struct {
		name      string
		got, want float64
	}{
		{"FoodEaten", float64(stats.FoodEaten), 1},
		{"FoodSpawned", float64(stats.FoodSpawned), 2},
		{"ScansStarted", float64(stats.ScansStarted), 1},
		{"HeadingChanges", float64(stats.HeadingChanges), 1},
		{"Detections", float64(stats.Detections), 1},
		{"Captures", float64(stats.Captures), 1},
		{"PreyTicks", float64(stats.PreyTicks), 4},
		{"PreySprintTicks", float64(stats.PreySprintTicks), 1},
		{"EnemySprintTicks", float64(stats.EnemySprintTicks), 2},
		{"SprintFraction", stats.SprintFraction, 0.25},
		{"HungerMean", stats.HungerMean, 50},
		{"HungerP50", stats.HungerP50, 50},
		{"HungerLast", stats.HungerLast, 20},
		{"SimTimeSec", stats.SimTimeSec, 2},
		{"FoodOnField", float64(stats.FoodOnField), 3},
	}
	for _, ck := range checks {
		if math.Abs(ck.got-ck.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", ck.name, ck.got, ck.want)
		}
	}
	if stats.Session != "abc" {
		t.Errorf("Session = %q, want abc", stats.Session)
	}

	// Counters reset for the next window
	next := c.Flush(8, WorldState{})
	if next.FoodEaten != 0 || next.PreyTicks != 0 || next.WindowStartTick != 4 {
		t.Errorf("second window not reset: %+v", next)
	}
}
