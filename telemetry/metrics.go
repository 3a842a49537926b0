package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes live session state as prometheus gauges and counters.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	preyHunger   prometheus.Gauge
	foodOnField  prometheus.Gauge
	enemyChasing prometheus.Gauge
	sessionOver  prometheus.Gauge

	foodEaten   prometheus.Counter
	foodSpawned prometheus.Counter
	fixedTicks  prometheus.Counter
}

// NewMetrics creates the forage metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on promhttp.Handler().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		preyHunger: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "forage",
			Name:      "prey_hunger",
			Help:      "Current hunger of the prey (0-100).",
		}),
		foodOnField: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "forage",
			Name:      "food_on_field",
			Help:      "Food items currently in the arena.",
		}),
		enemyChasing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "forage",
			Name:      "enemy_chasing",
			Help:      "1 once the enemy has latched onto the prey.",
		}),
		sessionOver: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "forage",
			Name:      "session_over",
			Help:      "1 once the current session has ended.",
		}),
		foodEaten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forage",
			Name:      "food_eaten_total",
			Help:      "Food items eaten by the prey.",
		}),
		foodSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forage",
			Name:      "food_spawned_total",
			Help:      "Food items created by the spawner.",
		}),
		fixedTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forage",
			Name:      "fixed_ticks_total",
			Help:      "Fixed simulation ticks executed.",
		}),
	}

	reg.MustRegister(
		m.preyHunger, m.foodOnField, m.enemyChasing, m.sessionOver,
		m.foodEaten, m.foodSpawned, m.fixedTicks,
	)
	return m
}

// SetState updates the gauges from a world snapshot.
func (m *Metrics) SetState(state WorldState, over bool) {
	if m == nil {
		return
	}
	m.preyHunger.Set(state.Hunger)
	m.foodOnField.Set(float64(state.FoodOnField))
	m.enemyChasing.Set(boolGauge(state.EnemyChasing))
	m.sessionOver.Set(boolGauge(over))
}

// FoodEaten increments the eaten counter.
func (m *Metrics) FoodEaten() {
	if m == nil {
		return
	}
	m.foodEaten.Inc()
}

// FoodSpawned increments the spawned counter.
func (m *Metrics) FoodSpawned() {
	if m == nil {
		return
	}
	m.foodSpawned.Inc()
}

// FixedTick increments the fixed tick counter.
func (m *Metrics) FixedTick() {
	if m == nil {
		return
	}
	m.fixedTicks.Inc()
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
