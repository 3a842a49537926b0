package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	Session         string  `csv:"session"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// World state at window end
	PreyAlive    bool `csv:"prey_alive"`
	FoodOnField  int  `csv:"food_on_field"`
	EnemyChasing bool `csv:"enemy_chasing"`

	// Events during window
	FoodEaten      int `csv:"food_eaten"`
	FoodSpawned    int `csv:"food_spawned"`
	ScansStarted   int `csv:"scans"`
	HeadingChanges int `csv:"heading_changes"`
	Detections     int `csv:"detections"`
	Captures       int `csv:"captures"`

	// Movement
	PreyTicks        int     `csv:"prey_ticks"`
	PreySprintTicks  int     `csv:"prey_sprint_ticks"`
	SprintFraction   float64 `csv:"sprint_fraction"`
	EnemySprintTicks int     `csv:"enemy_sprint_ticks"`

	// Hunger distribution (sampled every fixed tick)
	HungerMean float64 `csv:"hunger_mean"`
	HungerP10  float64 `csv:"hunger_p10"`
	HungerP50  float64 `csv:"hunger_p50"`
	HungerP90  float64 `csv:"hunger_p90"`
	HungerLast float64 `csv:"hunger_last"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeHungerStats calculates mean and percentiles from hunger samples.
func ComputeHungerStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Bool("prey_alive", s.PreyAlive),
		slog.Int("food_on_field", s.FoodOnField),
		slog.Bool("enemy_chasing", s.EnemyChasing),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("food_spawned", s.FoodSpawned),
		slog.Int("scans", s.ScansStarted),
		slog.Int("heading_changes", s.HeadingChanges),
		slog.Int("detections", s.Detections),
		slog.Int("captures", s.Captures),
		slog.Int("prey_sprint_ticks", s.PreySprintTicks),
		slog.Float64("sprint_fraction", s.SprintFraction),
		slog.Int("enemy_sprint_ticks", s.EnemySprintTicks),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("hunger_p10", s.HungerP10),
		slog.Float64("hunger_p50", s.HungerP50),
		slog.Float64("hunger_p90", s.HungerP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"session", s.Session,
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"prey_alive", s.PreyAlive,
		"food_on_field", s.FoodOnField,
		"enemy_chasing", s.EnemyChasing,
		"food_eaten", s.FoodEaten,
		"food_spawned", s.FoodSpawned,
		"scans", s.ScansStarted,
		"heading_changes", s.HeadingChanges,
		"detections", s.Detections,
		"captures", s.Captures,
		"sprint_fraction", s.SprintFraction,
		"hunger_mean", s.HungerMean,
		"hunger_p10", s.HungerP10,
		"hunger_p50", s.HungerP50,
		"hunger_p90", s.HungerP90,
	)
}
