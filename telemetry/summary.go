package telemetry

import "log/slog"

// SessionSummary describes a finished (or abandoned) session.
type SessionSummary struct {
	Session     string  `csv:"session"`
	Seed        int64   `csv:"seed"`
	Reason      string  `csv:"reason"`
	Ticks       int32   `csv:"ticks"`
	SimTimeSec  float64 `csv:"sim_time"`
	FoodEaten   int     `csv:"food_eaten"`
	FoodSpawned int     `csv:"food_spawned"`
	Scans       int     `csv:"scans"`
	FinalHunger float64 `csv:"final_hunger"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s SessionSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session", s.Session),
		slog.Int64("seed", s.Seed),
		slog.String("reason", s.Reason),
		slog.Int("ticks", int(s.Ticks)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("food_spawned", s.FoodSpawned),
		slog.Int("scans", s.Scans),
		slog.Float64("final_hunger", s.FinalHunger),
	)
}
