package game

import (
	"log/slog"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil = embedded defaults
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = no CSV output

	// Metrics receives live gauges and counters; nil disables them.
	Metrics *telemetry.Metrics
	// Logger is the base logger; nil uses slog.Default().
	Logger *slog.Logger

	// StatsCallback is called with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
	// GameOverCallback is called once per session when it ends.
	GameOverCallback func(telemetry.SessionSummary, systems.EndReason)
}

func (o Options) config() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	return config.Default()
}
