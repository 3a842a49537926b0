package game

import "github.com/pthm-cable/forage/telemetry"

// logStartup logs the tick schedule and the main tuning values.
func (g *Game) logStartup() {
	for _, category := range []string{"fixed", "frame"} {
		var names []string
		for _, info := range g.registry.ByCategory(category) {
			names = append(names, info.Name)
		}
		g.logger.Debug("tick schedule", "clock", category, "systems", names)
	}

	g.logger.Info("game created",
		"fixed_dt", g.cfg.Sim.FixedDT,
		"frame_dt", g.cfg.Sim.FrameDT,
		"arena_half_width", g.cfg.Derived.ArenaHalfWidth,
		"arena_half_length", g.cfg.Derived.ArenaHalfLength,
		"prey_detection_range", g.cfg.Prey.DetectionRange,
		"enemy_detection_range", g.cfg.Enemy.DetectionRange,
		"output_dir", g.outputManager.Dir(),
	)
}

// LogPerf logs per-system timings averaged over the perf window, one line per clock.
func (g *Game) LogPerf() {
	stats := g.perfCollector.Stats()
	for _, clock := range []string{telemetry.ClockFixed, telemetry.ClockFrame} {
		cs := stats.Clock(clock)
		attrs := []any{
			"clock", clock,
			"tick", g.tick,
			"samples", cs.Samples,
			"avg_us", cs.AvgDuration.Microseconds(),
			"per_sec", int(cs.PerSecond),
		}
		for _, info := range g.registry.ByCategory(clock) {
			if avg, ok := cs.PhaseAvg[info.ID]; ok {
				attrs = append(attrs, info.Name, avg.Microseconds())
			}
		}
		g.logger.Info("perf", attrs...)
	}
}
