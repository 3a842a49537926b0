package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/game"
	"github.com/pthm-cable/forage/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop a session after N fixed ticks (0 = until game over)")
	frameDt := flag.Float64("frame-dt", 0, "Frame delta in seconds (0 = use config)")
	restarts := flag.Int("restarts", 0, "Sessions to play after the first one ends")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (empty = off)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *frameDt > 0 {
		cfg.Sim.FrameDT = *frameDt
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var metrics *telemetry.Metrics
	if *metricsAddr != "" {
		metrics = telemetry.NewMetrics(prometheus.DefaultRegisterer)
		go func() {
			slog.Info("serving metrics", "addr", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, promhttp.Handler()); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	g, err := game.NewGame(game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Metrics:        metrics,
		Logger:         logger,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"max_ticks", *maxTicks,
		"restarts", *restarts,
	)

	for i := 0; ; i++ {
		summary := g.Run(int32(*maxTicks))
		if !g.Session().Over() {
			slog.Info("max ticks reached", "tick", g.Tick())
		}
		slog.Info("session finished", "summary", summary)
		g.LogPerf()

		if i >= *restarts {
			break
		}
		g.Restart()
	}

	if err := g.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
		os.Exit(1)
	}
}
