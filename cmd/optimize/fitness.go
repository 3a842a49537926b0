package main

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/game"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

// FitnessEvaluator runs headless sessions and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64
	logger      *slog.Logger

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
	lastReasons map[systems.EndReason]int
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5.0,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastReasons returns how the sessions of the most recent evaluation ended.
func (fe *FitnessEvaluator) LastReasons() map[systems.EndReason]int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastReasons
}

// runResult holds the results from a single session.
type runResult struct {
	survivalSec float64
	reason      systems.EndReason
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Seeds run in parallel, each in its own game.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))

	eg, ctx := errgroup.WithContext(context.Background())
	for i, seed := range fe.seeds {
		eg.Go(func() error {
			r, err := fe.runSimulation(ctx, x, seed)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		fe.logger.Error("evaluation failed", "error", err)
		return math.Inf(1)
	}

	fitness := make([]float64, len(results))
	quality := make([]float64, len(results))
	reasons := make(map[systems.EndReason]int)
	for i, r := range results {
		quality[i] = computeQuality(r.windowStats)
		fitness[i] = computeFitness(r.survivalSec, quality[i])
		reasons[r.reason]++
	}

	fe.mu.Lock()
	fe.lastQuality = stat.Mean(quality, nil)
	fe.lastReasons = reasons
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSimulation plays one session until game over or maxTicks.
func (fe *FitnessEvaluator) runSimulation(ctx context.Context, x []float64, seed int64) (*runResult, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	g, err := game.NewGame(game.Options{
		Config:         cfg,
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
		Logger:         fe.logger,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Close()

	// Step in chunks so a cancelled evaluation stops early
	const chunk = 1000
	for !g.Session().Over() && g.Tick() < fe.maxTicks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.Run(min(g.Tick()+chunk, fe.maxTicks))
	}

	result.survivalSec = g.SimTime()
	result.reason = g.Session().Reason()
	return result, nil
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalSec × (1.0 + 0.2 × quality))
// Survival dominates; quality breaks ties between equally long runs.
func computeFitness(survivalSec, quality float64) float64 {
	return -(survivalSec * (1.0 + 0.2*quality))
}

// computeQuality scores how well fed the prey stayed, in [0, 1].
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) == 0 {
		return 0
	}
	means := make([]float64, 0, len(windows))
	for _, w := range windows {
		if w.PreyAlive {
			means = append(means, w.HungerMean/systems.MaxHunger)
		}
	}
	if len(means) == 0 {
		return 0
	}
	return clamp01(stat.Mean(means, nil))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
