package telemetry

import (
	"log/slog"
	"time"
)

// Clock names, matching the system registry categories.
const (
	ClockFixed = "fixed"
	ClockFrame = "frame"
)

// Phase names of the fixed tick.
const (
	PhaseFoodIndex = "food_index"
	PhasePrey      = "prey"
	PhaseEnemy     = "enemy"
	PhaseContacts  = "contacts"
	PhaseCleanup   = "cleanup"
)

// Phase names of the frame tick.
const (
	PhaseScan        = "scan"
	PhaseSpawner     = "spawner"
	PhaseCoordinator = "coordinator"
	PhaseTelemetry   = "telemetry"
)

var (
	FixedPhases = []string{PhaseFoodIndex, PhasePrey, PhaseEnemy, PhaseContacts, PhaseCleanup}
	FramePhases = []string{PhaseScan, PhaseSpawner, PhaseCoordinator, PhaseTelemetry}
)

// tickSample is one timed fixed or frame tick.
type tickSample struct {
	start    time.Time
	duration time.Duration
	phases   map[string]time.Duration
}

// tickRing keeps the most recent samples of one clock.
type tickRing struct {
	samples []tickSample
	next    int
	count   int
}

func (r *tickRing) push(s tickSample) {
	r.samples[r.next] = s
	r.next = (r.next + 1) % len(r.samples)
	if r.count < len(r.samples) {
		r.count++
	}
}

// at returns the i-th sample, oldest first.
func (r *tickRing) at(i int) tickSample {
	n := len(r.samples)
	return r.samples[(r.next-r.count+i+n)%n]
}

// ClockStats aggregates the samples of one clock.
type ClockStats struct {
	Samples int

	AvgDuration time.Duration
	MinDuration time.Duration
	MaxDuration time.Duration

	// Per-phase average and share of the average tick
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Wall-clock rate at which ticks of this clock started
	PerSecond float64
}

func (r *tickRing) stats() ClockStats {
	cs := ClockStats{
		Samples:  r.count,
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if r.count == 0 {
		return cs
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i := 0; i < r.count; i++ {
		s := r.at(i)
		total += s.duration
		if i == 0 || s.duration < cs.MinDuration {
			cs.MinDuration = s.duration
		}
		cs.MaxDuration = max(cs.MaxDuration, s.duration)
		for phase, d := range s.phases {
			sums[phase] += d
		}
	}

	n := time.Duration(r.count)
	cs.AvgDuration = total / n
	for phase, sum := range sums {
		cs.PhaseAvg[phase] = sum / n
		if cs.AvgDuration > 0 {
			cs.PhasePct[phase] = float64(sum) / float64(total) * 100
		}
	}

	if span := r.at(r.count - 1).start.Sub(r.at(0).start); r.count > 1 && span > 0 {
		cs.PerSecond = float64(r.count-1) / span.Seconds()
	}
	return cs
}

// PerfCollector times fixed ticks and frame ticks in separate rolling windows.
// Ticks of the two clocks never overlap: Game.Step runs its fixed ticks first
// and then one frame tick.
type PerfCollector struct {
	now func() time.Time

	fixed tickRing
	frame tickRing

	open       *tickRing
	current    tickSample
	phase      string
	phaseStart time.Time
}

// NewPerfCollector creates a collector averaging the last windowSize ticks of
// each clock.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:   time.Now,
		fixed: tickRing{samples: make([]tickSample, windowSize)},
		frame: tickRing{samples: make([]tickSample, windowSize)},
	}
}

// BeginFixed starts timing a fixed tick.
func (p *PerfCollector) BeginFixed() { p.begin(&p.fixed) }

// BeginFrame starts timing a frame tick.
func (p *PerfCollector) BeginFrame() { p.begin(&p.frame) }

func (p *PerfCollector) begin(r *tickRing) {
	p.open = r
	p.current = tickSample{start: p.now(), phases: make(map[string]time.Duration, 5)}
	p.phase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
// Ignored outside a tick.
func (p *PerfCollector) StartPhase(phase string) {
	if p.open == nil {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// End finishes the tick begun by BeginFixed or BeginFrame.
func (p *PerfCollector) End() {
	if p.open == nil {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.current.duration = now.Sub(p.current.start)
	p.open.push(p.current)
	p.open = nil
	p.phase = ""
}

// PerfStats holds the statistics of both clocks.
type PerfStats struct {
	Fixed ClockStats
	Frame ClockStats
}

// Clock returns the stats for ClockFixed or ClockFrame.
func (s PerfStats) Clock(name string) ClockStats {
	if name == ClockFrame {
		return s.Frame
	}
	return s.Fixed
}

// Stats aggregates both windows.
func (p *PerfCollector) Stats() PerfStats {
	return PerfStats{Fixed: p.fixed.stats(), Frame: p.frame.stats()}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"fixed_avg_us", s.Fixed.AvgDuration.Microseconds(),
		"fixed_max_us", s.Fixed.MaxDuration.Microseconds(),
		"fixed_ticks_per_sec", int(s.Fixed.PerSecond),
		"frame_avg_us", s.Frame.AvgDuration.Microseconds(),
		"frame_max_us", s.Frame.MaxDuration.Microseconds(),
		"frames_per_sec", int(s.Frame.PerSecond),
	}
	for _, phase := range FixedPhases {
		if pct := s.Fixed.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	for _, phase := range FramePhases {
		if pct := s.Frame.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any(ClockFixed, s.Fixed),
		slog.Any(ClockFrame, s.Frame),
	)
}

// LogValue implements slog.LogValuer.
func (cs ClockStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("samples", cs.Samples),
		slog.Int64("avg_us", cs.AvgDuration.Microseconds()),
		slog.Int64("min_us", cs.MinDuration.Microseconds()),
		slog.Int64("max_us", cs.MaxDuration.Microseconds()),
		slog.Float64("per_sec", cs.PerSecond),
	}
	for phase, pct := range cs.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row. Fixed phase shares are of the fixed tick,
// frame phase shares of the frame tick.
type PerfStatsCSV struct {
	WindowEnd        int32   `csv:"window_end"`
	FixedAvgUS       int64   `csv:"fixed_avg_us"`
	FixedMaxUS       int64   `csv:"fixed_max_us"`
	FixedTicksPerSec float64 `csv:"fixed_ticks_per_sec"`
	FrameAvgUS       int64   `csv:"frame_avg_us"`
	FrameMaxUS       int64   `csv:"frame_max_us"`
	FramesPerSec     float64 `csv:"frames_per_sec"`
	FoodIndexPct     float64 `csv:"food_index_pct"`
	PreyPct          float64 `csv:"prey_pct"`
	EnemyPct         float64 `csv:"enemy_pct"`
	ContactsPct      float64 `csv:"contacts_pct"`
	CleanupPct       float64 `csv:"cleanup_pct"`
	ScanPct          float64 `csv:"scan_pct"`
	SpawnerPct       float64 `csv:"spawner_pct"`
	CoordinatorPct   float64 `csv:"coordinator_pct"`
	TelemetryPct     float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:        windowEnd,
		FixedAvgUS:       s.Fixed.AvgDuration.Microseconds(),
		FixedMaxUS:       s.Fixed.MaxDuration.Microseconds(),
		FixedTicksPerSec: s.Fixed.PerSecond,
		FrameAvgUS:       s.Frame.AvgDuration.Microseconds(),
		FrameMaxUS:       s.Frame.MaxDuration.Microseconds(),
		FramesPerSec:     s.Frame.PerSecond,
		FoodIndexPct:     s.Fixed.PhasePct[PhaseFoodIndex],
		PreyPct:          s.Fixed.PhasePct[PhasePrey],
		EnemyPct:         s.Fixed.PhasePct[PhaseEnemy],
		ContactsPct:      s.Fixed.PhasePct[PhaseContacts],
		CleanupPct:       s.Fixed.PhasePct[PhaseCleanup],
		ScanPct:          s.Frame.PhasePct[PhaseScan],
		SpawnerPct:       s.Frame.PhasePct[PhaseSpawner],
		CoordinatorPct:   s.Frame.PhasePct[PhaseCoordinator],
		TelemetryPct:     s.Frame.PhasePct[PhaseTelemetry],
	}
}
