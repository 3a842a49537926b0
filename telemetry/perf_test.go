package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock is a settable time source for the collector.
type manualClock struct {
	t time.Time
}

func (c *manualClock) now() time.Time          { return c.t }
func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newManualCollector(window int) (*PerfCollector, *manualClock) {
	clk := &manualClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clk.now
	return pc, clk
}

// fixedTick records one fixed tick starting at start: prey for 3ms, enemy for 1ms.
func fixedTick(pc *PerfCollector, clk *manualClock, start time.Time) {
	clk.t = start
	pc.BeginFixed()
	pc.StartPhase(PhasePrey)
	clk.advance(3 * time.Millisecond)
	pc.StartPhase(PhaseEnemy)
	clk.advance(time.Millisecond)
	pc.End()
}

func TestPerfCollectorSeparatesClocks(t *testing.T) {
	pc, clk := newManualCollector(16)
	base := clk.t

	// Three fixed ticks 20ms apart, four frames 50ms apart
	for i := 0; i < 3; i++ {
		fixedTick(pc, clk, base.Add(time.Duration(i)*20*time.Millisecond))
	}
	for i := 0; i < 4; i++ {
		clk.t = base.Add(time.Duration(i) * 50 * time.Millisecond)
		pc.BeginFrame()
		pc.StartPhase(PhaseSpawner)
		clk.advance(2 * time.Millisecond)
		pc.End()
	}

	stats := pc.Stats()

	assert.Equal(t, 3, stats.Fixed.Samples)
	assert.Equal(t, 4*time.Millisecond, stats.Fixed.AvgDuration)
	assert.InDelta(t, 75.0, stats.Fixed.PhasePct[PhasePrey], 1e-9)
	assert.InDelta(t, 25.0, stats.Fixed.PhasePct[PhaseEnemy], 1e-9)
	assert.InDelta(t, 50.0, stats.Fixed.PerSecond, 1e-9, "fixed ticks per second")
	assert.NotContains(t, stats.Fixed.PhasePct, PhaseSpawner)

	assert.Equal(t, 4, stats.Frame.Samples)
	assert.Equal(t, 2*time.Millisecond, stats.Frame.AvgDuration)
	assert.InDelta(t, 100.0, stats.Frame.PhasePct[PhaseSpawner], 1e-9)
	assert.InDelta(t, 20.0, stats.Frame.PerSecond, 1e-9, "frames per second")
	assert.NotContains(t, stats.Frame.PhasePct, PhasePrey)

	assert.Equal(t, stats.Frame, stats.Clock(ClockFrame))
	assert.Equal(t, stats.Fixed, stats.Clock(ClockFixed))
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc, clk := newManualCollector(2)

	for i, d := range []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond} {
		clk.t = time.Unix(2000, 0).Add(time.Duration(i) * 100 * time.Millisecond)
		pc.BeginFixed()
		pc.StartPhase(PhaseContacts)
		clk.advance(d)
		pc.End()
	}

	stats := pc.Stats().Fixed
	assert.Equal(t, 2, stats.Samples)
	assert.Equal(t, 2500*time.Microsecond, stats.AvgDuration)
	assert.Equal(t, 2*time.Millisecond, stats.MinDuration)
	assert.Equal(t, 3*time.Millisecond, stats.MaxDuration)
	assert.InDelta(t, 10.0, stats.PerSecond, 1e-9)
}

func TestPerfCollectorEmptyAndSingle(t *testing.T) {
	pc, clk := newManualCollector(4)

	stats := pc.Stats()
	assert.Zero(t, stats.Fixed.Samples)
	assert.NotNil(t, stats.Fixed.PhaseAvg)
	assert.NotNil(t, stats.Frame.PhasePct)

	fixedTick(pc, clk, clk.t)
	stats = pc.Stats()
	assert.Equal(t, 1, stats.Fixed.Samples)
	assert.Zero(t, stats.Fixed.PerSecond, "a rate needs two samples")
	assert.Zero(t, stats.Frame.Samples)
}

func TestPerfCollectorIgnoresPhasesOutsideTicks(t *testing.T) {
	pc, clk := newManualCollector(4)

	pc.StartPhase(PhaseScan)
	clk.advance(time.Second)
	pc.End()

	stats := pc.Stats()
	assert.Zero(t, stats.Fixed.Samples)
	assert.Zero(t, stats.Frame.Samples)
}

func TestPerfStatsToCSV(t *testing.T) {
	pc, clk := newManualCollector(8)
	base := clk.t
	fixedTick(pc, clk, base)
	fixedTick(pc, clk, base.Add(10*time.Millisecond))

	row := pc.Stats().ToCSV(500)
	require.Equal(t, int32(500), row.WindowEnd)
	assert.Equal(t, int64(4000), row.FixedAvgUS)
	assert.InDelta(t, 100.0, row.FixedTicksPerSec, 1e-9)
	assert.InDelta(t, 75.0, row.PreyPct, 1e-9)
	assert.Zero(t, row.FramesPerSec)
	assert.Zero(t, row.ScanPct)
}
