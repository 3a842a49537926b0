package game

import "math"

// Clock converts variable frame deltas into a whole number of fixed steps.
type Clock struct {
	fixedDt     float64
	maxSteps    int
	accumulator float64
}

// NewClock creates a clock. maxSteps caps the fixed steps per frame; 0 means no cap.
func NewClock(fixedDt float64, maxSteps int) *Clock {
	return &Clock{fixedDt: fixedDt, maxSteps: maxSteps}
}

// Advance adds frameDt and returns how many fixed steps are due. Time beyond
// the step cap is dropped.
func (c *Clock) Advance(frameDt float64) int {
	if c.fixedDt <= 0 || frameDt <= 0 || math.IsNaN(frameDt) || math.IsInf(frameDt, 0) {
		return 0
	}
	c.accumulator += frameDt

	// Tolerate rounding so that e.g. five 0.004 frames make one 0.02 step
	const eps = 1e-9
	steps := int((c.accumulator + eps) / c.fixedDt)
	if c.maxSteps > 0 && steps > c.maxSteps {
		steps = c.maxSteps
		c.accumulator = 0
		return steps
	}
	c.accumulator -= float64(steps) * c.fixedDt
	if c.accumulator < 0 {
		c.accumulator = 0
	}
	return steps
}

// FixedDT returns the fixed step length.
func (c *Clock) FixedDT() float64 { return c.fixedDt }

// Pending returns the time not yet consumed by fixed steps.
func (c *Clock) Pending() float64 { return c.accumulator }

// Reset discards pending time.
func (c *Clock) Reset() { c.accumulator = 0 }
