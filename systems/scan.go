package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/components"
)

// StartScan begins a look-around turn from the current rotation. The turn is
// a random angle in [minDeg, maxDeg] degrees, to the left or right.
func StartScan(s *components.Scan, current r3.Rotation, rng *rand.Rand, minDeg, maxDeg, duration float64) {
	if current == (r3.Rotation{}) {
		current = Identity
	}
	delta := minDeg + rng.Float64()*(maxDeg-minDeg)
	if rng.Intn(2) == 0 {
		delta = -delta
	}

	*s = components.Scan{
		Active:   true,
		Start:    current,
		End:      YawRotation(Yaw(current) + delta*math.Pi/180),
		Duration: duration,
	}
}

// AdvanceScan moves an active scan forward by dt seconds and returns the
// rotation to display. done is true on the call that completes the turn,
// after which the scan is inactive.
func AdvanceScan(s *components.Scan, dt float64) (rot r3.Rotation, done bool) {
	if !s.Active {
		return s.End, false
	}

	s.Elapsed += dt
	if s.Duration <= 0 || s.Elapsed >= s.Duration {
		s.Active = false
		return s.End, true
	}

	return Slerp(s.Start, s.End, clamp01(s.Elapsed/s.Duration)), false
}
