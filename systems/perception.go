package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// angleTolerance absorbs float rounding when a target sits exactly on the cone edge.
const angleTolerance = 1e-9

// AngleBetween returns the unsigned angle between a and b in degrees.
// Returns 0 if either vector has zero length.
func AngleBetween(a, b r3.Vec) float64 {
	denom := math.Sqrt(r3.Norm2(a) * r3.Norm2(b))
	if denom < 1e-15 {
		return 0
	}
	c := clamp(r3.Dot(a, b)/denom, -1, 1)
	return math.Acos(c) * 180 / math.Pi
}

// CanSee reports whether target is within detectionRange of from and inside
// the cone of fov degrees centred on heading. Both limits are inclusive.
// The distance is returned either way.
func CanSee(from, heading, target r3.Vec, detectionRange, fov float64) (float64, bool) {
	toTarget := r3.Sub(target, from)
	dist := r3.Norm(toTarget)
	if dist > detectionRange {
		return dist, false
	}
	return dist, AngleBetween(heading, toTarget) <= fov/2+angleTolerance
}
