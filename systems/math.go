package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Clamp functions for common value ranges

// clamp clamps v between minVal and maxVal.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// Rotation helpers. Yaw is measured about +Y with 0 facing +Z.

var (
	up      = r3.Vec{Y: 1}
	forward = r3.Vec{Z: 1}
)

// Identity is the rotation that leaves vectors unchanged.
var Identity = r3.Rotation{Real: 1}

// YawRotation returns a rotation of angle radians about the vertical axis.
func YawRotation(angle float64) r3.Rotation {
	return r3.NewRotation(angle, up)
}

// Forward returns the direction the rotation faces.
// The zero rotation is treated as identity.
func Forward(rot r3.Rotation) r3.Vec {
	if rot == (r3.Rotation{}) {
		return forward
	}
	return rot.Rotate(forward)
}

// Yaw returns the heading angle of a rotation in radians.
func Yaw(rot r3.Rotation) float64 {
	f := Forward(rot)
	return math.Atan2(f.X, f.Z)
}

// LookRotation returns the yaw rotation facing dir. The vertical component is ignored.
func LookRotation(dir r3.Vec) r3.Rotation {
	if dir.X == 0 && dir.Z == 0 {
		return Identity
	}
	return YawRotation(math.Atan2(dir.X, dir.Z))
}

// Slerp interpolates between two rotations along the shortest arc.
func Slerp(from, to r3.Rotation, t float64) r3.Rotation {
	q0 := quat.Number(from)
	q1 := quat.Mul(quat.Number(to), quat.Inv(q0))
	if q1.Real < 0 {
		q1 = quat.Scale(-1, q1)
	}
	q1 = quat.PowReal(q1, t)
	return r3.Rotation(quat.Mul(q1, q0))
}

// Heading helpers

// RandomHeading returns a uniformly random horizontal unit vector.
func RandomHeading(rng *rand.Rand) r3.Vec {
	angle := rng.Float64() * 2 * math.Pi
	return r3.Vec{X: math.Cos(angle), Z: math.Sin(angle)}
}

// flatten drops the vertical component of v and normalizes it.
// Returns false when nothing is left.
func flatten(v r3.Vec) (r3.Vec, bool) {
	v.Y = 0
	n := r3.Norm(v)
	if n == 0 {
		return r3.Vec{}, false
	}
	return r3.Scale(1/n, v), true
}

// isFinite reports whether every component of v is a finite number.
func isFinite(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
