// Package arena derives the rectangular play area from a reference plane.
package arena

import (
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// PlaneUnit is the side length of a plane at scale 1.
const PlaneUnit = 10

// Plane is the transform of the reference ground plane.
type Plane struct {
	Position r3.Vec
	Scale    r3.Vec
}

// Bounds is an axis-aligned rectangle on the XZ plane.
type Bounds struct {
	Center     r3.Vec
	HalfWidth  float64 // along X
	HalfLength float64 // along Z
}

// FromPlane computes the bounds covered by a plane.
func FromPlane(p Plane) Bounds {
	return Bounds{
		Center:     p.Position,
		HalfWidth:  p.Scale.X * PlaneUnit / 2,
		HalfLength: p.Scale.Z * PlaneUnit / 2,
	}
}

// MinX returns the lowest x inside the bounds.
func (b Bounds) MinX() float64 { return b.Center.X - b.HalfWidth }

// MaxX returns the highest x inside the bounds.
func (b Bounds) MaxX() float64 { return b.Center.X + b.HalfWidth }

// MinZ returns the lowest z inside the bounds.
func (b Bounds) MinZ() float64 { return b.Center.Z - b.HalfLength }

// MaxZ returns the highest z inside the bounds.
func (b Bounds) MaxZ() float64 { return b.Center.Z + b.HalfLength }

// Contains reports whether pos lies inside the bounds. Edges count as inside
// and the y component is ignored.
func (b Bounds) Contains(pos r3.Vec) bool {
	return pos.X >= b.MinX() && pos.X <= b.MaxX() &&
		pos.Z >= b.MinZ() && pos.Z <= b.MaxZ()
}

// RandomPoint returns a uniformly distributed point inside the bounds at the given height.
func (b Bounds) RandomPoint(rng *rand.Rand, height float64) r3.Vec {
	return r3.Vec{
		X: b.MinX() + rng.Float64()*2*b.HalfWidth,
		Y: height,
		Z: b.MinZ() + rng.Float64()*2*b.HalfLength,
	}
}

// Tracker keeps the most recent bounds for an agent and tolerates a missing plane.
type Tracker struct {
	owner   string
	last    Bounds
	valid   bool
	missing bool
}

// NewTracker creates a tracker. owner is used in log output.
func NewTracker(owner string) *Tracker {
	return &Tracker{owner: owner}
}

// Update recomputes the bounds from ref. A nil ref keeps the previous bounds
// (the zero value before the first successful update) and logs an error the
// first time it happens in a row.
func (t *Tracker) Update(ref *Plane) Bounds {
	if ref == nil {
		if !t.missing {
			slog.Error("arena plane missing, keeping previous bounds", "owner", t.owner, "have_bounds", t.valid)
			t.missing = true
		}
		return t.last
	}
	t.missing = false
	t.last = FromPlane(*ref)
	t.valid = true
	return t.last
}

// Bounds returns the most recent bounds.
func (t *Tracker) Bounds() Bounds {
	return t.last
}

// Valid reports whether the tracker has ever seen a plane.
func (t *Tracker) Valid() bool {
	return t.valid
}
