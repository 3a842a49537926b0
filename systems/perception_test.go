package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestCanSee(t *testing.T) {
	heading := r3.Vec{Z: 1}

	tests := []struct {
		name   string
		target r3.Vec
		rng    float64
		fov    float64
		want   bool
	}{
		{"straight ahead in range", r3.Vec{Z: 5}, 20, 60, true},
		{"exactly at range", r3.Vec{Z: 20}, 20, 60, true},
		{"just past range", r3.Vec{Z: 20.001}, 20, 60, false},
		{"3-4-5 exactly at range", r3.Vec{X: 3, Z: 4}, 5, 180, true},
		{"exactly at half fov", r3.Vec{X: 5}, 20, 180, true},
		{"zero fov straight ahead", r3.Vec{Z: 5}, 20, 0, true},
		{"outside cone", r3.Vec{X: 5, Z: 1}, 20, 60, false},
		{"behind", r3.Vec{Z: -5}, 20, 300, false},
		{"same position", r3.Vec{}, 20, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := CanSee(r3.Vec{}, heading, tt.target, tt.rng, tt.fov)
			if got != tt.want {
				t.Errorf("CanSee(%v, range=%v, fov=%v) = %v, want %v", tt.target, tt.rng, tt.fov, got, tt.want)
			}
		})
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		a, b r3.Vec
		want float64
	}{
		{r3.Vec{Z: 1}, r3.Vec{Z: 2}, 0},
		{r3.Vec{Z: 1}, r3.Vec{X: 1}, 90},
		{r3.Vec{Z: 1}, r3.Vec{Z: -1}, 180},
		{r3.Vec{}, r3.Vec{X: 1}, 0},
	}

	for _, tt := range tests {
		got := AngleBetween(tt.a, tt.b)
		if got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("AngleBetween(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
