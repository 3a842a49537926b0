package systems

import "github.com/pthm-cable/forage/components"

// Hunger limits.
const (
	MinHunger = 0
	MaxHunger = 100
)

// ClampHunger keeps h within [MinHunger, MaxHunger].
func ClampHunger(h float64) float64 {
	return clamp(h, MinHunger, MaxHunger)
}

// DecayHunger applies dt seconds of hunger loss. Sprinting multiplies the rate.
func DecayHunger(h, rate, sprintMultiplier float64, mode components.SpeedMode, dt float64) float64 {
	loss := rate * dt
	if mode == components.SpeedSprint {
		loss *= sprintMultiplier
	}
	return ClampHunger(h - loss)
}

// FeedHunger restores gain hunger, capped at MaxHunger.
func FeedHunger(h, gain float64) float64 {
	return ClampHunger(h + gain)
}
