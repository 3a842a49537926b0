package systems

import "github.com/pthm-cable/forage/components"

// AdvanceSprint steps a sprint duty cycle by dt seconds and returns the mode
// to move at. A fresh cycle has an expired cooldown, so it opens with a sprint.
func AdvanceSprint(c *components.SprintCycle, dt, sprintDuration, cooldown float64) components.SpeedMode {
	if c.Sprinting {
		c.SprintTimer -= dt
		if c.SprintTimer <= 0 {
			c.Sprinting = false
			c.CooldownTimer = cooldown
		}
	} else {
		c.CooldownTimer -= dt
		if c.CooldownTimer <= 0 {
			c.Sprinting = true
			c.SprintTimer = sprintDuration
		}
	}

	if c.Sprinting {
		return components.SpeedSprint
	}
	return components.SpeedNormal
}
