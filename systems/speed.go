package systems

import (
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
)

// SpeedParams holds the inputs of the sprint cost-benefit check.
type SpeedParams struct {
	NormalSpeed      float64
	SprintSpeed      float64
	DecayRate        float64
	SprintMultiplier float64
	AffordMargin     float64 // hunger that must remain after paying for the sprint
	WorthMargin      float64 // hunger the sprint must save over walking
}

// SpeedParamsFromConfig builds SpeedParams from prey configuration.
func SpeedParamsFromConfig(cfg *config.PreyConfig) SpeedParams {
	return SpeedParams{
		NormalSpeed:      cfg.NormalSpeed,
		SprintSpeed:      cfg.SprintSpeed,
		DecayRate:        cfg.HungerDecayRate,
		SprintMultiplier: cfg.SprintHungerMultiplier,
		AffordMargin:     cfg.SprintAffordMargin,
		WorthMargin:      cfg.SprintWorthMargin,
	}
}

// DecideSpeed picks the speed mode for reaching a target distance away.
// Without a target the agent walks. It sprints only when it can afford the
// sprint with AffordMargin to spare and sprinting saves more than WorthMargin
// hunger compared to walking.
func DecideSpeed(hunger, distance float64, hasTarget bool, p SpeedParams) components.SpeedMode {
	if !hasTarget {
		return components.SpeedNormal
	}

	timeToSprint := distance / p.SprintSpeed
	timeToWalk := distance / p.NormalSpeed

	sprintCost := timeToSprint * p.DecayRate * p.SprintMultiplier
	walkCost := timeToWalk * p.DecayRate

	if hunger > sprintCost+p.AffordMargin && walkCost-sprintCost > p.WorthMargin {
		return components.SpeedSprint
	}
	return components.SpeedNormal
}
