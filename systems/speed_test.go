package systems

import (
	"testing"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
)

func TestDecideSpeed(t *testing.T) {
	// Cheap sprint: sprintCost = d/4, walkCost = d/2
	cheap := SpeedParams{NormalSpeed: 2, SprintSpeed: 4, DecayRate: 1, SprintMultiplier: 1, AffordMargin: 5, WorthMargin: 2}

	tests := []struct {
		name      string
		params    SpeedParams
		hunger    float64
		distance  float64
		hasTarget bool
		want      components.SpeedMode
	}{
		{"no target", cheap, 100, 10, false, components.SpeedNormal},
		{"worth and affordable", cheap, 100, 12, true, components.SpeedSprint},
		// walkCost - sprintCost = 8/4 = 2, exactly the margin
		{"savings exactly at margin", cheap, 100, 8, true, components.SpeedNormal},
		{"savings just over margin", cheap, 100, 8.5, true, components.SpeedSprint},
		// sprintCost = 3, needs hunger > 8
		{"hunger exactly at afford margin", cheap, 8, 12, true, components.SpeedNormal},
		{"hunger just over afford margin", cheap, 8.5, 12, true, components.SpeedSprint},
		{"default tuning never pays off", SpeedParamsFromConfig(&config.Default().Prey), 100, 4, true, components.SpeedNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideSpeed(tt.hunger, tt.distance, tt.hasTarget, tt.params)
			if got != tt.want {
				t.Errorf("DecideSpeed(h=%v, d=%v) = %v, want %v", tt.hunger, tt.distance, got, tt.want)
			}
		})
	}
}

func TestDecideSpeedDeterministic(t *testing.T) {
	p := SpeedParamsFromConfig(&config.Default().Prey)
	p.SprintMultiplier = 1.2

	first := DecideSpeed(60, 15, true, p)
	for i := 0; i < 100; i++ {
		if got := DecideSpeed(60, 15, true, p); got != first {
			t.Fatalf("DecideSpeed changed between calls: %v then %v", first, got)
		}
	}
}
