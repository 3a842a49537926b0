package systems

import (
	"testing"

	"github.com/pthm-cable/forage/components"
)

func TestAdvanceSprintDutyCycle(t *testing.T) {
	var c components.SprintCycle
	const dt = 0.5

	// Sprint 1s, cool down 1.5s
	want := []components.SpeedMode{
		components.SpeedSprint, // cooldown already expired
		components.SpeedSprint, // 0.5 left
		components.SpeedNormal, // sprint over, cooldown 1.5
		components.SpeedNormal, // 1.0
		components.SpeedNormal, // 0.5
		components.SpeedSprint, // cooldown over
	}

	for i, w := range want {
		if got := AdvanceSprint(&c, dt, 1, 1.5); got != w {
			t.Errorf("step %d: mode = %v, want %v", i, got, w)
		}
	}
}
