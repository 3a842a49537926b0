package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/components"
)

// Mover relocates bodies while respecting collision constraints.
// A false return means the move was rejected and nothing changed.
type Mover interface {
	MoveTo(e ecs.Entity, pos r3.Vec) bool
}

// BodyMover writes positions straight into the Transform component.
// It rejects non-finite targets and entities that are gone.
type BodyMover struct {
	world      *ecs.World
	transforms *ecs.Map1[components.Transform]
}

// NewBodyMover creates a mover for the entities of w.
func NewBodyMover(w *ecs.World) *BodyMover {
	return &BodyMover{
		world:      w,
		transforms: ecs.NewMap1[components.Transform](w),
	}
}

// MoveTo implements Mover.
func (m *BodyMover) MoveTo(e ecs.Entity, pos r3.Vec) bool {
	if !isFinite(pos) || !m.world.Alive(e) || !m.transforms.HasAll(e) {
		return false
	}
	m.transforms.Get(e).Position = pos
	return true
}
