package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/arena"
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
)

// EnemySystem runs the hunting agent. It patrols until it sees its target,
// then chases it for good with a sprint/cooldown duty cycle.
type EnemySystem struct {
	cfg    *config.EnemyConfig
	world  *ecs.World
	filter ecs.Filter4[components.Transform, components.Motion, components.Hunter, components.Capabilities]

	transforms *ecs.Map1[components.Transform]

	planes    PlaneSource
	mover     Mover
	destroyer Destroyer
	gameOver  GameOverTrigger
	recorder  Recorder
	tracker   *arena.Tracker
	rng       *rand.Rand
}

// NewEnemySystem creates the enemy system.
func NewEnemySystem(
	w *ecs.World,
	cfg *config.EnemyConfig,
	rng *rand.Rand,
	planes PlaneSource,
	mover Mover,
	destroyer Destroyer,
	gameOver GameOverTrigger,
) *EnemySystem {
	return &EnemySystem{
		cfg:        cfg,
		world:      w,
		filter:     *ecs.NewFilter4[components.Transform, components.Motion, components.Hunter, components.Capabilities](w),
		transforms: ecs.NewMap1[components.Transform](w),
		planes:     planes,
		mover:      mover,
		destroyer:  destroyer,
		gameOver:   gameOver,
		recorder:   NopRecorder{},
		tracker:    arena.NewTracker("enemy"),
		rng:        rng,
	}
}

// SetRecorder routes gameplay events to r.
func (s *EnemySystem) SetRecorder(r Recorder) {
	if r == nil {
		r = NopRecorder{}
	}
	s.recorder = r
}

// SetGameOver replaces the session the enemy reports captures to.
func (s *EnemySystem) SetGameOver(t GameOverTrigger) {
	s.gameOver = t
}

// FixedTick runs one physics step for every enemy. Movement uses fixedDt,
// the sprint cycle uses the latest frame delta.
func (s *EnemySystem) FixedTick(fixedDt, frameDt float64) {
	query := s.filter.Query()
	for query.Next() {
		e := query.Entity()
		tr, mo, h, caps := query.Get()

		if h.HasTarget {
			s.chase(e, tr, mo, h, caps, fixedDt, frameDt)
		} else {
			s.patrol(e, tr, mo, h, caps, fixedDt)
			s.lookout(e, tr, mo, h, caps)
		}

		tr.Rotation = LookRotation(mo.Direction)
	}
}

func (s *EnemySystem) patrol(
	e ecs.Entity,
	tr *components.Transform,
	mo *components.Motion,
	h *components.Hunter,
	caps *components.Capabilities,
	fixedDt float64,
) {
	mo.Mode = components.SpeedNormal
	mo.Speed = caps.Patrol()

	// Movement against the bounds from the previous refresh
	next := r3.Add(tr.Position, r3.Scale(mo.Speed*fixedDt, mo.Direction))
	if h.Bounds.Contains(next) {
		s.mover.MoveTo(e, next)
	} else {
		s.turn(e, mo)
	}

	h.DirTimer += fixedDt
	if h.DirTimer >= caps.DirectionChangeInterval {
		s.turn(e, mo)
		h.DirTimer = 0
	}

	h.Bounds = s.tracker.Update(s.planes.ArenaPlane())
}

// lookout latches HasTarget once the target is within range and view.
func (s *EnemySystem) lookout(
	e ecs.Entity,
	tr *components.Transform,
	mo *components.Motion,
	h *components.Hunter,
	caps *components.Capabilities,
) {
	targetPos, ok := s.targetPosition(h)
	if !ok {
		return
	}
	if _, visible := CanSee(tr.Position, mo.Direction, targetPos, caps.DetectionRange, caps.FOV); visible {
		h.HasTarget = true
		s.recorder.TargetSighted(e, h.Target)
	}
}

func (s *EnemySystem) chase(
	e ecs.Entity,
	tr *components.Transform,
	mo *components.Motion,
	h *components.Hunter,
	caps *components.Capabilities,
	fixedDt, frameDt float64,
) {
	targetPos, ok := s.targetPosition(h)
	if !ok {
		return
	}

	mo.Mode = AdvanceSprint(&h.Sprint, frameDt, s.cfg.SprintDuration, s.cfg.SprintCooldown)
	mo.Speed = caps.SpeedFor(mo.Mode)
	if mo.Mode == components.SpeedSprint {
		s.recorder.Sprinted(e)
	}

	if dir, valid := flatten(r3.Sub(targetPos, tr.Position)); valid {
		mo.Direction = dir
	}

	// The chase ignores the arena bounds
	s.mover.MoveTo(e, r3.Add(tr.Position, r3.Scale(mo.Speed*fixedDt, mo.Direction)))
}

func (s *EnemySystem) turn(e ecs.Entity, mo *components.Motion) {
	mo.Direction = RandomHeading(s.rng)
	s.recorder.HeadingChanged(e)
}

// targetPosition returns where the tracked target is, if it still exists.
func (s *EnemySystem) targetPosition(h *components.Hunter) (r3.Vec, bool) {
	if h.Target.IsZero() || !s.world.Alive(h.Target) || !s.transforms.HasAll(h.Target) {
		return r3.Vec{}, false
	}
	return s.transforms.Get(h.Target).Position, true
}

// OnOverlap handles the enemy touching another collider. Touching the player ends the game.
func (s *EnemySystem) OnOverlap(self, other ecs.Entity, tag components.Tag) {
	if tag != components.TagPlayer || !s.world.Alive(self) {
		return
	}
	s.destroyer.DestroyObject(other)
	s.recorder.Captured(self, other)
	if s.gameOver != nil {
		s.gameOver.TriggerGameOver(ReasonCaptured)
	}
}

// Chasing reports whether any enemy has latched onto its target.
func (s *EnemySystem) Chasing() bool {
	query := s.filter.Query()
	for query.Next() {
		_, _, h, _ := query.Get()
		if h.HasTarget {
			query.Close()
			return true
		}
	}
	return false
}
