package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/forage/arena"
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
)

// PreySystem runs the foraging agent: wander inside the arena, spot food in a
// view cone, pick a walking or sprinting speed for it, and scan around when
// nothing is in sight.
type PreySystem struct {
	cfg    *config.PreyConfig
	speed  SpeedParams
	world  *ecs.World
	filter ecs.Filter4[components.Transform, components.Motion, components.Forager, components.Capabilities]

	foragers *ecs.Map1[components.Forager]

	index     *FoodIndex
	planes    PlaneSource
	mover     Mover
	destroyer Destroyer
	recorder  Recorder
	tracker   *arena.Tracker
	rng       *rand.Rand

	neighbors []Neighbor
}

// NewPreySystem creates the prey system.
func NewPreySystem(
	w *ecs.World,
	cfg *config.PreyConfig,
	rng *rand.Rand,
	index *FoodIndex,
	planes PlaneSource,
	mover Mover,
	destroyer Destroyer,
) *PreySystem {
	return &PreySystem{
		cfg:       cfg,
		speed:     SpeedParamsFromConfig(cfg),
		world:     w,
		filter:    *ecs.NewFilter4[components.Transform, components.Motion, components.Forager, components.Capabilities](w),
		foragers:  ecs.NewMap1[components.Forager](w),
		index:     index,
		planes:    planes,
		mover:     mover,
		destroyer: destroyer,
		recorder:  NopRecorder{},
		tracker:   arena.NewTracker("prey"),
		rng:       rng,
		neighbors: make([]Neighbor, 0, 32),
	}
}

// SetRecorder routes gameplay events to r.
func (s *PreySystem) SetRecorder(r Recorder) {
	if r == nil {
		r = NopRecorder{}
	}
	s.recorder = r
}

// FixedTick runs one physics step for every prey. fixedDt drives movement and
// timers; frameDt is the latest frame delta and drives hunger decay.
func (s *PreySystem) FixedTick(fixedDt, frameDt float64) {
	query := s.filter.Query()
	for query.Next() {
		tr, mo, fo, caps := query.Get()

		// A scan owns the agent until it completes
		if fo.Scan.Active {
			continue
		}

		s.step(query.Entity(), tr, mo, fo, caps, fixedDt, frameDt)
	}
}

func (s *PreySystem) step(
	e ecs.Entity,
	tr *components.Transform,
	mo *components.Motion,
	fo *components.Forager,
	caps *components.Capabilities,
	fixedDt, frameDt float64,
) {
	// Movement against the bounds from the previous refresh
	next := r3.Add(tr.Position, r3.Scale(mo.Speed*fixedDt, mo.Direction))
	if fo.Bounds.Contains(next) {
		s.mover.MoveTo(e, next)
	} else {
		s.turn(e, mo)
	}

	// Periodic re-direction
	fo.DirTimer += fixedDt
	if fo.DirTimer >= caps.DirectionChangeInterval {
		s.turn(e, mo)
		fo.DirTimer = 0
	}

	fo.Bounds = s.tracker.Update(s.planes.ArenaPlane())

	target, dist, ok := s.nearestFood(tr.Position, mo.Direction, caps)
	fo.Target, fo.HasTarget = target.E, ok

	params := s.speed
	params.NormalSpeed = caps.NormalSpeed
	params.SprintSpeed = caps.SprintSpeed
	mo.Mode = DecideSpeed(fo.Hunger, dist, ok, params)
	mo.Speed = caps.SpeedFor(mo.Mode)

	// Seek
	if ok {
		if dir, valid := flatten(r3.Sub(target.Pos, tr.Position)); valid {
			mo.Direction = dir
		}
	}

	fo.Hunger = DecayHunger(fo.Hunger, s.cfg.HungerDecayRate, s.cfg.SprintHungerMultiplier, mo.Mode, frameDt)
	if mo.Mode == components.SpeedSprint {
		s.recorder.Sprinted(e)
	}

	tr.Rotation = LookRotation(mo.Direction)

	if ok {
		fo.ScanTimer = 0
		return
	}
	fo.ScanTimer += fixedDt
	if fo.ScanTimer >= s.cfg.ScanInterval {
		StartScan(&fo.Scan, tr.Rotation, s.rng, s.cfg.ScanMinAngle, s.cfg.ScanMaxAngle, s.cfg.RotationDuration)
		fo.ScanTimer = 0
		s.recorder.ScanStarted(e)
	}
}

// turn draws a new random heading.
func (s *PreySystem) turn(e ecs.Entity, mo *components.Motion) {
	mo.Direction = RandomHeading(s.rng)
	s.recorder.HeadingChanged(e)
}

// nearestFood returns the closest visible food item and its 3D distance from
// pos. The first of equally close items wins.
func (s *PreySystem) nearestFood(pos, heading r3.Vec, caps *components.Capabilities) (Neighbor, float64, bool) {
	s.neighbors = s.index.QueryRadiusInto(s.neighbors[:0], pos, caps.DetectionRange)

	var best Neighbor
	found := false
	shortest := math.Inf(1)
	for _, n := range s.neighbors {
		if !s.world.Alive(n.E) {
			continue
		}
		dist, visible := CanSee(pos, heading, n.Pos, caps.DetectionRange, caps.FOV)
		if !visible {
			continue
		}
		if dist < shortest {
			shortest = dist
			best = n
			found = true
		}
	}
	return best, shortest, found
}

// FrameTick advances in-progress scans by frameDt.
func (s *PreySystem) FrameTick(frameDt float64) {
	query := s.filter.Query()
	for query.Next() {
		tr, mo, fo, _ := query.Get()
		if !fo.Scan.Active {
			continue
		}

		rot, done := AdvanceScan(&fo.Scan, frameDt)
		tr.Rotation = rot
		if done {
			if dir, ok := flatten(Forward(rot)); ok {
				mo.Direction = dir
			}
		}
	}
}

// OnOverlap handles the prey touching another collider. Food is eaten.
func (s *PreySystem) OnOverlap(self, other ecs.Entity, tag components.Tag) {
	if tag != components.TagFood || !s.world.Alive(self) || !s.foragers.HasAll(self) {
		return
	}
	fo := s.foragers.Get(self)
	fo.Hunger = FeedHunger(fo.Hunger, s.cfg.HungerGain)
	s.destroyer.DestroyObject(other)
	s.recorder.FoodEaten(self, fo.Hunger)
}

// Hunger returns the hunger of the first live prey.
func (s *PreySystem) Hunger() (float64, bool) {
	query := s.filter.Query()
	if !query.Next() {
		return 0, false
	}
	_, _, fo, _ := query.Get()
	hunger := fo.Hunger
	query.Close()
	return hunger, true
}
