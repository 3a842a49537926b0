package systems

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/arena"
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
)

// FoodSpawner drops food at random arena positions on a timer.
type FoodSpawner struct {
	cfg     *config.SpawnerConfig
	filter  ecs.Filter1[components.Food]
	gate    SpawnGate
	planes  PlaneSource
	factory FoodFactory
	rng     *rand.Rand

	recorder Recorder
	timer    float64
}

// NewFoodSpawner creates a spawner.
func NewFoodSpawner(
	w *ecs.World,
	cfg *config.SpawnerConfig,
	rng *rand.Rand,
	gate SpawnGate,
	planes PlaneSource,
	factory FoodFactory,
) *FoodSpawner {
	return &FoodSpawner{
		cfg:      cfg,
		filter:   *ecs.NewFilter1[components.Food](w),
		gate:     gate,
		planes:   planes,
		factory:  factory,
		rng:      rng,
		recorder: NopRecorder{},
	}
}

// SetRecorder routes spawn events to r.
func (s *FoodSpawner) SetRecorder(r Recorder) {
	if r == nil {
		r = NopRecorder{}
	}
	s.recorder = r
}

// SetGate replaces the spawn permission check.
func (s *FoodSpawner) SetGate(g SpawnGate) {
	s.gate = g
}

// Update advances the spawn timer by frameDt. While the gate denies spawning
// the timer keeps running and a spawn happens as soon as it allows again.
func (s *FoodSpawner) Update(frameDt float64) {
	s.timer += frameDt
	if s.timer < s.cfg.SpawnInterval || !s.gate.CanSpawnFood() {
		return
	}
	s.TrySpawn()
	s.timer = 0
}

// TrySpawn creates one food item if the field is below the cap.
// Returns false when nothing was spawned.
func (s *FoodSpawner) TrySpawn() bool {
	if s.Count() >= s.cfg.MaxFood {
		return false
	}

	plane := s.planes.ArenaPlane()
	if plane == nil {
		slog.Error("arena plane missing, skipping food spawn")
		return false
	}

	pos := arena.FromPlane(*plane).RandomPoint(s.rng, s.cfg.SpawnHeight)
	e := s.factory.SpawnFood(pos)
	s.recorder.FoodSpawned(e, pos)
	return true
}

// Count returns the number of food items in the world.
func (s *FoodSpawner) Count() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Timer returns the seconds accumulated toward the next spawn.
func (s *FoodSpawner) Timer() float64 {
	return s.timer
}
