package game

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/pthm-cable/forage/systems"
)

// HungerSource reports the hunger of the live prey. ok is false when no prey exists.
type HungerSource interface {
	Hunger() (hunger float64, ok bool)
}

// Session is the game coordinator for one play-through. It owns the game-over
// flag, gates food spawning on prey hunger and freezes time when the game ends.
type Session struct {
	id        uuid.UUID
	prey      HungerSource
	logger    *slog.Logger
	over      bool
	reason    systems.EndReason
	timeScale float64
	endTick   int32
	clock     func() int32

	hooks []func(*Session)
}

// NewSession creates a running session polling prey for hunger.
// tick, when non-nil, stamps the tick the session ended on.
func NewSession(prey HungerSource, logger *slog.Logger, tick func() int32) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &Session{
		id:        id,
		prey:      prey,
		logger:    logger.With("session", id.String()),
		timeScale: 1,
		clock:     tick,
	}
}

// OnGameOver registers fn to run once when the session ends.
func (s *Session) OnGameOver(fn func(*Session)) {
	s.hooks = append(s.hooks, fn)
}

// Update polls the prey and ends the session once hunger has run out.
func (s *Session) Update() {
	if s.over {
		return
	}
	hunger, ok := s.prey.Hunger()
	if ok && hunger <= systems.MinHunger {
		s.TriggerGameOver(systems.ReasonStarved)
	}
}

// TriggerGameOver ends the session. Only the first call has any effect.
func (s *Session) TriggerGameOver(reason systems.EndReason) {
	if s.over {
		return
	}
	s.over = true
	s.reason = reason
	s.timeScale = 0
	if s.clock != nil {
		s.endTick = s.clock()
	}

	s.logger.Info("game over", "reason", reason.String(), "tick", s.endTick)
	for _, fn := range s.hooks {
		fn(s)
	}
}

// CanSpawnFood reports whether the prey exists and is not full.
func (s *Session) CanSpawnFood() bool {
	hunger, ok := s.prey.Hunger()
	return ok && hunger < systems.MaxHunger
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID { return s.id }

// Over reports whether the session has ended.
func (s *Session) Over() bool { return s.over }

// Reason returns why the session ended, or ReasonNone while it runs.
func (s *Session) Reason() systems.EndReason { return s.reason }

// TimeScale is 1 while running and 0 once the game is over.
func (s *Session) TimeScale() float64 { return s.timeScale }

// EndTick returns the fixed tick the session ended on.
func (s *Session) EndTick() int32 { return s.endTick }

// Logger returns the session-scoped logger.
func (s *Session) Logger() *slog.Logger { return s.logger }
