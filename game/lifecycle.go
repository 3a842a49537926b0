package game

import (
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

// onGameOver runs once when the current session ends.
func (g *Game) onGameOver(s *Session) {
	g.emit(telemetry.NewGameOverEvent(g.tick, s.Reason().String()))
	g.finishSession(s.Reason())
}

// finishSession writes the session summary and fires the end-state callback.
func (g *Game) finishSession(reason systems.EndReason) {
	g.summarized = true
	summary := g.Summary()

	g.session.Logger().Info("session summary", "summary", summary)

	if err := g.outputManager.WriteSession(summary); err != nil {
		g.logger.Error("failed to write session summary", "error", err)
	}
	g.flushEvents()
	g.metrics.SetState(g.worldState(), g.session.Over())

	if g.opts.GameOverCallback != nil {
		g.opts.GameOverCallback(summary, reason)
	}
}
