package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// IdleSessionStore is implemented by game.SessionManager.
type IdleSessionStore interface {
	CleanupIdleSessions(maxIdle time.Duration) int
}

type Worker struct {
	Sessions    IdleSessionStore
	Interval    time.Duration
	IdleTimeout time.Duration
}

func NewWorker(sessions IdleSessionStore, interval, idleTimeout time.Duration) *Worker {
	return &Worker{Sessions: sessions, Interval: interval, IdleTimeout: idleTimeout}
}

// Start runs the sweep on a ticker until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.runCleanup()
			case <-ctx.Done():
				log.Info().Msg("[CLEANUP] Background worker stopped")
				return
			}
		}
	}()
	log.Info().Dur("interval", w.Interval).Dur("idle_timeout", w.IdleTimeout).Msg("[CLEANUP] Background worker started")
}

func (w *Worker) runCleanup() int {
	removed := w.Sessions.CleanupIdleSessions(w.IdleTimeout)
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("[CLEANUP] Removed idle sessions")
	}
	return removed
}
