package draft

import (
	"context"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// DefaultAutoSaveInterval is the snapshot cadence clients rely on: an
// in-progress session is never more than two seconds stale on disk.
const DefaultAutoSaveInterval = 2 * time.Second

// AutoSaver periodically snapshots a live draft to the store. The snapshot
// function returns the current draft, or nil when there is nothing worth
// saving; drafts without any exercises are skipped.
type AutoSaver struct {
	store    *Store
	userID   int
	interval time.Duration
	snapshot func() *models.WorkoutSession
	log      *slog.Logger
}

// NewAutoSaver creates an AutoSaver. A zero interval falls back to the
// default cadence.
func NewAutoSaver(store *Store, userID int, interval time.Duration, snapshot func() *models.WorkoutSession, log *slog.Logger) *AutoSaver {
	if interval <= 0 {
		interval = DefaultAutoSaveInterval
	}
	return &AutoSaver{
		store:    store,
		userID:   userID,
		interval: interval,
		snapshot: snapshot,
		log:      log,
	}
}

// Run snapshots the draft on every tick until the context is cancelled.
// Save failures are logged and retried on the next tick.
func (a *AutoSaver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			session := a.snapshot()
			if session == nil || len(session.Exercises) == 0 {
				continue
			}
			if err := a.store.Save(a.userID, session); err != nil && a.log != nil {
				a.log.Warn("draft autosave failed", "user_id", a.userID, "error", err)
			}
		}
	}
}
