package workers

import (
	"context"
	"time"

	"careconnect_web/internal/logger"
	"careconnect_web/internal/session"
)

type SessionWorker struct {
	purger   session.Purger
	interval time.Duration
}

func NewSessionWorker(purger session.Purger, interval time.Duration) *SessionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionWorker{purger: purger, interval: interval}
}

// Start runs the cleanup loop until ctx is cancelled.
func (w *SessionWorker) Start(ctx context.Context) {
	go w.purgeExpired(ctx)
}

// purgeExpired drops sessions whose token has expired
func (w *SessionWorker) purgeExpired(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

func (w *SessionWorker) RunOnce(ctx context.Context) {
	n, err := w.purger.Purge(ctx)
	if err != nil {
		logger.Error("Error purging expired sessions", "error", err)
		return
	}
	if n > 0 {
		logger.Info("Purged expired sessions", "count", n)
	}
}
