package services

import (
	"context"
	"time"

	"github.com/khabaroff/heart-risk-dashboard/src/logging"
)

// ExpiredRemover drops expired entries and reports how many it removed
type ExpiredRemover interface {
	DeleteExpired() int
}

// CleanupService periodically sweeps expired sessions
type CleanupService struct {
	target   ExpiredRemover
	interval time.Duration
	done     chan struct{}
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(target ExpiredRemover, interval time.Duration) *CleanupService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CleanupService{
		target:   target,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until ctx is canceled or Stop is called
func (cs *CleanupService) Start(ctx context.Context) {
	logger := logging.NewLogger("cleanup")

	go func() {
		ticker := time.NewTicker(cs.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info().Msg("cleanup service stopped")
				return
			case <-cs.done:
				logger.Info().Msg("cleanup service stopped")
				return
			case <-ticker.C:
				cs.Sweep()
			}
		}
	}()

	logger.Info().Dur("interval", cs.interval).Msg("cleanup service started")
}

// Stop stops the cleanup service
func (cs *CleanupService) Stop() {
	close(cs.done)
}

// Sweep performs one pass and returns the number of removed entries
func (cs *CleanupService) Sweep() int {
	removed := cs.target.DeleteExpired()
	if removed > 0 {
		logger := logging.NewLogger("cleanup")
		logger.Info().Int("removed", removed).Msg("expired sessions removed")
	}
	return removed
}
