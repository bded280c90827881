// Package application contains use-case orchestration services.
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/ericfisherdev/hotelhub/internal/domain/port/driven"
)

// SweepService periodically removes expired session records.
type SweepService struct {
	store    driven.SessionStore
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewSweepService creates a SweepService that runs every interval.
func NewSweepService(store driven.SessionStore, interval time.Duration, logger *slog.Logger) *SweepService {
	return &SweepService{
		store:    store,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs an immediate sweep, then sweeps on the configured interval.
// Start blocks until the context is canceled.
func (s *SweepService) Start(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SweepService) sweep(ctx context.Context) {
	start := time.Now()

	removed, err := s.store.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		s.logger.Error("session sweep failed", "error", err)
		return
	}

	s.logger.Info("session sweep complete",
		"removed", removed,
		"duration", time.Since(start).Round(time.Millisecond),
	)
}
