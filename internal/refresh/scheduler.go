// Package refresh drives the scheduled full-region refresh cycle.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sejal-1604/MGNREGA/internal/domain"
)

// Source re-resolves the full region set and replaces the cache.
type Source interface {
	Refresh(ctx context.Context) ([]domain.DistrictData, error)
}

// Exporter publishes a refresh cycle's records downstream.
type Exporter interface {
	Export(ctx context.Context, records []domain.DistrictData) error
}

// Scheduler runs one refresh immediately and then one per interval until the
// context is cancelled. Government data refreshes at most daily, so the
// default interval is 24h.
type Scheduler struct {
	source   Source
	exporter Exporter // nil disables export
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewScheduler creates a Scheduler. The clock is injected so tests can step
// time; pass a nil exporter when Kafka export is not configured.
func NewScheduler(source Source, exporter Exporter, interval time.Duration, clock clockwork.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		source:   source,
		exporter: exporter,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// Run executes the refresh loop until the context is cancelled. Cycle
// failures are logged, never fatal; the next tick retries.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("initial refresh failed", "error", err)
	}

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("refresh scheduler stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			if err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("scheduled refresh failed", "error", err)
			}
		}
	}
}

// RunOnce performs a single refresh-and-export cycle. Idempotent; safe to
// invoke concurrently with the schedule (cache entries are replaced
// wholesale).
func (s *Scheduler) RunOnce(ctx context.Context) error {
	records, err := s.source.Refresh(ctx)
	if err != nil {
		return err
	}
	if s.exporter == nil || len(records) == 0 {
		return nil
	}
	if err := s.exporter.Export(ctx, records); err != nil {
		// Export is best-effort: the cache is already refreshed.
		s.logger.Warn("export after refresh failed", "records", len(records), "error", err)
	}
	return nil
}
