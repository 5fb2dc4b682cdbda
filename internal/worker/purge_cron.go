package worker

// purge_cron.go
// Background goroutine that periodically hard-deletes soft-deleted payments
// once they pass the retention window. Deleted payments stay queryable in
// the history listing until the purge removes them.

import (
	"context"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/repository"

	"github.com/rs/zerolog/log"
)

const purgeTickInterval = 24 * time.Hour

// PurgeCronConfig holds all dependencies for the purge goroutine.
type PurgeCronConfig struct {
	PaymentRepo   repository.PaymentRepository
	RetentionDays int
}

// StartPurgeCron launches a background goroutine that runs once at startup
// and then daily. It respects the context for graceful shutdown.
func StartPurgeCron(ctx context.Context, cfg PurgeCronConfig) {
	go func() {
		ticker := time.NewTicker(purgeTickInterval)
		defer ticker.Stop()

		log.Info().Int("retention_days", cfg.RetentionDays).Msg("purge_cron: started")
		purgeExpired(ctx, cfg)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("purge_cron: shutting down")
				return
			case <-ticker.C:
				purgeExpired(ctx, cfg)
			}
		}
	}()
}

func purgeExpired(ctx context.Context, cfg PurgeCronConfig) {
	cutoff := time.Now().AddDate(0, 0, -cfg.RetentionDays)
	purged, err := cfg.PaymentRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("purge_cron: failed to purge deleted payments")
		return
	}
	if purged > 0 {
		log.Info().Int64("purged", purged).Time("cutoff", cutoff).Msg("purge_cron: removed expired payments")
	}
}
