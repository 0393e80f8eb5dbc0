package worker

// cleanup_cron.go
// Background goroutine that periodically purges used or expired password-reset
// tokens. The reset flow also deletes expired tokens on sight; this sweep
// catches the ones nobody ever tried to consume.

import (
	"context"
	"time"

	"tienda/internal/repository"

	"github.com/rs/zerolog/log"
)

const cleanupTickInterval = 15 * time.Minute

// StartCleanupCron launches the purge goroutine. It respects the context for
// graceful shutdown.
func StartCleanupCron(ctx context.Context, resets repository.PasswordResetRepository) {
	go func() {
		ticker := time.NewTicker(cleanupTickInterval)
		defer ticker.Stop()

		log.Info().Msg("cleanup_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("cleanup_cron: shutting down")
				return
			case <-ticker.C:
				deleted, err := resets.DeleteExpired(ctx, time.Now().UTC())
				if err != nil {
					log.Error().Err(err).Msg("cleanup_cron: purge failed")
					continue
				}
				if deleted > 0 {
					log.Info().Int64("deleted", deleted).Msg("cleanup_cron: purged reset tokens")
				}
			}
		}
	}()
}
