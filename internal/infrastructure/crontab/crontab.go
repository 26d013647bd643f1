package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"chapter-api/internal/config"
	"chapter-api/internal/infrastructure/inference/openrouter"
	"chapter-api/internal/infrastructure/logger"
	"chapter-api/internal/infrastructure/metrics"
)

const (
	DefaultCatalogSyncInterval = 60               // in minutes
	CronJobTimeout             = 10 * time.Minute // Timeout for each cron job execution
)

type Crontab struct {
	ctab       *crontab.Crontab
	openRouter *openrouter.Client
}

func NewCrontab(openRouter *openrouter.Client) *Crontab {
	return &Crontab{
		ctab:       crontab.New(),
		openRouter: openRouter,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()
	// warm the catalog once on server start
	c.refreshCatalog(ctx)

	cfg := config.GetGlobal()
	if cfg != nil && cfg.CatalogSyncEnabled {
		syncInterval := cfg.CatalogSyncIntervalMinutes
		if syncInterval <= 0 {
			syncInterval = DefaultCatalogSyncInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", syncInterval)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.refreshCatalog(jobCtx)
		}); err != nil {
			return fmt.Errorf("failed to add catalog sync job: %w", err)
		}
		log.Info().Msgf("Catalog sync scheduled: every %d minute(s)", syncInterval)
	}

	// Schedule environment reload job
	if err := c.ctab.AddJob("* * * * *", func() {
		if _, err := config.Load(); err != nil {
			log.Warn().Err(err).Msg("config reload failed, keeping previous config")
		}
	}); err != nil {
		return fmt.Errorf("failed to add env reload job: %w", err)
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) refreshCatalog(ctx context.Context) {
	log := logger.GetLogger()

	if err := c.openRouter.RefreshCatalog(ctx); err != nil {
		// Non-fatal: the backend stays permissive until the next sync.
		log.Error().Err(err).Msg("Failed to refresh model catalog")
		return
	}

	models := c.openRouter.ListModels(ctx)
	metrics.CatalogModels.Set(float64(len(models)))
	log.Info().Msgf("Catalog refreshed with %d models", len(models))
}
