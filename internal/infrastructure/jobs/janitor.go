package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
)

// Sweeper is the part of the edge cache the janitor drives.
type Sweeper interface {
	SweepExpired() int
}

// Janitor periodically evicts expired edge-cache entries so the cache
// dir does not grow past its TTL horizon between requests.
type Janitor struct {
	cron   *cron.Cron
	cache  Sweeper
	cfg    config.CacheConfig
	logger *zap.Logger
}

func NewJanitor(sweeper Sweeper, cfg config.CacheConfig, logger *zap.Logger) *Janitor {
	return &Janitor{
		cron:   cron.New(),
		cache:  sweeper,
		cfg:    cfg,
		logger: logger,
	}
}

// Start schedules the sweep; a non-positive interval disables it.
func (j *Janitor) Start() error {
	if j.cfg.CleanupInterval <= 0 {
		return nil
	}

	spec := fmt.Sprintf("@every %s", j.cfg.CleanupInterval)
	if _, err := j.cron.AddFunc(spec, j.sweep); err != nil {
		return fmt.Errorf("scheduling cache sweep: %w", err)
	}

	j.cron.Start()
	j.logger.Info("cache janitor started", zap.Duration("interval", j.cfg.CleanupInterval))
	return nil
}

// Stop halts the schedule and waits for an in-flight sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Janitor) sweep() {
	if removed := j.cache.SweepExpired(); removed > 0 {
		j.logger.Info("expired cache entries removed", zap.Int("count", removed))
	}
}
