package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/auroraminds/backend/internal/infrastructure/buffer"
	"github.com/auroraminds/backend/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the grant buffer is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// GrantProcessor replays buffered XP grants against the user store. Grants
// land in the buffer when an increment fails after its triggering record
// (task or focus session) was already persisted; the primary action has long
// since succeeded, so all this processor owes anyone is eventual delivery.
type GrantProcessor struct {
	store   *buffer.Store
	monitor ConnectionHealth
	users   repository.UserRepository
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     ProcessorConfig
}

func NewGrantProcessor(
	store *buffer.Store,
	monitor ConnectionHealth,
	users repository.UserRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *GrantProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gp := &GrantProcessor{
		store:   store,
		monitor: monitor,
		users:   users,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = gp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := gp.Drain(ctx); err != nil {
			gp.logger.Error("grant buffer drain failed", zap.Error(err))
		}
	})

	return gp
}

// Start launches the cron scheduler.
func (gp *GrantProcessor) Start() {
	if gp == nil || gp.cron == nil {
		return
	}
	gp.cron.Start()
	gp.logger.Info("grant processor started")
}

// Stop gracefully stops the scheduler.
func (gp *GrantProcessor) Stop(ctx context.Context) {
	if gp == nil || gp.cron == nil {
		return
	}
	stopCtx := gp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	gp.logger.Info("grant processor stopped")
}

// Drain applies pending grants synchronously.
func (gp *GrantProcessor) Drain(ctx context.Context) error {
	if gp == nil || gp.store == nil {
		return nil
	}
	if gp.monitor != nil && !gp.monitor.IsOnline() {
		gp.logger.Debug("skipping grant drain (offline)")
		return nil
	}

	grants, err := gp.store.GetBatch(gp.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, grant := range grants {
		if _, err := gp.users.IncrementXP(ctx, grant.UserID, grant.Amount); err != nil {
			gp.logger.Error("failed to replay xp grant",
				zap.String("grant_id", grant.ID),
				zap.String("user_id", grant.UserID),
				zap.Int64("amount", grant.Amount),
				zap.Error(err))

			grant.Retries++
			if grant.Retries >= gp.cfg.MaxRetries {
				gp.logger.Warn("dropping xp grant (max retries reached)", zap.String("grant_id", grant.ID))
				_ = gp.store.Remove(grant)
				continue
			}

			if err := gp.store.Remove(grant); err != nil {
				gp.logger.Warn("failed to remove pending grant", zap.Error(err))
			}
			if err := gp.store.Requeue(grant); err != nil {
				gp.logger.Error("failed to requeue pending grant", zap.Error(err))
			}
			continue
		}

		if err := gp.store.Remove(grant); err != nil {
			gp.logger.Warn("failed to purge replayed grant", zap.Error(err))
		}
	}
	return nil
}

// Buffer attempts to apply the grant immediately and falls back to persisting
// it for the next drain.
func (gp *GrantProcessor) Buffer(ctx context.Context, grant buffer.Grant) error {
	if gp == nil || gp.store == nil {
		return fmt.Errorf("grant processor not configured")
	}

	if gp.monitor == nil || gp.monitor.IsOnline() {
		if _, err := gp.users.IncrementXP(ctx, grant.UserID, grant.Amount); err == nil {
			return nil
		} else {
			gp.logger.Warn("immediate grant failed, buffering", zap.Error(err))
		}
	}
	return gp.store.Enqueue(grant)
}

// Size returns the number of pending grants.
func (gp *GrantProcessor) Size() int {
	if gp == nil || gp.store == nil {
		return 0
	}
	size, err := gp.store.Size()
	if err != nil {
		return 0
	}
	return size
}
