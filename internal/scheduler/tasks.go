package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/luke-griggs/civiq-landing/internal/metrics"
	"github.com/luke-griggs/civiq-landing/internal/ratelimit"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

// Purger deletes subscriptions that opted out before the retention window
type Purger interface {
	PurgeOptedOut(ctx context.Context, window time.Duration) (int64, error)
}

// RetentionTask removes opted-out phone numbers after the retention window
type RetentionTask struct {
	purger Purger
	window time.Duration
	log    *slog.Logger
}

// NewRetentionTask creates a new retention task
func NewRetentionTask(purger Purger, window time.Duration, log *slog.Logger) *RetentionTask {
	return &RetentionTask{
		purger: purger,
		window: window,
		log:    log.With(logger.Scope("scheduler.retention")),
	}
}

// Run executes the retention sweep
func (t *RetentionTask) Run(ctx context.Context) error {
	n, err := t.purger.PurgeOptedOut(ctx, t.window)
	if err != nil {
		return err
	}
	metrics.RetentionDeleted.Add(float64(n))
	t.log.Info("retention sweep complete",
		slog.Int64("deleted", n),
		slog.Duration("window", t.window))
	return nil
}

// LimiterPruneTask drops idle rate-limit buckets
type LimiterPruneTask struct {
	limiter *ratelimit.Limiter
	log     *slog.Logger
}

// NewLimiterPruneTask creates a new limiter prune task
func NewLimiterPruneTask(limiter *ratelimit.Limiter, log *slog.Logger) *LimiterPruneTask {
	return &LimiterPruneTask{
		limiter: limiter,
		log:     log.With(logger.Scope("scheduler.ratelimit")),
	}
}

// Run executes the prune
func (t *LimiterPruneTask) Run(ctx context.Context) error {
	if n := t.limiter.Prune(); n > 0 {
		t.log.Debug("pruned idle rate limit buckets",
			slog.Int("removed", n),
			slog.Int("remaining", t.limiter.Len()))
	}
	return nil
}
