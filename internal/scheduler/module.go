package scheduler

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/luke-griggs/civiq-landing/internal/config"
	"github.com/luke-griggs/civiq-landing/internal/notify"
	"github.com/luke-griggs/civiq-landing/internal/ratelimit"
	"github.com/luke-griggs/civiq-landing/internal/subscriptions"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

// Module provides scheduled task functionality
var Module = fx.Module("scheduler",
	fx.Provide(NewScheduler),
	fx.Invoke(
		RegisterTasks,
		RegisterSchedulerLifecycle,
	),
)

const limiterPruneInterval = 5 * time.Minute

// TaskParams contains dependencies for creating scheduled tasks
type TaskParams struct {
	fx.In
	Scheduler     *Scheduler
	Subscriptions *subscriptions.Service
	Email         *notify.Worker
	Limiter       *ratelimit.Limiter
	Cfg           *config.Config
	Log           *slog.Logger
}

// RegisterTasks registers all scheduled tasks. The retention sweep and email
// delivery are only registered when subscriptions are recorded.
func RegisterTasks(p TaskParams) error {
	prune := NewLimiterPruneTask(p.Limiter, p.Log)
	if err := p.Scheduler.AddIntervalTask("ratelimit_prune", limiterPruneInterval, prune.Run); err != nil {
		p.Log.Error("failed to register rate limit prune task", logger.Error(err))
	}

	if p.Subscriptions != nil {
		retention := NewRetentionTask(p.Subscriptions, p.Cfg.Subscriptions.RetentionWindow(), p.Log)
		if err := p.Scheduler.AddCronTask("subscription_retention",
			p.Cfg.Subscriptions.RetentionSchedule, retention.Run); err != nil {
			return err
		}
	}

	if p.Email != nil {
		if err := p.Scheduler.AddIntervalTask("email_delivery",
			p.Cfg.Email.WorkerInterval(), p.Email.Run); err != nil {
			return err
		}
	}

	p.Log.Info("registered scheduled tasks",
		slog.Any("tasks", p.Scheduler.ListTasks()))
	return nil
}

// RegisterSchedulerLifecycle registers the scheduler with fx lifecycle
func RegisterSchedulerLifecycle(lc fx.Lifecycle, scheduler *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return scheduler.Stop(ctx)
		},
	})
}
