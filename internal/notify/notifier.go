// Package notify emails the ops inbox when an SMS subscription is recorded.
//
// Notifications are queued in the email_jobs table on the request path and
// delivered by Worker from a scheduler task, so a slow Mailgun call never
// holds up the opt-in response.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/luke-griggs/civiq-landing/internal/config"
	"github.com/luke-griggs/civiq-landing/internal/content"
	"github.com/luke-griggs/civiq-landing/internal/database"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

// Module provides the queue, the notifier and the worker. Without a
// database all three are nil.
var Module = fx.Module("notify",
	fx.Provide(
		NewSender,
		LoadTemplates,
		NewJobsFromDB,
		NewNotifierFromJobs,
		NewWorkerFromJobs,
	),
	fx.Invoke(RegisterWorkerHook),
)

const (
	subscriptionTemplate = "subscription_created"
	sourceSubscription   = "sms_subscription"
)

// SubscriptionEvent describes a recorded subscription
type SubscriptionEvent struct {
	ID          string
	Phone       string
	Source      string
	IP          string
	CreatedAt   time.Time
	Reactivated bool
}

// Queue accepts notifications for later delivery
type Queue interface {
	Enqueue(ctx context.Context, opts EnqueueOptions) (*EmailJob, error)
}

// Notifier turns subscription events into queued ops emails
type Notifier struct {
	queue Queue
	to    string
	brand string
	log   *slog.Logger
}

// NewNotifier creates a notifier addressed to NOTIFY_EMAIL
func NewNotifier(queue Queue, cfg *config.Config, site *content.Site, log *slog.Logger) *Notifier {
	return &Notifier{
		queue: queue,
		to:    cfg.Email.NotifyEmail,
		brand: site.Brand,
		log:   log.With(logger.Scope("notify")),
	}
}

// SubscriptionCreated queues the new-subscription email. It is a no-op when
// no recipient is configured.
func (n *Notifier) SubscriptionCreated(ctx context.Context, ev SubscriptionEvent) error {
	if n.to == "" {
		n.log.DebugContext(ctx, "no NOTIFY_EMAIL configured, skipping notification")
		return nil
	}

	subject := fmt.Sprintf("[%s] New SMS subscription", n.brand)
	if ev.Reactivated {
		subject = fmt.Sprintf("[%s] SMS subscription re-activated", n.brand)
	}

	job, err := n.queue.Enqueue(ctx, EnqueueOptions{
		TemplateName: subscriptionTemplate,
		ToEmail:      n.to,
		Subject:      subject,
		TemplateData: map[string]any{
			"id":          ev.ID,
			"phone":       ev.Phone,
			"source":      ev.Source,
			"ip":          ev.IP,
			"createdAt":   ev.CreatedAt.UTC().Format(time.RFC1123),
			"reactivated": ev.Reactivated,
			"brand":       n.brand,
		},
		SourceType: sourceSubscription,
		SourceID:   ev.ID,
	})
	if err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}

	n.log.DebugContext(ctx, "notification queued",
		slog.String("job_id", job.ID.String()),
		slog.String("subscription_id", ev.ID))
	return nil
}

// NewJobsFromDB returns the bun-backed queue, or nil when the database is
// disabled.
func NewJobsFromDB(db *database.DB, cfg *config.Config, log *slog.Logger) *Jobs {
	if !db.Enabled() {
		return nil
	}
	return NewJobs(db.Bun, &cfg.Email, log)
}

func NewNotifierFromJobs(jobs *Jobs, cfg *config.Config, site *content.Site, log *slog.Logger) *Notifier {
	if jobs == nil {
		return nil
	}
	return NewNotifier(jobs, cfg, site, log)
}

func NewWorkerFromJobs(jobs *Jobs, sender Sender, templates *Templates, cfg *config.Config, log *slog.Logger) *Worker {
	if jobs == nil {
		return nil
	}
	return NewWorker(jobs, sender, templates, &cfg.Email, log)
}

// RegisterWorkerHook requeues jobs a previous process left in processing.
// A failure is logged; the next recovery happens on the following start.
func RegisterWorkerHook(lc fx.Lifecycle, w *Worker) {
	if w == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := w.Recover(ctx); err != nil {
				w.log.WarnContext(ctx, "failed to recover stale email jobs", logger.Error(err))
			}
			return nil
		},
	})
}
