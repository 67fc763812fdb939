package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/luke-griggs/civiq-landing/internal/config"
	"github.com/luke-griggs/civiq-landing/internal/metrics"
	"github.com/luke-griggs/civiq-landing/pkg/apperror"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

// staleAfter is how long a claimed job may stay in processing before it is
// handed out again.
const staleAfter = 10 * time.Minute

// JobStore is the worker's view of the queue
type JobStore interface {
	Dequeue(ctx context.Context, batchSize int) ([]*EmailJob, error)
	MarkSent(ctx context.Context, id uuid.UUID, messageID string) error
	MarkFailed(ctx context.Context, id uuid.UUID, jobErr error) error
	RecoverStale(ctx context.Context, threshold time.Duration) (int64, error)
}

// Worker renders and sends queued notifications. It is driven by a
// scheduler interval task rather than its own goroutine.
type Worker struct {
	store     JobStore
	sender    Sender
	templates *Templates
	batchSize int
	log       *slog.Logger
}

// NewWorker creates an email worker
func NewWorker(store JobStore, sender Sender, templates *Templates, cfg *config.EmailConfig, log *slog.Logger) *Worker {
	return &Worker{
		store:     store,
		sender:    sender,
		templates: templates,
		batchSize: max(cfg.WorkerBatchSize, 1),
		log:       log.With(logger.Scope("notify.worker")),
	}
}

// Run processes one batch. It matches scheduler.TaskFunc.
func (w *Worker) Run(ctx context.Context) error {
	_, err := w.ProcessBatch(ctx)
	return err
}

// ProcessBatch claims and delivers one batch, returning the number of jobs
// sent. Individual job failures are recorded on the job, not returned.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	jobs, err := w.store.Dequeue(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		if err := w.processJob(ctx, job); err != nil {
			w.log.WarnContext(ctx, "email job failed",
				slog.String("job_id", job.ID.String()),
				logger.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

// Recover requeues jobs abandoned in processing
func (w *Worker) Recover(ctx context.Context) error {
	n, err := w.store.RecoverStale(ctx, staleAfter)
	if err != nil {
		return err
	}
	if n > 0 {
		w.log.WarnContext(ctx, "recovered stale email jobs", slog.Int64("count", n))
	}
	return nil
}

func (w *Worker) processJob(ctx context.Context, job *EmailJob) error {
	start := time.Now()

	rendered, err := w.templates.Render(job.TemplateName, job.TemplateData)
	if err != nil {
		return w.fail(ctx, job, fmt.Errorf("render %s: %w", job.TemplateName, err))
	}

	id, err := w.sender.Send(ctx, Message{
		To:      job.ToEmail,
		Subject: job.Subject,
		Text:    rendered.Text,
		HTML:    rendered.HTML,
	})
	if err != nil {
		return w.fail(ctx, job, apperror.ErrDeliveryFailed.WithInternal(err))
	}

	if err := w.store.MarkSent(ctx, job.ID, id); err != nil {
		return err
	}

	metrics.EmailJobs.WithLabelValues("sent").Inc()
	w.log.DebugContext(ctx, "email job sent",
		slog.String("job_id", job.ID.String()),
		slog.String("message_id", id),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (w *Worker) fail(ctx context.Context, job *EmailJob, cause error) error {
	metrics.EmailJobs.WithLabelValues("failed").Inc()
	if err := w.store.MarkFailed(ctx, job.ID, cause); err != nil {
		w.log.ErrorContext(ctx, "failed to mark job as failed",
			slog.String("job_id", job.ID.String()),
			logger.Error(err))
	}
	return cause
}
