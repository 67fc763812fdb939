package notify

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/luke-griggs/civiq-landing/internal/config"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

// EnqueueOptions describes a notification to queue
type EnqueueOptions struct {
	TemplateName string
	ToEmail      string
	Subject      string
	TemplateData map[string]any
	SourceType   string
	SourceID     string
}

// Jobs is the email_jobs queue. Enqueue is called on the request path;
// the worker claims jobs with Dequeue and settles them with MarkSent or
// MarkFailed.
type Jobs struct {
	db            bun.IDB
	log           *slog.Logger
	maxAttempts   int
	retryDelaySec int
}

// NewJobs creates the queue over db
func NewJobs(db bun.IDB, cfg *config.EmailConfig, log *slog.Logger) *Jobs {
	return &Jobs{
		db:            db,
		log:           log.With(logger.Scope("notify.jobs")),
		maxAttempts:   max(cfg.MaxRetries, 1),
		retryDelaySec: cfg.RetryDelaySec,
	}
}

// Enqueue stores a job that is immediately eligible for delivery.
// next_retry_at uses the database clock so Dequeue compares like with like.
func (j *Jobs) Enqueue(ctx context.Context, opts EnqueueOptions) (*EmailJob, error) {
	data := opts.TemplateData
	if data == nil {
		data = map[string]any{}
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal template data: %w", err)
	}

	job := &EmailJob{}
	err = j.db.NewRaw(`INSERT INTO email_jobs (
		id, template_name, to_email, subject, template_data,
		status, attempts, max_attempts, source_type, source_id, next_retry_at
	) VALUES (?, ?, ?, ?, ?::jsonb, 'pending', 0, ?, ?, ?, now())
	RETURNING *`,
		uuid.New(),
		opts.TemplateName,
		opts.ToEmail,
		opts.Subject,
		string(dataJSON),
		j.maxAttempts,
		nullable(opts.SourceType),
		nullable(opts.SourceID),
	).Scan(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("enqueue email job: %w", err)
	}

	j.log.DebugContext(ctx, "enqueued email job",
		slog.String("job_id", job.ID.String()),
		slog.String("template", job.TemplateName))
	return job, nil
}

// Dequeue claims up to batchSize due jobs. FOR UPDATE SKIP LOCKED lets
// several replicas drain the same table.
func (j *Jobs) Dequeue(ctx context.Context, batchSize int) ([]*EmailJob, error) {
	var jobs []*EmailJob
	err := j.db.NewRaw(`WITH cte AS (
		SELECT id FROM email_jobs
		WHERE status = 'pending'
			AND (next_retry_at IS NULL OR next_retry_at <= now())
		ORDER BY created_at ASC
		LIMIT ?
		FOR UPDATE SKIP LOCKED
	)
	UPDATE email_jobs j
	SET status = 'processing',
		attempts = attempts + 1,
		claimed_at = now()
	FROM cte WHERE j.id = cte.id
	RETURNING j.*`, batchSize).Scan(ctx, &jobs)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dequeue email jobs: %w", err)
	}
	return jobs, nil
}

// MarkSent records a successful delivery
func (j *Jobs) MarkSent(ctx context.Context, id uuid.UUID, messageID string) error {
	_, err := j.db.NewUpdate().
		Model((*EmailJob)(nil)).
		Set("status = ?", JobStatusSent).
		Set("mailgun_message_id = ?", messageID).
		Set("processed_at = now()").
		Set("last_error = NULL").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	return nil
}

// MarkFailed requeues the job with quadratic backoff, or moves it to the
// dead letter state once its attempts are used up.
func (j *Jobs) MarkFailed(ctx context.Context, id uuid.UUID, jobErr error) error {
	job := &EmailJob{}
	err := j.db.NewSelect().
		Model(job).
		Column("id", "attempts", "max_attempts").
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			j.log.WarnContext(ctx, "email job not found when marking as failed", slog.String("job_id", id.String()))
			return nil
		}
		return fmt.Errorf("get job for mark failed: %w", err)
	}

	msg := truncateError(jobErr.Error())

	if job.Attempts < job.MaxAttempts {
		delay := retryDelay(j.retryDelaySec, job.Attempts)
		_, err := j.db.NewRaw(`UPDATE email_jobs
			SET status = 'pending',
				last_error = ?,
				next_retry_at = now() + make_interval(secs => ?)
			WHERE id = ?`,
			msg, int(delay.Seconds()), id).Exec(ctx)
		if err != nil {
			return fmt.Errorf("requeue failed job: %w", err)
		}

		j.log.WarnContext(ctx, "email job failed, retrying",
			slog.String("job_id", id.String()),
			slog.Int("attempt", job.Attempts),
			slog.Int("max_attempts", job.MaxAttempts),
			slog.Duration("retry_delay", delay),
			slog.String("error", msg))
		return nil
	}

	_, err = j.db.NewUpdate().
		Model((*EmailJob)(nil)).
		Set("status = ?", JobStatusDeadLetter).
		Set("last_error = ?", msg).
		Set("processed_at = now()").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("mark as dead letter: %w", err)
	}

	j.log.ErrorContext(ctx, "email job moved to dead letter",
		slog.String("job_id", id.String()),
		slog.Int("attempts", job.Attempts),
		slog.String("error", msg))
	return nil
}

// RecoverStale puts jobs left in processing by a crashed worker back in the
// queue.
func (j *Jobs) RecoverStale(ctx context.Context, threshold time.Duration) (int64, error) {
	res, err := j.db.NewRaw(`UPDATE email_jobs
		SET status = 'pending',
			next_retry_at = now()
		WHERE status = 'processing'
			AND claimed_at < now() - make_interval(secs => ?)`,
		int(threshold.Seconds())).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("recover stale jobs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// retryDelay is base * attempt^2 seconds, capped at one hour
func retryDelay(baseSec, attempt int) time.Duration {
	secs := math.Min(3600, float64(baseSec)*float64(attempt)*float64(attempt))
	return time.Duration(secs) * time.Second
}

func truncateError(msg string) string {
	if len(msg) > 1000 {
		return msg[:1000]
	}
	return msg
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
