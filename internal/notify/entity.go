package notify

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// JobStatus is the processing state of an email job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusSent       JobStatus = "sent"
	JobStatusDeadLetter JobStatus = "dead_letter" // gave up after MaxAttempts
)

// EmailJob is a queued notification. The worker renders TemplateName with
// TemplateData at send time; failed sends are retried with backoff.
type EmailJob struct {
	bun.BaseModel `bun:"table:email_jobs,alias:ej"`

	ID               uuid.UUID      `bun:"id,pk,type:uuid"`
	TemplateName     string         `bun:"template_name,notnull"`
	ToEmail          string         `bun:"to_email,notnull"`
	Subject          string         `bun:"subject,notnull"`
	TemplateData     map[string]any `bun:"template_data,type:jsonb,notnull"`
	Status           JobStatus      `bun:"status,notnull"`
	Attempts         int            `bun:"attempts,notnull"`
	MaxAttempts      int            `bun:"max_attempts,notnull"`
	LastError        *string        `bun:"last_error"`
	MailgunMessageID *string        `bun:"mailgun_message_id"`
	SourceType       *string        `bun:"source_type"`
	SourceID         *string        `bun:"source_id"`
	CreatedAt        time.Time      `bun:"created_at,notnull,default:current_timestamp"`
	ClaimedAt        *time.Time     `bun:"claimed_at"`
	ProcessedAt      *time.Time     `bun:"processed_at"`
	NextRetryAt      *time.Time     `bun:"next_retry_at"`
}
