package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"github.com/luke-griggs/civiq-landing/internal/config"
	"github.com/luke-griggs/civiq-landing/internal/content"
	"github.com/luke-griggs/civiq-landing/internal/database"
	"github.com/luke-griggs/civiq-landing/internal/metrics"
	"github.com/luke-griggs/civiq-landing/pkg/apperror"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, msg)
	return "msg-1", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

type memQueue struct {
	jobs []*EmailJob
	err  error
}

func (q *memQueue) Enqueue(_ context.Context, opts EnqueueOptions) (*EmailJob, error) {
	if q.err != nil {
		return nil, q.err
	}
	job := &EmailJob{
		ID:           uuid.New(),
		TemplateName: opts.TemplateName,
		ToEmail:      opts.ToEmail,
		Subject:      opts.Subject,
		TemplateData: opts.TemplateData,
		Status:       JobStatusPending,
		MaxAttempts:  3,
	}
	q.jobs = append(q.jobs, job)
	return job, nil
}

type settled struct {
	id        uuid.UUID
	messageID string
	err       error
}

// memStore hands out the queued jobs once and records how each was settled
type memStore struct {
	pending   []*EmailJob
	sent      []settled
	failed    []settled
	recovered int64
}

func (s *memStore) Dequeue(_ context.Context, batchSize int) ([]*EmailJob, error) {
	n := min(batchSize, len(s.pending))
	out := s.pending[:n]
	s.pending = s.pending[n:]
	return out, nil
}

func (s *memStore) MarkSent(_ context.Context, id uuid.UUID, messageID string) error {
	s.sent = append(s.sent, settled{id: id, messageID: messageID})
	return nil
}

func (s *memStore) MarkFailed(_ context.Context, id uuid.UUID, err error) error {
	s.failed = append(s.failed, settled{id: id, err: err})
	return nil
}

func (s *memStore) RecoverStale(context.Context, time.Duration) (int64, error) {
	return s.recovered, nil
}

func newTestNotifier(q Queue, to string) *Notifier {
	cfg := &config.Config{}
	cfg.Email.NotifyEmail = to
	return NewNotifier(q, cfg, &content.Site{Brand: "civiq"}, testLogger())
}

func newTestWorker(t *testing.T, store JobStore, sender Sender, batch int) *Worker {
	t.Helper()
	tpl, err := LoadTemplates()
	require.NoError(t, err)
	return NewWorker(store, sender, tpl, &config.EmailConfig{WorkerBatchSize: batch}, testLogger())
}

func TestLoadTemplates(t *testing.T) {
	tpl, err := LoadTemplates()
	require.NoError(t, err)

	out, err := tpl.Render(subscriptionTemplate, map[string]any{
		"phone": "<b>555</b>",
		"brand": "civiq",
	})
	require.NoError(t, err)
	assert.Contains(t, out.HTML, "New SMS subscription")
	assert.Contains(t, out.HTML, "&lt;b&gt;555&lt;/b&gt;")
	assert.Contains(t, out.Text, "Phone:")

	_, err = tpl.Render("missing", nil)
	assert.Error(t, err)
}

func TestNotifier_SubscriptionCreatedQueues(t *testing.T) {
	q := &memQueue{}
	n := newTestNotifier(q, "ops@civiq.ai")

	err := n.SubscriptionCreated(context.Background(), SubscriptionEvent{
		ID:        "abc",
		Phone:     "(555) 123-4567",
		Source:    "web",
		IP:        "203.0.113.9",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, q.jobs, 1)

	job := q.jobs[0]
	assert.Equal(t, "ops@civiq.ai", job.ToEmail)
	assert.Equal(t, "[civiq] New SMS subscription", job.Subject)
	assert.Equal(t, subscriptionTemplate, job.TemplateName)
	assert.Equal(t, "(555) 123-4567", job.TemplateData["phone"])
	assert.Equal(t, "203.0.113.9", job.TemplateData["ip"])
	assert.Equal(t, "Sun, 01 Mar 2026 12:00:00 UTC", job.TemplateData["createdAt"])
}

func TestNotifier_Reactivated(t *testing.T) {
	q := &memQueue{}
	n := newTestNotifier(q, "ops@civiq.ai")

	require.NoError(t, n.SubscriptionCreated(context.Background(), SubscriptionEvent{Phone: "5551234567", Reactivated: true}))
	require.Len(t, q.jobs, 1)
	assert.Equal(t, "[civiq] SMS subscription re-activated", q.jobs[0].Subject)
}

func TestNotifier_NoRecipient(t *testing.T) {
	q := &memQueue{}
	n := newTestNotifier(q, "")

	require.NoError(t, n.SubscriptionCreated(context.Background(), SubscriptionEvent{Phone: "5551234567"}))
	assert.Empty(t, q.jobs)
}

func TestNotifier_EnqueueFailure(t *testing.T) {
	n := newTestNotifier(&memQueue{err: errors.New("db down")}, "ops@civiq.ai")

	err := n.SubscriptionCreated(context.Background(), SubscriptionEvent{Phone: "5551234567"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enqueue notification")
}

func TestWorker_DeliversQueuedJobs(t *testing.T) {
	q := &memQueue{}
	n := newTestNotifier(q, "ops@civiq.ai")
	require.NoError(t, n.SubscriptionCreated(context.Background(), SubscriptionEvent{
		ID:    "abc",
		Phone: "(555) 123-4567",
		IP:    "203.0.113.9",
	}))

	store := &memStore{pending: q.jobs}
	sender := &recordingSender{}
	w := newTestWorker(t, store, sender, 10)

	before := testutil.ToFloat64(metrics.EmailJobs.WithLabelValues("sent"))
	sent, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "ops@civiq.ai", msg.To)
	assert.Equal(t, "[civiq] New SMS subscription", msg.Subject)
	assert.Contains(t, msg.Text, "(555) 123-4567")
	assert.Contains(t, msg.Text, "203.0.113.9")
	assert.Contains(t, msg.HTML, "abc")

	require.Len(t, store.sent, 1)
	assert.Equal(t, q.jobs[0].ID, store.sent[0].id)
	assert.Equal(t, "msg-1", store.sent[0].messageID)
	assert.Empty(t, store.failed)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EmailJobs.WithLabelValues("sent")))
}

func TestWorker_SendFailureMarksFailed(t *testing.T) {
	job := &EmailJob{ID: uuid.New(), TemplateName: subscriptionTemplate, TemplateData: map[string]any{"phone": "5551234567"}}
	store := &memStore{pending: []*EmailJob{job}}
	w := newTestWorker(t, store, &recordingSender{err: errors.New("mailgun down")}, 10)

	sent, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)

	assert.Empty(t, store.sent)
	require.Len(t, store.failed, 1)
	assert.Equal(t, job.ID, store.failed[0].id)
	assert.ErrorIs(t, store.failed[0].err, apperror.ErrDeliveryFailed)
}

func TestWorker_UnknownTemplateMarksFailed(t *testing.T) {
	store := &memStore{pending: []*EmailJob{{ID: uuid.New(), TemplateName: "missing"}}}
	sender := &recordingSender{}
	w := newTestWorker(t, store, sender, 10)

	_, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
	require.Len(t, store.failed, 1)
	assert.Contains(t, store.failed[0].err.Error(), "missing")
}

func TestWorker_HonoursBatchSize(t *testing.T) {
	store := &memStore{}
	for range 3 {
		store.pending = append(store.pending, &EmailJob{ID: uuid.New(), TemplateName: subscriptionTemplate, TemplateData: map[string]any{}})
	}
	w := newTestWorker(t, store, &recordingSender{}, 2)

	sent, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Len(t, store.pending, 1)
}

func TestWorker_Recover(t *testing.T) {
	w := newTestWorker(t, &memStore{recovered: 2}, &recordingSender{}, 10)
	assert.NoError(t, w.Recover(context.Background()))
}

func TestRegisterWorkerHook(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	RegisterWorkerHook(lc, nil)

	store := &memStore{recovered: 1}
	RegisterWorkerHook(lc, newTestWorker(t, store, &recordingSender{}, 10))
	lc.RequireStart().RequireStop()
}

func TestFromJobsDisabled(t *testing.T) {
	cfg := &config.Config{}
	assert.Nil(t, NewJobsFromDB(&database.DB{}, cfg, testLogger()))
	assert.Nil(t, NewNotifierFromJobs(nil, cfg, &content.Site{}, testLogger()))
	assert.Nil(t, NewWorkerFromJobs(nil, &recordingSender{}, nil, cfg, testLogger()))
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 60*time.Second, retryDelay(60, 1))
	assert.Equal(t, 240*time.Second, retryDelay(60, 2))
	assert.Equal(t, time.Hour, retryDelay(60, 100))
}

func TestTruncateError(t *testing.T) {
	assert.Equal(t, "short", truncateError("short"))
	assert.Len(t, truncateError(strings.Repeat("x", 1500)), 1000)
}

func TestNewSender(t *testing.T) {
	t.Run("returns noOpSender when not configured", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Email.Enabled = true

		sender := NewSender(cfg, testLogger())
		_, ok := sender.(*noOpSender)
		require.True(t, ok)

		id, err := sender.Send(context.Background(), Message{To: "test@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "noop-test@example.com", id)
	})

	t.Run("returns noOpSender when email disabled", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Email.MailgunDomain = "mg.example.com"
		cfg.Email.MailgunAPIKey = "key-abc123"

		_, ok := NewSender(cfg, testLogger()).(*noOpSender)
		assert.True(t, ok)
	})

	t.Run("returns MailgunSender when configured and enabled", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Email.Enabled = true
		cfg.Email.MailgunDomain = "mg.example.com"
		cfg.Email.MailgunAPIKey = "key-abc123"

		_, ok := NewSender(cfg, testLogger()).(*MailgunSender)
		assert.True(t, ok)
	})
}

func TestMailgunSenderValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.EmailConfig
		wantError string
	}{
		{
			name:      "all fields valid",
			cfg:       config.EmailConfig{MailgunDomain: "mg.example.com", MailgunAPIKey: "key", FromEmail: "noreply@example.com", FromName: "Test"},
			wantError: "",
		},
		{
			name:      "missing MailgunDomain",
			cfg:       config.EmailConfig{MailgunAPIKey: "key", FromEmail: "noreply@example.com", FromName: "Test"},
			wantError: "MAILGUN_DOMAIN is required",
		},
		{
			name:      "missing FromEmail",
			cfg:       config.EmailConfig{MailgunDomain: "mg.example.com", MailgunAPIKey: "key", FromName: "Test"},
			wantError: "EMAIL_FROM_ADDRESS is required",
		},
		{
			name:      "missing FromName",
			cfg:       config.EmailConfig{MailgunDomain: "mg.example.com", MailgunAPIKey: "key", FromEmail: "noreply@example.com"},
			wantError: "EMAIL_FROM_NAME is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &MailgunSender{cfg: &tt.cfg}
			err := s.validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantError)
		})
	}
}
