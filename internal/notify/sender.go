package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/luke-griggs/civiq-landing/internal/config"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

// Message is a single outbound email
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a Message and returns the provider message ID
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// NewSender uses Mailgun when it is configured and enabled, otherwise a
// sender that only logs.
func NewSender(cfg *config.Config, log *slog.Logger) Sender {
	if cfg.Email.Enabled && cfg.Email.IsConfigured() {
		log.Info("using Mailgun sender",
			slog.String("domain", cfg.Email.MailgunDomain),
			slog.String("from", cfg.Email.FromEmail))
		return NewMailgunSender(&cfg.Email, log)
	}

	log.Info("using no-op email sender (Mailgun not configured or email disabled)")
	return &noOpSender{log: log.With(logger.Scope("notify.noop"))}
}

// MailgunSender sends emails via the Mailgun API
type MailgunSender struct {
	cfg    *config.EmailConfig
	log    *slog.Logger
	client *mailgun.MailgunImpl
}

// NewMailgunSender creates a Mailgun-backed sender
func NewMailgunSender(cfg *config.EmailConfig, log *slog.Logger) *MailgunSender {
	return &MailgunSender{
		cfg:    cfg,
		log:    log.With(logger.Scope("notify.mailgun")),
		client: mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey),
	}
}

// Send implements Sender
func (s *MailgunSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := s.validate(); err != nil {
		return "", err
	}

	from := fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	message := s.client.NewMessage(from, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	_, id, err := s.client.Send(sendCtx, message)
	if err != nil {
		return "", fmt.Errorf("mailgun send: %w", err)
	}

	s.log.InfoContext(ctx, "email sent",
		slog.String("to", msg.To),
		slog.String("message_id", id))
	return id, nil
}

// validate checks that the configuration is usable
func (s *MailgunSender) validate() error {
	if s.cfg.MailgunDomain == "" {
		return fmt.Errorf("MAILGUN_DOMAIN is required")
	}
	if s.cfg.MailgunAPIKey == "" {
		return fmt.Errorf("MAILGUN_API_KEY is required")
	}
	if s.cfg.FromEmail == "" {
		return fmt.Errorf("EMAIL_FROM_ADDRESS is required")
	}
	if s.cfg.FromName == "" {
		return fmt.Errorf("EMAIL_FROM_NAME is required")
	}
	return nil
}

// noOpSender logs instead of sending
type noOpSender struct {
	log *slog.Logger
}

func (s *noOpSender) Send(ctx context.Context, msg Message) (string, error) {
	s.log.InfoContext(ctx, "email send (no-op)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject))
	return "noop-" + msg.To, nil
}
