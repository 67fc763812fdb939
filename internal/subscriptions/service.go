package subscriptions

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/luke-griggs/civiq-landing/internal/notify"
	"github.com/luke-griggs/civiq-landing/internal/optin"
	"github.com/luke-griggs/civiq-landing/pkg/apperror"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
	"github.com/luke-griggs/civiq-landing/pkg/tracing"
)

// Notifier is told about every recorded or re-activated subscription.
// Implementations must not block on delivery.
type Notifier interface {
	SubscriptionCreated(ctx context.Context, ev notify.SubscriptionEvent) error
}

type clientKey struct{}

// Client is request metadata stored alongside a subscription
type Client struct {
	IP        string
	UserAgent string
}

// WithClient attaches request metadata for SubmitOptIn
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

// ClientFrom returns the metadata attached by WithClient
func ClientFrom(ctx context.Context) Client {
	c, _ := ctx.Value(clientKey{}).(Client)
	return c
}

// Service records opt-ins and processes keyword replies
type Service struct {
	repo     Repository
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a subscription service
func NewService(repo Repository, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log.With(logger.Scope("subscriptions")),
		now:      time.Now,
	}
}

// SubmitOptIn implements optin.Recorder for the web form
func (s *Service) SubmitOptIn(ctx context.Context, phoneText string) (optin.Outcome, error) {
	ctx, span := tracing.Start(ctx, "subscriptions.SubmitOptIn")
	defer span.End()

	return s.subscribe(ctx, phoneText, SourceWeb, optin.ConsentStatement, ClientFrom(ctx))
}

// Resubscribe handles a START keyword from the number itself
func (s *Service) Resubscribe(ctx context.Context, from string) (optin.Outcome, error) {
	return s.subscribe(ctx, from, SourceSMS, "Replied START to "+from, Client{})
}

func (s *Service) subscribe(ctx context.Context, phone string, source Source, consent string, client Client) (optin.Outcome, error) {
	normalized, err := Normalize(phone)
	if err != nil {
		return optin.Outcome{}, err
	}

	existing, err := s.repo.FindByPhone(ctx, normalized)
	if err != nil {
		return optin.Outcome{}, err
	}

	now := s.now()

	if existing != nil {
		if existing.IsActive() {
			s.log.DebugContext(ctx, "number already subscribed", slog.String("id", existing.ID.String()))
			return optin.Outcome{ID: existing.ID.String(), Status: optin.StatusDuplicate}, nil
		}

		existing.Phone = phone
		existing.ConsentText = consent
		existing.Source = source
		existing.IP = client.IP
		existing.UserAgent = client.UserAgent
		existing.UpdatedAt = now
		if err := s.repo.Reactivate(ctx, existing); err != nil {
			return optin.Outcome{}, err
		}

		s.log.InfoContext(ctx, "subscription re-activated",
			slog.String("id", existing.ID.String()),
			slog.String("source", string(source)))
		s.notify(ctx, existing, true)
		return optin.Outcome{ID: existing.ID.String(), Status: optin.StatusRecorded}, nil
	}

	sub := &Subscription{
		ID:              uuid.New(),
		Phone:           phone,
		PhoneNormalized: normalized,
		Status:          StatusActive,
		ConsentText:     consent,
		Source:          source,
		IP:              client.IP,
		UserAgent:       client.UserAgent,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, apperror.ErrDuplicateSubscription) {
			return optin.Outcome{Status: optin.StatusDuplicate}, nil
		}
		return optin.Outcome{}, err
	}

	s.log.InfoContext(ctx, "subscription recorded",
		slog.String("id", sub.ID.String()),
		slog.String("source", string(source)))
	s.notify(ctx, sub, false)
	return optin.Outcome{ID: sub.ID.String(), Status: optin.StatusRecorded}, nil
}

// notify queues the ops email detached from request cancellation. A queue
// failure never fails the subscription.
func (s *Service) notify(ctx context.Context, sub *Subscription, reactivated bool) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.SubscriptionCreated(context.WithoutCancel(ctx), notify.SubscriptionEvent{
		ID:          sub.ID.String(),
		Phone:       sub.Phone,
		Source:      string(sub.Source),
		IP:          sub.IP,
		CreatedAt:   sub.UpdatedAt,
		Reactivated: reactivated,
	})
	if err != nil {
		s.log.WarnContext(ctx, "subscription notification failed", logger.Error(err))
	}
}

// OptOut handles a STOP keyword. It reports whether an active subscription
// was found.
func (s *Service) OptOut(ctx context.Context, from string) (bool, error) {
	normalized, err := Normalize(from)
	if err != nil {
		return false, err
	}

	found, err := s.repo.OptOut(ctx, normalized, s.now())
	if err != nil {
		return false, err
	}
	if found {
		s.log.InfoContext(ctx, "subscription opted out")
	}
	return found, nil
}

// PurgeOptedOut deletes numbers that opted out longer than window ago
func (s *Service) PurgeOptedOut(ctx context.Context, window time.Duration) (int64, error) {
	return s.repo.DeleteOptedOutBefore(ctx, s.now().Add(-window))
}
