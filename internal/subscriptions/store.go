package subscriptions

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"github.com/luke-griggs/civiq-landing/pkg/apperror"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation
const uniqueViolation = "23505"

// Repository is the persistence contract used by Service
type Repository interface {
	FindByPhone(ctx context.Context, normalized string) (*Subscription, error)
	Create(ctx context.Context, sub *Subscription) error
	Reactivate(ctx context.Context, sub *Subscription) error
	OptOut(ctx context.Context, normalized string, at time.Time) (bool, error)
	DeleteOptedOutBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Store handles data access for SMS subscriptions
type Store struct {
	db  bun.IDB
	log *slog.Logger
}

// NewStore creates a new subscription store
func NewStore(db bun.IDB, log *slog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With(logger.Scope("subscriptions.store")),
	}
}

// FindByPhone returns the subscription for a normalized phone, or nil if none exists
func (s *Store) FindByPhone(ctx context.Context, normalized string) (*Subscription, error) {
	var sub Subscription
	err := s.db.NewSelect().
		Model(&sub).
		Where("phone_normalized = ?", normalized).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return &sub, nil
}

// Create inserts a new subscription. A concurrent insert of the same number
// surfaces as ErrDuplicateSubscription.
func (s *Store) Create(ctx context.Context, sub *Subscription) error {
	_, err := s.db.NewInsert().
		Model(sub).
		Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.ErrDuplicateSubscription.WithInternal(err)
		}
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// Reactivate marks an existing row active again and refreshes its consent record
func (s *Store) Reactivate(ctx context.Context, sub *Subscription) error {
	sub.Status = StatusActive
	sub.OptedOutAt = nil

	_, err := s.db.NewUpdate().
		Model(sub).
		Column("phone", "status", "consent_text", "source", "ip", "user_agent", "updated_at", "opted_out_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// OptOut marks the active subscription for a number as opted out.
// It reports false when there was no active subscription.
func (s *Store) OptOut(ctx context.Context, normalized string, at time.Time) (bool, error) {
	res, err := s.db.NewUpdate().
		Model((*Subscription)(nil)).
		Set("status = ?", StatusOptedOut).
		Set("opted_out_at = ?", at).
		Set("updated_at = ?", at).
		Where("phone_normalized = ?", normalized).
		Where("status = ?", StatusActive).
		Exec(ctx)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	return n > 0, nil
}

// DeleteOptedOutBefore removes numbers that opted out before cutoff
func (s *Store) DeleteOptedOutBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.NewDelete().
		Model((*Subscription)(nil)).
		Where("status = ?", StatusOptedOut).
		Where("opted_out_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	if n > 0 {
		s.log.InfoContext(ctx, "deleted opted-out subscriptions", slog.Int64("count", n))
	}
	return n, nil
}
