// Package database opens the PostgreSQL pool used by subscription recording.
//
// The pool is only opened when SUBSCRIPTIONS_ENABLED is set; otherwise the
// provided *DB is empty and Enabled reports false.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"go.uber.org/fx"

	"github.com/luke-griggs/civiq-landing/internal/config"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

var Module = fx.Module("database",
	fx.Provide(NewDB),
)

// ErrDisabled is returned by Ping when subscriptions are not enabled.
var ErrDisabled = errors.New("database disabled")

// DB bundles the pgx pool and the bun handle built on top of it.
type DB struct {
	Pool *pgxpool.Pool
	Bun  *bun.DB
}

// Enabled reports whether a connection pool was opened.
func (d *DB) Enabled() bool {
	return d != nil && d.Bun != nil
}

// Ping verifies the pool can reach PostgreSQL.
func (d *DB) Ping(ctx context.Context) error {
	if !d.Enabled() {
		return ErrDisabled
	}
	return d.Pool.Ping(ctx)
}

// NewDB opens the pool and the bun database when subscriptions are enabled.
func NewDB(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (*DB, error) {
	if !cfg.Subscriptions.Enabled {
		log.With(logger.Scope("database")).Info("subscriptions disabled, skipping database")
		return &DB{}, nil
	}

	pool, err := NewPgxPool(lc, cfg, log)
	if err != nil {
		return nil, err
	}
	db := NewBunDB(lc, pool, cfg, log)
	return &DB{Pool: pool, Bun: db}, nil
}

// NewPgxPool creates a new pgx connection pool
func NewPgxPool(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (*pgxpool.Pool, error) {
	log = log.With(logger.Scope("database"))

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnIdleTime = cfg.Database.MaxIdleTime

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("database pool created",
		slog.String("host", cfg.Database.Host),
		slog.Int("port", cfg.Database.Port),
		slog.String("database", cfg.Database.Database),
		slog.Int("max_conns", cfg.Database.MaxOpenConns),
	)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("closing database pool")
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

// NewBunDB wraps the pgx pool in a bun database with the PostgreSQL dialect.
func NewBunDB(lc fx.Lifecycle, pool *pgxpool.Pool, cfg *config.Config, log *slog.Logger) *bun.DB {
	log = log.With(logger.Scope("bun"))

	db := bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New())

	if cfg.Database.QueryDebug {
		db.AddQueryHook(&queryLoggingHook{log: log, slow: 3 * time.Second})
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("closing bun database")
			return db.Close()
		},
	})

	return db
}

// queryLoggingHook implements bun.QueryHook
type queryLoggingHook struct {
	log  *slog.Logger
	slow time.Duration
}

func (h *queryLoggingHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLoggingHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)

	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		h.log.ErrorContext(ctx, "query error",
			slog.String("query", event.Query),
			slog.Duration("duration", duration),
			logger.Error(event.Err),
		)
		return
	}

	if duration > h.slow {
		h.log.WarnContext(ctx, "slow query",
			slog.String("query", event.Query),
			slog.Duration("duration", duration),
		)
		return
	}

	h.log.DebugContext(ctx, "query",
		slog.String("query", event.Query),
		slog.Duration("duration", duration),
	)
}
