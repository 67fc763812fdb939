// Package migrate provides database migration functionality using Goose.
package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/luke-griggs/civiq-landing/internal/database"
	"github.com/luke-griggs/civiq-landing/migrations"
)

// Module provides the migrator and applies pending migrations on start
// when the database is enabled.
var Module = fx.Module("migrate",
	fx.Provide(NewMigrator),
	fx.Invoke(RegisterMigrationHook),
)

// Migrator handles database migrations.
type Migrator struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMigrator creates a new Migrator instance. It returns nil when the
// database is disabled.
func NewMigrator(db *database.DB, logger *zap.Logger) *Migrator {
	if !db.Enabled() {
		return nil
	}
	return &Migrator{
		db:     db.Bun.DB,
		logger: logger.Named("migrator"),
	}
}

// RegisterMigrationHook runs Up before the HTTP server starts accepting
// opt-ins.
func RegisterMigrationHook(lc fx.Lifecycle, m *Migrator) {
	if m == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: m.Up,
	})
}

func setup() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// Up runs all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	m.logger.Info("running database migrations")

	if err := setup(); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := m.Version(ctx)
	if err != nil {
		m.logger.Warn("migrations completed, version unknown", zap.Error(err))
		return nil
	}

	m.logger.Info("migrations completed successfully", zap.Int64("version", version))
	return nil
}

// Version returns the current database version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	if err := setup(); err != nil {
		return 0, err
	}

	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}

	m.logger.Debug("database version", zap.Int64("version", version))
	return version, nil
}
