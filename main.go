// Command civiq-landing serves the civiq marketing site: the landing page,
// the privacy policy with its SMS opt-in widget and the terms page.
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/luke-griggs/civiq-landing/internal/config"
	"github.com/luke-griggs/civiq-landing/internal/content"
	"github.com/luke-griggs/civiq-landing/internal/database"
	"github.com/luke-griggs/civiq-landing/internal/handlers"
	"github.com/luke-griggs/civiq-landing/internal/migrate"
	"github.com/luke-griggs/civiq-landing/internal/notify"
	"github.com/luke-griggs/civiq-landing/internal/ratelimit"
	"github.com/luke-griggs/civiq-landing/internal/scheduler"
	"github.com/luke-griggs/civiq-landing/internal/server"
	"github.com/luke-griggs/civiq-landing/internal/subscriptions"
	"github.com/luke-griggs/civiq-landing/internal/tracing"
	"github.com/luke-griggs/civiq-landing/internal/version"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

func main() {
	// Load .env files if present (for local development)
	// Order matters: .env.local overrides .env
	// Note: Load() won't overwrite existing vars, Overload() will
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure
		logger.Module,
		config.Module,
		tracing.Module,
		database.Module,
		migrate.Module,
		ratelimit.Module,

		// Domain
		content.Module,
		notify.Module,
		subscriptions.Module,
		scheduler.Module,

		// HTTP
		handlers.Module,
		server.Module,

		fx.Invoke(func(log *slog.Logger) {
			v := version.Info()
			log.Info("civiq website",
				slog.String("version", v.Version),
				slog.String("commit", v.GitCommit))
		}),
	).Run()
}
