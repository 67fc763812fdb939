// Package server builds the chi router and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/luke-griggs/civiq-landing/internal/components"
	"github.com/luke-griggs/civiq-landing/internal/config"
	"github.com/luke-griggs/civiq-landing/internal/handlers"
	"github.com/luke-griggs/civiq-landing/internal/ratelimit"
	"github.com/luke-griggs/civiq-landing/internal/tracing"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
	"github.com/luke-griggs/civiq-landing/static"
)

var Module = fx.Module("server",
	fx.Provide(NewRouter),
	fx.Invoke(StartServer),
)

// SMSWebhookPath receives inbound SMS keyword replies
const SMSWebhookPath = "/webhooks/sms"

// RouterParams are the dependencies for building the router
type RouterParams struct {
	fx.In

	Log     *slog.Logger
	Limiter *ratelimit.Limiter
	Pages   *handlers.PageHandler
	OptIn   *handlers.OptInHandler
	Webhook *handlers.WebhookHandler
	Health  *handlers.HealthHandler
}

// NewRouter creates the chi router with every route and middleware
func NewRouter(p RouterParams) *chi.Mux {
	log := p.Log.With(logger.Scope("http"))

	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		tracing.Middleware,
		httpMetrics,
		requestLogger(log),
		recoverer(log),
	)

	r.Get("/", p.Pages.Landing)
	r.Get(components.PrivacyPolicyPath, p.Pages.PrivacyPolicy)
	r.Get(components.TermsPath, p.Pages.Terms)

	r.Get(components.OptInPath, p.OptIn.Redirect)
	r.With(p.Limiter.Middleware(p.OptIn.RateLimited)).Post(components.OptInPath, p.OptIn.Submit)

	if p.Webhook != nil {
		r.Post(SMSWebhookPath, p.Webhook.SMS)
	}

	r.Get("/health", p.Health.Health)
	r.Get("/healthz", p.Health.Healthz)
	r.Get("/ready", p.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.With(cacheStatic).Handle("/static/*",
		http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))

	return r
}

// StartServer starts the HTTP server with graceful shutdown
func StartServer(lc fx.Lifecycle, router *chi.Mux, cfg *config.Config, log *slog.Logger) {
	log = log.With(logger.Scope("server"))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server",
				slog.String("address", server.Addr),
				slog.String("environment", cfg.Environment),
			)

			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server error", logger.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down HTTP server")

			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		},
	})
}
