package ratelimit

import (
	"go.uber.org/fx"

	"github.com/luke-griggs/civiq-landing/internal/config"
)

var Module = fx.Module("ratelimit",
	fx.Provide(NewFromConfig),
)

// NewFromConfig builds the opt-in limiter from OPTIN_RATE_* settings
func NewFromConfig(cfg *config.Config) *Limiter {
	return New(cfg.RateLimit.OptInPerMinute, cfg.RateLimit.OptInBurst)
}
