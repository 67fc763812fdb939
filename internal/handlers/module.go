// Package handlers implements the HTTP endpoints of the site.
package handlers

import "go.uber.org/fx"

var Module = fx.Module("handlers",
	fx.Provide(
		NewPageHandler,
		NewOptInHandler,
		NewWebhookHandler,
		NewHealthHandler,
	),
)
