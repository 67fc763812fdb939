// Package subscriptions records SMS opt-ins and handles keyword replies.
package subscriptions

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/luke-griggs/civiq-landing/internal/database"
	"github.com/luke-griggs/civiq-landing/internal/notify"
	"github.com/luke-griggs/civiq-landing/internal/optin"
)

// Module provides the subscription service and the optin.Recorder.
// Without a database the service is nil and the recorder is a no-op.
var Module = fx.Module("subscriptions",
	fx.Provide(
		NewServiceFromDB,
		NewRecorder,
	),
)

// NewServiceFromDB builds the bun-backed service, or returns nil when the
// database is disabled.
func NewServiceFromDB(db *database.DB, n *notify.Notifier, log *slog.Logger) *Service {
	if !db.Enabled() {
		return nil
	}
	var notifier Notifier
	if n != nil {
		notifier = n
	}
	return NewService(NewStore(db.Bun, log), notifier, log)
}

// NewRecorder selects the recorder used by the opt-in handler
func NewRecorder(svc *Service, log *slog.Logger) optin.Recorder {
	if svc == nil {
		return optin.NewNopRecorder(log)
	}
	return svc
}
