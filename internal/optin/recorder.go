package optin

import (
	"context"
	"log/slog"

	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

// Status describes what a Recorder did with a confirmed phone number.
type Status string

const (
	StatusRecorded  Status = "recorded"
	StatusDuplicate Status = "duplicate"
	StatusSkipped   Status = "skipped"
)

// ConsentStatement is the consent text shown next to the checkbox. Recorders
// store it with each subscription.
const ConsentStatement = "I consent to receiving SMS text messages from Civiq regarding issue updates and city notifications. Message frequency varies. Reply STOP to unsubscribe at any time. Message and data rates may apply."

// Outcome is returned by a Recorder.
type Outcome struct {
	ID     string
	Status Status
}

// Recorder receives phone numbers from confirmed forms. Implementations own
// persistence, confirmation delivery and opt-out handling; the form itself
// never depends on the result.
type Recorder interface {
	SubmitOptIn(ctx context.Context, phoneText string) (Outcome, error)
}

// NopRecorder accepts every submission without storing it.
type NopRecorder struct {
	log *slog.Logger
}

// NewNopRecorder returns a recorder that only logs.
func NewNopRecorder(log *slog.Logger) *NopRecorder {
	return &NopRecorder{log: log.With(logger.Scope("optin.nop"))}
}

// SubmitOptIn implements Recorder.
func (r *NopRecorder) SubmitOptIn(ctx context.Context, phoneText string) (Outcome, error) {
	r.log.DebugContext(ctx, "opt-in not recorded (subscriptions disabled)")
	return Outcome{Status: StatusSkipped}, nil
}
