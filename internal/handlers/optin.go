package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/luke-griggs/civiq-landing/internal/components"
	"github.com/luke-griggs/civiq-landing/internal/content"
	"github.com/luke-griggs/civiq-landing/internal/metrics"
	"github.com/luke-griggs/civiq-landing/internal/optin"
	"github.com/luke-griggs/civiq-landing/internal/ratelimit"
	"github.com/luke-griggs/civiq-landing/internal/subscriptions"
	"github.com/luke-griggs/civiq-landing/pkg/apperror"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
	"github.com/luke-griggs/civiq-landing/pkg/tracing"
)

const outcomeRateLimited = "rate_limited"

// OptInHandler accepts posts from the SMS opt-in widget
type OptInHandler struct {
	site     *content.Site
	recorder optin.Recorder
	log      *slog.Logger
}

// NewOptInHandler creates a new opt-in handler
func NewOptInHandler(site *content.Site, recorder optin.Recorder, log *slog.Logger) *OptInHandler {
	return &OptInHandler{
		site:     site,
		recorder: recorder,
		log:      log.With(logger.Scope("optin")),
	}
}

// Submit rebuilds the widget from the posted fields and attempts the
// transition. A rejected attempt re-renders the page unchanged with 200.
func (h *OptInHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		apperror.WriteError(w, r, h.log, apperror.ErrBadRequest.WithInternal(err))
		return
	}

	form := optin.NewForm()
	form.SetPhoneText(r.PostForm.Get(components.PhoneField))
	form.SetConsented(consentGiven(r.PostForm.Get(components.ConsentField)))

	if form.AttemptSubmit() {
		h.record(r, form.ConfirmedPhone())
	}
	metrics.OptInAttempts.WithLabelValues(form.State().String()).Inc()

	render(w, r, h.log, http.StatusOK, components.PrivacyPolicyPage(h.site, form))
}

// Redirect sends stray GETs back to the widget
func (h *OptInHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, components.PrivacyPolicyPath+"#"+components.OptInAnchor, http.StatusSeeOther)
}

// RateLimited rejects a post over the per-client limit
func (h *OptInHandler) RateLimited(w http.ResponseWriter, r *http.Request) {
	metrics.OptInAttempts.WithLabelValues(outcomeRateLimited).Inc()
	h.log.WarnContext(r.Context(), "opt-in rate limited", slog.String("client", ratelimit.ClientKey(r)))
	w.Header().Set("Retry-After", "60")
	apperror.WriteError(w, r, h.log, apperror.ErrRateLimited)
}

// record hands a confirmed phone to the recorder. Failures are logged and
// counted; the widget stays confirmed.
func (h *OptInHandler) record(r *http.Request, phone string) {
	ctx := subscriptions.WithClient(r.Context(), subscriptions.Client{
		IP:        ratelimit.ClientKey(r),
		UserAgent: r.UserAgent(),
	})
	ctx, span := tracing.Start(ctx, "optin.record")
	defer span.End()

	out, err := h.recorder.SubmitOptIn(ctx, phone)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.OptInRecorded.WithLabelValues("error").Inc()

		level := slog.LevelError
		if code, _ := apperror.ToHTTPError(err); code < 500 {
			level = slog.LevelWarn
		}
		h.log.Log(ctx, level, "opt-in not recorded", logger.Error(err))
		return
	}

	span.SetAttributes(attribute.String("optin.status", string(out.Status)))
	metrics.OptInRecorded.WithLabelValues(string(out.Status)).Inc()
	h.log.InfoContext(ctx, "opt-in confirmed",
		slog.String("status", string(out.Status)),
		slog.String("id", out.ID))
}

// consentGiven accepts the widget's value plus the browser default for a
// checkbox without a value attribute.
func consentGiven(v string) bool {
	switch strings.ToLower(v) {
	case components.ConsentValue, "on", "true":
		return true
	}
	return false
}
