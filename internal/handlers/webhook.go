package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/luke-griggs/civiq-landing/internal/config"
	"github.com/luke-griggs/civiq-landing/internal/metrics"
	"github.com/luke-griggs/civiq-landing/internal/subscriptions"
	"github.com/luke-griggs/civiq-landing/pkg/apperror"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

// WebhookTokenHeader carries the shared secret for inbound SMS webhooks
const WebhookTokenHeader = "X-Webhook-Token"

// WebhookHandler receives inbound SMS replies from the messaging provider
type WebhookHandler struct {
	subs  *subscriptions.Service
	token string
	log   *slog.Logger
}

// NewWebhookHandler creates a new webhook handler. It returns nil when
// subscriptions are disabled.
func NewWebhookHandler(subs *subscriptions.Service, cfg *config.Config, log *slog.Logger) *WebhookHandler {
	if subs == nil {
		return nil
	}
	return &WebhookHandler{
		subs:  subs,
		token: cfg.Subscriptions.WebhookToken,
		log:   log.With(logger.Scope("webhook.sms")),
	}
}

// SMS applies STOP/START/HELP keywords and answers with the plain-text reply
func (h *WebhookHandler) SMS(w http.ResponseWriter, r *http.Request) {
	if h.token != "" &&
		subtle.ConstantTimeCompare([]byte(r.Header.Get(WebhookTokenHeader)), []byte(h.token)) != 1 {
		apperror.WriteError(w, r, h.log, apperror.ErrUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		apperror.WriteError(w, r, h.log, apperror.ErrBadRequest.WithInternal(err))
		return
	}
	from := r.PostForm.Get("From")
	if from == "" {
		apperror.WriteError(w, r, h.log, apperror.ErrBadRequest.WithMessage("From is required"))
		return
	}

	kw, reply, err := h.subs.HandleInbound(r.Context(), from, r.PostForm.Get("Body"))
	metrics.SMSKeywords.WithLabelValues(string(kw)).Inc()
	if err != nil {
		if reply == "" {
			apperror.WriteError(w, r, h.log, err)
			return
		}
		h.log.WarnContext(r.Context(), "keyword applied with error",
			slog.String("keyword", string(kw)),
			logger.Error(err))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(reply))
}
