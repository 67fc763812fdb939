package handlers

import (
	"log/slog"
	"net/http"

	g "maragu.dev/gomponents"

	"github.com/luke-griggs/civiq-landing/internal/components"
	"github.com/luke-griggs/civiq-landing/internal/content"
	"github.com/luke-griggs/civiq-landing/internal/optin"
	"github.com/luke-griggs/civiq-landing/pkg/logger"
)

// PageHandler serves the static pages
type PageHandler struct {
	site *content.Site
	log  *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(site *content.Site, log *slog.Logger) *PageHandler {
	return &PageHandler{site: site, log: log.With(logger.Scope("pages"))}
}

func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.log, http.StatusOK, components.LandingPage(h.site))
}

// PrivacyPolicy renders the policy with a fresh opt-in widget
func (h *PageHandler) PrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.log, http.StatusOK, components.PrivacyPolicyPage(h.site, optin.NewForm()))
}

func (h *PageHandler) Terms(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.log, http.StatusOK, components.TermsPage(h.site))
}

// render writes node as an HTML document
func render(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if err := node.Render(w); err != nil {
		log.ErrorContext(r.Context(), "render failed",
			slog.String("uri", r.URL.RequestURI()),
			logger.Error(err))
	}
}
