package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luke-griggs/civiq-landing/internal/components"
	"github.com/luke-griggs/civiq-landing/internal/config"
	"github.com/luke-griggs/civiq-landing/internal/content"
	"github.com/luke-griggs/civiq-landing/internal/database"
	"github.com/luke-griggs/civiq-landing/internal/optin"
	"github.com/luke-griggs/civiq-landing/internal/subscriptions"
	"github.com/luke-griggs/civiq-landing/pkg/apperror"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSite(t *testing.T) *content.Site {
	t.Helper()
	site, err := content.Load()
	require.NoError(t, err)
	return site
}

type fakeRecorder struct {
	phones  []string
	clients []subscriptions.Client
	err     error
}

func (f *fakeRecorder) SubmitOptIn(ctx context.Context, phoneText string) (optin.Outcome, error) {
	f.phones = append(f.phones, phoneText)
	f.clients = append(f.clients, subscriptions.ClientFrom(ctx))
	if f.err != nil {
		return optin.Outcome{}, f.err
	}
	return optin.Outcome{ID: "sub-1", Status: optin.StatusRecorded}, nil
}

func postForm(h http.HandlerFunc, target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "handlers-test")
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestPages(t *testing.T) {
	h := NewPageHandler(testSite(t), testLogger())

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    []string
	}{
		{"landing", h.Landing, []string{"<!DOCTYPE html>", `id="features"`}},
		{"privacy policy", h.PrivacyPolicy, []string{"Privacy Policy", `data-optin-state="editing"`}},
		{"terms", h.Terms, []string{"SMS Messaging Terms"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			for _, want := range tt.want {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestPages_Head(t *testing.T) {
	h := NewPageHandler(testSite(t), testLogger())
	rec := httptest.NewRecorder()
	h.Landing(rec, httptest.NewRequest(http.MethodHead, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestOptInSubmit(t *testing.T) {
	tests := []struct {
		name          string
		values        url.Values
		wantConfirmed bool
	}{
		{"phone and consent", url.Values{"phone": {"(555) 123-4567"}, "consent": {"yes"}}, true},
		{"browser default checkbox value", url.Values{"phone": {"555-0100"}, "consent": {"on"}}, true},
		{"free-form phone is not validated", url.Values{"phone": {"call me maybe"}, "consent": {"yes"}}, true},
		{"missing consent", url.Values{"phone": {"(555) 123-4567"}}, false},
		{"empty phone", url.Values{"phone": {""}, "consent": {"yes"}}, false},
		{"nothing", url.Values{}, false},
		{"unknown consent value", url.Values{"phone": {"(555) 123-4567"}, "consent": {"no"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			h := NewOptInHandler(testSite(t), rec, testLogger())

			resp := postForm(h.Submit, components.OptInPath, tt.values)
			body := resp.Body.String()

			assert.Equal(t, http.StatusOK, resp.Code)
			if tt.wantConfirmed {
				assert.Contains(t, body, `data-optin-state="confirmed"`)
				assert.Contains(t, body, "signed up")
				assert.NotContains(t, body, "data-optin-form")
				require.Equal(t, []string{tt.values.Get("phone")}, rec.phones)
				return
			}

			assert.Contains(t, body, `data-optin-state="editing"`)
			assert.Contains(t, body, "data-optin-form")
			assert.NotContains(t, body, "signed up")
			assert.Empty(t, rec.phones, "rejected attempts never reach the recorder")
		})
	}
}

func TestOptInSubmit_EchoesPhoneVerbatim(t *testing.T) {
	h := NewOptInHandler(testSite(t), &fakeRecorder{}, testLogger())

	resp := postForm(h.Submit, components.OptInPath, url.Values{
		"phone":   {"  +1 (555) 123-4567 ext. 9  "},
		"consent": {"yes"},
	})
	assert.Contains(t, resp.Body.String(), "  +1 (555) 123-4567 ext. 9  .")
}

func TestOptInSubmit_PassesClientMetadata(t *testing.T) {
	rec := &fakeRecorder{}
	h := NewOptInHandler(testSite(t), rec, testLogger())

	postForm(h.Submit, components.OptInPath, url.Values{"phone": {"5551234567"}, "consent": {"yes"}})

	require.Len(t, rec.clients, 1)
	assert.Equal(t, "203.0.113.7", rec.clients[0].IP)
	assert.Equal(t, "handlers-test", rec.clients[0].UserAgent)
}

func TestOptInSubmit_RecorderFailureStillConfirms(t *testing.T) {
	for _, err := range []error{apperror.ErrInvalidPhone, errors.New("connection refused")} {
		h := NewOptInHandler(testSite(t), &fakeRecorder{err: err}, testLogger())

		resp := postForm(h.Submit, components.OptInPath, url.Values{"phone": {"12"}, "consent": {"yes"}})
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `data-optin-state="confirmed"`)
	}
}

func TestOptInRateLimited(t *testing.T) {
	h := NewOptInHandler(testSite(t), &fakeRecorder{}, testLogger())

	resp := postForm(h.RateLimited, components.OptInPath, url.Values{})
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "60", resp.Header().Get("Retry-After"))

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "rate_limited", body["error"]["code"])
}

func TestOptInRedirect(t *testing.T) {
	h := NewOptInHandler(testSite(t), &fakeRecorder{}, testLogger())
	rec := httptest.NewRecorder()
	h.Redirect(rec, httptest.NewRequest(http.MethodGet, components.OptInPath, nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/privacy-policy#sms-opt-in", rec.Header().Get("Location"))
}

type stubRepo struct {
	rows map[string]*subscriptions.Subscription
}

func (r *stubRepo) FindByPhone(_ context.Context, n string) (*subscriptions.Subscription, error) {
	if s, ok := r.rows[n]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *stubRepo) Create(_ context.Context, s *subscriptions.Subscription) error {
	r.rows[s.PhoneNormalized] = s
	return nil
}

func (r *stubRepo) Reactivate(_ context.Context, s *subscriptions.Subscription) error {
	r.rows[s.PhoneNormalized] = s
	return nil
}

func (r *stubRepo) OptOut(_ context.Context, n string, at time.Time) (bool, error) {
	s, ok := r.rows[n]
	if !ok || s.Status != subscriptions.StatusActive {
		return false, nil
	}
	s.Status = subscriptions.StatusOptedOut
	s.OptedOutAt = &at
	return true, nil
}

func (r *stubRepo) DeleteOptedOutBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func newWebhook(token string) (*WebhookHandler, *stubRepo) {
	repo := &stubRepo{rows: map[string]*subscriptions.Subscription{
		"5551234567": {PhoneNormalized: "5551234567", Status: subscriptions.StatusActive},
	}}
	cfg := &config.Config{}
	cfg.Subscriptions.WebhookToken = token
	svc := subscriptions.NewService(repo, nil, testLogger())
	return NewWebhookHandler(svc, cfg, testLogger()), repo
}

func TestNewWebhookHandler_DisabledIsNil(t *testing.T) {
	assert.Nil(t, NewWebhookHandler(nil, &config.Config{}, testLogger()))
}

func TestWebhookSMS(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		header     string
		values     url.Values
		wantStatus int
		wantBody   string
	}{
		{
			name:       "stop",
			values:     url.Values{"From": {"+15551234567"}, "Body": {" Stop "}},
			wantStatus: http.StatusOK,
			wantBody:   subscriptions.ReplyStop,
		},
		{
			name:       "help",
			values:     url.Values{"From": {"+15551234567"}, "Body": {"HELP"}},
			wantStatus: http.StatusOK,
			wantBody:   subscriptions.ReplyHelp,
		},
		{
			name:       "unknown body",
			values:     url.Values{"From": {"+15551234567"}, "Body": {"is the pothole fixed?"}},
			wantStatus: http.StatusOK,
			wantBody:   "",
		},
		{
			name:       "stop from malformed number still replies",
			values:     url.Values{"From": {"12345"}, "Body": {"STOP"}},
			wantStatus: http.StatusOK,
			wantBody:   subscriptions.ReplyStop,
		},
		{
			name:       "start from malformed number",
			values:     url.Values{"From": {"12345"}, "Body": {"START"}},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing from",
			values:     url.Values{"Body": {"STOP"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "token required",
			token:      "s3cret",
			header:     "wrong",
			values:     url.Values{"From": {"+15551234567"}, "Body": {"STOP"}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token accepted",
			token:      "s3cret",
			header:     "s3cret",
			values:     url.Values{"From": {"+15551234567"}, "Body": {"HELP"}},
			wantStatus: http.StatusOK,
			wantBody:   subscriptions.ReplyHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newWebhook(tt.token)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/sms", strings.NewReader(tt.values.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.header != "" {
				req.Header.Set(WebhookTokenHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.SMS(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestWebhookSMS_StopOptsOut(t *testing.T) {
	h, repo := newWebhook("")

	form := url.Values{"From": {"+15551234567"}, "Body": {"unsubscribe"}}
	req := httptest.NewRequest(http.MethodPost, "/webhooks/sms", bytes.NewBufferString(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.SMS(httptest.NewRecorder(), req)

	assert.Equal(t, subscriptions.StatusOptedOut, repo.rows["5551234567"].Status)
}

func TestHealth_DatabaseDisabled(t *testing.T) {
	h := NewHealthHandler(&database.DB{})

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "disabled", resp.Checks["database"].Status)
	assert.NotEmpty(t, resp.Version)

	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "OK", rec.Body.String())
}
