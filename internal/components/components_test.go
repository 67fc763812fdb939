package components

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/luke-griggs/civiq-landing/internal/content"
	"github.com/luke-griggs/civiq-landing/internal/optin"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func testSite(t *testing.T) *content.Site {
	t.Helper()
	site, err := content.Load()
	require.NoError(t, err)
	return site
}

var (
	submitTag   = regexp.MustCompile(`<button[^>]*data-optin-submit[^>]*>`)
	consentTag  = regexp.MustCompile(`<input[^>]*data-optin-consent[^>]*>`)
	phoneTag    = regexp.MustCompile(`<input[^>]*data-optin-phone[^>]*>`)
	disabledAtt = regexp.MustCompile(`\sdisabled(\s|>|=)`)
	checkedAtt  = regexp.MustCompile(`\schecked(\s|>|=)`)
)

func TestOptInWidgetEditing(t *testing.T) {
	tests := []struct {
		name         string
		phone        string
		consented    bool
		wantDisabled bool
	}{
		{"fresh form", "", false, true},
		{"consent without phone", "", true, true},
		{"phone without consent", PhoneExample, false, true},
		{"phone and consent", PhoneExample, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := optin.NewForm()
			form.SetPhoneText(tt.phone)
			form.SetConsented(tt.consented)

			html := render(t, OptInWidget(form))

			assert.Contains(t, html, `data-optin-state="editing"`)
			assert.Contains(t, html, `action="`+OptInPath+`#`+OptInAnchor+`"`)
			assert.Contains(t, html, `href="`+TermsPath+`"`)

			button := submitTag.FindString(html)
			require.NotEmpty(t, button)
			assert.Equal(t, tt.wantDisabled, disabledAtt.MatchString(button), button)

			checkbox := consentTag.FindString(html)
			require.NotEmpty(t, checkbox)
			assert.Equal(t, tt.consented, checkedAtt.MatchString(checkbox), checkbox)

			phone := phoneTag.FindString(html)
			assert.Contains(t, phone, `value="`+tt.phone+`"`)
			assert.Contains(t, phone, `type="tel"`)

			assert.NotContains(t, html, "signed up")
		})
	}
}

func TestOptInWidgetConfirmed(t *testing.T) {
	form := optin.NewForm()
	form.SetPhoneText(PhoneExample)
	form.SetConsented(true)
	require.True(t, form.AttemptSubmit())

	html := render(t, OptInWidget(form))

	assert.Contains(t, html, `data-optin-state="confirmed"`)
	assert.Contains(t, html, "SMS updates at (555) 123-4567.")
	assert.NotContains(t, html, "<form")
	assert.NotContains(t, html, "data-optin-submit")
}

func TestOptInWidgetEscapesPhone(t *testing.T) {
	form := optin.NewForm()
	form.SetPhoneText(`<script>alert(1)</script>`)
	form.SetConsented(true)
	require.True(t, form.AttemptSubmit())

	html := render(t, OptInWidget(form))

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestScrolled(t *testing.T) {
	assert.False(t, Scrolled(0))
	assert.False(t, Scrolled(ScrollThreshold))
	assert.True(t, Scrolled(ScrollThreshold+0.5))
	assert.True(t, Scrolled(500))
}

func TestNavbar(t *testing.T) {
	html := render(t, Navbar(testSite(t)))

	assert.Contains(t, html, `data-scroll-threshold="10"`)
	assert.Contains(t, html, `data-scrolled="false"`)
	assert.Contains(t, html, `aria-expanded="false"`)
	assert.Contains(t, html, `href="#how-it-works"`)
	assert.Equal(t, 2, strings.Count(html, `href="#contact"`))
}

func TestLandingPage(t *testing.T) {
	html := render(t, LandingPage(testSite(t)))

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	for _, id := range []string{"hero", "features", "how-it-works", "about", "contact"} {
		assert.Contains(t, html, `id="`+id+`"`)
	}
	assert.Contains(t, html, "Intelligent Triage")
	assert.Contains(t, html, "Department Coordination")
	assert.Contains(t, html, `href="`+PrivacyPolicyPath+`"`)
	assert.Contains(t, html, `href="`+TermsPath+`"`)
	assert.Contains(t, html, "/static/js/topbar-scroll.js")
	assert.NotContains(t, html, "data-optin-state")
}

func TestPrivacyPolicyPage(t *testing.T) {
	html := render(t, PrivacyPolicyPage(testSite(t), optin.NewForm()))

	assert.Contains(t, html, "<title>Privacy Policy - Civiq</title>")
	assert.Contains(t, html, "1. Introduction")
	assert.Contains(t, html, "9. Contact Us")
	assert.Contains(t, html, `href="mailto:support@civiq.ai"`)
	assert.Contains(t, html, `data-optin-state="editing"`)
	assert.Contains(t, html, "Last updated: February 16, 2026")
}

func TestTermsPage(t *testing.T) {
	html := render(t, TermsPage(testSite(t)))

	assert.Contains(t, html, "1. Acceptance of Terms")
	assert.Contains(t, html, "12. Contact")
	assert.Contains(t, html, "Civiq City Notifications")
	assert.Contains(t, html, `href="`+PrivacyPolicyPath+`"`)
	assert.NotContains(t, html, "data-optin-state")
}

func TestIcon(t *testing.T) {
	decorative := render(t, Icon("lucide--phone size-4", ""))
	assert.Contains(t, decorative, `data-icon="lucide:phone"`)
	assert.Contains(t, decorative, `class="iconify inline-block size-4"`)
	assert.Contains(t, decorative, `aria-hidden="true"`)

	labeled := render(t, Icon("lucide--menu", "Menu"))
	assert.Contains(t, labeled, `aria-label="Menu"`)
	assert.Contains(t, labeled, `class="iconify inline-block"`)
}
