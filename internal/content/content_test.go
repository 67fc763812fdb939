package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedContent(t *testing.T) {
	site, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "civiq", site.Brand)
	assert.Len(t, site.Nav, 3)
	assert.Len(t, site.Features, 4)
	assert.Len(t, site.Steps, 3)
	assert.Equal(t, "01", site.Steps[0].Num)
	assert.Len(t, site.About.Founders, 2)
	assert.Equal(t, "February 16, 2026", site.LegalUpdated)
}

func TestNavLinkAnchor(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Features", "features"},
		{"How It Works", "how-it-works"},
		{"About", "about"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			link := NavLink{Label: tt.label}
			assert.Equal(t, tt.want, link.Anchor())
			assert.Equal(t, "#"+tt.want, link.Href())
		})
	}
}

func TestParseValidation(t *testing.T) {
	_, err := Parse([]byte(`
brand: ""
steps:
  - num: "01"
  - num: "01"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brand is required")
	assert.Contains(t, err.Error(), "nav link")
	assert.Contains(t, err.Error(), `duplicate num "01"`)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("brand: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse site content")
}
