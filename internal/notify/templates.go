package notify

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/aymerick/raymond"
)

//go:embed templates/*.hbs
var templateFS embed.FS

// Templates holds parsed Handlebars templates keyed by name. Each name has an
// HTML variant (<name>.html.hbs) and a text variant (<name>.txt.hbs).
type Templates struct {
	html map[string]*raymond.Template
	text map[string]*raymond.Template
}

// Rendered is the output of a template pair
type Rendered struct {
	HTML string
	Text string
}

// LoadTemplates parses every embedded template
func LoadTemplates() (*Templates, error) {
	t := &Templates{
		html: make(map[string]*raymond.Template),
		text: make(map[string]*raymond.Template),
	}

	entries, err := fs.Glob(templateFS, "templates/*.hbs")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	for _, path := range entries {
		source, err := fs.ReadFile(templateFS, path)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", path, err)
		}
		tpl, err := raymond.Parse(string(source))
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", path, err)
		}

		base := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".hbs")
		switch {
		case strings.HasSuffix(base, ".html"):
			t.html[strings.TrimSuffix(base, ".html")] = tpl
		case strings.HasSuffix(base, ".txt"):
			t.text[strings.TrimSuffix(base, ".txt")] = tpl
		default:
			return nil, fmt.Errorf("template %s must end in .html.hbs or .txt.hbs", path)
		}
	}

	return t, nil
}

// Render executes both variants of a template
func (t *Templates) Render(name string, data map[string]any) (*Rendered, error) {
	htmlTpl, ok := t.html[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	html, err := htmlTpl.Exec(data)
	if err != nil {
		return nil, fmt.Errorf("render %s html: %w", name, err)
	}

	out := &Rendered{HTML: html}
	if textTpl, ok := t.text[name]; ok {
		text, err := textTpl.Exec(data)
		if err != nil {
			return nil, fmt.Errorf("render %s text: %w", name, err)
		}
		out.Text = text
	}
	return out, nil
}
