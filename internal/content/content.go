// Package content loads the copy rendered by the site from the embedded
// site.yaml file.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var siteYAML []byte

var Module = fx.Module("content",
	fx.Provide(Load),
)

// Site is the full content tree of the marketing site.
type Site struct {
	Brand        string    `yaml:"brand"`
	Copyright    string    `yaml:"copyright"`
	SupportEmail string    `yaml:"support_email"`
	LegalUpdated string    `yaml:"legal_updated"`
	Nav          []NavLink `yaml:"nav"`
	Hero         Hero      `yaml:"hero"`
	Features     []Feature `yaml:"features"`
	Steps        []Step    `yaml:"steps"`
	About        About     `yaml:"about"`
}

// NavLink is an in-page navigation entry.
type NavLink struct {
	Label string `yaml:"label"`
}

// Anchor returns the section id the link points at: the label lowercased
// with spaces replaced by dashes.
func (n NavLink) Anchor() string {
	return strings.ReplaceAll(strings.ToLower(n.Label), " ", "-")
}

// Href returns the fragment link for the entry.
func (n NavLink) Href() string {
	return "#" + n.Anchor()
}

type Hero struct {
	Badge       string `yaml:"badge"`
	Title       string `yaml:"title"`
	Highlight   string `yaml:"highlight"`
	TitleSuffix string `yaml:"title_suffix"`
	Subtitle    string `yaml:"subtitle"`
}

type Feature struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Step struct {
	Num         string `yaml:"num"`
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type About struct {
	Paragraphs      []string  `yaml:"paragraphs"`
	FoundersLine    string    `yaml:"founders_line"`
	FoundersTagline string    `yaml:"founders_tagline"`
	Founders        []Founder `yaml:"founders"`
}

type Founder struct {
	Initials string `yaml:"initials"`
}

// Load parses the embedded site content.
func Load() (*Site, error) {
	return Parse(siteYAML)
}

// Parse decodes and validates site content.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse site content: %w", err)
	}
	if err := site.validate(); err != nil {
		return nil, fmt.Errorf("invalid site content: %w", err)
	}
	return &site, nil
}

func (s *Site) validate() error {
	var errs []error
	if s.Brand == "" {
		errs = append(errs, errors.New("brand is required"))
	}
	if len(s.Nav) == 0 {
		errs = append(errs, errors.New("at least one nav link is required"))
	}
	for i, f := range s.Features {
		if f.Title == "" {
			errs = append(errs, fmt.Errorf("features[%d]: title is required", i))
		}
	}
	seen := make(map[string]bool, len(s.Steps))
	for i, st := range s.Steps {
		if st.Num == "" {
			errs = append(errs, fmt.Errorf("steps[%d]: num is required", i))
		}
		if seen[st.Num] {
			errs = append(errs, fmt.Errorf("steps[%d]: duplicate num %q", i, st.Num))
		}
		seen[st.Num] = true
	}
	return errors.Join(errs...)
}
