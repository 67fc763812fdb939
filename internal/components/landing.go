package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/luke-griggs/civiq-landing/internal/content"
)

func LandingPage(site *content.Site) g.Node {
	return Layout(
		PageConfig{},
		Div(
			Class("min-h-screen bg-white"),
			Navbar(site),
			Main(
				Hero(site.Hero),
				Features(site.Features),
				HowItWorks(site.Steps),
				About(site.About),
				CTA(),
			),
			PageFooter(site),
		),
	)
}
