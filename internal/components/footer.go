package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/luke-griggs/civiq-landing/internal/content"
)

const (
	PrivacyPolicyPath = "/privacy-policy"
	TermsPath         = "/terms-and-conditions"
)

const footerLinkClass = "hover:text-stone-600 transition-colors"

// PageFooter renders the landing footer with section anchors and legal links.
func PageFooter(site *content.Site) g.Node {
	return footer(
		Span(Class("text-sm font-bold text-emerald-800"), g.Text(site.Brand)),
		site.Copyright,
		g.Group(g.Map(site.Nav, func(link content.NavLink) g.Node {
			return A(Href(link.Href()), Class(footerLinkClass), g.Text(link.Label))
		})),
		legalLinks(),
	)
}

// LegalFooter renders the footer shared by the legal pages.
func LegalFooter(site *content.Site) g.Node {
	return footer(
		A(Href("/"), Class("text-sm font-bold text-emerald-800"), g.Text(site.Brand)),
		site.Copyright,
		legalLinks(),
	)
}

func legalLinks() g.Node {
	return g.Group([]g.Node{
		A(Href(PrivacyPolicyPath), Class(footerLinkClass), g.Text("Privacy Policy")),
		A(Href(TermsPath), Class(footerLinkClass), g.Text("Terms & Conditions")),
	})
}

func footer(brand g.Node, copyright string, links ...g.Node) g.Node {
	return Footer(
		Class("py-10 px-6 bg-white border-t border-stone-200"),
		Div(
			Class("max-w-5xl mx-auto flex flex-col md:flex-row items-center justify-between gap-4"),
			brand,
			Div(Class("flex items-center gap-6 text-xs text-stone-400"), g.Group(links)),
			P(Class("text-xs text-stone-400"), g.Text(copyright)),
		),
	)
}
