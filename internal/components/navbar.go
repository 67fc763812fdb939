package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/luke-griggs/civiq-landing/internal/content"
)

// ScrollThreshold is the vertical scroll offset in pixels past which the
// navbar switches to its solid style.
const ScrollThreshold = 10

// Scrolled reports whether the navbar should use its solid style at scrollY.
// topbar-scroll.js applies the same comparison on every scroll event.
func Scrolled(scrollY float64) bool {
	return scrollY > ScrollThreshold
}

func Navbar(site *content.Site) g.Node {
	return Nav(
		ID("navbar"),
		g.Attr("data-scroll-threshold", strconv.Itoa(ScrollThreshold)),
		g.Attr("data-scrolled", "false"),
		Class("navbar fixed top-0 left-0 right-0 z-50 transition-[background-color,border-color,box-shadow] duration-300"),

		Div(
			Class("max-w-6xl mx-auto px-6 h-16 flex items-center justify-between"),
			A(Href("#"), Logo(site.Brand)),

			Div(
				Class("hidden md:flex items-center gap-8"),
				g.Group(g.Map(site.Nav, func(link content.NavLink) g.Node {
					return A(
						Href(link.Href()),
						Class("text-sm text-stone-500 hover:text-stone-900 transition-colors duration-200"),
						g.Text(link.Label),
					)
				})),
				A(
					Href("#contact"),
					Class("px-4 py-2 bg-emerald-700 hover:bg-emerald-800 text-white text-sm font-medium rounded-lg transition-colors duration-200"),
					g.Text("Request Demo"),
				),
			),

			Button(
				Type("button"),
				Class("md:hidden text-stone-600"),
				g.Attr("data-menu-toggle", ""),
				g.Attr("aria-label", "Menu"),
				g.Attr("aria-expanded", "false"),
				g.Attr("aria-controls", "mobile-menu"),
				Span(g.Attr("data-menu-icon", "open"), Icon("lucide--menu size-5.5", "")),
				Span(g.Attr("data-menu-icon", "close"), g.Attr("hidden", ""), Icon("lucide--x size-5.5", "")),
			),
		),

		Div(
			ID("mobile-menu"),
			g.Attr("data-menu-panel", ""),
			g.Attr("hidden", ""),
			Class("md:hidden overflow-hidden bg-white border-b border-stone-200"),
			Div(
				Class("px-6 pb-4 pt-2 space-y-3"),
				g.Group(g.Map(site.Nav, func(link content.NavLink) g.Node {
					return A(
						Href(link.Href()),
						Class("block text-stone-600 text-sm"),
						g.Attr("data-menu-close", ""),
						g.Text(link.Label),
					)
				})),
				A(
					Href("#contact"),
					Class("block text-center px-4 py-2 bg-emerald-700 text-white text-sm font-medium rounded-lg"),
					g.Attr("data-menu-close", ""),
					g.Text("Request Demo"),
				),
			),
		),
	)
}
