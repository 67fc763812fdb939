package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// CTA renders the demo request section. Its form never submits.
func CTA() g.Node {
	return Section(
		ID("contact"),
		Class("py-20 md:py-28 px-6 bg-emerald-800"),
		Div(
			Class("max-w-2xl mx-auto text-center stagger"),
			H2(Class("text-3xl md:text-4xl font-bold text-white mb-4 fade-up"), g.Text("Ready to transform your city?")),
			P(Class("text-emerald-200 mb-8 max-w-md mx-auto fade-up"), g.Text("Start with a 30-day pilot. No setup fees, no credit card.")),
			g.El("form",
				g.Attr("onsubmit", "return false"),
				Class("flex flex-col sm:flex-row items-center justify-center gap-3 max-w-sm mx-auto fade-up"),
				Input(
					Type("email"),
					Name("email"),
					Placeholder("your@city.gov"),
					Class("w-full sm:flex-1 px-4 py-3 rounded-lg bg-white/10 border border-white/20 text-white placeholder-emerald-300/60 text-sm focus:outline-none focus:border-white/40 transition-colors"),
				),
				Button(
					Type("submit"),
					Class("w-full sm:w-auto px-6 py-3 bg-white text-emerald-800 font-medium text-sm rounded-lg hover:bg-emerald-50 transition-colors duration-200 cursor-pointer whitespace-nowrap"),
					g.Text("Request Demo"),
				),
			),
		),
	)
}
