package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/luke-griggs/civiq-landing/internal/content"
)

func Features(features []content.Feature) g.Node {
	return Section(
		ID("features"),
		Class("py-20 md:py-28 px-6 bg-white"),
		Div(
			Class("max-w-5xl mx-auto"),
			SectionHeading(
				"Features",
				"Built for how cities actually work",
				"Not another chatbot. A system of agents that manage operations end-to-end.",
			),
			Div(
				Class("grid md:grid-cols-2 gap-5 stagger"),
				g.Group(g.Map(features, func(f content.Feature) g.Node {
					return Div(
						Class("feature-card p-6 rounded-xl border border-stone-200 bg-stone-50/50 hover:border-emerald-200 hover:bg-emerald-50/30 transition-colors duration-200 fade-up"),
						Div(Class("mb-4"), IconBadge(f.Icon, "w-10 h-10 rounded-lg")),
						H3(Class("text-lg font-semibold text-stone-900 mb-1.5"), g.Text(f.Title)),
						P(Class("text-sm text-stone-500 leading-relaxed"), g.Text(f.Description)),
					)
				})),
			),
		),
	)
}

func HowItWorks(steps []content.Step) g.Node {
	return Section(
		ID("how-it-works"),
		Class("py-20 md:py-28 px-6 bg-stone-50"),
		Div(
			Class("max-w-5xl mx-auto"),
			SectionHeading("How It Works", "From first ring to resolution", "Three steps. Fully autonomous."),
			Div(
				Class("grid md:grid-cols-3 gap-8 stagger"),
				g.Group(g.Map(steps, func(s content.Step) g.Node {
					return Div(
						Class("text-center fade-up"),
						Div(Class("mx-auto mb-5 w-14"), IconBadge(s.Icon, "w-14 h-14 rounded-full")),
						Span(Class("text-xs font-mono text-emerald-600 mb-2 block"), g.Text(s.Num)),
						H3(Class("text-lg font-semibold text-stone-900 mb-2"), g.Text(s.Title)),
						P(Class("text-sm text-stone-500 leading-relaxed max-w-xs mx-auto"), g.Text(s.Description)),
					)
				})),
			),
		),
	)
}

func About(about content.About) g.Node {
	return Section(
		ID("about"),
		Class("py-20 md:py-28 px-6 bg-white"),
		Div(
			Class("max-w-3xl mx-auto text-center stagger"),
			P(Class("text-sm font-medium text-emerald-700 mb-2 fade-up"), g.Text("About")),
			H2(Class("text-3xl md:text-4xl font-bold text-stone-900 mb-6 fade-up"), g.Text("Built by people who ship agents to production")),
			g.Group(g.Map(about.Paragraphs, func(p string) g.Node {
				return P(Class("text-stone-500 leading-relaxed mb-4 fade-up"), g.Text(p))
			})),
			Div(
				Class("flex items-center justify-center gap-3 mt-8 fade-up"),
				Div(
					Class("flex -space-x-2"),
					g.Group(g.Map(about.Founders, func(f content.Founder) g.Node {
						return Div(
							Class("w-9 h-9 rounded-full bg-emerald-100 border-2 border-white flex items-center justify-center text-emerald-700 text-xs font-semibold"),
							g.Text(f.Initials),
						)
					})),
				),
				Div(
					Class("text-left"),
					P(Class("text-sm font-medium text-stone-900"), g.Text(about.FoundersLine)),
					P(Class("text-xs text-stone-400"), g.Text(about.FoundersTagline)),
				),
			),
		),
	)
}
