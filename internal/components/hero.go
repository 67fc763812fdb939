package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/luke-griggs/civiq-landing/internal/content"
)

func Hero(hero content.Hero) g.Node {
	return Section(
		ID("hero"),
		Class("pt-32 pb-20 md:pt-44 md:pb-32 px-6 bg-gradient-to-b from-emerald-50/60 to-white"),
		Div(
			Class("max-w-3xl mx-auto text-center stagger"),
			Div(
				Class("inline-flex items-center gap-2 px-3 py-1 rounded-full bg-emerald-100 text-emerald-800 text-xs font-medium mb-6 fade-up"),
				Span(Class("w-1.5 h-1.5 rounded-full bg-emerald-500")),
				g.Text(hero.Badge),
			),
			H1(
				Class("text-4xl sm:text-5xl md:text-6xl font-bold text-stone-900 leading-tight tracking-tight mb-6 fade-up"),
				g.Text(hero.Title+" "),
				Span(Class("text-emerald-700"), g.Text(hero.Highlight)),
				g.Text(" "+hero.TitleSuffix),
			),
			P(
				Class("text-lg text-stone-500 max-w-xl mx-auto mb-10 leading-relaxed fade-up"),
				g.Text(hero.Subtitle),
			),
			Div(
				Class("flex flex-col sm:flex-row items-center justify-center gap-3 fade-up"),
				A(
					Href("#contact"),
					Class("px-6 py-3 bg-emerald-700 hover:bg-emerald-800 text-white font-medium rounded-lg transition-colors duration-200 text-sm"),
					g.Text("Request a Demo"),
				),
				A(
					Href("#how-it-works"),
					Class("group flex items-center gap-1.5 px-6 py-3 text-stone-600 hover:text-stone-900 font-medium text-sm transition-colors"),
					g.Text("See How It Works"),
					Icon("lucide--arrow-right size-4", ""),
				),
			),
		),
	)
}
