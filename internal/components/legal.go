package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/luke-griggs/civiq-landing/internal/content"
)

type legalSection struct {
	Title string
	Body  []g.Node
}

func legalPage(site *content.Site, title string, sections []legalSection, extra ...g.Node) g.Node {
	return g.Group([]g.Node{
		Div(
			Class("bg-gradient-to-b from-emerald-50/60 to-white pt-12 pb-8 px-6"),
			Div(
				Class("max-w-3xl mx-auto"),
				A(
					Href("/"),
					Class("inline-flex items-center gap-1.5 text-sm text-stone-500 hover:text-stone-900 transition-colors mb-8"),
					Icon("lucide--arrow-left size-4", ""),
					g.Text("Back to Home"),
				),
				H1(Class("text-3xl sm:text-4xl font-bold text-stone-900 tracking-tight"), g.Text(title)),
				P(Class("mt-2 text-stone-500 text-sm"), g.Text("Last updated: "+site.LegalUpdated)),
			),
		),
		Main(
			Class("px-6 pb-20"),
			Div(
				Class("max-w-3xl mx-auto space-y-8 text-sm text-stone-600 leading-relaxed"),
				g.Group(mapIndexed(sections, func(i int, s legalSection) g.Node {
					return Section(
						H2(Class("text-xl font-semibold text-stone-900 mb-3"), g.Text(fmt.Sprintf("%d. %s", i+1, s.Title))),
						g.Group(s.Body),
					)
				})),
				g.Group(extra),
			),
		),
		LegalFooter(site),
	})
}

func mapIndexed[T any](ts []T, cb func(int, T) g.Node) []g.Node {
	nodes := make([]g.Node, 0, len(ts))
	for i, t := range ts {
		nodes = append(nodes, cb(i, t))
	}
	return nodes
}

func para(text string) g.Node {
	return P(g.Text(text))
}

func lead(text string) g.Node {
	return P(Class("mb-3"), g.Text(text))
}

func bullets(items ...g.Node) g.Node {
	return Ul(Class("list-disc pl-5 space-y-2"), g.Group(items))
}

func item(text string) g.Node {
	return Li(g.Text(text))
}

// term renders a bullet with a bold lead-in such as "Opt-Out:".
func term(label string, rest ...g.Node) g.Node {
	return Li(
		Strong(Class("text-stone-800"), g.Text(label)),
		g.Text(" "),
		g.Group(rest),
	)
}

func strong(text string) g.Node {
	return Strong(Class("text-stone-800"), g.Text(text))
}
