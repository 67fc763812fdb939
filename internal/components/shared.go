package components

import (
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const linkClass = "text-emerald-700 underline underline-offset-2 hover:text-emerald-800"

func Logo(brand string) g.Node {
	return Span(
		Class("text-xl font-bold text-emerald-800 tracking-tight"),
		g.Text(brand),
	)
}

func convertIconName(iconClass string) string {
	parts := strings.Fields(iconClass)
	if len(parts) == 0 {
		return ""
	}
	return strings.Replace(parts[0], "--", ":", 1)
}

func extractSizeClasses(iconClass string) string {
	parts := strings.Fields(iconClass)
	if len(parts) > 1 {
		return strings.Join(parts[1:], " ")
	}
	return ""
}

// Icon renders an iconify icon from a "lucide--name size-4" style class.
// An empty ariaLabel marks the icon decorative.
func Icon(iconClass, ariaLabel string) g.Node {
	iconName := convertIconName(iconClass)
	sizeClasses := extractSizeClasses(iconClass)
	classes := "iconify inline-block"
	if sizeClasses != "" {
		classes = fmt.Sprintf("iconify inline-block %s", sizeClasses)
	}

	if ariaLabel != "" {
		return Span(
			Class(classes),
			g.Attr("data-icon", iconName),
			g.Attr("role", "img"),
			g.Attr("aria-label", ariaLabel),
		)
	}

	return Span(
		Class(classes),
		g.Attr("data-icon", iconName),
		g.Attr("aria-hidden", "true"),
	)
}

// IconBadge renders an icon inside a tinted square or circle.
func IconBadge(icon, shape string) g.Node {
	return Div(
		Class(fmt.Sprintf("%s bg-emerald-100 flex items-center justify-center text-emerald-700", shape)),
		Icon(icon+" size-5", ""),
	)
}

// SectionHeading renders the eyebrow, heading and lead paragraph shared by
// the landing page sections.
func SectionHeading(eyebrow, title, lead string) g.Node {
	return Div(
		Class("text-center mb-14"),
		P(Class("text-sm font-medium text-emerald-700 mb-2 fade-up"), g.Text(eyebrow)),
		H2(Class("text-3xl md:text-4xl font-bold text-stone-900 mb-3 fade-up"), g.Text(title)),
		g.If(lead != "", P(Class("text-stone-500 max-w-lg mx-auto fade-up"), g.Text(lead))),
	)
}

func mailto(address string) g.Node {
	return A(Href("mailto:"+address), Class(linkClass), g.Text(address))
}
