// Package static embeds the stylesheet, scripts and images served under /static/.
package static

import "embed"

//go:embed styles.css js images
var FS embed.FS
