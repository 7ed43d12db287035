package studio

import (
	"strings"

	"charm.land/glamour/v2"
)

// renderMarkdown renders markdown for the terminal, falling back to the raw
// text when glamour cannot be initialised.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSuffix(rendered, "\n")
}
