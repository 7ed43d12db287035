package wizard

import (
	"strings"

	"github.com/mark3labs/filmmaker/internal/tui/theme"
)

// RenderHintBar renders a hint bar with the given key-description pairs.
// Example: RenderHintBar("↑↓", "navigate", "enter", "select", "esc", "back")
// Returns: "↑↓ navigate • enter select • esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + s.HintSeparator.Render("•") + " ")
		}
		b.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return b.String()
}

// RenderStepIndicator renders the wizard progress track, highlighting the
// current step and every step before it.
func RenderStepIndicator(labels []string, current int) string {
	s := theme.Current().S()
	parts := make([]string, len(labels))
	for i, label := range labels {
		switch {
		case i == current:
			parts[i] = s.BadgeActive.Render(label)
		case i < current:
			parts[i] = s.Accent.Render(label)
		default:
			parts[i] = s.Muted.Render(label)
		}
	}
	return strings.Join(parts, s.HintSeparator.Render(" ─ "))
}
