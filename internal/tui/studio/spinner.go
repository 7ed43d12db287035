package studio

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/filmmaker/internal/tui/theme"
)

// Spinner wraps the bubbles spinner with the theme's accent color.
type Spinner struct {
	model spinner.Model
}

// NewSpinner creates a MiniDot spinner.
func NewSpinner() Spinner {
	t := theme.Current()
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))),
	)
	return Spinner{model: s}
}

// Update handles spinner tick messages.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

// View renders the current frame.
func (s *Spinner) View() string {
	return s.model.View()
}

// Tick returns the command that starts the animation.
func (s *Spinner) Tick() tea.Cmd {
	return s.model.Tick
}
