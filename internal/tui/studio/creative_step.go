package studio

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"

	"github.com/mark3labs/filmmaker/internal/project"
	"github.com/mark3labs/filmmaker/internal/tui/theme"
	"github.com/mark3labs/filmmaker/internal/tui/wizard"
)

const maxIdeaLength = 2000

type creativeFocus int

const (
	focusIdea creativeFocus = iota
	focusGenre
)

// CreativeStep collects the genre and the one-line idea.
type CreativeStep struct {
	genres   []string
	genre    int
	textarea textarea.Model
	focus    creativeFocus
	loading  bool
	spinner  Spinner
	err      string
	tmpFile  string
	width    int
}

// NewCreativeStep creates the creative step for the given genres.
func NewCreativeStep(genres []string) *CreativeStep {
	ta := textarea.New()
	ta.Placeholder = "A one-line pitch for your short film..."
	ta.CharLimit = maxIdeaLength
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.SetWidth(60)
	ta.Focus()

	return &CreativeStep{
		genres:   genres,
		textarea: ta,
		spinner:  NewSpinner(),
		width:    60,
	}
}

func validateIdea(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("idea cannot be empty")
	}
	return nil
}

// Enter loads the project's genre and idea into the form.
func (c *CreativeStep) Enter(p project.Project) tea.Cmd {
	c.genre = 0
	for i, g := range c.genres {
		if g == p.Genre {
			c.genre = i
		}
	}
	c.textarea.SetValue(p.Idea)
	c.err = ""
	c.focus = focusIdea
	c.textarea.Focus()
	return textarea.Blink
}

// SetSize updates the dimensions for the step.
func (c *CreativeStep) SetSize(width, _ int) {
	c.width = width
	w := min(width-4, 80)
	if w < 20 {
		w = 20
	}
	c.textarea.SetWidth(w)
}

// SetLoading toggles the generation spinner.
func (c *CreativeStep) SetLoading(loading bool) tea.Cmd {
	c.loading = loading
	if loading {
		return c.spinner.Tick()
	}
	return nil
}

// Loading reports whether a script request is in flight.
func (c *CreativeStep) Loading() bool {
	return c.loading
}

// Genre returns the selected genre.
func (c *CreativeStep) Genre() string {
	if len(c.genres) == 0 {
		return ""
	}
	return c.genres[c.genre]
}

// Idea returns the idea as typed.
func (c *CreativeStep) Idea() string {
	return strings.TrimSpace(c.textarea.Value())
}

// Update handles messages for the creative step.
func (c *CreativeStep) Update(msg tea.Msg) tea.Cmd {
	if c.loading {
		return c.spinner.Update(msg)
	}

	switch msg := msg.(type) {
	case IdeaEditedMsg:
		c.textarea.SetValue(strings.TrimSpace(msg.Idea))
		if c.tmpFile != "" {
			_ = os.Remove(c.tmpFile)
			c.tmpFile = ""
		}
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+s":
			return c.submit(false)
		case "ctrl+r":
			return c.submit(true)
		case "ctrl+e":
			return c.openEditor()
		case "tab", "shift+tab":
			if c.focus == focusIdea {
				c.focus = focusGenre
				c.textarea.Blur()
				return nil
			}
			c.focus = focusIdea
			return c.textarea.Focus()
		}

		if c.focus == focusGenre {
			switch msg.String() {
			case "left", "h":
				c.cycleGenre(-1)
			case "right", "l", "space":
				c.cycleGenre(1)
			case "enter":
				return c.submit(false)
			}
			return nil
		}

		if c.err != "" {
			c.err = ""
		}
	}

	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return cmd
}

func (c *CreativeStep) cycleGenre(delta int) {
	if len(c.genres) == 0 {
		return
	}
	c.genre = (c.genre + delta + len(c.genres)) % len(c.genres)
}

func (c *CreativeStep) submit(force bool) tea.Cmd {
	idea := c.Idea()
	if err := validateIdea(idea); err != nil {
		c.err = err.Error()
		return nil
	}
	c.err = ""
	genre := c.Genre()
	return func() tea.Msg {
		return GenerateRequestedMsg{Genre: genre, Idea: idea, Force: force}
	}
}

// openEditor launches $EDITOR on the current idea.
func (c *CreativeStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "filmmaker_idea_*.txt")
	if err != nil {
		return nil
	}
	if _, err := tmpfile.WriteString(c.textarea.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()
	c.tmpFile = tmpfile.Name()

	cmd, err := editor.Command("filmmaker", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		c.tmpFile = ""
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return nil
		}
		content, err := os.ReadFile(tmpfile.Name())
		if err != nil {
			return nil
		}
		return IdeaEditedMsg{Idea: string(content)}
	})
}

// View renders the creative form.
func (c *CreativeStep) View() string {
	t := theme.Current()
	st := t.S()
	var b strings.Builder

	b.WriteString(st.Title.Render("What's the story?"))
	b.WriteString("\n\n")

	label := st.Muted
	if c.focus == focusGenre {
		label = st.Accent
	}
	b.WriteString(label.Render("Genre  "))
	for i, g := range c.genres {
		if i == c.genre {
			b.WriteString(st.BadgeActive.Render(g))
		} else {
			b.WriteString(st.Badge.Render(g))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	border := lipgloss.Color(t.BgSurface2)
	if c.focus == focusIdea {
		border = lipgloss.Color(t.Primary)
	}
	box := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
	b.WriteString(box.Render(c.textarea.View()))
	b.WriteString("\n")

	if c.err != "" {
		b.WriteString(st.Error.Render("⚠ " + c.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if c.loading {
		b.WriteString(c.spinner.View() + " " + st.Accent.Render("The writers' room is drafting your script..."))
		return b.String()
	}
	b.WriteString(wizard.RenderHintBar("ctrl+s", "generate", "ctrl+r", "regenerate", "ctrl+e", "editor", "tab", "genre"))
	return b.String()
}
