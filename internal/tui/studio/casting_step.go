package studio

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/filmmaker/internal/catalog"
	"github.com/mark3labs/filmmaker/internal/project"
	"github.com/mark3labs/filmmaker/internal/tui/theme"
	"github.com/mark3labs/filmmaker/internal/tui/wizard"
)

// CastingStep shows who plays each character and lets the user recast.
type CastingStep struct {
	catalog    *catalog.Catalog
	actors     []project.Actor
	characters []string
	cast       map[string]project.Actor
	cursor     int

	pickerOpen   bool
	pickerCursor int

	width int
}

// NewCastingStep creates the casting step over the catalog's actors.
func NewCastingStep(cat *catalog.Catalog) *CastingStep {
	return &CastingStep{catalog: cat, actors: cat.Actors, width: 80}
}

// Enter refreshes the character list from the project.
func (c *CastingStep) Enter(p project.Project) {
	c.characters = project.DistinctCharacters(p.Lines)
	c.cast = p.Cast
	if c.cursor >= len(c.characters) {
		c.cursor = 0
	}
}

// Exit closes the picker.
func (c *CastingStep) Exit() {
	c.pickerOpen = false
}

// SetSize updates the dimensions for the step.
func (c *CastingStep) SetSize(width, _ int) {
	c.width = width
}

// PickerOpen reports whether the actor picker overlay is showing.
func (c *CastingStep) PickerOpen() bool {
	return c.pickerOpen
}

// Selected returns the character under the cursor.
func (c *CastingStep) Selected() string {
	if c.cursor < 0 || c.cursor >= len(c.characters) {
		return ""
	}
	return c.characters[c.cursor]
}

// Update handles messages for the casting step.
func (c *CastingStep) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	if c.pickerOpen {
		return c.updatePicker(key)
	}

	switch key.String() {
	case "up", "k", "left", "h":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j", "right", "l":
		if c.cursor < len(c.characters)-1 {
			c.cursor++
		}
	case "enter", "space":
		c.openPicker()
	}
	return nil
}

func (c *CastingStep) openPicker() {
	char := c.Selected()
	if char == "" || len(c.actors) == 0 {
		return
	}
	c.pickerOpen = true
	c.pickerCursor = c.catalog.ActorIndex(c.cast[char].ID)
}

func (c *CastingStep) updatePicker(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		c.pickerOpen = false
	case "up", "k":
		if c.pickerCursor > 0 {
			c.pickerCursor--
		}
	case "down", "j":
		if c.pickerCursor < len(c.actors)-1 {
			c.pickerCursor++
		}
	case "enter", "space":
		c.pickerOpen = false
		char := c.Selected()
		actor := c.actors[c.pickerCursor]
		return func() tea.Msg {
			return ActorChosenMsg{Character: char, Actor: actor}
		}
	}
	return nil
}

// View renders the cast list or the picker overlay.
func (c *CastingStep) View() string {
	st := theme.Current().S()
	if c.pickerOpen {
		return c.pickerView()
	}

	var b strings.Builder
	b.WriteString(st.Title.Render("Casting"))
	b.WriteString("\n\n")

	if len(c.characters) == 0 {
		b.WriteString(st.Muted.Render("No characters in this script."))
		b.WriteString("\n")
	}

	cards := make([]string, 0, len(c.characters))
	for i, char := range c.characters {
		actor, ok := c.cast[char]
		name := "unassigned"
		if ok {
			name = actor.Name
		}
		body := st.Subtitle.Render(char) + "\n" + st.Text.Render("played by "+name)
		if ok {
			body += "\n" + st.Muted.Render(fmt.Sprintf("%s · %s", actor.Gender, actor.Age))
		}
		panel := st.Panel
		if i == c.cursor {
			panel = st.PanelFocused
		}
		cards = append(cards, panel.Width(26).Render(body))
	}
	b.WriteString(wrapCards(cards, c.width))
	b.WriteString("\n\n")
	b.WriteString(wizard.RenderHintBar("←→", "select", "enter", "recast", "ctrl+s", "continue", "esc", "back"))
	return b.String()
}

func (c *CastingStep) pickerView() string {
	st := theme.Current().S()
	var b strings.Builder
	b.WriteString(st.Title.Render("Who plays " + c.Selected() + "?"))
	b.WriteString("\n\n")
	for i, a := range c.actors {
		marker := "  "
		style := st.Text
		if i == c.pickerCursor {
			marker = "▸ "
			style = st.Accent
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s  %s, %s", marker, a.Name, a.Gender, a.Age)))
		b.WriteString("\n")
		b.WriteString(st.Muted.Render(fmt.Sprintf("    voice: %s · tone: %s", a.Voice, a.Tone)))
		b.WriteString("\n")
		if i == c.pickerCursor && a.Description != "" {
			b.WriteString(st.Muted.Render("    " + a.Description))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(wizard.RenderHintBar("↑↓", "navigate", "enter", "cast", "esc", "cancel"))
	return st.Modal.Render(b.String())
}

// wrapCards lays cards out in rows that fit within width.
func wrapCards(cards []string, width int) string {
	if len(cards) == 0 {
		return ""
	}
	var rows []string
	var row []string
	rowWidth := 0
	for _, card := range cards {
		w := lipgloss.Width(card)
		if len(row) > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, card)
		rowWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
