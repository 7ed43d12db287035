package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mark3labs/filmmaker/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// ButtonID identifies a button in a standard Back/Next bar.
type ButtonID int

const (
	ButtonNone ButtonID = iota - 1
	ButtonBack
	ButtonNext
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with consistent styling and a single
// focus position that skips disabled buttons.
type ButtonBar struct {
	buttons []Button
	focus   int
	width   int
}

// NewButtonBar creates a new button bar with the given buttons and no focus.
func NewButtonBar(buttons []Button) *ButtonBar {
	b := &ButtonBar{
		buttons: buttons,
		focus:   -1,
		width:   60,
	}
	for i, btn := range buttons {
		if btn.State == ButtonFocused {
			b.focus = i
		}
	}
	return b
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Buttons returns the buttons with their current states.
func (b *ButtonBar) Buttons() []Button {
	return b.buttons
}

// FocusedButton returns the index of the focused button, or ButtonNone.
func (b *ButtonBar) FocusedButton() ButtonID {
	if b.focus < 0 {
		return ButtonNone
	}
	return ButtonID(b.focus)
}

// IsFocused reports whether any button holds focus.
func (b *ButtonBar) IsFocused() bool {
	return b.focus >= 0
}

// FocusFirst focuses the first enabled button.
func (b *ButtonBar) FocusFirst() bool {
	return b.focusFrom(0, 1)
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() bool {
	return b.focusFrom(len(b.buttons)-1, -1)
}

// FocusNext moves focus right. It returns false when focus would leave the bar.
func (b *ButtonBar) FocusNext() bool {
	return b.focusFrom(b.focus+1, 1)
}

// FocusPrev moves focus left. It returns false when focus would leave the bar.
func (b *ButtonBar) FocusPrev() bool {
	if b.focus < 0 {
		return b.FocusLast()
	}
	return b.focusFrom(b.focus-1, -1)
}

// Blur removes focus from the bar.
func (b *ButtonBar) Blur() {
	b.setFocus(-1)
}

func (b *ButtonBar) focusFrom(start, step int) bool {
	for i := start; i >= 0 && i < len(b.buttons); i += step {
		if b.buttons[i].State != ButtonDisabled {
			b.setFocus(i)
			return true
		}
	}
	return false
}

func (b *ButtonBar) setFocus(index int) {
	for i := range b.buttons {
		if b.buttons[i].State == ButtonFocused {
			b.buttons[i].State = ButtonNormal
		}
	}
	b.focus = index
	if index >= 0 {
		b.buttons[index].State = ButtonFocused
	}
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	t := theme.Current()
	base := lipgloss.NewStyle().
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	normalStyle := base.
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0))

	disabledStyle := base.
		Foreground(lipgloss.Color(t.BgOverlay)).
		Background(lipgloss.Color(t.BgMantle))

	focusedStyle := base.
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Primary)).
		Bold(true)

	var rendered []string
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, disabledStyle.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, focusedStyle.Render(btn.Label))
		default:
			rendered = append(rendered, normalStyle.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// CreateBackNextButtons creates standard Back/Next button set.
func CreateBackNextButtons(backEnabled, nextEnabled bool, nextLabel string) []Button {
	backState := ButtonNormal
	if !backEnabled {
		backState = ButtonDisabled
	}
	nextState := ButtonNormal
	if !nextEnabled {
		nextState = ButtonDisabled
	}
	return []Button{
		{Label: "← Back", State: backState},
		{Label: nextLabel, State: nextState},
	}
}
