// Package testfixtures provides fixtures and helpers shared by TUI tests.
package testfixtures

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
)

// Initialize test environment
func init() {
	// Set Ascii profile to disable color output for consistent output across CI/platforms
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// Plain strips ANSI escape sequences from rendered output.
func Plain(s string) string {
	return ansi.Strip(s)
}

// ContainsPlain reports whether the rendered output contains substr once
// styling is removed.
func ContainsPlain(rendered, substr string) bool {
	return strings.Contains(Plain(rendered), substr)
}
