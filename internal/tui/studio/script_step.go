package studio

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/filmmaker/internal/project"
	"github.com/mark3labs/filmmaker/internal/tui/theme"
)

const (
	scriptLogInterval    = 600 * time.Millisecond
	scriptRevealInterval = 400 * time.Millisecond

	scriptLogTickID    = "script-log"
	scriptRevealTickID = "script-reveal"

	// SyncedLogLine replaces the collaboration log when the script on screen
	// was already animated for the current idea.
	SyncedLogLine = "[AI System]: script already synced, skipping collaboration replay."

	// ScriptFinalizedLine is shown once every line has been revealed.
	ScriptFinalizedLine = ">>> SUCCESS: Script finalized."
)

// CollaborationLog is appended one line per tick before the reveal starts.
var CollaborationLog = []string{
	"[AI Writer]: building narrative framework from the idea...",
	"[AI Director]: computing character tension and camera positions...",
	"[AI Producer]: matched optimal Unity asset pipeline...",
	"[AI System]: script generated, starting synchronized preview output.",
}

// ScriptStep plays the collaboration log and then reveals the script line by
// line. It outlives individual visits so it can tell whether the current idea
// was already animated.
type ScriptStep struct {
	lastAnimatedIdea string

	idea   string
	lines  []project.ShotLine
	logs   []string
	reveal int // -1 until the typewriter starts

	logTicker    *Ticker
	revealTicker *Ticker

	viewport viewport.Model
	width    int
	height   int
}

// NewScriptStep creates an idle script step.
func NewScriptStep() *ScriptStep {
	s := &ScriptStep{
		reveal:       -1,
		logTicker:    NewTicker(scriptLogTickID, scriptLogInterval),
		revealTicker: NewTicker(scriptRevealTickID, scriptRevealInterval),
		viewport:     viewport.New(viewport.WithWidth(80), viewport.WithHeight(16)),
		width:        80,
		height:       20,
	}
	return s
}

// Enter is run each time the wizard lands on the step.
func (s *ScriptStep) Enter(p project.Project) tea.Cmd {
	s.Exit()
	s.idea = p.Idea
	s.lines = append([]project.ShotLine(nil), p.Lines...)

	if p.Idea == s.lastAnimatedIdea {
		s.logs = []string{SyncedLogLine}
		s.reveal = len(s.lines)
		s.refresh()
		return nil
	}

	s.logs = nil
	s.reveal = -1
	s.refresh()
	return s.logTicker.Start()
}

// Exit cancels any pending animation ticks.
func (s *ScriptStep) Exit() {
	s.logTicker.Stop()
	s.revealTicker.Stop()
}

// Invalidate forgets the animated idea so the next entry replays the log.
func (s *ScriptStep) Invalidate() {
	s.lastAnimatedIdea = ""
}

// Reset returns the step to its initial state.
func (s *ScriptStep) Reset() {
	s.Exit()
	s.lastAnimatedIdea = ""
	s.idea = ""
	s.lines = nil
	s.logs = nil
	s.reveal = -1
	s.refresh()
}

// SetSize updates the dimensions for the step.
func (s *ScriptStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewport.SetWidth(width)
	vh := height - len(CollaborationLog) - 4
	if vh < 5 {
		vh = 5
	}
	s.viewport.SetHeight(vh)
	s.refresh()
}

// Update handles animation ticks and scrolling.
func (s *ScriptStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		switch {
		case s.logTicker.Accept(msg):
			return s.logTick()
		case s.revealTicker.Accept(msg):
			return s.revealTick()
		}
		return nil
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

func (s *ScriptStep) logTick() tea.Cmd {
	if len(s.logs) < len(CollaborationLog) {
		s.logs = append(s.logs, CollaborationLog[len(s.logs)])
	}
	if len(s.logs) < len(CollaborationLog) {
		return s.logTicker.Next()
	}

	s.logTicker.Stop()
	s.lastAnimatedIdea = s.idea
	s.reveal = 0
	s.refresh()
	if s.Complete() {
		return nil
	}
	return s.revealTicker.Start()
}

func (s *ScriptStep) revealTick() tea.Cmd {
	if s.reveal < len(s.lines) {
		s.reveal++
	}
	s.refresh()
	if s.Complete() {
		s.revealTicker.Stop()
		return nil
	}
	return s.revealTicker.Next()
}

// Complete reports whether every line has been revealed.
func (s *ScriptStep) Complete() bool {
	return s.reveal >= 0 && s.reveal >= len(s.lines)
}

// Reveal returns the typewriter counter.
func (s *ScriptStep) Reveal() int {
	return s.reveal
}

// Logs returns the log lines shown so far.
func (s *ScriptStep) Logs() []string {
	return s.logs
}

// RevealedLines returns the script lines currently visible.
func (s *ScriptStep) RevealedLines() []project.ShotLine {
	if s.reveal < 0 {
		return nil
	}
	n := min(s.reveal+1, len(s.lines))
	return s.lines[:n]
}

func (s *ScriptStep) refresh() {
	s.viewport.SetContent(renderMarkdown(scriptMarkdown(s.RevealedLines()), s.width))
	s.viewport.GotoBottom()
}

func scriptMarkdown(lines []project.ShotLine) string {
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "### Shot %d · %s\n\n", i+1, line.Angle)
		fmt.Fprintf(&b, "**%s**: %s\n\n", line.Character, line.Dialogue)
		if line.Action != "" {
			fmt.Fprintf(&b, "_%s_\n\n", line.Action)
		}
	}
	return b.String()
}

// View renders the log console above the script preview.
func (s *ScriptStep) View() string {
	st := theme.Current().S()
	var b strings.Builder

	b.WriteString(st.Title.Render("Script"))
	b.WriteString("\n\n")
	for _, line := range s.logs {
		b.WriteString(st.LogLine.Render(line))
		b.WriteString("\n")
	}
	if s.reveal < 0 && len(s.logs) < len(CollaborationLog) {
		b.WriteString(st.Muted.Render("..."))
		b.WriteString("\n")
	}

	if s.reveal >= 0 {
		b.WriteString("\n")
		if len(s.lines) == 0 {
			b.WriteString(st.Warning.Render("The writers came back empty-handed. Go back and try another idea."))
			b.WriteString("\n")
		} else {
			b.WriteString(s.viewport.View())
			b.WriteString("\n")
		}
	}

	if s.Complete() {
		b.WriteString("\n")
		b.WriteString(st.Success.Render(ScriptFinalizedLine))
	}
	return b.String()
}
