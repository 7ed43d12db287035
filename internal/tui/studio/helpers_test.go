package studio

import (
	"context"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/filmmaker/internal/genclient"
	"github.com/mark3labs/filmmaker/internal/project"
	"github.com/mark3labs/filmmaker/internal/tui/testfixtures"
)

// fakeGenerator records calls and returns canned results.
type fakeGenerator struct {
	mu          sync.Mutex
	script      genclient.Script
	image       string
	scriptCalls int
	prompts     []string
}

func (f *fakeGenerator) GenerateScript(_ context.Context, _, _ string) genclient.Script {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scriptCalls++
	return f.script
}

func (f *fakeGenerator) GenerateImage(_ context.Context, prompt string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.image == "" {
		return genclient.PlaceholderImage
	}
	return f.image
}

func fixtureScript() genclient.Script {
	lines := testfixtures.ScriptLines()
	wire := make([]genclient.ScriptLine, len(lines))
	for i, l := range lines {
		wire[i] = genclient.ScriptLine{
			ID:          l.ID,
			Character:   l.Character,
			Dialogue:    l.Dialogue,
			CameraAngle: l.Angle.String(),
			Action:      l.Action,
		}
	}
	return genclient.Script{Title: testfixtures.FixedTitle, Lines: wire}
}

func keyPress(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Text: s})
}

func newTestModel(t *testing.T) (*Model, *fakeGenerator) {
	t.Helper()
	gen := &fakeGenerator{script: fixtureScript()}
	m := New(context.Background(), Options{Generator: gen, Catalog: testfixtures.Catalog()})
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: testfixtures.TestTermWidth, Height: testfixtures.TestTermHeight})
	return m, gen
}

// scriptedModel returns a model holding p, positioned on step without
// replaying any animation.
func scriptedModel(t *testing.T, p project.Project, step Step) (*Model, *fakeGenerator) {
	t.Helper()
	m, gen := newTestModel(t)
	m.project = p
	m.GoTo(step)
	return m, gen
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmds []tea.Cmd
	for _, k := range keys {
		_, cmd := m.Update(keyPress(k))
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// finishScriptAnimation feeds ticks until the reveal completes.
func finishScriptAnimation(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; i < 100 && !m.script.Complete(); i++ {
		switch {
		case m.script.logTicker.Active():
			m.Update(m.script.logTicker.current())
		case m.script.revealTicker.Active():
			m.Update(m.script.revealTicker.current())
		default:
			t.Fatal("script animation stalled")
		}
	}
	if !m.script.Complete() {
		t.Fatal("script animation did not complete")
	}
}

// collect runs cmd and returns the messages it produces, expanding batches.
// Only use it on commands that return immediately.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func viewText(m *Model) string {
	return testfixtures.Plain(m.renderCurrentStep())
}
