package studio

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/filmmaker/internal/catalog"
	"github.com/mark3labs/filmmaker/internal/project"
	"github.com/mark3labs/filmmaker/internal/tui/theme"
	"github.com/mark3labs/filmmaker/internal/tui/wizard"
)

// SceneryStep lets the user pick the studio backdrop.
type SceneryStep struct {
	catalog *catalog.Catalog
	scenes  []project.Scene
	// index is -1 while the project holds no scene.
	index   int
	preview bool
}

// NewSceneryStep creates the scenery step over the catalog's scenes.
func NewSceneryStep(cat *catalog.Catalog) *SceneryStep {
	return &SceneryStep{catalog: cat, scenes: cat.Scenes, index: -1}
}

// Enter points the selector at the project's current scene.
func (s *SceneryStep) Enter(p project.Project) {
	s.preview = false
	s.index = -1
	if p.Scene != nil && len(s.scenes) > 0 {
		s.index = s.catalog.SceneIndex(p.Scene.ID)
	}
}

// Exit closes the preview.
func (s *SceneryStep) Exit() {
	s.preview = false
}

// Previewing reports whether the full preview overlay is showing.
func (s *SceneryStep) Previewing() bool {
	return s.preview
}

// Current returns the highlighted scene.
func (s *SceneryStep) Current() (project.Scene, bool) {
	if s.index < 0 || s.index >= len(s.scenes) {
		return project.Scene{}, false
	}
	return s.scenes[s.index], true
}

// Update handles messages for the scenery step. Cycling emits SceneChosenMsg.
func (s *SceneryStep) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(s.scenes) == 0 {
		return nil
	}

	switch key.String() {
	case "left", "h":
		if s.index < 0 {
			s.index = 0
		}
		s.index = (s.index - 1 + len(s.scenes)) % len(s.scenes)
	case "right", "l":
		s.index = (s.index + 1) % len(s.scenes)
	case "p":
		if s.index >= 0 {
			s.preview = !s.preview
		}
		return nil
	default:
		return nil
	}

	scene := s.scenes[s.index]
	return func() tea.Msg {
		return SceneChosenMsg{Scene: scene}
	}
}

// View renders the selected scene.
func (s *SceneryStep) View() string {
	st := theme.Current().S()
	if len(s.scenes) == 0 {
		return st.Muted.Render("No scenes available.")
	}
	scene, selected := s.Current()

	if s.preview && selected {
		body := st.Title.Render(scene.Name) + "\n\n" +
			st.Text.Render(scene.Description) + "\n\n" +
			st.Muted.Render(scene.Image) + "\n\n" +
			wizard.RenderHintBar("p", "close preview")
		return st.Modal.Render(body)
	}

	var b strings.Builder
	b.WriteString(st.Title.Render("Scenery"))
	b.WriteString("\n\n")
	for i, sc := range s.scenes {
		if i == s.index {
			b.WriteString(st.BadgeActive.Render(sc.Name))
		} else {
			b.WriteString(st.Badge.Render(sc.Name))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")
	if selected {
		b.WriteString(st.PanelFocused.Width(60).Render(st.Subtitle.Render(scene.Name) + "\n" + st.Text.Render(scene.Description)))
	} else {
		b.WriteString(st.Panel.Width(60).Render(st.Muted.Render("No set selected. Use ←→ to pick one.")))
	}
	b.WriteString("\n\n")
	b.WriteString(wizard.RenderHintBar("←→", "switch set", "p", "preview", "ctrl+s", "continue", "esc", "back"))
	return b.String()
}
