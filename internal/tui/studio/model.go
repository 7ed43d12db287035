// Package studio is the six-step production wizard: creative brief, script,
// casting, scenery, shooting and export.
//
// Model owns the single Project value. Steps and sub-applications read it
// and hand back edits through messages or callbacks, so every mutation
// happens on the Bubbletea event loop.
package studio

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/mark3labs/filmmaker/internal/catalog"
	"github.com/mark3labs/filmmaker/internal/logger"
	"github.com/mark3labs/filmmaker/internal/project"
	"github.com/mark3labs/filmmaker/internal/tui/theme"
	"github.com/mark3labs/filmmaker/internal/tui/wizard"
)

// Step identifies a wizard step.
type Step int

const (
	StepCreative Step = iota
	StepScript
	StepCasting
	StepScenery
	StepShooting
	StepExport
)

var stepLabels = []string{"Creative", "Script", "Casting", "Scenery", "Shooting", "Export"}

func (s Step) String() string {
	if s < StepCreative || s > StepExport {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepLabels[s]
}

func clampStep(s Step) Step {
	return max(StepCreative, min(s, StepExport))
}

// Options configure a studio session.
type Options struct {
	Generator Generator
	Catalog   *catalog.Catalog
}

// Model is the wizard controller.
type Model struct {
	ctx     context.Context
	gen     Generator
	catalog *catalog.Catalog

	project project.Project
	step    Step
	images  *imageRequests

	creative *CreativeStep
	script   *ScriptStep
	casting  *CastingStep
	scenery  *SceneryStep
	shooting *ShootingEditor
	export   *ExportView

	buttonBar     *wizard.ButtonBar
	buttonFocused bool
	confirmQuit   bool
	quitting      bool

	width  int
	height int
}

// New creates a wizard positioned on the creative step with a fresh project.
func New(ctx context.Context, opts Options) *Model {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	m := &Model{
		ctx:     ctx,
		gen:     opts.Generator,
		catalog: cat,
		project: cat.NewProject(),
		step:    StepCreative,
		images:  newImageRequests(),
	}
	m.creative = NewCreativeStep(cat.Genres)
	m.script = NewScriptStep()
	m.casting = NewCastingStep(cat)
	m.scenery = NewSceneryStep(cat)
	m.shooting = NewShootingEditor(ctx, m.gen, m.images, EditorCallbacks{
		Project: func() project.Project { return m.project },
		Update:  func(p project.Project) { m.project = p },
		Back:    m.Retreat,
		Export:  m.Advance,
	})
	m.export = NewExportView(ExportCallbacks{
		Back:    func() tea.Cmd { return m.GoTo(StepShooting) },
		Restart: m.Restart,
	})
	return m
}

// Run starts the studio TUI and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("studio failed: %w", err)
	}
	return nil
}

// Step returns the current step.
func (m *Model) Step() Step {
	return m.step
}

// Project returns the production being edited.
func (m *Model) Project() project.Project {
	return m.project
}

// Init initializes the wizard.
func (m *Model) Init() tea.Cmd {
	return m.creative.Enter(m.project)
}

// Advance moves one step forward, stopping at Export.
func (m *Model) Advance() tea.Cmd {
	return m.GoTo(m.step + 1)
}

// Retreat moves one step back, stopping at Creative.
func (m *Model) Retreat() tea.Cmd {
	return m.GoTo(m.step - 1)
}

// GoTo jumps to step, clamped into range, running the exit hook of the
// current step and the entry hook of the new one.
func (m *Model) GoTo(step Step) tea.Cmd {
	step = clampStep(step)
	if step == m.step {
		return nil
	}
	logger.Debug("studio: %s -> %s", m.step, step)
	exit := m.exitStep(m.step)
	m.step = step
	m.buttonFocused = false
	m.buttonBar = nil
	return tea.Batch(exit, m.enterStep(step))
}

// Restart discards the production and returns to the creative step.
func (m *Model) Restart() tea.Cmd {
	exit := m.exitStep(m.step)
	m.project = m.catalog.NewProject()
	m.images.reset()
	m.script.Reset()
	m.shooting.Reset()
	m.step = StepCreative
	m.buttonFocused = false
	m.buttonBar = nil
	return tea.Batch(exit, m.enterStep(StepCreative))
}

func (m *Model) exitStep(step Step) tea.Cmd {
	switch step {
	case StepScript:
		m.script.Exit()
	case StepCasting:
		m.casting.Exit()
	case StepScenery:
		m.scenery.Exit()
	case StepShooting:
		return m.shooting.Exit()
	case StepExport:
		m.export.Exit()
	}
	return nil
}

func (m *Model) enterStep(step Step) tea.Cmd {
	switch step {
	case StepCreative:
		return m.creative.Enter(m.project)
	case StepScript:
		return m.script.Enter(m.project)
	case StepCasting:
		m.casting.Enter(m.project)
	case StepScenery:
		m.scenery.Enter(m.project)
	case StepShooting:
		return m.shooting.Enter()
	case StepExport:
		return m.export.Enter(m.project)
	}
	return nil
}

// canAdvance reports whether the forward action is available on this step.
func (m *Model) canAdvance() bool {
	switch m.step {
	case StepScript:
		return m.script.Complete()
	case StepCasting:
		return !m.casting.PickerOpen()
	case StepScenery:
		return !m.scenery.Previewing()
	}
	return false
}

func (m *Model) tryAdvance() tea.Cmd {
	if !m.canAdvance() {
		return nil
	}
	return m.Advance()
}

// hasButtons reports whether the step shows the Back/Next bar.
func (m *Model) hasButtons() bool {
	return m.step == StepScript || m.step == StepCasting || m.step == StepScenery
}

func (m *Model) ensureButtonBar() {
	label := "Next →"
	switch m.step {
	case StepScript:
		label = "Cast it →"
	case StepScenery:
		label = "Start shooting →"
	}
	focus := wizard.ButtonNone
	if m.buttonBar != nil {
		focus = m.buttonBar.FocusedButton()
	}
	m.buttonBar = wizard.NewButtonBar(wizard.CreateBackNextButtons(true, m.canAdvance(), label))
	m.buttonBar.SetWidth(m.width)
	if m.buttonFocused {
		switch {
		case focus == wizard.ButtonNext && m.canAdvance():
			m.buttonBar.FocusLast()
		default:
			m.buttonBar.FocusFirst()
		}
	}
}

func (m *Model) activateButton(id wizard.ButtonID) tea.Cmd {
	switch id {
	case wizard.ButtonBack:
		return m.Retreat()
	case wizard.ButtonNext:
		return m.tryAdvance()
	}
	return nil
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateStepSizes()
		return m, nil

	case GenerateRequestedMsg:
		return m, m.handleGenerateRequest(msg)

	case ScriptGeneratedMsg:
		return m, m.handleScriptGenerated(msg)

	case ActorChosenMsg:
		m.project = m.project.SetActor(msg.Character, msg.Actor)
		m.casting.Enter(m.project)
		return m, nil

	case SceneChosenMsg:
		m.project = m.project.SetScene(msg.Scene)
		return m, nil

	case ShotImageMsg:
		if m.images.resolve(msg) {
			m.project = m.project.WithImage(msg.ShotID, msg.Image)
		} else {
			logger.Debug("studio: dropped stale still for %s (seq %d)", msg.ShotID, msg.Seq)
		}
		return m, nil

	case TickMsg:
		switch msg.ID {
		case scriptLogTickID, scriptRevealTickID:
			return m, m.script.Update(msg)
		case exportTickID:
			return m, m.export.Update(msg)
		}
		return m, nil

	case NavigateMsg:
		return m, m.GoTo(msg.Step)

	case RestartMsg:
		return m, m.Restart()
	}

	return m, m.updateCurrentStep(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.confirmQuit {
		switch msg.String() {
		case "y", "Y":
			m.quitting = true
			return tea.Quit
		case "n", "N", "esc":
			m.confirmQuit = false
		}
		return nil
	}

	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}

	if m.buttonFocused && m.buttonBar != nil {
		switch msg.String() {
		case "tab", "right":
			if !m.buttonBar.FocusNext() {
				m.blurButtons()
			}
			return nil
		case "shift+tab", "left":
			if !m.buttonBar.FocusPrev() {
				m.blurButtons()
			}
			return nil
		case "enter", "space":
			return m.activateButton(m.buttonBar.FocusedButton())
		case "esc":
			m.blurButtons()
			return nil
		}
	}

	switch msg.String() {
	case "esc":
		return m.handleEscape(msg)
	case "ctrl+s":
		if m.hasButtons() {
			return m.tryAdvance()
		}
	case "enter":
		if m.step == StepScript {
			return m.tryAdvance()
		}
	case "tab", "shift+tab":
		if m.hasButtons() && !m.casting.PickerOpen() {
			m.buttonFocused = true
			m.ensureButtonBar()
			if msg.String() == "tab" {
				m.buttonBar.FocusFirst()
			} else {
				m.buttonBar.FocusLast()
			}
			return nil
		}
	}

	return m.updateCurrentStep(msg)
}

func (m *Model) blurButtons() {
	m.buttonFocused = false
	if m.buttonBar != nil {
		m.buttonBar.Blur()
	}
}

func (m *Model) handleEscape(msg tea.KeyPressMsg) tea.Cmd {
	switch m.step {
	case StepCreative:
		if m.creative.Loading() {
			return nil
		}
		if m.project.HasScript() {
			m.confirmQuit = true
			return nil
		}
		m.quitting = true
		return tea.Quit
	case StepCasting:
		if m.casting.PickerOpen() {
			return m.casting.Update(msg)
		}
	case StepScenery:
		if m.scenery.Previewing() {
			m.scenery.Exit()
			return nil
		}
	case StepShooting:
		return m.shooting.Update(msg)
	case StepExport:
		return m.export.Update(msg)
	}
	return m.Retreat()
}

func (m *Model) handleGenerateRequest(msg GenerateRequestedMsg) tea.Cmd {
	if !msg.Force && m.project.IsGeneratedFrom(msg.Idea) && m.project.Genre == msg.Genre {
		return m.GoTo(StepScript)
	}
	if m.gen == nil {
		logger.Warn("studio: no generator configured")
		return nil
	}
	logger.Info("studio: generating %s script", msg.Genre)
	return tea.Batch(
		m.creative.SetLoading(true),
		generateScriptCmd(m.ctx, m.gen, msg.Genre, msg.Idea),
	)
}

func (m *Model) handleScriptGenerated(msg ScriptGeneratedMsg) tea.Cmd {
	m.creative.SetLoading(false)

	p := m.project
	p.Genre = msg.Genre
	p.Idea = msg.Idea
	p = p.ApplyScript(msg.Script.Title, msg.Script.Shots())
	p = p.OnScriptGenerated(m.catalog.Actors, m.catalog.Scenes)
	m.project = p

	m.images.reset()
	m.shooting.Reset()
	m.script.Invalidate()

	if m.step == StepScript {
		return m.script.Enter(m.project)
	}
	return m.GoTo(StepScript)
}

func (m *Model) updateCurrentStep(msg tea.Msg) tea.Cmd {
	switch m.step {
	case StepCreative:
		return m.creative.Update(msg)
	case StepScript:
		return m.script.Update(msg)
	case StepCasting:
		return m.casting.Update(msg)
	case StepScenery:
		return m.scenery.Update(msg)
	case StepShooting:
		return m.shooting.Update(msg)
	case StepExport:
		return m.export.Update(msg)
	}
	return nil
}

func (m *Model) updateStepSizes() {
	w, h := m.contentSize()
	m.creative.SetSize(w, h)
	m.script.SetSize(w, h)
	m.casting.SetSize(w, h)
	m.shooting.SetSize(w, h)
	m.export.SetSize(w, h)
	if m.buttonBar != nil {
		m.buttonBar.SetWidth(w)
	}
}

// contentSize is the area left for a step below the step indicator and
// above the button bar.
func (m *Model) contentSize() (int, int) {
	return max(20, m.width-4), max(10, m.height-6)
}

func (m *Model) renderCurrentStep() string {
	switch m.step {
	case StepCreative:
		return m.creative.View()
	case StepScript:
		return m.script.View()
	case StepCasting:
		return m.casting.View()
	case StepScenery:
		return m.scenery.View()
	case StepShooting:
		return m.shooting.View()
	case StepExport:
		return m.export.View()
	}
	return ""
}

func (m *Model) renderQuitConfirm() string {
	t := theme.Current()
	st := t.S()
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Warning)).Render("⚠ Leave the studio?")
	body := st.Text.Render("Your script and casting will be lost.")
	return st.Modal.Render(title + "\n\n" + body + "\n\n" + wizard.RenderHintBar("y", "quit", "n", "stay"))
}

// View renders the wizard.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 || m.quitting {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := wizard.RenderStepIndicator(stepLabels, int(m.step)) + "\n\n" + m.renderCurrentStep()
	if m.hasButtons() {
		m.ensureButtonBar()
		content += "\n\n" + m.buttonBar.Render()
	}

	placed := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(content))
	if m.confirmQuit {
		placed = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderQuitConfirm())
	}

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(placed).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})
	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}
