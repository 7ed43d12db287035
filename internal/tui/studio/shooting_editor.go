package studio

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/filmmaker/internal/project"
	"github.com/mark3labs/filmmaker/internal/tui/theme"
	"github.com/mark3labs/filmmaker/internal/tui/wizard"
)

const (
	minPanelWidth     = 32
	defaultPanelWidth = 40
	panelStep         = 4
)

type editorField int

const (
	fieldNone editorField = iota
	fieldTitle
	fieldDialogue
	fieldAngle
	fieldDuration
	fieldAction
)

var fieldOrder = []editorField{fieldTitle, fieldDialogue, fieldAngle, fieldDuration, fieldAction}

// EditorCallbacks connect the shot editor to the wizard that owns the project.
type EditorCallbacks struct {
	Project func() project.Project
	Update  func(project.Project)
	Back    func() tea.Cmd
	Export  func() tea.Cmd
}

// ShootingEditor edits shots one at a time and keeps their stills in sync.
type ShootingEditor struct {
	ctx    context.Context
	gen    Generator
	images *imageRequests
	cb     EditorCallbacks

	active int
	field  editorField

	title    textinput.Model
	dialogue textarea.Model
	duration textinput.Model
	action   textinput.Model

	actionAtFocus string
	durationErr   string

	panelWidth  int
	panelHidden bool
	width       int
	height      int
}

// NewShootingEditor creates the editor.
func NewShootingEditor(ctx context.Context, gen Generator, images *imageRequests, cb EditorCallbacks) *ShootingEditor {
	title := textinput.New()
	title.Placeholder = "Production title"
	title.CharLimit = 120

	dialogue := textarea.New()
	dialogue.ShowLineNumbers = false
	dialogue.SetHeight(3)
	dialogue.CharLimit = 1000

	duration := textinput.New()
	duration.Placeholder = "3.0"
	duration.CharLimit = 6

	action := textinput.New()
	action.Placeholder = "What happens on screen"
	action.CharLimit = 300

	e := &ShootingEditor{
		ctx:        ctx,
		gen:        gen,
		images:     images,
		cb:         cb,
		title:      title,
		dialogue:   dialogue,
		duration:   duration,
		action:     action,
		panelWidth: defaultPanelWidth,
		width:      120,
		height:     40,
	}
	e.resizeFields()
	return e
}

// Enter is run when the wizard lands on the shooting step.
func (e *ShootingEditor) Enter() tea.Cmd {
	p := e.cb.Project()
	e.field = fieldNone
	e.blurWidgets()
	if e.active >= len(p.Lines) {
		e.active = 0
	}
	e.loadFields()
	return e.autoRequest(e.active)
}

// Exit commits any focused field.
func (e *ShootingEditor) Exit() tea.Cmd {
	return e.blurField()
}

// Reset returns the editor to the first shot.
func (e *ShootingEditor) Reset() {
	e.active = 0
	e.field = fieldNone
	e.blurWidgets()
}

// SetSize updates the dimensions and re-clamps the side panel.
func (e *ShootingEditor) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.panelWidth = e.clampPanel(e.panelWidth)
	e.resizeFields()
}

func (e *ShootingEditor) maxPanelWidth() int {
	return max(minPanelWidth, e.width/3)
}

func (e *ShootingEditor) clampPanel(w int) int {
	return max(minPanelWidth, min(w, e.maxPanelWidth()))
}

func (e *ShootingEditor) resizeFields() {
	inner := e.panelWidth - 4
	e.title.SetWidth(inner)
	e.dialogue.SetWidth(inner)
	e.duration.SetWidth(inner)
	e.action.SetWidth(inner)
}

// Active returns the index of the shot being edited.
func (e *ShootingEditor) Active() int {
	return e.active
}

// PanelWidth returns the side panel width in columns.
func (e *ShootingEditor) PanelWidth() int {
	return e.panelWidth
}

// PanelHidden reports whether the side panel is collapsed.
func (e *ShootingEditor) PanelHidden() bool {
	return e.panelHidden
}

// Editing reports whether a field has focus.
func (e *ShootingEditor) Editing() bool {
	return e.field != fieldNone
}

// TimelineReadout formats the playhead position and total runtime.
func (e *ShootingEditor) TimelineReadout() string {
	lines := e.cb.Project().Lines
	return fmt.Sprintf("%.1fs / %.1fs", project.ProgressBefore(lines, e.active), project.TotalDuration(lines))
}

func (e *ShootingEditor) line() (project.ShotLine, bool) {
	p := e.cb.Project()
	if e.active < 0 || e.active >= len(p.Lines) {
		return project.ShotLine{}, false
	}
	return p.Lines[e.active], true
}

func (e *ShootingEditor) putLine(line project.ShotLine) {
	e.cb.Update(e.cb.Project().WithLine(e.active, line))
}

func (e *ShootingEditor) loadFields() {
	e.title.SetValue(e.cb.Project().Title)
	line, ok := e.line()
	if !ok {
		e.dialogue.SetValue("")
		e.duration.SetValue("")
		e.action.SetValue("")
		return
	}
	e.dialogue.SetValue(line.Dialogue)
	e.duration.SetValue(strconv.FormatFloat(project.EffectiveDuration(line.Duration), 'f', 1, 64))
	e.action.SetValue(line.Action)
	e.durationErr = ""
}

// requestImage issues a still request for shot i.
func (e *ShootingEditor) requestImage(i int) tea.Cmd {
	p := e.cb.Project()
	if i < 0 || i >= len(p.Lines) {
		return nil
	}
	id := p.Lines[i].ID
	seq := e.images.issue(id)
	return generateImageCmd(e.ctx, e.gen, id, seq, p.ShotPrompt(i))
}

// autoRequest requests a still for shot i unless it has one or one is on the way.
func (e *ShootingEditor) autoRequest(i int) tea.Cmd {
	p := e.cb.Project()
	if i < 0 || i >= len(p.Lines) {
		return nil
	}
	line := p.Lines[i]
	if line.HasImage() || e.images.isPending(line.ID) {
		return nil
	}
	return e.requestImage(i)
}

// activate moves to shot i, committing the focused field first.
func (e *ShootingEditor) activate(i int) tea.Cmd {
	n := len(e.cb.Project().Lines)
	if n == 0 || i < 0 || i >= n || i == e.active {
		return nil
	}
	field := e.field
	blur := e.blurField()
	e.active = i
	e.loadFields()
	var focus tea.Cmd
	if field != fieldNone {
		focus = e.focusField(field)
	}
	return tea.Batch(blur, e.autoRequest(i), focus)
}

func (e *ShootingEditor) blurWidgets() {
	e.title.Blur()
	e.dialogue.Blur()
	e.duration.Blur()
	e.action.Blur()
}

// blurField drops focus from the current field. Leaving a changed action
// field requests a new still.
func (e *ShootingEditor) blurField() tea.Cmd {
	var cmd tea.Cmd
	if e.field == fieldAction && e.action.Value() != e.actionAtFocus {
		cmd = e.requestImage(e.active)
	}
	if e.field == fieldDuration {
		e.loadFields()
	}
	e.field = fieldNone
	e.blurWidgets()
	return cmd
}

func (e *ShootingEditor) focusField(f editorField) tea.Cmd {
	var blur tea.Cmd
	if e.field != fieldNone && e.field != f {
		blur = e.blurField()
	}
	e.field = f
	var focus tea.Cmd
	switch f {
	case fieldTitle:
		focus = e.title.Focus()
	case fieldDialogue:
		focus = e.dialogue.Focus()
	case fieldDuration:
		focus = e.duration.Focus()
	case fieldAction:
		e.actionAtFocus = e.action.Value()
		focus = e.action.Focus()
	}
	return tea.Batch(blur, focus)
}

func (e *ShootingEditor) cycleField(delta int) tea.Cmd {
	idx := 0
	for i, f := range fieldOrder {
		if f == e.field {
			idx = i
		}
	}
	idx = (idx + delta + len(fieldOrder)) % len(fieldOrder)
	return e.focusField(fieldOrder[idx])
}

// Update handles messages for the shot editor.
func (e *ShootingEditor) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return e.updateWidget(msg)
	}

	switch key.String() {
	case "ctrl+n":
		return e.activate(e.active + 1)
	case "ctrl+p":
		return e.activate(e.active - 1)
	case "ctrl+r":
		return e.requestImage(e.active)
	}

	if e.field == fieldNone {
		return e.updateTimeline(key)
	}
	return e.updateField(key)
}

func (e *ShootingEditor) updateTimeline(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "left", "h", "up", "k":
		return e.activate(e.active - 1)
	case "right", "l", "down", "j":
		return e.activate(e.active + 1)
	case "[":
		e.panelWidth = e.clampPanel(e.panelWidth - panelStep)
		e.resizeFields()
	case "]":
		e.panelWidth = e.clampPanel(e.panelWidth + panelStep)
		e.resizeFields()
	case "\\":
		e.panelHidden = !e.panelHidden
	case "t":
		e.panelHidden = false
		return e.focusField(fieldTitle)
	case "enter", "tab":
		e.panelHidden = false
		return e.focusField(fieldDialogue)
	case "x":
		if e.cb.Export != nil {
			return e.cb.Export()
		}
	case "esc":
		if e.cb.Back != nil {
			return e.cb.Back()
		}
	}
	return nil
}

func (e *ShootingEditor) updateField(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		return e.blurField()
	case "tab":
		return e.cycleField(1)
	case "shift+tab":
		return e.cycleField(-1)
	}

	if e.field == fieldAngle {
		line, ok := e.line()
		if !ok {
			return nil
		}
		switch key.String() {
		case "left", "h":
			line.Angle = line.Angle.Prev()
		case "right", "l", "space", "enter":
			line.Angle = line.Angle.Next()
		default:
			return nil
		}
		e.putLine(line)
		return e.requestImage(e.active)
	}

	if key.String() == "enter" && e.field != fieldDialogue {
		return e.cycleField(1)
	}
	return e.updateWidget(key)
}

// updateWidget forwards msg to the focused widget and writes its value back.
func (e *ShootingEditor) updateWidget(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch e.field {
	case fieldTitle:
		e.title, cmd = e.title.Update(msg)
		e.cb.Update(e.cb.Project().WithTitle(e.title.Value()))
	case fieldDialogue:
		e.dialogue, cmd = e.dialogue.Update(msg)
		if line, ok := e.line(); ok && line.Dialogue != e.dialogue.Value() {
			line.Dialogue = e.dialogue.Value()
			e.putLine(line)
		}
	case fieldDuration:
		e.duration, cmd = e.duration.Update(msg)
		e.applyDuration()
	case fieldAction:
		e.action, cmd = e.action.Update(msg)
		if line, ok := e.line(); ok && line.Action != e.action.Value() {
			line.Action = e.action.Value()
			e.putLine(line)
		}
	}
	return cmd
}

func (e *ShootingEditor) applyDuration() {
	line, ok := e.line()
	if !ok {
		return
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(e.duration.Value()), 64)
	if err != nil || d <= 0 {
		e.durationErr = "duration must be a positive number of seconds"
		return
	}
	e.durationErr = ""
	if line.Duration != d {
		line.Duration = d
		e.putLine(line)
	}
}

// View renders the timeline, the current shot and the side panel.
func (e *ShootingEditor) View() string {
	st := theme.Current().S()
	p := e.cb.Project()

	header := st.Title.Render(p.Title) + "  " + st.Muted.Render(p.Genre+" · "+p.SceneName()) +
		"  " + st.Accent.Render(e.TimelineReadout())

	if len(p.Lines) == 0 {
		return header + "\n\n" + st.Muted.Render("No shots to film. Go back and generate a script.")
	}

	mainWidth := e.width
	if !e.panelHidden {
		mainWidth -= e.panelWidth
	}
	mainWidth = max(mainWidth, 20)

	main := lipgloss.JoinVertical(lipgloss.Left,
		e.renderMonitor(p, mainWidth),
		"",
		e.renderTimeline(p, mainWidth),
	)

	body := main
	if !e.panelHidden {
		body = lipgloss.JoinHorizontal(lipgloss.Top, main, e.renderPanel(p))
	}

	hints := wizard.RenderHintBar("←→", "shot", "enter", "edit", "[ ]", "panel", "\\", "toggle", "ctrl+r", "retake", "x", "export", "esc", "back")
	if e.field != fieldNone {
		hints = wizard.RenderHintBar("tab", "next field", "ctrl+n/p", "shot", "ctrl+r", "retake", "esc", "done")
	}
	return header + "\n\n" + body + "\n\n" + hints
}

func (e *ShootingEditor) renderMonitor(p project.Project, width int) string {
	st := theme.Current().S()
	line := p.Lines[e.active]

	still := st.Muted.Render("no still yet")
	switch {
	case e.images.isPending(line.ID):
		still = st.Warning.Render("rendering still...")
	case line.HasImage():
		still = st.Success.Render("still ready") + " " + st.Muted.Render(stillReference(line.Image))
	}

	actor := ""
	if a, ok := p.Cast[line.Character]; ok {
		actor = " (" + a.Name + ")"
	}
	body := st.Subtitle.Render(fmt.Sprintf("Shot %d · %s", e.active+1, line.Angle)) + "\n" +
		st.Text.Render(line.Character+actor+": "+line.Dialogue) + "\n" +
		st.Muted.Render(line.Action) + "\n\n" + still
	return st.Panel.Width(width - 2).Render(body)
}

func (e *ShootingEditor) renderTimeline(p project.Project, width int) string {
	st := theme.Current().S()
	cells := make([]string, len(p.Lines))
	for i, line := range p.Lines {
		mark := "○"
		switch {
		case e.images.isPending(line.ID):
			mark = "◌"
		case line.HasImage():
			mark = "●"
		}
		label := fmt.Sprintf("%s %d %.1fs", mark, i+1, project.EffectiveDuration(line.Duration))
		if i == e.active {
			cells[i] = st.BadgeActive.Render(label)
		} else {
			cells[i] = st.Badge.Render(label)
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(cells, " "))
}

func (e *ShootingEditor) renderPanel(p project.Project) string {
	st := theme.Current().S()
	label := func(f editorField, name string) string {
		if e.field == f {
			return st.Accent.Render(name)
		}
		return st.Muted.Render(name)
	}

	line := p.Lines[e.active]
	var b strings.Builder
	b.WriteString(label(fieldTitle, "Title") + "\n" + e.title.View() + "\n\n")
	b.WriteString(label(fieldDialogue, "Dialogue") + "\n" + e.dialogue.View() + "\n\n")
	angle := "‹ " + line.Angle.String() + " ›"
	if e.field == fieldAngle {
		angle = st.Accent.Render(angle)
	}
	b.WriteString(label(fieldAngle, "Camera") + "\n" + angle + "\n\n")
	b.WriteString(label(fieldDuration, "Duration (s)") + "\n" + e.duration.View() + "\n")
	if e.durationErr != "" {
		b.WriteString(st.Error.Render(e.durationErr) + "\n")
	}
	b.WriteString("\n" + label(fieldAction, "Action") + "\n" + e.action.View())

	panel := st.Panel
	if e.field != fieldNone {
		panel = st.PanelFocused
	}
	return panel.Width(e.panelWidth - 2).Render(b.String())
}
