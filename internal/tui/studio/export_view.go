package studio

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/filmmaker/internal/logger"
	"github.com/mark3labs/filmmaker/internal/project"
	"github.com/mark3labs/filmmaker/internal/tui/theme"
	"github.com/mark3labs/filmmaker/internal/tui/wizard"
)

const (
	exportTickID   = "export"
	exportInterval = 40 * time.Millisecond
	exportMax      = 100
)

// ExportCallbacks connect the export view to the wizard.
type ExportCallbacks struct {
	Back    func() tea.Cmd
	Restart func() tea.Cmd
}

// ExportView runs the simulated render and then shows the production summary.
type ExportView struct {
	cb      ExportCallbacks
	ticker  *Ticker
	project project.Project

	progress  int
	completed bool
	// completions counts terminal transitions for the debug log and tests.
	completions int

	bar     progress.Model
	summary viewport.Model
	width   int
	height  int
}

// NewExportView creates an idle export view.
func NewExportView(cb ExportCallbacks) *ExportView {
	return &ExportView{
		cb:      cb,
		ticker:  NewTicker(exportTickID, exportInterval),
		bar:     progress.New(progress.WithWidth(40)),
		summary: viewport.New(viewport.WithWidth(80), viewport.WithHeight(20)),
		width:   80,
		height:  24,
	}
}

// Enter starts a fresh render of p.
func (x *ExportView) Enter(p project.Project) tea.Cmd {
	x.project = p
	x.progress = 0
	x.completed = false
	x.summary.SetContent("")
	return x.ticker.Start()
}

// Exit cancels the render.
func (x *ExportView) Exit() {
	x.ticker.Stop()
}

// SetSize updates the dimensions for the view.
func (x *ExportView) SetSize(width, height int) {
	x.width = width
	x.height = height
	x.bar.SetWidth(min(60, max(10, width-10)))
	x.summary.SetWidth(width)
	x.summary.SetHeight(max(5, height-4))
}

// Progress returns the render percentage.
func (x *ExportView) Progress() int {
	return x.progress
}

// Completed reports whether the render finished.
func (x *ExportView) Completed() bool {
	return x.completed
}

// Update handles ticks and the summary actions.
func (x *ExportView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		if !x.ticker.Accept(msg) {
			return nil
		}
		if x.progress < exportMax {
			x.progress++
		}
		if x.progress < exportMax {
			return x.ticker.Next()
		}
		x.complete()
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "b", "esc":
			if x.cb.Back != nil {
				return x.cb.Back()
			}
			return nil
		case "r":
			if x.completed && x.cb.Restart != nil {
				return x.cb.Restart()
			}
			return nil
		}
	}

	if !x.completed {
		return nil
	}
	var cmd tea.Cmd
	x.summary, cmd = x.summary.Update(msg)
	return cmd
}

func (x *ExportView) complete() {
	x.ticker.Stop()
	if x.completed {
		return
	}
	x.completed = true
	x.completions++
	logger.Info("Export of %s complete (%d)", ExportFileName(x.project), x.completions)
	x.summary.SetContent(renderSummary(x.project))
	x.summary.GotoTop()
}

// View renders the progress bar or the summary.
func (x *ExportView) View() string {
	st := theme.Current().S()
	var b strings.Builder

	if !x.completed {
		b.WriteString(st.Title.Render("Rendering final master"))
		b.WriteString("\n\n")
		b.WriteString(x.bar.ViewAs(float64(x.progress) / exportMax))
		b.WriteString("\n")
		b.WriteString(st.Muted.Render(fmt.Sprintf("%d%% · %s", x.progress, ExportFileName(x.project))))
		b.WriteString("\n\n")
		b.WriteString(wizard.RenderHintBar("b", "back to edit"))
		return b.String()
	}

	b.WriteString(st.Success.Render("✓ Export complete"))
	b.WriteString("\n")
	b.WriteString(x.summary.View())
	b.WriteString("\n")
	b.WriteString(wizard.RenderHintBar("↑↓", "scroll", "b", "back to edit", "r", "new production"))
	return b.String()
}
