package studio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/filmmaker/internal/genclient"
	"github.com/mark3labs/filmmaker/internal/project"
	"github.com/mark3labs/filmmaker/internal/tui/testfixtures"
)

// withStills gives every shot an image so activation issues no requests.
func withStills(p project.Project) project.Project {
	for _, line := range p.Lines {
		p = p.WithImage(line.ID, "https://example.com/"+line.ID+".png")
	}
	return p
}

func shootingModel(t *testing.T, p project.Project) *Model {
	t.Helper()
	m, _ := scriptedModel(t, p, StepShooting)
	require.Equal(t, StepShooting, m.Step())
	return m
}

func TestShootingEditor_TimelineReadout(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.TimedProject()))

	assert.Equal(t, "0.0s / 9.5s", m.shooting.TimelineReadout())
	press(m, "right", "right")
	assert.Equal(t, 2, m.shooting.Active())
	assert.Equal(t, "5.5s / 9.5s", m.shooting.TimelineReadout())
	assert.Contains(t, viewText(m), "5.5s / 9.5s")

	press(m, "right")
	assert.Equal(t, 2, m.shooting.Active(), "stays on the last shot")
}

func TestShootingEditor_ZeroDurationCountsAsDefault(t *testing.T) {
	p := withStills(testfixtures.TimedProject())
	line := p.Lines[0]
	line.Duration = 0
	p = p.WithLine(0, line)

	m := shootingModel(t, p)
	press(m, "right")
	assert.Equal(t, "3.0s / 9.5s", m.shooting.TimelineReadout())
}

func TestShootingEditor_AutoRequestOnActivate(t *testing.T) {
	m := shootingModel(t, testfixtures.ScriptedProject())
	assert.Equal(t, 1, m.images.issued, "entering requests a still for the first shot")
	assert.True(t, m.images.isPending("1"))

	m.GoTo(StepScenery)
	m.GoTo(StepShooting)
	assert.Equal(t, 1, m.images.issued, "pending shots are not requested twice")

	press(m, "right")
	assert.Equal(t, 2, m.images.issued)
	assert.True(t, m.images.isPending("2"))
}

func TestShootingEditor_AutoRequestSkipsShotsWithStills(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.ScriptedProject()))
	press(m, "right", "right", "left")
	assert.Zero(t, m.images.issued)
}

func TestShootingEditor_AngleChangeIssuesOneRequest(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.ScriptedProject()))

	press(m, "enter", "tab")
	require.Equal(t, fieldAngle, m.shooting.field)

	press(m, "right")
	assert.Equal(t, 1, m.images.issued)
	assert.Equal(t, project.AngleCloseUp.Next(), m.Project().Lines[0].Angle)
	assert.True(t, m.images.isPending("1"))

	press(m, "esc")
	assert.Equal(t, 1, m.images.issued, "leaving the angle field issues nothing more")
}

func TestShootingEditor_ActionEditWithoutBlurIssuesNothing(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.ScriptedProject()))

	press(m, "enter", "tab", "tab", "tab")
	require.Equal(t, fieldAction, m.shooting.field)

	press(m, "x", "y", "z")
	assert.Zero(t, m.images.issued)
	assert.Contains(t, m.Project().Lines[0].Action, "xyz", "typing edits the shot immediately")
}

func TestShootingEditor_ActionEditWithBlurIssuesOne(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.ScriptedProject()))

	press(m, "enter", "tab", "tab", "tab", "x")
	press(m, "esc")
	assert.Equal(t, 1, m.images.issued)
	assert.False(t, m.shooting.Editing())

	press(m, "enter", "tab", "tab", "tab", "esc")
	assert.Equal(t, 1, m.images.issued, "unchanged action issues nothing on blur")
}

func TestShootingEditor_ShotChangeBlursAction(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.ScriptedProject()))

	press(m, "enter", "tab", "tab", "tab", "x")
	press(m, "ctrl+n")
	assert.Equal(t, 1, m.shooting.Active())
	assert.Equal(t, 1, m.images.issued)
	assert.True(t, m.images.isPending("1"), "request is for the shot that was edited")
	assert.Equal(t, fieldAction, m.shooting.field, "focus follows to the same field")
}

func TestShootingEditor_DialogueEdit(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.ScriptedProject()))

	press(m, "enter", "!", "esc")
	assert.Contains(t, m.Project().Lines[0].Dialogue, "!")
	assert.True(t, m.Project().Edited())
	assert.Zero(t, m.images.issued, "dialogue does not affect the still")
}

func TestShootingEditor_TitleEdit(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.ScriptedProject()))

	press(m, "t", "2")
	assert.Contains(t, m.Project().Title, "2")
}

func TestShootingEditor_Duration(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.ScriptedProject()))
	e := m.shooting

	press(m, "enter", "tab", "tab")
	require.Equal(t, fieldDuration, e.field)

	e.duration.SetValue("4.5")
	e.applyDuration()
	assert.Equal(t, 4.5, m.Project().Lines[0].Duration)

	e.duration.SetValue("-1")
	e.applyDuration()
	assert.Equal(t, 4.5, m.Project().Lines[0].Duration, "non-positive values are rejected")
	assert.NotEmpty(t, e.durationErr)

	press(m, "esc")
	assert.Equal(t, "4.5", e.duration.Value(), "blurring restores the stored value")
}

func TestShootingEditor_RetryRequestsAgain(t *testing.T) {
	m := shootingModel(t, testfixtures.ScriptedProject())
	require.Equal(t, 1, m.images.issued)

	press(m, "ctrl+r")
	assert.Equal(t, 2, m.images.issued)
	assert.Equal(t, 2, m.images.seq["1"])
}

func TestShootingEditor_RequestCommandCarriesPrompt(t *testing.T) {
	m, gen := scriptedModel(t, testfixtures.ScriptedProject(), StepScenery)

	cmd := m.GoTo(StepShooting)
	msg, ok := findMsg[ShotImageMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "1", msg.ShotID)
	assert.Equal(t, 1, msg.Seq)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Abandoned Lab")
	assert.Contains(t, gen.prompts[0], "Nyx")

	m.Update(msg)
	assert.True(t, m.Project().Lines[0].HasImage())
}

func TestShootingEditor_PanelResize(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.ScriptedProject()))
	e := m.shooting
	require.Equal(t, testfixtures.TestTermWidth-4, e.width)

	maxWidth := e.maxPanelWidth()
	for range 10 {
		press(m, "]")
	}
	assert.Equal(t, maxWidth, e.PanelWidth())

	for range 10 {
		press(m, "[")
	}
	assert.Equal(t, minPanelWidth, e.PanelWidth())

	press(m, "\\")
	assert.True(t, e.PanelHidden())
	press(m, "\\")
	assert.False(t, e.PanelHidden())
}

func TestShootingEditor_PanelClampsOnNarrowTerminal(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.ScriptedProject()))
	m.shooting.SetSize(60, 30)
	assert.Equal(t, minPanelWidth, m.shooting.PanelWidth())
}

func TestShootingEditor_ExportAndBack(t *testing.T) {
	m := shootingModel(t, withStills(testfixtures.ScriptedProject()))

	press(m, "x")
	assert.Equal(t, StepExport, m.Step())

	press(m, "b")
	assert.Equal(t, StepShooting, m.Step())

	press(m, "esc")
	assert.Equal(t, StepScenery, m.Step())
}

func TestShootingEditor_EmptyScript(t *testing.T) {
	m := shootingModel(t, testfixtures.EmptyProject())
	assert.Contains(t, viewText(m), "No shots to film")
	press(m, "right", "ctrl+r", "enter")
	assert.Zero(t, m.images.issued)
}

func TestShootingEditor_MonitorShowsAnyStillReferenceAlike(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"generated", "data:image/png;base64,AAAA"},
		{"placeholder", genclient.PlaceholderImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := shootingModel(t, withStills(testfixtures.ScriptedProject()).WithImage("1", tt.ref))

			monitor := testfixtures.Plain(m.shooting.renderMonitor(m.Project(), 100))
			assert.Contains(t, monitor, "still ready "+tt.ref)
			assert.NotContains(t, monitor, "rendering still")
		})
	}
}
