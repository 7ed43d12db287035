package studio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/filmmaker/internal/tui/testfixtures"
)

func tickLog(s *ScriptStep) {
	s.Update(s.logTicker.current())
}

func tickReveal(s *ScriptStep) {
	s.Update(s.revealTicker.current())
}

func TestScriptStep_NewIdeaPlaysFullLogBeforeReveal(t *testing.T) {
	s := NewScriptStep()
	p := testfixtures.ScriptedProject()

	cmd := s.Enter(p)
	require.NotNil(t, cmd, "entry schedules the first log tick")
	assert.Equal(t, -1, s.Reveal())
	assert.Empty(t, s.Logs())

	for i := 1; i < len(CollaborationLog); i++ {
		tickLog(s)
		assert.Len(t, s.Logs(), i)
		assert.Equal(t, -1, s.Reveal(), "no line revealed while the log plays")
		assert.Empty(t, s.RevealedLines())
	}

	tickLog(s)
	assert.Equal(t, CollaborationLog, s.Logs())
	assert.Equal(t, 0, s.Reveal())
	assert.False(t, s.logTicker.Active())
	assert.True(t, s.revealTicker.Active())
	assert.Len(t, s.RevealedLines(), 1)
	assert.NotContains(t, testfixtures.Plain(s.View()), ScriptFinalizedLine)

	for i := 1; i <= len(p.Lines); i++ {
		tickReveal(s)
		assert.Equal(t, i, s.Reveal())
	}
	assert.True(t, s.Complete())
	assert.False(t, s.revealTicker.Active())
	assert.Len(t, s.RevealedLines(), len(p.Lines))
	assert.Contains(t, testfixtures.Plain(s.View()), ScriptFinalizedLine)
}

func TestScriptStep_SameIdeaSkipsReplay(t *testing.T) {
	s := NewScriptStep()
	p := testfixtures.ScriptedProject()

	s.Enter(p)
	for i := 0; i < 20 && !s.Complete(); i++ {
		if s.logTicker.Active() {
			tickLog(s)
		} else {
			tickReveal(s)
		}
	}
	require.True(t, s.Complete())
	s.Exit()

	cmd := s.Enter(p)
	assert.Nil(t, cmd, "no ticks scheduled on re-entry")
	assert.Equal(t, []string{SyncedLogLine}, s.Logs())
	assert.Equal(t, len(p.Lines), s.Reveal())
	assert.True(t, s.Complete())
	assert.Contains(t, testfixtures.Plain(s.View()), SyncedLogLine)
}

func TestScriptStep_ChangedIdeaResets(t *testing.T) {
	s := NewScriptStep()
	p := testfixtures.ScriptedProject()
	s.Enter(p)
	for range CollaborationLog {
		tickLog(s)
	}
	tickReveal(s)
	s.Exit()

	p.Idea = "A lighthouse keeper who collects lost radio signals."
	s.Enter(p)
	assert.Equal(t, -1, s.Reveal())
	assert.Empty(t, s.Logs())
	assert.True(t, s.logTicker.Active())
}

func TestScriptStep_InterruptedAnimationReplays(t *testing.T) {
	s := NewScriptStep()
	p := testfixtures.ScriptedProject()

	s.Enter(p)
	tickLog(s)
	s.Exit()

	s.Enter(p)
	assert.Empty(t, s.Logs(), "log restarts when it never finished")
	assert.Equal(t, -1, s.Reveal())
}

func TestScriptStep_StaleTicksDropped(t *testing.T) {
	s := NewScriptStep()
	p := testfixtures.ScriptedProject()

	s.Enter(p)
	stale := s.logTicker.current()
	s.Exit()
	s.Enter(p)

	s.Update(stale)
	assert.Empty(t, s.Logs())

	tickLog(s)
	assert.Len(t, s.Logs(), 1)
}

func TestScriptStep_InvalidateForcesReplay(t *testing.T) {
	s := NewScriptStep()
	p := testfixtures.ScriptedProject()
	s.Enter(p)
	for range CollaborationLog {
		tickLog(s)
	}
	s.Exit()

	s.Invalidate()
	s.Enter(p)
	assert.Equal(t, -1, s.Reveal())
}

func TestScriptMarkdown(t *testing.T) {
	md := scriptMarkdown(testfixtures.ScriptLines()[:2])
	assert.Contains(t, md, "### Shot 1 · Close-up")
	assert.Contains(t, md, "**Nyx**: Every dream has a price.")
	assert.Contains(t, md, "_steps out of the shadows_")
}
