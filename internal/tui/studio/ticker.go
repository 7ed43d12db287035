package studio

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// TickMsg is delivered by a Ticker. Token identifies the run that scheduled it.
type TickMsg struct {
	ID    string
	Token int
}

// Ticker is a cancellable repeating timer built on tea.Tick.
//
// Every Start and Stop bumps the token, so a tick scheduled by an earlier run
// is rejected by Accept even if it is already in flight.
type Ticker struct {
	id       string
	interval time.Duration
	token    int
	active   bool
}

// NewTicker creates a stopped ticker.
func NewTicker(id string, interval time.Duration) *Ticker {
	return &Ticker{id: id, interval: interval}
}

// Start begins a new run and schedules its first tick.
func (t *Ticker) Start() tea.Cmd {
	t.token++
	t.active = true
	return t.Next()
}

// Next schedules the following tick of the current run.
func (t *Ticker) Next() tea.Cmd {
	if !t.active {
		return nil
	}
	id, token := t.id, t.token
	return tea.Tick(t.interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, Token: token}
	})
}

// Stop cancels the current run.
func (t *Ticker) Stop() {
	t.token++
	t.active = false
}

// Accept reports whether msg belongs to the current run of this ticker.
func (t *Ticker) Accept(msg TickMsg) bool {
	return t.active && msg.ID == t.id && msg.Token == t.token
}

// Active reports whether the ticker is running.
func (t *Ticker) Active() bool {
	return t.active
}

// current returns the message the current run would deliver.
func (t *Ticker) current() TickMsg {
	return TickMsg{ID: t.id, Token: t.token}
}
