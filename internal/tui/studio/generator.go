package studio

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/filmmaker/internal/genclient"
	"github.com/mark3labs/filmmaker/internal/logger"
)

// Generator is the fail-soft generation boundary used by the studio.
// *genclient.Client satisfies it.
type Generator interface {
	GenerateScript(ctx context.Context, genre, idea string) genclient.Script
	GenerateImage(ctx context.Context, prompt string) string
}

func generateScriptCmd(ctx context.Context, gen Generator, genre, idea string) tea.Cmd {
	return func() tea.Msg {
		return ScriptGeneratedMsg{
			Genre:  genre,
			Idea:   idea,
			Script: gen.GenerateScript(ctx, genre, idea),
		}
	}
}

func generateImageCmd(ctx context.Context, gen Generator, shotID string, seq int, prompt string) tea.Cmd {
	return func() tea.Msg {
		return ShotImageMsg{
			ShotID: shotID,
			Seq:    seq,
			Image:  gen.GenerateImage(ctx, prompt),
		}
	}
}

// imageRequests tracks in-flight still requests per shot. Only the newest
// request issued for a shot may write its result.
type imageRequests struct {
	seq     map[string]int
	pending map[string]bool
	// issued counts every request for the debug log and tests.
	issued int
}

func newImageRequests() *imageRequests {
	return &imageRequests{
		seq:     make(map[string]int),
		pending: make(map[string]bool),
	}
}

func (r *imageRequests) issue(shotID string) int {
	r.seq[shotID]++
	r.pending[shotID] = true
	r.issued++
	logger.Debug("studio: still request #%d for shot %s (seq %d)", r.issued, shotID, r.seq[shotID])
	return r.seq[shotID]
}

// resolve reports whether msg is the newest response for its shot.
func (r *imageRequests) resolve(msg ShotImageMsg) bool {
	if r.seq[msg.ShotID] != msg.Seq {
		return false
	}
	delete(r.pending, msg.ShotID)
	return true
}

func (r *imageRequests) isPending(shotID string) bool {
	return r.pending[shotID]
}

// reset invalidates every in-flight response. Sequence numbers keep
// growing because a new script may reuse shot IDs.
func (r *imageRequests) reset() {
	for id := range r.seq {
		r.seq[id]++
	}
	clear(r.pending)
}
