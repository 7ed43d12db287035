package studio

import (
	"github.com/mark3labs/filmmaker/internal/genclient"
	"github.com/mark3labs/filmmaker/internal/project"
)

// GenerateRequestedMsg is sent when the user submits the creative brief.
type GenerateRequestedMsg struct {
	Genre string
	Idea  string
	Force bool // regenerate even if the idea already has a script
}

// ScriptGeneratedMsg carries the result of a script generation.
type ScriptGeneratedMsg struct {
	Genre  string
	Idea   string
	Script genclient.Script
}

// ShotImageMsg carries a generated still for one shot.
type ShotImageMsg struct {
	ShotID string
	Seq    int
	Image  string
}

// IdeaEditedMsg is sent when the external editor returns with a new idea.
type IdeaEditedMsg struct {
	Idea string
}

// ActorChosenMsg is sent when the user picks an actor for a character.
type ActorChosenMsg struct {
	Character string
	Actor     project.Actor
}

// SceneChosenMsg is sent when the user cycles to another scene.
type SceneChosenMsg struct {
	Scene project.Scene
}

// NavigateMsg asks the controller to move between steps.
type NavigateMsg struct {
	Step Step
}

// RestartMsg discards the project and returns to the creative step.
type RestartMsg struct{}
