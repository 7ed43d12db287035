package genclient

import "github.com/mark3labs/filmmaker/internal/project"

// ScriptLine is one line as returned by the script model.
type ScriptLine struct {
	ID          string `json:"id"`
	Character   string `json:"character"`
	Dialogue    string `json:"dialogue"`
	CameraAngle string `json:"cameraAngle"`
	Action      string `json:"action"`
}

// Script is the script model's answer.
type Script struct {
	Title string       `json:"title"`
	Lines []ScriptLine `json:"script"`
}

// Shots converts the wire lines into project shot lines.
func (s Script) Shots() []project.ShotLine {
	shots := make([]project.ShotLine, len(s.Lines))
	for i, l := range s.Lines {
		shots[i] = project.ShotLine{
			ID:        l.ID,
			Character: l.Character,
			Dialogue:  l.Dialogue,
			Angle:     project.ParseAngle(l.CameraAngle),
			Action:    l.Action,
		}
	}
	return shots
}
