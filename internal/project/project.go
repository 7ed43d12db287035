// Package project holds the single mutable production record the studio
// wizard edits, plus the pure derivations computed from it.
//
// Every mutating function returns a new Project whose changed fields are
// replaced wholesale, so values handed to async commands never alias the
// slices or maps the event loop keeps editing.
package project

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultDuration is the length in seconds given to every generated shot
	// and assumed for any shot whose duration is unset.
	DefaultDuration = 3.0

	// DefaultTitle is the title of a project before a script exists.
	DefaultTitle = "Untitled Production"
)

// Actor is a pre-baked digital performer.
type Actor struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Avatar      string `yaml:"avatar" json:"avatar"`
	Age         string `yaml:"age" json:"age"`
	Gender      string `yaml:"gender" json:"gender"`
	Voice       string `yaml:"voice" json:"voice"`
	Tone        string `yaml:"tone" json:"tone"`
}

// Scene is a pre-baked studio backdrop.
type Scene struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
}

// ShotLine is one line of the script and the shot that films it.
type ShotLine struct {
	ID        string      `yaml:"id"`
	Character string      `yaml:"character"`
	Dialogue  string      `yaml:"dialogue"`
	Angle     CameraAngle `yaml:"angle"`
	Action    string      `yaml:"action"`
	Image     string      `yaml:"image,omitempty"`
	Duration  float64     `yaml:"duration"`
}

// HasImage reports whether an image reference has been resolved for the shot.
func (l ShotLine) HasImage() bool {
	return l.Image != ""
}

// Project is the production being built by the wizard.
type Project struct {
	Title string
	Genre string
	Idea  string
	Lines []ShotLine
	Cast  map[string]Actor
	Scene *Scene

	// GeneratedIdea is the idea that produced the current Lines.
	GeneratedIdea string
	// Original is the script exactly as generated, before any edits.
	Original []ShotLine
}

// New creates an empty project for the given genre and starting idea.
func New(genre, idea string) Project {
	return Project{
		Title: DefaultTitle,
		Genre: genre,
		Idea:  idea,
		Cast:  map[string]Actor{},
	}
}

// CanGenerate reports whether the idea is filled in.
func (p Project) CanGenerate() bool {
	return strings.TrimSpace(p.Idea) != ""
}

// HasScript reports whether the project holds generated lines.
func (p Project) HasScript() bool {
	return len(p.Lines) > 0
}

// IsGeneratedFrom reports whether the current script came from idea.
func (p Project) IsGeneratedFrom(idea string) bool {
	return p.HasScript() && p.GeneratedIdea == idea
}

// ApplyScript installs a freshly generated script. Every line gets the
// default duration, IDs are made unique, and the cast is cleared so the
// next OnScriptGenerated call assigns actors again.
func (p Project) ApplyScript(title string, lines []ShotLine) Project {
	if strings.TrimSpace(title) != "" {
		p.Title = title
	} else if p.Title == "" {
		p.Title = DefaultTitle
	}

	seen := make(map[string]bool, len(lines))
	fresh := make([]ShotLine, len(lines))
	for i, line := range lines {
		id := strings.TrimSpace(line.ID)
		if id == "" || seen[id] {
			id = newLineID()
		}
		seen[id] = true

		line.ID = id
		line.Duration = DefaultDuration
		line.Image = ""
		if line.Angle == "" {
			line.Angle = AngleMedium
		}
		fresh[i] = line
	}

	p.Lines = fresh
	p.Original = append([]ShotLine(nil), fresh...)
	p.GeneratedIdea = p.Idea
	p.Cast = map[string]Actor{}
	return p
}

func newLineID() string {
	return "shot-" + uuid.NewString()
}

// DistinctCharacters returns each character once, in order of first appearance.
func DistinctCharacters(lines []ShotLine) []string {
	seen := make(map[string]bool)
	var chars []string
	for _, line := range lines {
		if seen[line.Character] {
			continue
		}
		seen[line.Character] = true
		chars = append(chars, line.Character)
	}
	return chars
}

// OnScriptGenerated runs the automatic casting and set selection for a new
// script. It only acts when lines exist and no actor has been assigned yet,
// so manual choices survive repeated evaluation.
func (p Project) OnScriptGenerated(actors []Actor, scenes []Scene) Project {
	if len(p.Lines) == 0 || len(p.Cast) > 0 || len(actors) == 0 {
		return p
	}

	cast := make(map[string]Actor)
	for i, char := range DistinctCharacters(p.Lines) {
		cast[char] = actors[i%len(actors)]
	}
	p.Cast = cast

	if len(scenes) > 0 {
		scene := scenes[0]
		p.Scene = &scene
	}
	return p
}

// SetActor overrides the actor for a single character.
func (p Project) SetActor(character string, actor Actor) Project {
	cast := make(map[string]Actor, len(p.Cast)+1)
	for k, v := range p.Cast {
		cast[k] = v
	}
	cast[character] = actor
	p.Cast = cast
	return p
}

// SetScene selects the studio backdrop.
func (p Project) SetScene(scene Scene) Project {
	p.Scene = &scene
	return p
}

// SceneName returns the selected scene's name or an empty string.
func (p Project) SceneName() string {
	if p.Scene == nil {
		return ""
	}
	return p.Scene.Name
}

// WithTitle replaces the title.
func (p Project) WithTitle(title string) Project {
	p.Title = title
	return p
}

// WithLine replaces the line at index i. Out-of-range indexes are ignored.
func (p Project) WithLine(i int, line ShotLine) Project {
	if i < 0 || i >= len(p.Lines) {
		return p
	}
	lines := append([]ShotLine(nil), p.Lines...)
	lines[i] = line
	p.Lines = lines
	return p
}

// IndexOf returns the index of the line with the given ID, or -1.
func (p Project) IndexOf(id string) int {
	for i, line := range p.Lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}

// WithImage sets the image of the line with the given ID.
func (p Project) WithImage(id, image string) Project {
	i := p.IndexOf(id)
	if i < 0 {
		return p
	}
	line := p.Lines[i]
	line.Image = image
	return p.WithLine(i, line)
}

// ShotPrompt describes the shot at index i for the image model.
func (p Project) ShotPrompt(i int) string {
	if i < 0 || i >= len(p.Lines) {
		return ""
	}
	line := p.Lines[i]
	return fmt.Sprintf("Unity Built-in Renderer scene, %s, character %s performing %s, %s camera angle, cinematic lighting",
		p.SceneName(), line.Character, line.Action, line.Angle)
}

// Edited reports whether dialogue or action differs from the generated script.
func (p Project) Edited() bool {
	if len(p.Lines) != len(p.Original) {
		return true
	}
	for i := range p.Lines {
		if p.Lines[i].Dialogue != p.Original[i].Dialogue || p.Lines[i].Action != p.Original[i].Action {
			return true
		}
	}
	return false
}
