package testfixtures

import (
	"github.com/mark3labs/filmmaker/internal/catalog"
	"github.com/mark3labs/filmmaker/internal/project"
)

// Fixed test values for consistent output
const (
	FixedGenre = "Sci-Fi"
	FixedIdea  = "A cyber hacker who steals dreams and sells them on the dark web."
	FixedTitle = "Dream Thief"
)

// Catalog returns the compiled-in catalog.
func Catalog() *catalog.Catalog {
	return catalog.Default()
}

// EmptyProject returns a project with an idea but no script.
func EmptyProject() project.Project {
	return project.New(FixedGenre, FixedIdea)
}

// ScriptLines returns four lines with characters [A, B, A, C].
func ScriptLines() []project.ShotLine {
	return []project.ShotLine{
		{ID: "1", Character: "Nyx", Dialogue: "Every dream has a price.", Angle: project.AngleCloseUp, Action: "counts glowing vials"},
		{ID: "2", Character: "Orin", Dialogue: "Mine isn't for sale.", Angle: project.AngleMedium, Action: "steps out of the shadows"},
		{ID: "3", Character: "Nyx", Dialogue: "Everything is for sale.", Angle: project.AngleOverShoulder, Action: "raises a syringe"},
		{ID: "4", Character: "Vex", Dialogue: "Not tonight.", Angle: project.AngleWide, Action: "kicks the door in"},
	}
}

// ScriptedProject returns a project whose script was generated from
// FixedIdea and cast from the default catalog.
func ScriptedProject() project.Project {
	c := Catalog()
	return EmptyProject().
		ApplyScript(FixedTitle, ScriptLines()).
		OnScriptGenerated(c.Actors, c.Scenes)
}

// TimedProject returns a three-shot project with durations 3.0, 2.5 and 4.0.
func TimedProject() project.Project {
	p := ScriptedProject()
	p.Lines = p.Lines[:3]
	durations := []float64{3.0, 2.5, 4.0}
	for i, d := range durations {
		line := p.Lines[i]
		line.Duration = d
		p = p.WithLine(i, line)
	}
	return p
}
