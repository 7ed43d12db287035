package studio

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/x/ansi"
	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/filmmaker/internal/project"
	"github.com/mark3labs/filmmaker/internal/tui/theme"
)

const stillRefWidth = 32

// stillReference shortens an image reference for display. Every reference
// form is treated alike.
func stillReference(ref string) string {
	return ansi.Truncate(ref, stillRefWidth, "…")
}

// ExportFileName is the name of the rendered master for p.
func ExportFileName(p project.Project) string {
	return slug.Make(p.Title) + "_" + slug.Make(p.Genre) + "_final_master.mp4"
}

type manifestShot struct {
	ID        string  `yaml:"id"`
	Character string  `yaml:"character"`
	Actor     string  `yaml:"actor,omitempty"`
	Angle     string  `yaml:"angle"`
	Duration  float64 `yaml:"duration"`
	Dialogue  string  `yaml:"dialogue"`
	Action    string  `yaml:"action"`
	Still     string  `yaml:"still,omitempty"`
}

type manifest struct {
	Title   string         `yaml:"title"`
	Genre   string         `yaml:"genre"`
	Scene   string         `yaml:"scene,omitempty"`
	Runtime float64        `yaml:"runtime_seconds"`
	Output  string         `yaml:"output"`
	Shots   []manifestShot `yaml:"shots"`
}

// Manifest renders the production as YAML. Still references are shortened.
func Manifest(p project.Project) (string, error) {
	m := manifest{
		Title:   p.Title,
		Genre:   p.Genre,
		Scene:   p.SceneName(),
		Runtime: project.TotalDuration(p.Lines),
		Output:  ExportFileName(p),
		Shots:   make([]manifestShot, len(p.Lines)),
	}
	for i, line := range p.Lines {
		still := stillReference(line.Image)
		m.Shots[i] = manifestShot{
			ID:        line.ID,
			Character: line.Character,
			Actor:     p.Cast[line.Character].Name,
			Angle:     line.Angle.String(),
			Duration:  project.EffectiveDuration(line.Duration),
			Dialogue:  line.Dialogue,
			Action:    line.Action,
			Still:     still,
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}
	return buf.String(), nil
}

// highlightYAML colors YAML source for a true-color terminal, returning the
// source unchanged if chroma cannot handle it.
func highlightYAML(source string) string {
	lexer := lexers.Get("yaml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		return source
	}
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return strings.TrimRight(buf.String(), "\n")
}

func scriptText(lines []project.ShotLine) string {
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, line.Character, line.Dialogue)
		fmt.Fprintf(&b, "   (%s)\n", line.Action)
	}
	return b.String()
}

// ScriptDiff is a unified diff from the generated script to the edited one,
// or "" when dialogue and action are untouched.
func ScriptDiff(p project.Project) string {
	if !p.Edited() {
		return ""
	}
	return udiff.Unified("generated", "edited", scriptText(p.Original), scriptText(p.Lines))
}

func colorizeDiff(diff string) string {
	st := theme.Current().S()
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = st.Muted.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = st.DiffInsert.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = st.DiffDelete.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = st.Accent.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// renderSummary builds the wrap-up page shown after export.
func renderSummary(p project.Project) string {
	st := theme.Current().S()
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", st.Title.Render(p.Title))
	fmt.Fprintf(&b, "%s %s\n", st.Muted.Render("genre   "), p.Genre)
	fmt.Fprintf(&b, "%s %s\n", st.Muted.Render("scene   "), p.SceneName())
	fmt.Fprintf(&b, "%s %d\n", st.Muted.Render("shots   "), len(p.Lines))
	fmt.Fprintf(&b, "%s %.1fs\n", st.Muted.Render("runtime "), project.TotalDuration(p.Lines))
	fmt.Fprintf(&b, "%s %s\n\n", st.Muted.Render("output  "), st.Accent.Render(ExportFileName(p)))

	b.WriteString(st.Subtitle.Render("Manifest"))
	b.WriteString("\n")
	if m, err := Manifest(p); err != nil {
		b.WriteString(st.Error.Render(err.Error()))
	} else {
		b.WriteString(highlightYAML(m))
	}
	b.WriteString("\n")

	if diff := ScriptDiff(p); diff != "" {
		b.WriteString("\n")
		b.WriteString(st.Subtitle.Render("Revisions"))
		b.WriteString("\n")
		b.WriteString(colorizeDiff(diff))
		b.WriteString("\n")
	}
	return b.String()
}
