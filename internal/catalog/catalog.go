// Package catalog provides the static actor, scene, genre and inspiration
// catalogs. The defaults are compiled in; a YAML file can replace them.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mark3labs/filmmaker/internal/project"
)

//go:embed catalog.yaml
var defaultData []byte

// ErrInvalid is returned when a catalog is missing required entries.
var ErrInvalid = errors.New("invalid catalog")

// Catalog is the read-only set of choices offered by the studio.
type Catalog struct {
	Genres       []string        `yaml:"genres"`
	Inspirations []string        `yaml:"inspirations"`
	Actors       []project.Actor `yaml:"actors"`
	Scenes       []project.Scene `yaml:"scenes"`
}

// Default returns the compiled-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultData)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog from path. An empty path returns Default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every list is populated and IDs are unique.
func (c *Catalog) Validate() error {
	switch {
	case len(c.Genres) == 0:
		return fmt.Errorf("%w: no genres", ErrInvalid)
	case len(c.Actors) == 0:
		return fmt.Errorf("%w: no actors", ErrInvalid)
	case len(c.Scenes) == 0:
		return fmt.Errorf("%w: no scenes", ErrInvalid)
	}

	actorIDs := make(map[string]bool, len(c.Actors))
	for _, a := range c.Actors {
		if a.ID == "" || a.Name == "" {
			return fmt.Errorf("%w: actor needs id and name", ErrInvalid)
		}
		if actorIDs[a.ID] {
			return fmt.Errorf("%w: duplicate actor id %q", ErrInvalid, a.ID)
		}
		actorIDs[a.ID] = true
	}

	sceneIDs := make(map[string]bool, len(c.Scenes))
	for _, s := range c.Scenes {
		if s.ID == "" || s.Name == "" {
			return fmt.Errorf("%w: scene needs id and name", ErrInvalid)
		}
		if sceneIDs[s.ID] {
			return fmt.Errorf("%w: duplicate scene id %q", ErrInvalid, s.ID)
		}
		sceneIDs[s.ID] = true
	}
	return nil
}

// RandomInspiration picks a starting idea. It returns "" when none are listed.
func (c *Catalog) RandomInspiration() string {
	if len(c.Inspirations) == 0 {
		return ""
	}
	return c.Inspirations[rand.IntN(len(c.Inspirations))]
}

// ActorIndex returns the index of the actor with the given ID, or 0.
func (c *Catalog) ActorIndex(id string) int {
	for i, a := range c.Actors {
		if a.ID == id {
			return i
		}
	}
	return 0
}

// SceneIndex returns the index of the scene with the given ID, or 0.
func (c *Catalog) SceneIndex(id string) int {
	for i, s := range c.Scenes {
		if s.ID == id {
			return i
		}
	}
	return 0
}

// NewProject starts a project in the first genre with a random inspiration.
func (c *Catalog) NewProject() project.Project {
	return project.New(c.Genres[0], c.RandomInspiration())
}
