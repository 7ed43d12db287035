package studiomcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/filmmaker/internal/catalog"
	"github.com/mark3labs/filmmaker/internal/genclient"
	"github.com/mark3labs/filmmaker/internal/project"
)

type stubGenerator struct {
	script genclient.Script
	image  string

	genre, idea, prompt string
}

func (g *stubGenerator) GenerateScript(_ context.Context, genre, idea string) genclient.Script {
	g.genre, g.idea = genre, idea
	return g.script
}

func (g *stubGenerator) GenerateImage(_ context.Context, prompt string) string {
	g.prompt = prompt
	return g.image
}

func callTool(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
}

// extractText returns the text of the first content block.
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func TestServerStartRandomPort(t *testing.T) {
	s := New(&stubGenerator{}, catalog.Default())

	port, err := s.Start(context.Background(), 0)
	require.NoError(t, err)
	assert.Greater(t, port, 0)
	assert.Equal(t, fmt.Sprintf("http://localhost:%d/mcp", port), s.URL())

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop(), "second stop is a no-op")
}

func TestServerDoubleStart(t *testing.T) {
	s := New(&stubGenerator{}, nil)
	_, err := s.Start(context.Background(), 0)
	require.NoError(t, err)
	defer func() { _ = s.Stop() }()

	_, err = s.Start(context.Background(), 0)
	assert.Error(t, err)
}

func TestGenerateScriptTool(t *testing.T) {
	gen := &stubGenerator{script: genclient.Script{
		Title: "Dream Thief",
		Lines: []genclient.ScriptLine{{ID: "1", Character: "Nyx", Dialogue: "Hello.", CameraAngle: "Wide", Action: "waves"}},
	}}
	s := New(gen, nil)

	result, err := s.handleGenerateScript(context.Background(), callTool("generate-script", map[string]any{
		"genre": "Sci-Fi",
		"idea":  "  A hacker steals dreams.  ",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, extractText(result))

	assert.Equal(t, "Sci-Fi", gen.genre)
	assert.Equal(t, "A hacker steals dreams.", gen.idea)

	var got genclient.Script
	require.NoError(t, json.Unmarshal([]byte(extractText(result)), &got))
	assert.Equal(t, gen.script, got)
}

func TestGenerateScriptTool_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"no arguments", nil, "no arguments provided"},
		{"missing idea", map[string]any{"genre": "Sci-Fi"}, "missing 'idea' parameter"},
		{"blank genre", map[string]any{"genre": " ", "idea": "x"}, "'genre' cannot be empty"},
		{"wrong type", map[string]any{"genre": 3, "idea": "x"}, "'genre' must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&stubGenerator{}, nil)
			result, err := s.handleGenerateScript(context.Background(), callTool("generate-script", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, extractText(result), tt.want)
		})
	}
}

func TestGenerateImageTool(t *testing.T) {
	t.Run("inline image", func(t *testing.T) {
		gen := &stubGenerator{image: "data:image/png;base64,QUJD"}
		s := New(gen, nil)

		result, err := s.handleGenerateImage(context.Background(), callTool("generate-image", map[string]any{"prompt": "Nyx, Wide"}))
		require.NoError(t, err)
		require.False(t, result.IsError)
		assert.Equal(t, "Nyx, Wide", gen.prompt)

		var image *mcp.ImageContent
		for _, c := range result.Content {
			if ic, ok := c.(mcp.ImageContent); ok {
				image = &ic
			}
		}
		require.NotNil(t, image)
		assert.Equal(t, "QUJD", image.Data)
		assert.Equal(t, "image/png", image.MIMEType)
	})

	t.Run("placeholder", func(t *testing.T) {
		s := New(&stubGenerator{image: genclient.PlaceholderImage}, nil)
		result, err := s.handleGenerateImage(context.Background(), callTool("generate-image", map[string]any{"prompt": "x"}))
		require.NoError(t, err)
		assert.Equal(t, genclient.PlaceholderImage, extractText(result))
	})
}

func TestListTools(t *testing.T) {
	cat := catalog.Default()
	s := New(&stubGenerator{}, cat)

	result, err := s.handleListActors(context.Background(), callTool("list-actors", nil))
	require.NoError(t, err)
	var actors []project.Actor
	require.NoError(t, json.Unmarshal([]byte(extractText(result)), &actors))
	assert.Equal(t, cat.Actors, actors)

	result, err = s.handleListScenes(context.Background(), callTool("list-scenes", nil))
	require.NoError(t, err)
	var scenes []project.Scene
	require.NoError(t, json.Unmarshal([]byte(extractText(result)), &scenes))
	assert.Equal(t, cat.Scenes, scenes)
}
