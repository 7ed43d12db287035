package studiomcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("generate-script",
			mcp.WithDescription("Write a short film script for a genre and a one-line idea"),
			mcp.WithString("genre", mcp.Required(),
				mcp.Description("Film genre, e.g. "+strings.Join(s.catalog.Genres, ", ")),
			),
			mcp.WithString("idea", mcp.Required(),
				mcp.Description("One-line story idea"),
			),
		),
		s.handleGenerateScript,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("generate-image",
			mcp.WithDescription("Render a 16:9 storyboard still for a shot description"),
			mcp.WithString("prompt", mcp.Required(),
				mcp.Description("Shot description: scene, character, action and camera angle"),
			),
		),
		s.handleGenerateImage,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list-actors",
			mcp.WithDescription("List the digital actors available for casting"),
		),
		s.handleListActors,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list-scenes",
			mcp.WithDescription("List the studio sets available for shooting"),
		),
		s.handleListScenes,
	)
}

// stringArg returns a required, non-blank string argument.
func stringArg(request mcp.CallToolRequest, name string) (string, error) {
	args := request.GetArguments()
	if args == nil {
		return "", fmt.Errorf("no arguments provided")
	}
	raw, ok := args[name]
	if !ok {
		return "", fmt.Errorf("missing '%s' parameter", name)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("'%s' must be a string", name)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("'%s' cannot be empty", name)
	}
	return value, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleGenerateScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	genre, err := stringArg(request, "genre")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	idea, err := stringArg(request, "idea")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.gen.GenerateScript(ctx, genre, idea))
}

func (s *Server) handleGenerateImage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := stringArg(request, "prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ref := s.gen.GenerateImage(ctx, prompt)
	if rest, ok := strings.CutPrefix(ref, "data:"); ok {
		mime, data, found := strings.Cut(rest, ";base64,")
		if found {
			return mcp.NewToolResultImage("Generated still", data, mime), nil
		}
	}
	return mcp.NewToolResultText(ref), nil
}

func (s *Server) handleListActors(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.catalog.Actors)
}

func (s *Server) handleListScenes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.catalog.Scenes)
}
