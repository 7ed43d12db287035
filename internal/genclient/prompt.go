package genclient

import "fmt"

const imageStylePrefix = "Unity Built-in Render Pipeline 3D scene style, game engine look, simple clean textures, professional lighting, 3D character asset style: "

func scriptPrompt(genre, idea, language string) string {
	if language == "" {
		language = "English"
	}
	return fmt.Sprintf(`Based on the genre %q and the idea %q, write a catchy project title and a 4-line short script in %s.
Return a JSON object with "title" (string) and "script" (array).
Each script item has: id, character, dialogue, cameraAngle (Wide, Medium, Close-up, or Over-the-shoulder), action.
Use consistent character names.`, genre, idea, language)
}

func imagePrompt(prompt string) string {
	return imageStylePrefix + prompt
}

// scriptSchema constrains the model to the Script wire shape.
var scriptSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"title": map[string]any{"type": "STRING"},
		"script": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"id":          map[string]any{"type": "STRING"},
					"character":   map[string]any{"type": "STRING"},
					"dialogue":    map[string]any{"type": "STRING"},
					"cameraAngle": map[string]any{"type": "STRING"},
					"action":      map[string]any{"type": "STRING"},
				},
				"required": []string{"id", "character", "dialogue", "cameraAngle", "action"},
			},
		},
	},
	"required": []string{"title", "script"},
}
