package explain

import "github.com/algebrix/algebrix/internal/llm"

// Schema is the JSON schema every explanation response must satisfy.
var Schema = &llm.Schema{
	Name:        "step-explanation",
	Description: "An explanation of one step in solving an algebra equation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title for the step (3-8 words)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "What the step asks for and why it works (2-4 sentences)",
			},
			"worked_steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    6,
				"description": "Ordered reasoning on a similar equation, one line each",
			},
		},
		"required":             []any{"title", "explanation", "worked_steps"},
		"additionalProperties": false,
	},
}
