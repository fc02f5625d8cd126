package dataset

import "github.com/datphan/lawgen/internal/llm"

// AnswerSchema defines the JSON shape requested in structured mode.
// Only summary is required: out-of-scope questions legitimately come back
// with empty arrays.
var AnswerSchema = &llm.Schema{
	Name:        "law-answer",
	Description: "A legal answer with violations, citations, penalty ranges, and a summary",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question being answered, echoed back",
			},
			"violations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":    map[string]any{"type": "string"},
						"details": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
				"description": "Each violation found in the situation",
			},
			"citations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"law":     map[string]any{"type": "string"},
						"article": map[string]any{"type": "string"},
						"clause":  map[string]any{"type": "string"},
					},
				},
				"description": "Legal basis: statute, article, clause",
			},
			"penalties": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"violation":                 map[string]any{"type": "string"},
						"fine_min_vnd":              map[string]any{"type": "number"},
						"fine_max_vnd":              map[string]any{"type": "number"},
						"license_suspension_months": map[string]any{"type": "number"},
					},
					"required": []any{"violation"},
				},
				"description": "Fine range in VND and license suspension per violation",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "Closing synthesis, including the combined-penalty sentence",
			},
		},
		"required": []any{"summary"},
	},
}
