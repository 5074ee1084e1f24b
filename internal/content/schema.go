package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"quizdeck/internal/quiz"
)

// kindEnum derives the schema enum from the answer sum type, so a new
// kind automatically becomes seedable.
func kindEnum() []any {
	kinds := quiz.AllKinds()
	enum := make([]any, len(kinds))
	for i, k := range kinds {
		enum[i] = string(k)
	}
	return enum
}

// packSchema validates the structure of a seed pack before any row is
// written. Cross-field rules the schema cannot express (answer kind
// matching question type, choice references) are checked separately.
var packSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"required": []any{
		"pack_version", "questions",
	},
	"additionalProperties": false,
	"properties": map[string]any{
		"pack_version": map[string]any{
			"type":    "string",
			"pattern": `^v\d+\.\d+\.\d+$`,
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"required": []any{
					"id", "subject", "key_stage", "difficulty", "type", "prompt", "answer",
				},
				"additionalProperties": false,
				"properties": map[string]any{
					"id":      map[string]any{"type": "string", "minLength": 1},
					"subject": map[string]any{"type": "string", "minLength": 1},
					"key_stage": map[string]any{
						"type": "integer", "minimum": 1, "maximum": 4,
					},
					"difficulty": map[string]any{
						"type": "integer", "minimum": 1, "maximum": 5,
					},
					"type": map[string]any{
						"enum": kindEnum(),
					},
					"prompt": map[string]any{"type": "string", "minLength": 1},
					"answer": map[string]any{
						"type":     "object",
						"required": []any{"kind"},
						"properties": map[string]any{
							"kind": map[string]any{
								"enum": kindEnum(),
							},
							"text":      map[string]any{"type": "string"},
							"choice_id": map[string]any{"type": "string"},
							"value":     map[string]any{"type": "boolean"},
							"number":    map[string]any{"type": "string"},
						},
					},
					"choices": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":                 "object",
							"required":             []any{"id", "text"},
							"additionalProperties": false,
							"properties": map[string]any{
								"id":   map[string]any{"type": "string", "minLength": 1},
								"text": map[string]any{"type": "string", "minLength": 1},
							},
						},
					},
				},
			},
		},
	},
}

var compilePackSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler expects a plain decoded JSON value, not a Go map with
	// typed numbers. Round-trip through encoding/json to normalize.
	raw, err := json.Marshal(packSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal pack schema: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse pack schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("pack.json", parsed); err != nil {
		return nil, fmt.Errorf("add pack schema: %w", err)
	}
	schema, err := compiler.Compile("pack.json")
	if err != nil {
		return nil, fmt.Errorf("compile pack schema: %w", err)
	}
	return schema, nil
})
