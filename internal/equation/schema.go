package equation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const catalogSchemaURL = "schema://equation-catalog.json"

var hintLevelsDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"low":      map[string]any{"type": "string"},
		"moderate": map[string]any{"type": "string"},
		"high":     map[string]any{"type": "string"},
	},
	"additionalProperties": false,
}

var hintsDef = map[string]any{
	"type": "object",
	"propertyNames": map[string]any{
		"enum": []any{"step1", "step2", "step3", "step4", "step5", "solution"},
	},
	"additionalProperties": hintLevelsDef,
}

// catalogSchema describes the on-disk catalog document.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{"type": "string"},
		"linear": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"expression":  map[string]any{"type": "string", "minLength": 1},
					"degree":      map[string]any{"type": "integer", "const": 1},
					"constant":    map[string]any{"type": "integer"},
					"coefficient": map[string]any{"type": "integer", "not": map[string]any{"const": 0}},
					"solution":    map[string]any{"type": "number"},
					"hints":       hintsDef,
				},
				"required": []any{"expression", "constant", "coefficient", "solution"},
			},
		},
		"quadratic": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"expression":       map[string]any{"type": "string", "minLength": 1},
					"degree":           map[string]any{"type": "integer", "const": 2},
					"a":                map[string]any{"type": "integer", "not": map[string]any{"const": 0}},
					"b":                map[string]any{"type": "integer"},
					"c":                map[string]any{"type": "integer"},
					"solution1":        map[string]any{"type": "number"},
					"solution2":        map[string]any{"type": "number"},
					"discriminant":     map[string]any{"type": "integer"},
					"step4_expression": map[string]any{"type": "string"},
					"step5_expression": map[string]any{"type": "string"},
					"step6_expression": map[string]any{"type": "string"},
					"hints":            hintsDef,
				},
				"required": []any{"expression", "a", "b", "c", "solution1"},
			},
		},
	},
	"required": []any{"version", "linear", "quadratic"},
}

var compiledCatalogSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// Round-trip through JSON so numbers take the representation the
	// compiler expects.
	b, err := json.Marshal(catalogSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog schema: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse catalog schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(catalogSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(catalogSchemaURL)
})

// validateDocument checks raw catalog JSON against catalogSchema.
func validateDocument(raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := compiledCatalogSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
