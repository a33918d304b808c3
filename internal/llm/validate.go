package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidatingProvider checks structured output against the request schema.
// Failures surface as *ErrInvalidResponse or *ErrMaxTokensExceeded so the
// retry decorator can tell them apart from transport errors.
type ValidatingProvider struct {
	inner Provider
}

// WithValidation wraps a Provider with schema validation.
func WithValidation(p Provider) Provider {
	return &ValidatingProvider{inner: p}
}

func (v *ValidatingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := v.inner.Generate(ctx, req)
	if err != nil || req.Schema == nil {
		return resp, err
	}
	if resp.StopReason == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}

func (v *ValidatingProvider) ModelID() string { return v.inner.ModelID() }

func (v *ValidatingProvider) Name() string { return v.inner.Name() }

// extractJSON trims whitespace and a surrounding markdown code fence.
// Some models fence their JSON even when structured output is requested.
func extractJSON(text string) json.RawMessage {
	t := strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(t, "```"); ok {
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		} else {
			rest = strings.TrimPrefix(rest, "json")
		}
		t = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "```"))
	}
	return json.RawMessage(t)
}

// validateResponse returns *ErrInvalidResponse unless raw is JSON that
// satisfies schema. A nil schema accepts anything.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", schema.Name, err)}
	}
	return nil
}

// compiled schemas by Schema.Name
var schemaCache sync.Map

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if c, ok := schemaCache.Load(schema.Name); ok {
		return c.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, so round-trip the Go map
	// to normalize ints and []string into float64 and []any.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	url := "schema://" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
