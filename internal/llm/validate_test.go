package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

var stepSchema = &Schema{
	Name: "test-step",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":  map[string]any{"type": "string"},
			"step":   map[string]any{"type": "integer", "minimum": 1},
			"level":  map[string]any{"type": "string", "enum": []any{"low", "moderate", "high"}},
			"worked": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []any{"title", "step"},
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"all fields", `{"title":"Divide","step":2,"level":"low","worked":["2x = 6","x = 3"]}`, true},
		{"optional omitted", `{"title":"Divide","step":1}`, true},
		{"missing required", `{"title":"Divide"}`, false},
		{"wrong type", `{"title":"Divide","step":"two"}`, false},
		{"below minimum", `{"title":"Divide","step":0}`, false},
		{"bad enum", `{"title":"Divide","step":1,"level":"expert"}`, false},
		{"bad item type", `{"title":"Divide","step":1,"worked":[3]}`, false},
		{"malformed", `{"title":`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(stepSchema, json.RawMessage(tt.raw))
			if tt.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("content = %s", inv.Content)
			}
		})
	}

	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Errorf("nil schema should accept anything, got %v", err)
	}
}

func TestValidatingProvider(t *testing.T) {
	req := Request{Schema: stepSchema}

	t.Run("valid output passes", func(t *testing.T) {
		p := WithValidation(NewMockProvider(MockResponse{Content: json.RawMessage(`{"title":"x","step":1}`)}))
		if _, err := p.Generate(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid output rejected", func(t *testing.T) {
		p := WithValidation(NewMockProvider(MockResponse{Content: json.RawMessage(`{"title":"x"}`)}))
		_, err := p.Generate(context.Background(), req)
		var inv *ErrInvalidResponse
		if !errors.As(err, &inv) {
			t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
		}
	})

	t.Run("truncated output rejected", func(t *testing.T) {
		p := WithValidation(NewMockProvider(MockResponse{Content: json.RawMessage(`{"ti`), StopReason: StopMaxTokens}))
		_, err := p.Generate(context.Background(), req)
		var mt *ErrMaxTokensExceeded
		if !errors.As(err, &mt) {
			t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
		}
	})

	t.Run("no schema is untouched", func(t *testing.T) {
		p := WithValidation(NewMockProvider(MockResponse{Content: json.RawMessage(`plain`), StopReason: StopMaxTokens}))
		resp, err := p.Generate(context.Background(), Request{})
		if err != nil || string(resp.Content) != "plain" {
			t.Fatalf("got %v, %v", resp, err)
		}
	})

	t.Run("errors pass through", func(t *testing.T) {
		p := WithValidation(NewMockProvider())
		_, err := p.Generate(context.Background(), req)
		var unavail *ErrProviderUnavailable
		if !errors.As(err, &unavail) {
			t.Fatalf("expected ErrProviderUnavailable, got %T", err)
		}
		if p.Name() != ProviderMock || p.ModelID() != "mock" {
			t.Errorf("identity = %s/%s", p.Name(), p.ModelID())
		}
	})
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"whitespace", "  {\"a\":1}\n", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line fence", "```json {\"a\":1}```", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(extractJSON(tt.in)); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
