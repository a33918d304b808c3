package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

func serveJSON(t *testing.T, status int, body any) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func anthropicAt(t *testing.T, url string) Provider {
	t.Helper()
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(url), option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("new anthropic provider: %v", err)
	}
	return p
}

func openAIAt(t *testing.T, url string) Provider {
	t.Helper()
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-mini", BaseURL: url + "/v1"})
	if err != nil {
		t.Fatalf("new openai provider: %v", err)
	}
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

var explainRequest = Request{
	System:    "You are an algebra tutor.",
	Messages:  []Message{{Role: RoleUser, Content: "Explain the step."}},
	MaxTokens: 256,
}

func TestAnthropicProvider_Generate(t *testing.T) {
	fenced := "```json\n{\"title\":\"Factor\",\"explanation\":\"Find two numbers.\"}\n```"
	p := anthropicAt(t, serveJSON(t, http.StatusOK, anthropicMessage(fenced, "end_turn")))

	resp, err := p.Generate(context.Background(), explainRequest)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(resp.Content) != `{"title":"Factor","explanation":"Find two numbers."}` {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
	if p.ModelID() != "claude-haiku-4-5-20251001" || p.Name() != ProviderAnthropic {
		t.Errorf("identity = %s/%s", p.Name(), p.ModelID())
	}
}

func TestAnthropicProvider_MaxTokens(t *testing.T) {
	p := anthropicAt(t, serveJSON(t, http.StatusOK, anthropicMessage(`{"title":`, "max_tokens")))
	resp, err := p.Generate(context.Background(), explainRequest)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.StopReason != StopMaxTokens {
		t.Errorf("stop reason = %q, want max_tokens", resp.StopReason)
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	p := openAIAt(t, serveJSON(t, http.StatusOK, chatCompletion(`{"title":"Divide","explanation":"Divide both sides by 3."}`, "stop")))

	resp, err := p.Generate(context.Background(), explainRequest)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd || resp.Model != "gpt-4o-mini" {
		t.Errorf("response = %+v", resp)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("alias not resolved: %q", p.ModelID())
	}
}

func TestOpenAIProvider_LengthFinish(t *testing.T) {
	p := openAIAt(t, serveJSON(t, http.StatusOK, chatCompletion(`{"title":`, "length")))
	resp, err := p.Generate(context.Background(), explainRequest)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.StopReason != StopMaxTokens {
		t.Errorf("stop reason = %q, want max_tokens", resp.StopReason)
	}
}

func TestVendorErrorClassification(t *testing.T) {
	anthropicErr := func(typ string) map[string]any {
		return map[string]any{"type": "error", "error": map[string]any{"type": typ, "message": typ}}
	}
	openAIErr := func(typ string) map[string]any {
		return map[string]any{"error": map[string]any{"type": typ, "message": typ}}
	}

	tests := []struct {
		name    string
		connect func(*testing.T, string) Provider
		status  int
		body    map[string]any
		limited bool
	}{
		{"anthropic 429", anthropicAt, http.StatusTooManyRequests, anthropicErr("rate_limit_error"), true},
		{"anthropic 500", anthropicAt, http.StatusInternalServerError, anthropicErr("api_error"), false},
		{"openai 429", openAIAt, http.StatusTooManyRequests, openAIErr("tokens"), true},
		{"openai 500", openAIAt, http.StatusInternalServerError, openAIErr("server_error"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.connect(t, serveJSON(t, tt.status, tt.body))
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			var rl *ErrRateLimit
			var unavail *ErrProviderUnavailable
			switch {
			case tt.limited && !errors.As(err, &rl):
				t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
			case !tt.limited && !errors.As(err, &unavail):
				t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
			}
		})
	}
}

func TestOpenRouterProvider(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
		t.Fatal("expected error for empty API key")
	}

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "gpt-mini"})
	if err != nil {
		t.Fatalf("new openrouter provider: %v", err)
	}
	if p.ModelID() != "gpt-mini" {
		t.Errorf("openrouter ids must pass through, got %q", p.ModelID())
	}
	if p.Name() != ProviderOpenRouter {
		t.Errorf("name = %q", p.Name())
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string", "description": "short title"},
			"level": map[string]any{"type": "string", "enum": []any{"low", "moderate", "high"}},
			"worked_steps": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
				"maxItems": float64(6),
			},
			"odd": map[string]any{"type": "tuple"},
		},
		"required": []any{"title", "worked_steps"},
	})

	if s.Type != "OBJECT" || len(s.Properties) != 4 {
		t.Fatalf("schema = %+v", s)
	}
	if s.Properties["title"].Description != "short title" {
		t.Errorf("description lost")
	}
	if got := s.Properties["level"].Enum; len(got) != 3 || got[1] != "moderate" {
		t.Errorf("enum = %v", got)
	}
	steps := s.Properties["worked_steps"]
	if steps.Type != "ARRAY" || steps.Items.Type != "STRING" {
		t.Errorf("worked_steps = %+v", steps)
	}
	if steps.MinItems == nil || *steps.MinItems != 1 || steps.MaxItems == nil || *steps.MaxItems != 6 {
		t.Errorf("item bounds = %v..%v", steps.MinItems, steps.MaxItems)
	}
	if s.Properties["odd"].Type != "STRING" {
		t.Errorf("unknown type should fall back to STRING, got %s", s.Properties["odd"].Type)
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
}
