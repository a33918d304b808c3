package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion. Implementations wrap a vendor SDK;
// decorators (retry, validation, logging) wrap other Providers.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the vendor model the provider sends requests to.
	ModelID() string

	// Name is the provider key recorded with each LLM event, e.g. "gemini".
	Name() string
}

// Request is a single-turn or short multi-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for structured output. A nil Schema returns the raw text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case and doubles as the compiled-schema cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is a vendor-neutral reason for generation ending.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a finished generation.
type Response struct {
	// Content is JSON when the request carried a Schema; otherwise it holds
	// the model's text with any code fence removed.
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type purposeKey struct{}

// WithPurpose labels LLM calls made with ctx, e.g. "explain".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}
