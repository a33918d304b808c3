package explain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/algebrix/algebrix/internal/engine"
	"github.com/algebrix/algebrix/internal/equation"
	"github.com/algebrix/algebrix/internal/llm"
)

func validExplanationJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Move the constant",
		"explanation": "Subtract the constant from both sides so only the x term is left on the left.",
		"worked_steps": ["2x + 4 = 10", "2x = 10 - 4", "2x = 6"]
	}`)
}

func testInput() Input {
	return Input{
		Kind:       equation.KindLinear,
		Index:      0,
		Expression: "3x + 5 = 14",
		Step:       engine.Steps(equation.KindLinear)[0],
		Level:      equation.LevelLow,
		Attempts:   2,
	}
}

func waitResult(t *testing.T, svc *Service) Result {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := svc.Consume(); ok {
			return res
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for explanation")
	return Result{}
}

func TestService_GeneratesExplanation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validExplanationJSON()})
	svc := NewService(mock, DefaultConfig(), nil)

	svc.Request(t.Context(), testInput())
	res := waitResult(t, svc)

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	exp := res.Explanation
	if exp.Title != "Move the constant" {
		t.Errorf("title = %q", exp.Title)
	}
	if len(exp.WorkedSteps) != 3 {
		t.Errorf("worked steps = %d, want 3", len(exp.WorkedSteps))
	}
	if exp.Kind != equation.KindLinear || exp.Step != 1 {
		t.Errorf("explanation not stamped with step: %+v", exp)
	}

	// Slot is cleared after consumption.
	if _, ok := svc.Consume(); ok {
		t.Error("expected empty slot after consume")
	}
}

func TestService_PromptCarriesContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validExplanationJSON()})
	svc := NewService(mock, DefaultConfig(), nil)

	if _, err := svc.Generate(context.Background(), testInput()); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}

	req := mock.Calls[0]
	if req.Schema != Schema {
		t.Error("expected explanation schema on request")
	}
	if req.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("max tokens = %d", req.MaxTokens)
	}
	msg := req.Messages[0].Content
	for _, want := range []string{
		"Equation: 3x + 5 = 14",
		"Current step (1): Step 1: What is the constant term?",
		"Student level: low",
		"Attempts on this step so far: 2",
		"beginner",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestService_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	svc := NewService(mock, DefaultConfig(), nil)

	svc.Request(t.Context(), testInput())
	res := waitResult(t, svc)

	if res.Explanation != nil {
		t.Error("expected no explanation")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(res.Err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", res.Err)
	}
}

func TestService_MalformedContent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	svc := NewService(mock, DefaultConfig(), nil)

	if _, err := svc.Generate(context.Background(), testInput()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestService_ConsumeBeforeRequest(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig(), nil)
	if _, ok := svc.Consume(); ok {
		t.Fatal("expected nothing to consume")
	}
}

func TestSchemaAcceptsValidOutput(t *testing.T) {
	var parsed explanationOutput
	if err := json.Unmarshal(validExplanationJSON(), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	props := Schema.Definition["properties"].(map[string]any)
	for _, key := range []string{"title", "explanation", "worked_steps"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing %q", key)
		}
	}
}
