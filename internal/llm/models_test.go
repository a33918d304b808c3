package llm

import "testing"

func TestResolveModel(t *testing.T) {
	tests := []struct {
		provider, name, want string
	}{
		{ProviderAnthropic, "claude-haiku", "claude-haiku-4-5-20251001"},
		{ProviderAnthropic, "claude-sonnet-4-5", "claude-sonnet-4-5"},
		{ProviderOpenAI, "gpt-mini", "gpt-4o-mini"},
		{ProviderGemini, "gemini-flash", "gemini-2.5-flash"},
		{ProviderGemini, "gemini-2.0-flash", "gemini-2.0-flash"},
		{ProviderOpenRouter, "gemini-flash", "gemini-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.provider, tt.name); got != tt.want {
			t.Errorf("resolveModel(%s, %q) = %q, want %q", tt.provider, tt.name, got, tt.want)
		}
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); got < 0.7499 || got > 0.7501 {
		t.Errorf("cost = %v, want 0.75", got)
	}

	routed := LookupCost("google/gemini-2.5-flash")
	if routed == nil || routed.OutputPerMTok != 2.5 {
		t.Errorf("routed pricing = %+v", routed)
	}
	if LookupCost("mock") != nil {
		t.Error("mock should have no pricing")
	}
}
