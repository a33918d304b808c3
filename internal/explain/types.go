package explain

import (
	"github.com/algebrix/algebrix/internal/engine"
	"github.com/algebrix/algebrix/internal/equation"
)

// Explanation is an LLM-written walkthrough of a single solving step.
type Explanation struct {
	Kind        equation.Kind `json:"kind"`
	Index       int           `json:"equation_index"`
	Step        int           `json:"step"`
	Title       string        `json:"title"`
	Explanation string        `json:"explanation"`
	WorkedSteps []string      `json:"worked_steps"`
}

// Input holds the context sent to the model.
type Input struct {
	Kind       equation.Kind
	Index      int
	Expression string
	Step       engine.Step
	Level      equation.Level

	// Attempts is the number of well-formed submissions on the current step.
	Attempts int
}

// Config holds explanation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.4,
	}
}
