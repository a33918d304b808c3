package hints

import (
	"go.uber.org/zap"

	"github.com/algebrix/algebrix/internal/equation"
)

// Source reports where a resolved hint came from.
type Source string

const (
	SourcePersonalized Source = "personalized"
	SourceDefault      Source = "default"
)

// Hint is a resolved hint. Text is never empty.
type Hint struct {
	Text   string `json:"hint_text"`
	Source Source `json:"source"`
}

// Personalizer resolves the single hint string to show for a step.
// Resolution is a pure function of its inputs; the logger only surfaces
// fallbacks to the generic text.
type Personalizer struct {
	logger *zap.Logger
}

// New creates a Personalizer. A nil logger discards diagnostics.
func New(logger *zap.Logger) *Personalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Personalizer{logger: logger}
}

// Resolve looks up the record's hint for (step, level), then the built-in
// default for (kind, step, level), then the generic encouragement.
func (p *Personalizer) Resolve(kind equation.Kind, step equation.StepKey, level equation.Level, set equation.HintSet) Hint {
	if text, ok := set.Lookup(step, level); ok {
		return Hint{Text: text, Source: SourcePersonalized}
	}
	if text, ok := Default(kind, step, level); ok {
		return Hint{Text: text, Source: SourceDefault}
	}

	p.logger.Warn("no default hint for step; using generic text",
		zap.String("kind", string(kind)),
		zap.String("step", string(step)),
		zap.String("level", string(level)),
	)
	return Hint{Text: GenericHint, Source: SourceDefault}
}

// ForStep resolves the hint for a zero-based engine step index.
func (p *Personalizer) ForStep(kind equation.Kind, index int, level equation.Level, set equation.HintSet) Hint {
	return p.Resolve(kind, equation.StepKeyFor(index), level, set)
}
