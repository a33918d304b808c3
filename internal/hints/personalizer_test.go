package hints

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/algebrix/algebrix/internal/equation"
)

func TestDefaultTableIsExhaustive(t *testing.T) {
	for _, kind := range equation.Kinds {
		for _, step := range kind.StepKeys() {
			for _, level := range equation.Levels {
				if text, ok := Default(kind, step, level); !ok || text == "" {
					t.Errorf("missing default for (%s, %s, %s)", kind, step, level)
				}
			}
		}
	}
}

func TestResolveNeverEmpty(t *testing.T) {
	p := New(nil)
	for _, kind := range equation.Kinds {
		for i := range kind.StepKeys() {
			for _, level := range equation.Levels {
				h := p.ForStep(kind, i, level, nil)
				if h.Text == "" {
					t.Errorf("empty hint for (%s, %d, %s)", kind, i, level)
				}
				if h.Source != SourceDefault {
					t.Errorf("source = %q, want default", h.Source)
				}
			}
		}
	}
}

func TestResolvePrefersRecordHint(t *testing.T) {
	p := New(nil)
	set := equation.HintSet{
		equation.StepTwo: {equation.LevelHigh: "Look at the 2."},
	}

	h := p.Resolve(equation.KindLinear, equation.StepTwo, equation.LevelHigh, set)
	if h.Text != "Look at the 2." || h.Source != SourcePersonalized {
		t.Errorf("got %+v, want personalized record hint", h)
	}

	// Other levels of the same step fall back to the table.
	h = p.Resolve(equation.KindLinear, equation.StepTwo, equation.LevelLow, set)
	if h.Source != SourceDefault {
		t.Errorf("source = %q, want default", h.Source)
	}
}

func TestResolveUsesKindSpecificTable(t *testing.T) {
	p := New(nil)
	lin := p.Resolve(equation.KindLinear, equation.StepOne, equation.LevelHigh, nil)
	quad := p.Resolve(equation.KindQuadratic, equation.StepOne, equation.LevelHigh, nil)
	if lin.Text != "Identify the constant term." {
		t.Errorf("linear step1 high = %q", lin.Text)
	}
	if quad.Text != "Find a, b, c." {
		t.Errorf("quadratic step1 high = %q", quad.Text)
	}
}

func TestResolveGenericFallbackIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := New(zap.New(core))

	// Linear has no step5 entry.
	h := p.Resolve(equation.KindLinear, equation.StepFive, equation.LevelModerate, nil)
	if h.Text != GenericHint {
		t.Errorf("text = %q, want generic", h.Text)
	}
	if logs.Len() != 1 {
		t.Fatalf("warn logs = %d, want 1", logs.Len())
	}
	entry := logs.All()[0]
	if entry.ContextMap()["step"] != "step5" {
		t.Errorf("logged step = %v, want step5", entry.ContextMap()["step"])
	}
}
