package equation

import "testing"

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestQuadraticDefaults(t *testing.T) {
	r := Record{Kind: KindQuadratic, Expression: "x² = 0", Solution1: floatp(0)}
	q := r.Quadratic()
	if q.A != 1 || q.B != 0 || q.C != 0 {
		t.Errorf("a, b, c = %d, %d, %d, want 1, 0, 0", q.A, q.B, q.C)
	}
	if !q.SingleRoot {
		t.Error("expected SingleRoot when solution2 is absent")
	}
	if q.Roots != [2]float64{0, 0} {
		t.Errorf("roots = %v, want [0 0]", q.Roots)
	}
}

func TestQuadraticSortsRootsAndDerivesDiscriminant(t *testing.T) {
	r := Record{
		Kind: KindQuadratic,
		A:    intp(1), B: intp(-5), C: intp(6),
		Solution1: floatp(3), Solution2: floatp(2),
	}
	q := r.Quadratic()
	if q.Roots != [2]float64{2, 3} {
		t.Errorf("roots = %v, want [2 3]", q.Roots)
	}
	if q.ACProduct != 6 {
		t.Errorf("ac = %d, want 6", q.ACProduct)
	}
	if q.Discriminant != 1 {
		t.Errorf("discriminant = %d, want 1", q.Discriminant)
	}
	if q.SingleRoot {
		t.Error("SingleRoot should be false with two solutions")
	}
}

func TestLinearDefaults(t *testing.T) {
	l := Record{Kind: KindLinear}.Linear()
	if l != (Linear{}) {
		t.Errorf("linear = %+v, want zero value", l)
	}
}

func TestHintSetLookup(t *testing.T) {
	h := HintSet{
		StepOne: {LevelLow: "long", LevelHigh: ""},
	}
	if text, ok := h.Lookup(StepOne, LevelLow); !ok || text != "long" {
		t.Errorf("Lookup(step1, low) = %q, %v", text, ok)
	}
	if _, ok := h.Lookup(StepOne, LevelHigh); ok {
		t.Error("empty text must count as absent")
	}
	if _, ok := h.Lookup(StepTwo, LevelLow); ok {
		t.Error("missing step must count as absent")
	}
	var nilSet HintSet
	if _, ok := nilSet.Lookup(StepOne, LevelLow); ok {
		t.Error("nil set must report absent")
	}
}

func TestStepKeyFor(t *testing.T) {
	tests := []struct {
		index int
		want  StepKey
	}{
		{0, StepOne},
		{1, StepTwo},
		{2, StepThree},
		{3, StepFour},
		{4, StepFive},
		{5, StepSolution},
		{6, StepOne},
		{-1, StepOne},
	}
	for _, tt := range tests {
		if got := StepKeyFor(tt.index); got != tt.want {
			t.Errorf("StepKeyFor(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestParseKindAndLevel(t *testing.T) {
	if k, err := ParseKind("quadratic"); err != nil || k != KindQuadratic {
		t.Errorf("ParseKind(quadratic) = %q, %v", k, err)
	}
	if _, err := ParseKind("cubic"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if l, err := ParseLevel("high"); err != nil || l != LevelHigh {
		t.Errorf("ParseLevel(high) = %q, %v", l, err)
	}
	if _, err := ParseLevel("expert"); err == nil {
		t.Error("expected error for unknown level")
	}
}
