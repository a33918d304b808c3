package diagnostic

import (
	"math"
	"testing"

	"github.com/algebrix/algebrix/internal/equation"
)

// answerKey returns a map answering the first n questions correctly and the
// rest wrong.
func answerKey(n int) map[int]int {
	answers := make(map[int]int)
	for i, q := range Questions() {
		if i < n {
			answers[q.ID] = q.Correct
		} else {
			answers[q.ID] = (q.Correct + 1) % len(q.Options)
		}
	}
	return answers
}

func TestScore(t *testing.T) {
	tests := []struct {
		correct int
		pct     float64
		level   equation.Level
	}{
		{7, 100, equation.LevelHigh},
		{6, 85.7, equation.LevelHigh},
		{5, 71.4, equation.LevelModerate},
		{4, 57.1, equation.LevelModerate},
		{3, 42.9, equation.LevelLow},
		{0, 0, equation.LevelLow},
	}
	for _, tt := range tests {
		r := Score(answerKey(tt.correct))
		if r.Correct != tt.correct || r.Total != 7 {
			t.Errorf("%d correct: got %d/%d", tt.correct, r.Correct, r.Total)
		}
		if math.Abs(r.Percentage-tt.pct) > 0.05 {
			t.Errorf("%d correct: percentage %.2f, want ≈%.1f", tt.correct, r.Percentage, tt.pct)
		}
		if r.Level != tt.level {
			t.Errorf("%d correct: level %q, want %q", tt.correct, r.Level, tt.level)
		}
	}
}

func TestScoreIgnoresUnknownAndInvalid(t *testing.T) {
	r := Score(map[int]int{
		1:  0,  // correct
		2:  9,  // out of range option
		3:  -1, // invalid option
		42: 0,  // unknown question
	})
	if r.Correct != 1 {
		t.Errorf("correct = %d, want 1", r.Correct)
	}
	if r.Level != equation.LevelLow {
		t.Errorf("level = %q, want low", r.Level)
	}
}

func TestScoreEmpty(t *testing.T) {
	r := Score(nil)
	if r.Correct != 0 || r.Percentage != 0 || r.Level != equation.LevelLow {
		t.Errorf("result = %+v", r)
	}
}

func TestLevelForBoundaries(t *testing.T) {
	tests := []struct {
		pct  float64
		want equation.Level
	}{
		{75, equation.LevelHigh},
		{74.99, equation.LevelModerate},
		{50, equation.LevelModerate},
		{49.99, equation.LevelLow},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.pct); got != tt.want {
			t.Errorf("LevelFor(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestACProductQuestion(t *testing.T) {
	q, ok := Lookup(6)
	if !ok {
		t.Fatal("question 6 missing")
	}
	if q.Options[q.Correct] != "12" {
		t.Errorf("answer = %q, want 12", q.Options[q.Correct])
	}
}

func TestQuestionsIsCopy(t *testing.T) {
	qs := Questions()
	qs[0].Prompt = "changed"
	if Questions()[0].Prompt == "changed" {
		t.Error("Questions exposed internal slice")
	}
}
