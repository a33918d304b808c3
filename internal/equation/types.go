package equation

import "fmt"

// Kind identifies the equation family a record belongs to.
type Kind string

const (
	KindLinear    Kind = "linear"
	KindQuadratic Kind = "quadratic"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindLinear, KindQuadratic}

// ParseKind converts a transport string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindLinear, KindQuadratic:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown equation kind %q", s)
}

// StepKeys returns the hint keys used by this kind, in step order.
func (k Kind) StepKeys() []StepKey {
	if k == KindQuadratic {
		return []StepKey{StepOne, StepTwo, StepThree, StepFour, StepFive, StepSolution}
	}
	return []StepKey{StepOne, StepTwo, StepThree}
}

// Short returns the one-letter prefix used for chart labels.
func (k Kind) Short() string {
	if k == KindQuadratic {
		return "Q"
	}
	return "L"
}

// Level is the learner's performance level, derived from the diagnostic quiz.
// It controls hint verbosity.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Levels lists every level from most to least verbose hints.
var Levels = []Level{LevelLow, LevelModerate, LevelHigh}

// ParseLevel converts a stored string into a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelLow, LevelModerate, LevelHigh:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown performance level %q", s)
}

// StepKey names a position in a guided-solving sequence for hint lookup.
type StepKey string

const (
	StepOne      StepKey = "step1"
	StepTwo      StepKey = "step2"
	StepThree    StepKey = "step3"
	StepFour     StepKey = "step4"
	StepFive     StepKey = "step5"
	StepSolution StepKey = "solution"
)

var stepKeysByIndex = []StepKey{StepOne, StepTwo, StepThree, StepFour, StepFive, StepSolution}

// StepKeyFor maps a zero-based engine step index to its hint key.
// Indices outside the known range map to step1.
func StepKeyFor(index int) StepKey {
	if index < 0 || index >= len(stepKeysByIndex) {
		return StepOne
	}
	return stepKeysByIndex[index]
}
