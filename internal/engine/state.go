package engine

import (
	"time"

	"github.com/algebrix/algebrix/internal/equation"
)

// State is the engine position for one open equation. It is owned by a
// single learner session; the engine never keeps it between calls.
type State struct {
	Kind  equation.Kind
	Index int
	// Step is the zero-based position in Steps(Kind).
	Step int
	// StepAttempts counts well-formed submissions on the current step since
	// the last advance or hint.
	StepAttempts int
	StartTime    time.Time
	Completed    bool

	Scratch Scratch
}

// Scratch holds values confirmed on earlier steps. A field is meaningful
// only once its step has been passed.
type Scratch struct {
	Constant    int
	Coefficient int

	A, B, C   int
	ACProduct int
	Factors   [2]int
	Rewritten string
	Factored  string
}

// Current returns the step the learner is on. A completed state reports its
// final step.
func (s *State) Current() Step {
	steps := Steps(s.Kind)
	if s.Step >= len(steps) {
		return steps[len(steps)-1]
	}
	return steps[s.Step]
}

// TotalSteps returns the number of steps for the state's kind.
func (s *State) TotalSteps() int {
	return len(Steps(s.Kind))
}
