package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/algebrix/algebrix/internal/equation"
	"github.com/algebrix/algebrix/internal/hints"
	"github.com/algebrix/algebrix/internal/progress"
)

var (
	// ErrEquationCompleted is returned when submitting to an equation that
	// has already reached its final step.
	ErrEquationCompleted = errors.New("equation already completed")

	// ErrKindMismatch is returned when the record and the open state are of
	// different kinds.
	ErrKindMismatch = errors.New("equation kind does not match open state")
)

const (
	// DefaultHintThreshold is the number of well-formed submissions on one
	// step that triggers a hint.
	DefaultHintThreshold = 3

	// DefaultTolerance is the absolute tolerance for real-valued answers.
	DefaultTolerance = 0.01
)

// Recorder receives equation completions. *progress.Tracker implements it.
type Recorder interface {
	RecordCompletion(index int, elapsed float64) error
}

// Payload is one learner submission. Fields are raw strings in the order of
// the current step's labels.
type Payload struct {
	Fields []string `json:"fields"`
}

// Answer builds a single-field payload.
func Answer(s string) Payload {
	return Payload{Fields: []string{s}}
}

// Outcome is the result of one submission.
type Outcome struct {
	// Accepted is false for malformed input; nothing else changed.
	Accepted bool        `json:"success"`
	Correct  bool        `json:"correct"`
	Message  string      `json:"message"`
	Hint     *hints.Hint `json:"hint,omitempty"`
	// Nudge is a short step-specific pointer given with wrong answers.
	Nudge     string `json:"nudge,omitempty"`
	NextStep  *Step  `json:"next_step,omitempty"`
	Completed bool   `json:"completed,omitempty"`
	// Replay is set when a completed equation was solved again; the ledger
	// is left unchanged.
	Replay       bool    `json:"replay,omitempty"`
	Elapsed      float64 `json:"time,omitempty"`
	Progress     int     `json:"progress,omitempty"`
	ProgressText string  `json:"progress_text,omitempty"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithHintThreshold sets the submissions-per-hint threshold. Values below 1
// are ignored.
func WithHintThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.threshold = n
		}
	}
}

// WithTolerance sets the absolute tolerance for real-valued answers.
func WithTolerance(tol float64) Option {
	return func(e *Engine) {
		if tol >= 0 {
			e.tolerance = tol
		}
	}
}

// WithClock overrides the wall clock used for elapsed time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine validates submissions against the step sequence of an equation.
// It is stateless; all per-learner data lives in State.
type Engine struct {
	personalizer *hints.Personalizer
	threshold    int
	tolerance    float64
	now          func() time.Time
}

// New creates an Engine. A nil personalizer uses one without logging.
func New(p *hints.Personalizer, opts ...Option) *Engine {
	if p == nil {
		p = hints.New(nil)
	}
	e := &Engine{
		personalizer: p,
		threshold:    DefaultHintThreshold,
		tolerance:    DefaultTolerance,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open starts a fresh state for the record at index and starts its clock.
func (e *Engine) Open(rec equation.Record, index int) *State {
	return &State{
		Kind:      rec.Kind,
		Index:     index,
		StartTime: e.now(),
	}
}

// Hint resolves the hint for the state's current step without touching the
// retry counter.
func (e *Engine) Hint(rec equation.Record, st *State, level equation.Level) hints.Hint {
	return e.personalizer.Resolve(st.Kind, st.Current().Key, level, rec.Hints)
}

// Submit validates p against the current step. Final-step success reports
// the completion to recorder. The state is updated only when the returned
// error is nil; malformed input leaves it untouched.
func (e *Engine) Submit(rec equation.Record, st *State, level equation.Level, p Payload, recorder Recorder) (Outcome, error) {
	if rec.Kind != st.Kind {
		return Outcome{}, fmt.Errorf("%w: record %s, state %s", ErrKindMismatch, rec.Kind, st.Kind)
	}
	if st.Completed {
		return Outcome{}, ErrEquationCompleted
	}

	var ev evaluator
	switch st.Kind {
	case equation.KindLinear:
		ev = newLinear(rec.Linear(), e.tolerance)
	case equation.KindQuadratic:
		ev = newQuadratic(rec.Quadratic(), e.tolerance)
	default:
		return Outcome{}, fmt.Errorf("%w: unsupported kind %q", ErrKindMismatch, st.Kind)
	}

	next := *st
	in, reject := ev.parse(&next, p)
	if reject != nil {
		return *reject, nil
	}

	next.StepAttempts++
	var hint *hints.Hint
	if next.StepAttempts >= e.threshold {
		h := e.personalizer.Resolve(next.Kind, next.Current().Key, level, rec.Hints)
		hint = &h
		next.StepAttempts = 0
	}

	out := ev.evaluate(&next, in)
	out.Accepted = true
	out.Hint = hint

	if out.Correct {
		next.Step++
		next.StepAttempts = 0
		steps := Steps(next.Kind)
		if next.Step < len(steps) {
			s := steps[next.Step]
			out.NextStep = &s
		} else {
			elapsed := roundTo(e.now().Sub(next.StartTime).Seconds(), 2)
			if elapsed < 0 {
				elapsed = 0
			}
			if err := recorder.RecordCompletion(next.Index, elapsed); err != nil {
				if !errors.Is(err, progress.ErrAlreadyCompleted) {
					return Outcome{}, fmt.Errorf("record completion: %w", err)
				}
				out.Replay = true
			}
			next.Completed = true
			out.Completed = true
			out.Elapsed = elapsed
		}
	}

	*st = next
	return out, nil
}

// evaluator is one equation kind's step logic.
type evaluator interface {
	// parse converts the payload for the current step. A non-nil outcome
	// reports malformed input.
	parse(st *State, p Payload) (input, *Outcome)
	// evaluate decides correctness and records scratch values on success.
	evaluate(st *State, in input) Outcome
}

// input is a parsed payload.
type input struct {
	nums []float64
	text string
}

func roundTo(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol+1e-9
}
