package engine

import (
	"fmt"

	"github.com/algebrix/algebrix/internal/equation"
)

type linear struct {
	eq  equation.Linear
	tol float64
}

func newLinear(eq equation.Linear, tol float64) *linear {
	return &linear{eq: eq, tol: tol}
}

func (l *linear) parse(st *State, p Payload) (input, *Outcome) {
	var (
		vals []float64
		ok   bool
	)
	// The solution may be fractional; the identification steps are integers.
	if st.Step == 2 {
		vals, ok = parseReals(p.Fields, 1)
	} else {
		vals, ok = parseInts(p.Fields, 1)
	}
	if !ok {
		return input{}, &Outcome{Message: "Please enter a valid number"}
	}
	return input{nums: vals}, nil
}

func (l *linear) evaluate(st *State, in input) Outcome {
	v := in.nums[0]
	wrong := Outcome{Message: "Incorrect. Try again!"}

	switch st.Step {
	case 0:
		if v != float64(l.eq.Constant) {
			return wrong
		}
		st.Scratch.Constant = l.eq.Constant
		return Outcome{
			Correct: true,
			Message: "Correct! Moving to next step.",
			ProgressText: fmt.Sprintf("After subtracting constant: %dx = %s",
				l.eq.Coefficient, formatNum(l.eq.Solution*float64(l.eq.Coefficient))),
		}
	case 1:
		if v != float64(l.eq.Coefficient) {
			return wrong
		}
		st.Scratch.Coefficient = l.eq.Coefficient
		return Outcome{
			Correct:      true,
			Message:      "Correct! Moving to final step.",
			ProgressText: "After dividing: x = " + formatNum(l.eq.Solution),
		}
	default:
		if !near(v, l.eq.Solution, l.tol) {
			return wrong
		}
		return Outcome{Correct: true, Message: "Excellent! You've solved the equation!"}
	}
}
