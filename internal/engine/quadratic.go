package engine

import (
	"fmt"
	"sort"

	"github.com/algebrix/algebrix/internal/equation"
)

type quadratic struct {
	eq  equation.Quadratic
	tol float64
}

func newQuadratic(eq equation.Quadratic, tol float64) *quadratic {
	return &quadratic{eq: eq, tol: tol}
}

func (q *quadratic) parse(st *State, p Payload) (input, *Outcome) {
	switch st.Step {
	case 0:
		if vals, ok := parseInts(p.Fields, 3); ok {
			return input{nums: vals}, nil
		}
		return input{}, &Outcome{Message: "Please enter valid numbers"}
	case 1:
		if vals, ok := parseInts(p.Fields, 1); ok {
			return input{nums: vals}, nil
		}
		return input{}, &Outcome{Message: "Please enter a valid number"}
	case 2:
		if vals, ok := parseInts(p.Fields, 2); ok {
			return input{nums: vals}, nil
		}
		return input{}, &Outcome{Message: "Please enter valid numbers"}
	case 3:
		if s, ok := parseText(p.Fields); ok {
			return input{text: s}, nil
		}
		return input{}, &Outcome{
			Message: "Please enter your rewritten equation.",
			Nudge:   q.nudge(st),
		}
	case 4:
		if s, ok := parseText(p.Fields); ok {
			return input{text: s}, nil
		}
		return input{}, &Outcome{
			Message: "Please enter your factored form.",
			Nudge:   q.nudge(st),
		}
	default:
		if vals, ok := parseReals(p.Fields, 2); ok {
			return input{nums: vals}, nil
		}
		return input{}, &Outcome{Message: "Please enter valid numbers"}
	}
}

func (q *quadratic) evaluate(st *State, in input) Outcome {
	out := q.check(st, in)
	if out.Correct {
		out.Progress = quadraticProgress[st.Step]
	} else {
		out.Nudge = q.nudge(st)
	}
	return out
}

func (q *quadratic) check(st *State, in input) Outcome {
	eq := q.eq
	switch st.Step {
	case 0:
		a, b, c := in.nums[0], in.nums[1], in.nums[2]
		if a != float64(eq.A) || b != float64(eq.B) || c != float64(eq.C) {
			return Outcome{Message: "Not quite. Match with ax² + bx + c."}
		}
		st.Scratch.A, st.Scratch.B, st.Scratch.C = eq.A, eq.B, eq.C
		return Outcome{Correct: true, Message: fmt.Sprintf("Correct! a = %d, b = %d, c = %d", eq.A, eq.B, eq.C)}

	case 1:
		if in.nums[0] != float64(eq.ACProduct) {
			return Outcome{Message: "Incorrect. Try again!"}
		}
		st.Scratch.ACProduct = eq.ACProduct
		return Outcome{Correct: true, Message: fmt.Sprintf("Correct! a × c = %d", eq.ACProduct)}

	case 2:
		n1, n2 := int(in.nums[0]), int(in.nums[1])
		if n1*n2 != eq.ACProduct || n1+n2 != eq.B {
			return Outcome{Message: "These numbers don't work. Try again!"}
		}
		st.Scratch.Factors = [2]int{n1, n2}
		return Outcome{
			Correct: true,
			Message: fmt.Sprintf("Excellent! %d × %d = %d and %d + %d = %d", n1, n2, eq.ACProduct, n1, n2, eq.B),
		}

	case 3:
		st.Scratch.Rewritten = in.text
		return Outcome{Correct: true, Message: "Good! Now write the factored form."}

	case 4:
		st.Scratch.Factored = in.text
		return Outcome{Correct: true, Message: "Great! Now find the values of x."}

	default:
		got := []float64{in.nums[0], in.nums[1]}
		sort.Float64s(got)
		if !near(got[0], eq.Roots[0], q.tol) || !near(got[1], eq.Roots[1], q.tol) {
			return Outcome{Message: "Not quite right. Check your work."}
		}
		return Outcome{
			Correct: true,
			Message: fmt.Sprintf("🎉 Perfect! The solutions are x = %s and x = %s",
				formatNum(eq.Roots[0]), formatNum(eq.Roots[1])),
		}
	}
}

// nudge is the short pointer shown with a wrong or empty answer.
func (q *quadratic) nudge(st *State) string {
	eq := q.eq
	switch st.Step {
	case 0:
		return "The coefficient of x² is a, the coefficient of x is b, and the constant is c."
	case 1:
		return fmt.Sprintf("Multiply a (%d) by c (%d).", eq.A, eq.C)
	case 2:
		return fmt.Sprintf("Find two numbers that multiply to %d and add to %d.", eq.ACProduct, eq.B)
	case 3:
		return fmt.Sprintf("Split the middle term using %d and %d.", st.Scratch.Factors[0], st.Scratch.Factors[1])
	case 4:
		return "Factor out common terms from each group."
	default:
		return "Set each factor equal to 0 and solve."
	}
}
