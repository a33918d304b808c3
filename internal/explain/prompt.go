package explain

import (
	"fmt"
	"strings"

	"github.com/algebrix/algebrix/internal/equation"
)

const systemPrompt = `You are a patient algebra tutor. A student is working through an equation one step at a time and has asked for an explanation of the step in front of them.`

// levelGuidance tunes the register to the learner's diagnostic level.
var levelGuidance = map[equation.Level]string{
	equation.LevelLow:      "The student is a beginner. Use short sentences, name every operation, and avoid jargon.",
	equation.LevelModerate: "The student knows the basics. Be clear and concise.",
	equation.LevelHigh:     "The student is confident. Be brief and focus on the idea behind the step.",
}

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Equation type: %s\n", in.Kind)
	fmt.Fprintf(&b, "Equation: %s\n", in.Expression)
	fmt.Fprintf(&b, "Current step (%d): %s\n", in.Step.Number, in.Step.Instruction)
	fmt.Fprintf(&b, "Student level: %s\n", in.Level)
	if in.Attempts > 0 {
		fmt.Fprintf(&b, "Attempts on this step so far: %d\n", in.Attempts)
	}
	if g, ok := levelGuidance[in.Level]; ok {
		fmt.Fprintf(&b, "\n%s\n", g)
	}

	b.WriteString(`
Instructions:
1. Explain what this step asks for and why it moves the equation closer to solved.
2. Do NOT give the answer for this equation. Demonstrate on a different equation of the same type instead.
3. Give the worked steps for that different equation, one short line each.
4. Use plain ASCII for math. Write x^2 for x squared, * for multiplication, / for division.`)

	return b.String()
}
