package hints

import "github.com/algebrix/algebrix/internal/equation"

// GenericHint is the last-resort text. Reaching it means the default table
// is missing an entry.
const GenericHint = "Try again! You're doing great!"

type table map[equation.Level]map[equation.StepKey]string

// defaults must hold a non-empty entry for every (kind, step, level).
var defaults = map[equation.Kind]table{
	equation.KindLinear: {
		equation.LevelLow: {
			equation.StepOne:   "The constant is the number added or subtracted from x in the equation. Look for the number that stands ALONE without any x attached. For example, in 2x + 3 = 7, the number 3 is the constant because it's not with x.",
			equation.StepTwo:   "The coefficient is the number that is MULTIPLIED by the variable x. Look for the number directly attached to x (no space). In 2x + 3, the 2 is the coefficient because it shows we have 2 x's.",
			equation.StepThree: "To find x, you need to isolate it. First, subtract the constant from both sides. Then divide both sides by the coefficient. For example: 2x + 3 = 7 becomes 2x = 4, then x = 2.",
		},
		equation.LevelModerate: {
			equation.StepOne:   "The constant is the number added or subtracted from x.",
			equation.StepTwo:   "The coefficient is the number multiplied by x.",
			equation.StepThree: "Subtract the constant from both sides, then divide by the coefficient.",
		},
		equation.LevelHigh: {
			equation.StepOne:   "Identify the constant term.",
			equation.StepTwo:   "Identify the coefficient of x.",
			equation.StepThree: "Use inverse operations to isolate x.",
		},
	},
	equation.KindQuadratic: {
		equation.LevelLow: {
			equation.StepOne:      "Match your equation with ax² + bx + c = 0. The 'a' is the coefficient of x² (number in front of x²). The 'b' is the coefficient of x (number in front of x, don't forget negative signs!). The 'c' is the constant (number by itself).",
			equation.StepTwo:      "Take the 'a' value (coefficient of x²) and multiply it by the 'c' value (constant). This gives you the AC product. For example, if a = 2 and c = 6, then AC = 12.",
			equation.StepThree:    "Find two numbers that multiply to AC AND add to b. List factor pairs of AC. For each pair, check if they add to b. Consider positive and negative combinations.",
			equation.StepFour:     "Take the middle term (bx) and split it using your two numbers. Write the equation with four terms, then group the first two and last two terms together.",
			equation.StepFive:     "From the first group, pull out what's common (factor out). From the second group, pull out what's common. You should see the same binomial in both groups.",
			equation.StepSolution: "Set each factor equal to zero. Solve each equation separately. For example, if (x-2)(x-3)=0, then x-2=0 (x=2) and x-3=0 (x=3).",
		},
		equation.LevelModerate: {
			equation.StepOne:      "Extract coefficients a, b, c from ax² + bx + c = 0.",
			equation.StepTwo:      "Calculate the AC product.",
			equation.StepThree:    "Find two numbers that multiply to AC and add to b.",
			equation.StepFour:     "Split the middle term bx using your two numbers.",
			equation.StepFive:     "Factor by grouping.",
			equation.StepSolution: "Set each factor to zero and solve.",
		},
		equation.LevelHigh: {
			equation.StepOne:      "Find a, b, c.",
			equation.StepTwo:      "Calculate AC.",
			equation.StepThree:    "Factor pair search.",
			equation.StepFour:     "Decompose bx.",
			equation.StepFive:     "Factor by grouping.",
			equation.StepSolution: "Solve each factor.",
		},
	},
}

// Default returns the built-in hint for (kind, step, level), if any.
func Default(kind equation.Kind, step equation.StepKey, level equation.Level) (string, bool) {
	text := defaults[kind][level][step]
	return text, text != ""
}
