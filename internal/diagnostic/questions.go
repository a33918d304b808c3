package diagnostic

import "github.com/algebrix/algebrix/internal/equation"

// Difficulty tags a quiz question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is one multiple-choice diagnostic question. The answer index is
// never serialized.
type Question struct {
	ID         int           `json:"id"`
	Prompt     string        `json:"question"`
	Options    []string      `json:"options"`
	Correct    int           `json:"-"`
	Difficulty Difficulty    `json:"difficulty"`
	Kind       equation.Kind `json:"type"`
}

var questions = []Question{
	{
		ID:         1,
		Prompt:     "Solve: x + 5 = 12",
		Options:    []string{"x = 7", "x = 17", "x = 5", "x = 12"},
		Correct:    0,
		Difficulty: DifficultyEasy,
		Kind:       equation.KindLinear,
	},
	{
		ID:         2,
		Prompt:     "What is the coefficient in 3x + 2 = 11?",
		Options:    []string{"3", "2", "11", "x"},
		Correct:    0,
		Difficulty: DifficultyEasy,
		Kind:       equation.KindLinear,
	},
	{
		ID:         3,
		Prompt:     "Solve: 2x - 4 = 10",
		Options:    []string{"x = 7", "x = 3", "x = 5", "x = 2"},
		Correct:    0,
		Difficulty: DifficultyMedium,
		Kind:       equation.KindLinear,
	},
	{
		ID:         4,
		Prompt:     "What is the general form of a quadratic equation?",
		Options:    []string{"ax² + bx + c = 0", "ax + b = 0", "x + y = 0", "2x² = 4"},
		Correct:    0,
		Difficulty: DifficultyEasy,
		Kind:       equation.KindQuadratic,
	},
	{
		ID:         5,
		Prompt:     "For x² - 5x + 6 = 0, what are a, b, c?",
		Options:    []string{"a=1, b=-5, c=6", "a=1, b=5, c=6", "a=2, b=-5, c=3", "a=-1, b=5, c=-6"},
		Correct:    0,
		Difficulty: DifficultyMedium,
		Kind:       equation.KindQuadratic,
	},
	{
		ID:         6,
		Prompt:     "What is the AC product for x² + 7x + 12 = 0?",
		Options:    []string{"12", "7", "84", "19"},
		Correct:    0, // a·c = 1·12
		Difficulty: DifficultyHard,
		Kind:       equation.KindQuadratic,
	},
	{
		ID:         7,
		Prompt:     "Solve: x² - 4 = 0",
		Options:    []string{"x = 2 or x = -2", "x = 4", "x = 2", "No solution"},
		Correct:    0,
		Difficulty: DifficultyMedium,
		Kind:       equation.KindQuadratic,
	},
}

// Questions returns a copy of the fixed diagnostic quiz.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Lookup returns the question with id.
func Lookup(id int) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
