package diagnostic

import "github.com/algebrix/algebrix/internal/equation"

// Level thresholds on the quiz percentage.
const (
	HighThreshold     = 75.0
	ModerateThreshold = 50.0
)

// Result is a scored quiz.
type Result struct {
	Correct    int            `json:"correct"`
	Total      int            `json:"total"`
	Percentage float64        `json:"score"`
	Level      equation.Level `json:"level"`
}

// Score counts answers matching the key. answers maps question id to the
// selected option index; unknown ids and wrong or out-of-range options are
// not counted.
func Score(answers map[int]int) Result {
	r := Result{Total: len(questions)}
	for id, selected := range answers {
		if q, ok := Lookup(id); ok && selected == q.Correct {
			r.Correct++
		}
	}
	if r.Total > 0 {
		r.Percentage = 100 * float64(r.Correct) / float64(r.Total)
	}
	r.Level = LevelFor(r.Percentage)
	return r
}

// LevelFor maps a percentage to a performance level.
func LevelFor(pct float64) equation.Level {
	switch {
	case pct >= HighThreshold:
		return equation.LevelHigh
	case pct >= ModerateThreshold:
		return equation.LevelModerate
	default:
		return equation.LevelLow
	}
}
