package progress

import (
	"fmt"
	"math"
)

// SpeedSolverSeconds is the completion time under which an equation earns
// the Speed Solver achievement.
const SpeedSolverSeconds = 30

// Stats aggregates both ledgers.
type Stats struct {
	Completed          int     `json:"completed"`
	Total              int     `json:"total"`
	LinearCompleted    int     `json:"linear_completed"`
	LinearTotal        int     `json:"linear_total"`
	QuadraticCompleted int     `json:"quadratic_completed"`
	QuadraticTotal     int     `json:"quadratic_total"`
	TotalAttempts      int     `json:"total_attempts"`
	TotalTime          float64 `json:"total_time"`
	AvgAttempts        float64 `json:"avg_attempts"`
	AvgTime            float64 `json:"avg_time"`
	Accuracy           int     `json:"accuracy"`
}

// Series is chart data for the completed equations of one kind.
type Series struct {
	Names    []string  `json:"names"`
	Attempts []int     `json:"attempts"`
	Times    []float64 `json:"times"`
}

// Achievement is a badge earned from the ledgers.
type Achievement struct {
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Report is the learner-facing progress overview.
type Report struct {
	StudentName  string            `json:"student_name"`
	Stats        Stats             `json:"stats"`
	Charts       map[string]Series `json:"charts"`
	Achievements []Achievement     `json:"achievements"`
	Insights     []string          `json:"insights"`
}

// BuildReport derives stats, chart series, achievements and insights from
// the linear and quadratic ledgers.
func BuildReport(name string, linear, quadratic Summary) Report {
	st := Stats{
		LinearCompleted:    linear.Completed,
		LinearTotal:        linear.Total,
		QuadraticCompleted: quadratic.Completed,
		QuadraticTotal:     quadratic.Total,
	}
	st.Completed = linear.Completed + quadratic.Completed
	st.Total = linear.Total + quadratic.Total
	st.TotalAttempts = linear.Attempts + quadratic.Attempts
	totalTime := linear.Time + quadratic.Time
	st.TotalTime = round1(totalTime)
	if st.Completed > 0 {
		st.AvgAttempts = round1(float64(st.TotalAttempts) / float64(st.Completed))
		st.AvgTime = round1(totalTime / float64(st.Completed))
	}
	if st.Total > 0 {
		st.Accuracy = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}

	all := append(append([]EntrySummary{}, linear.Entries...), quadratic.Entries...)

	return Report{
		StudentName: name,
		Stats:       st,
		Charts: map[string]Series{
			"linear":    series("L", linear),
			"quadratic": series("Q", quadratic),
		},
		Achievements: achievements(st, all),
		Insights:     insights(st, linear, quadratic, all),
	}
}

func series(prefix string, s Summary) Series {
	out := Series{Names: []string{}, Attempts: []int{}, Times: []float64{}}
	for i, e := range s.Entries {
		if e.Status != StatusCompleted {
			continue
		}
		out.Names = append(out.Names, fmt.Sprintf("%s%d", prefix, i+1))
		out.Attempts = append(out.Attempts, e.Attempts)
		out.Times = append(out.Times, e.Time)
	}
	return out
}

func achievements(st Stats, all []EntrySummary) []Achievement {
	var speed, perfect bool
	for _, e := range all {
		if e.Status != StatusCompleted {
			continue
		}
		if e.Time > 0 && e.Time < SpeedSolverSeconds {
			speed = true
		}
		if e.Attempts == 1 {
			perfect = true
		}
	}

	out := []Achievement{}
	if speed {
		out = append(out, Achievement{"⚡", "Speed Solver", "Solved an equation in under 30 seconds!"})
	}
	if perfect {
		out = append(out, Achievement{"🎯", "Perfect Score", "Solved an equation on the first try!"})
	}
	if st.LinearTotal > 0 && st.LinearCompleted == st.LinearTotal {
		out = append(out, Achievement{"📐", "Linear Master", "Completed all linear equations!"})
	}
	if st.QuadraticTotal > 0 && st.QuadraticCompleted == st.QuadraticTotal {
		out = append(out, Achievement{"📊", "Quadratic Champion", "Completed all quadratic equations!"})
	}
	if st.Total > 0 && st.Completed == st.Total {
		out = append(out, Achievement{"🏆", "Algebra Expert", "Mastered both linear and quadratic equations!"})
	}
	return out
}

func insights(st Stats, linear, quadratic Summary, all []EntrySummary) []string {
	out := []string{}

	if st.Completed >= 2 {
		var times []float64
		for _, e := range all {
			if e.Status == StatusCompleted && e.Time > 0 {
				times = append(times, e.Time)
			}
		}
		if len(times) >= 2 {
			half := len(times) / 2
			first := mean(times[:half])
			second := mean(times[half:])
			if second < first {
				improvement := math.Round((first - second) / first * 100)
				out = append(out, fmt.Sprintf("📈 You're getting faster! Your solving time improved by %d%%", int(improvement)))
			}
		}
	}

	if linear.Completed > 0 && quadratic.Completed > 0 {
		linAvg := linear.Time / float64(linear.Completed)
		quadAvg := quadratic.Time / float64(quadratic.Completed)
		if linAvg < quadAvg {
			out = append(out, "💡 Linear equations are your strength! You solve them faster than quadratic ones.")
		} else {
			out = append(out, "💡 You're excelling at quadratic equations!")
		}
	}

	if st.Completed > 0 {
		out = append(out, fmt.Sprintf("✨ Great progress! You've completed %d out of %d equations", st.Completed, st.Total))
	}
	return out
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
