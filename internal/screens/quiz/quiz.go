// Package quiz runs the diagnostic quiz that sets the learner's level.
package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/algebrix/algebrix/internal/diagnostic"
	"github.com/algebrix/algebrix/internal/router"
	"github.com/algebrix/algebrix/internal/screen"
	"github.com/algebrix/algebrix/internal/ui/components"
	"github.com/algebrix/algebrix/internal/ui/layout"
	"github.com/algebrix/algebrix/internal/ui/theme"
)

// Scorer scores a learner's quiz answers.
type Scorer interface {
	Questions() []diagnostic.Question
	ScoreQuiz(ctx context.Context, id string, answers map[int]int) (diagnostic.Result, error)
}

type scoredMsg struct {
	result diagnostic.Result
	err    error
}

// QuizScreen asks every question once, then scores the answers.
type QuizScreen struct {
	tutor     Scorer
	sessionID string
	next      func(diagnostic.Result) screen.Screen

	questions []diagnostic.Question
	current   int
	choice    components.MultiChoice
	answers   map[int]int

	result  *diagnostic.Result
	errMsg  string
	scoring bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. next builds the screen shown after the result.
func New(t Scorer, sessionID string, next func(diagnostic.Result) screen.Screen) *QuizScreen {
	q := &QuizScreen{
		tutor:     t,
		sessionID: sessionID,
		next:      next,
		questions: t.Questions(),
		answers:   make(map[int]int),
	}
	q.loadQuestion()
	return q
}

func (q *QuizScreen) loadQuestion() {
	if q.current < len(q.questions) {
		qs := q.questions[q.current]
		q.choice = components.NewMultiChoice(qs.Prompt, qs.Options)
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	return "Diagnostic Quiz"
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.result != nil {
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-4", Description: "Answer"},
		{Key: "Enter", Description: "Confirm"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoredMsg:
		q.scoring = false
		if msg.err != nil {
			q.errMsg = msg.err.Error()
			return q, nil
		}
		q.result = &msg.result
		return q, nil

	case tea.KeyPressMsg:
		if q.result != nil {
			return q, router.Replace(q.next(*q.result))
		}
		if q.scoring || q.current >= len(q.questions) {
			return q, nil
		}

		q.choice, _ = q.choice.Update(msg)
		if !q.choice.Submitted {
			return q, nil
		}
		q.answers[q.questions[q.current].ID] = q.choice.ChosenIndex
		q.current++
		if q.current < len(q.questions) {
			q.loadQuestion()
			return q, nil
		}
		return q, q.score()
	}
	return q, nil
}

func (q *QuizScreen) score() tea.Cmd {
	q.scoring = true
	answers := q.answers
	return func() tea.Msg {
		res, err := q.tutor.ScoreQuiz(context.Background(), q.sessionID, answers)
		return scoredMsg{result: res, err: err}
	}
}

func (q *QuizScreen) View(width, height int) string {
	var b strings.Builder

	switch {
	case q.errMsg != "":
		b.WriteString(theme.Incorrect.Render("Could not score the quiz: " + q.errMsg))
	case q.result != nil:
		b.WriteString(q.renderResult())
	case q.current >= len(q.questions):
		b.WriteString(theme.Hint.Render("Scoring..."))
	default:
		counter := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Question %d of %d", q.current+1, len(q.questions)))
		b.WriteString(counter)
		b.WriteString("\n\n")
		b.WriteString(q.choice.View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (q *QuizScreen) renderResult() string {
	r := q.result
	lines := []string{
		theme.Title.Render("Quiz complete"),
		"",
		fmt.Sprintf("You answered %d of %d correctly (%.0f%%).", r.Correct, r.Total, r.Percentage),
		"",
		"Your level: " + theme.Equation.Render(string(r.Level)),
		"",
		theme.Hint.Render("Hints will be tuned to this level."),
	}
	return strings.Join(lines, "\n")
}
