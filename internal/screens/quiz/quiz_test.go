package quiz

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/algebrix/algebrix/internal/diagnostic"
	"github.com/algebrix/algebrix/internal/router"
	"github.com/algebrix/algebrix/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

type recordingScorer struct {
	answers map[int]int
}

func (r *recordingScorer) Questions() []diagnostic.Question {
	return diagnostic.Questions()
}

func (r *recordingScorer) ScoreQuiz(_ context.Context, _ string, answers map[int]int) (diagnostic.Result, error) {
	r.answers = answers
	return diagnostic.Score(answers), nil
}

func TestQuizAnswersEveryQuestion(t *testing.T) {
	scorer := &recordingScorer{}
	var got diagnostic.Result
	q := New(scorer, "sess", func(r diagnostic.Result) screen.Screen {
		got = r
		return &stubScreen{}
	})

	questions := diagnostic.Questions()
	var cmd tea.Cmd
	for i := range questions {
		if !strings.Contains(q.View(100, 30), questions[i].Prompt) {
			t.Fatalf("question %d not shown", i+1)
		}
		// Always pick option A.
		_, cmd = q.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	}
	if cmd == nil {
		t.Fatal("expected scoring after the last answer")
	}

	_, _ = q.Update(cmd())
	if len(scorer.answers) != len(questions) {
		t.Fatalf("scored %d answers, want %d", len(scorer.answers), len(questions))
	}
	for id, choice := range scorer.answers {
		if choice != 0 {
			t.Errorf("answer for %d = %d, want 0", id, choice)
		}
	}
	if !strings.Contains(q.View(100, 30), "Your level") {
		t.Error("expected the result to be shown")
	}

	_, cmd = q.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected navigation after the result")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg")
	}
	if got.Total != len(questions) {
		t.Errorf("next factory got %+v", got)
	}
}
