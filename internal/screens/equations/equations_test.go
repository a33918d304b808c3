package equations

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/algebrix/algebrix/internal/diagnostic"
	"github.com/algebrix/algebrix/internal/equation"
	"github.com/algebrix/algebrix/internal/progress"
	"github.com/algebrix/algebrix/internal/router"
	"github.com/algebrix/algebrix/internal/screens/solve"
	"github.com/algebrix/algebrix/internal/tutor"
)

func newScreen(t *testing.T, kind equation.Kind) *EquationsScreen {
	t.Helper()
	cat, err := equation.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	svc := tutor.New(cat, tutor.Options{})
	ctx := context.Background()

	info, err := svc.Login(ctx, "ada")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	answers := map[int]int{}
	for _, q := range diagnostic.Questions() {
		answers[q.ID] = q.Correct
	}
	if _, err := svc.ScoreQuiz(ctx, info.ID, answers); err != nil {
		t.Fatalf("score quiz: %v", err)
	}

	e := New(svc, info.ID, kind)
	e.Init()
	return e
}

func TestListShowsLedger(t *testing.T) {
	e := newScreen(t, equation.KindLinear)
	if len(e.list) == 0 {
		t.Fatal("expected equations")
	}
	if e.list[0].Status != progress.StatusUnlocked {
		t.Errorf("first status = %v, want unlocked", e.list[0].Status)
	}
	for _, row := range e.list[1:] {
		if row.Status != progress.StatusLocked {
			t.Errorf("equation %d should start locked", row.Index)
		}
	}

	view := e.View(100, 40)
	if !strings.Contains(view, "0/") || !strings.Contains(view, e.list[0].Expression) {
		t.Errorf("view missing ledger:\n%s", view)
	}
	if e.Title() != "Linear Equations" {
		t.Errorf("title = %q", e.Title())
	}
}

func TestOpenLockedShowsMessage(t *testing.T) {
	e := newScreen(t, equation.KindQuadratic)
	e.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if e.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", e.cursor)
	}

	_, cmd := e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("locked equation should not open")
	}
	if !strings.Contains(e.View(100, 40), "unlock") {
		t.Errorf("expected the lock message, got %q", e.errMsg)
	}
}

func TestOpenUnlockedPushesSolver(t *testing.T) {
	e := newScreen(t, equation.KindLinear)
	e.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if e.cursor != 0 {
		t.Fatalf("cursor moved above the top: %d", e.cursor)
	}

	_, cmd := e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*solve.SolveScreen); !ok {
		t.Errorf("pushed %T, want *solve.SolveScreen", push.Screen)
	}
}
