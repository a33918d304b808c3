// Package equations lists the catalog of one kind with the learner's ledger.
package equations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/algebrix/algebrix/internal/equation"
	"github.com/algebrix/algebrix/internal/progress"
	"github.com/algebrix/algebrix/internal/router"
	"github.com/algebrix/algebrix/internal/screen"
	"github.com/algebrix/algebrix/internal/screens/solve"
	"github.com/algebrix/algebrix/internal/tutor"
	"github.com/algebrix/algebrix/internal/ui/components"
	"github.com/algebrix/algebrix/internal/ui/layout"
	"github.com/algebrix/algebrix/internal/ui/theme"
)

// EquationsScreen shows every equation of one kind and opens the selected
// one.
type EquationsScreen struct {
	svc       *tutor.Service
	sessionID string
	kind      equation.Kind

	list   []tutor.EquationInfo
	cursor int
	errMsg string
}

var _ screen.Screen = (*EquationsScreen)(nil)
var _ screen.KeyHintProvider = (*EquationsScreen)(nil)
var _ screen.Resumer = (*EquationsScreen)(nil)

// New creates an EquationsScreen.
func New(svc *tutor.Service, sessionID string, kind equation.Kind) *EquationsScreen {
	return &EquationsScreen{svc: svc, sessionID: sessionID, kind: kind}
}

func (e *EquationsScreen) Init() tea.Cmd {
	e.reload()
	return nil
}

// Resume refreshes the ledger after a solve screen closes.
func (e *EquationsScreen) Resume() tea.Cmd {
	e.reload()
	return nil
}

func (e *EquationsScreen) reload() {
	list, err := e.svc.Equations(e.sessionID, e.kind)
	if err != nil {
		e.errMsg = err.Error()
		return
	}
	e.list = list
	e.errMsg = ""
	if e.cursor >= len(list) {
		e.cursor = 0
	}
}

func (e *EquationsScreen) Title() string {
	if e.kind == equation.KindQuadratic {
		return "Quadratic Equations"
	}
	return "Linear Equations"
}

func (e *EquationsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Solve"},
		{Key: "Esc", Description: "Back"},
	}
}

func (e *EquationsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return e, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < len(e.list)-1 {
			e.cursor++
		}
	case "enter":
		return e, e.open()
	}
	return e, nil
}

func (e *EquationsScreen) open() tea.Cmd {
	if e.cursor >= len(e.list) {
		return nil
	}
	opened, err := e.svc.OpenEquation(context.Background(), e.sessionID, e.kind, e.list[e.cursor].Index)
	if err != nil {
		if errors.Is(err, tutor.ErrLocked) {
			e.errMsg = "Solve the previous equation to unlock this one."
		} else {
			e.errMsg = err.Error()
		}
		return nil
	}
	e.errMsg = ""
	return router.Push(solve.New(e.svc, e.sessionID, opened))
}

func statusIcon(s progress.Status) string {
	switch s {
	case progress.StatusCompleted:
		return theme.Correct.Render("✓")
	case progress.StatusUnlocked:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render("○")
	default:
		return theme.Locked.Render("·")
	}
}

func (e *EquationsScreen) View(width, height int) string {
	var b strings.Builder

	completed := 0
	for _, row := range e.list {
		if row.Status == progress.StatusCompleted {
			completed++
		}
	}
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d solved", completed, len(e.list)),
		components.Ratio(completed, len(e.list)), true, 50)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	for i, row := range e.list {
		prefix := "  "
		if i == e.cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s  %2d.  %-28s", prefix, statusIcon(row.Status), row.Index+1, row.Expression)
		if row.Status == progress.StatusCompleted {
			line += fmt.Sprintf("  %d attempts  %.1fs", row.Attempts, row.Time)
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == e.cursor:
			style = theme.Selected
		case row.Status == progress.StatusLocked:
			style = theme.Locked
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if e.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(e.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}
