package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/algebrix/algebrix/internal/diagnostic"
	"github.com/algebrix/algebrix/internal/equation"
	"github.com/algebrix/algebrix/internal/router"
	"github.com/algebrix/algebrix/internal/screen"
	"github.com/algebrix/algebrix/internal/screens/equations"
	"github.com/algebrix/algebrix/internal/screens/quiz"
	"github.com/algebrix/algebrix/internal/screens/report"
	"github.com/algebrix/algebrix/internal/tutor"
	"github.com/algebrix/algebrix/internal/ui/components"
	"github.com/algebrix/algebrix/internal/ui/theme"
)

// HomeScreen is the main menu once the learner is assessed.
type HomeScreen struct {
	svc       *tutor.Service
	sessionID string
	menu      components.Menu

	info    tutor.Info
	solved  map[equation.Kind]int
	totals  map[equation.Kind]int
	loadErr string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen for an assessed session.
func New(svc *tutor.Service, sessionID string) *HomeScreen {
	h := &HomeScreen{
		svc:       svc,
		sessionID: sessionID,
		solved:    make(map[equation.Kind]int),
		totals:    make(map[equation.Kind]int),
	}

	items := []components.MenuItem{
		{Label: "LINEAR EQUATIONS", Action: func() tea.Cmd {
			return router.Push(equations.New(svc, sessionID, equation.KindLinear))
		}},
		{Label: "QUADRATIC EQUATIONS", Action: func() tea.Cmd {
			return router.Push(equations.New(svc, sessionID, equation.KindQuadratic))
		}},
		{Label: "PROGRESS REPORT", Action: func() tea.Cmd {
			return router.Push(report.New(svc, sessionID))
		}},
		{Label: "RETAKE QUIZ", Action: func() tea.Cmd {
			return router.Replace(quiz.New(svc, sessionID, func(diagnostic.Result) screen.Screen {
				return New(svc, sessionID)
			}))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	h.reload()
	return nil
}

// Resume refreshes the ledger counts after a child screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.reload()
	return nil
}

func (h *HomeScreen) reload() {
	info, err := h.svc.Session(h.sessionID)
	if err != nil {
		h.loadErr = err.Error()
		return
	}
	h.info = info
	h.loadErr = ""
	for _, kind := range equation.Kinds {
		sum, err := h.svc.GetProgress(h.sessionID, kind)
		if err != nil {
			h.loadErr = err.Error()
			return
		}
		h.solved[kind] = sum.Completed
		h.totals[kind] = sum.Total
	}
	h.menu.Items[0].Detail = fmt.Sprintf("%d/%d solved", h.solved[equation.KindLinear], h.totals[equation.KindLinear])
	h.menu.Items[1].Detail = fmt.Sprintf("%d/%d solved", h.solved[equation.KindQuadratic], h.totals[equation.KindQuadratic])
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	greeting := fmt.Sprintf("Welcome, %s!", h.info.Learner)
	if h.info.Resumed {
		greeting = fmt.Sprintf("Welcome back, %s!", h.info.Learner)
	}
	sections = append(sections, theme.Title.Render(greeting))

	level := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Hint level: ") +
		theme.Equation.Render(string(h.info.Level))
	sections = append(sections, level)

	var bars []string
	for _, kind := range equation.Kinds {
		label := fmt.Sprintf("%-9s %d/%d", kindLabel(kind), h.solved[kind], h.totals[kind])
		bars = append(bars, components.NewProgressBar(label,
			components.Ratio(h.solved[kind], h.totals[kind]), false, 48).View())
	}
	sections = append(sections, strings.Join(bars, "\n"))

	sections = append(sections, theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")))

	if h.loadErr != "" {
		sections = append(sections, theme.Incorrect.Render(h.loadErr))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func kindLabel(k equation.Kind) string {
	if k == equation.KindQuadratic {
		return "Quadratic"
	}
	return "Linear"
}
