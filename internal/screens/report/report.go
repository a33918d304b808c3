// Package report renders the learner's progress overview.
package report

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/algebrix/algebrix/internal/progress"
	"github.com/algebrix/algebrix/internal/screen"
	"github.com/algebrix/algebrix/internal/ui/components"
	"github.com/algebrix/algebrix/internal/ui/theme"
)

// Reporter builds a learner's progress report.
type Reporter interface {
	Report(id string) (progress.Report, error)
}

// ReportScreen shows stats, achievements and insights.
type ReportScreen struct {
	tutor     Reporter
	sessionID string
	report    progress.Report
	errMsg    string
}

var _ screen.Screen = (*ReportScreen)(nil)

// New creates a ReportScreen.
func New(r Reporter, sessionID string) *ReportScreen {
	return &ReportScreen{tutor: r, sessionID: sessionID}
}

func (r *ReportScreen) Init() tea.Cmd {
	rep, err := r.tutor.Report(r.sessionID)
	if err != nil {
		r.errMsg = err.Error()
		return nil
	}
	r.report = rep
	return nil
}

func (r *ReportScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	return r, nil
}

func (r *ReportScreen) Title() string {
	return "Progress"
}

func (r *ReportScreen) View(width, height int) string {
	if r.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(r.errMsg))
	}

	st := r.report.Stats
	var sections []string

	sections = append(sections, strings.Join([]string{
		components.NewProgressBar("Linear   ", components.Ratio(st.LinearCompleted, st.LinearTotal), true, 50).View(),
		components.NewProgressBar("Quadratic", components.Ratio(st.QuadraticCompleted, st.QuadraticTotal), true, 50).View(),
	}, "\n"))

	stats := []string{
		fmt.Sprintf("Solved          %d / %d", st.Completed, st.Total),
		fmt.Sprintf("Accuracy        %d%%", st.Accuracy),
		fmt.Sprintf("Total attempts  %d", st.TotalAttempts),
		fmt.Sprintf("Total time      %.1fs", st.TotalTime),
		fmt.Sprintf("Avg attempts    %.1f", st.AvgAttempts),
		fmt.Sprintf("Avg time        %.1fs", st.AvgTime),
	}
	sections = append(sections, theme.Body.Render(strings.Join(stats, "\n")))

	if len(r.report.Achievements) > 0 {
		var lines []string
		lines = append(lines, theme.Selected.Render("Achievements"))
		for _, a := range r.report.Achievements {
			lines = append(lines, fmt.Sprintf("%s %s  %s", a.Icon,
				lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(a.Name),
				theme.Hint.Render(a.Description)))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(r.report.Insights) > 0 {
		var lines []string
		lines = append(lines, theme.Selected.Render("Insights"))
		for _, in := range r.report.Insights {
			lines = append(lines, "• "+in)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}
