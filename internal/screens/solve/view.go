package solve

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/algebrix/algebrix/internal/ui/components"
	"github.com/algebrix/algebrix/internal/ui/layout"
	"github.com/algebrix/algebrix/internal/ui/theme"
)

func (s *SolveScreen) View(width, height int) string {
	cw := width - 8
	if cw > 90 {
		cw = 90
	}

	var sections []string
	sections = append(sections, s.renderHeader(cw))

	if len(s.progress) > 0 {
		var lines []string
		for _, p := range s.progress {
			lines = append(lines, theme.Hint.Render(p))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if s.completed {
		sections = append(sections, s.renderCompleted())
	} else {
		sections = append(sections, s.renderStep())
	}

	if fb := s.renderFeedback(); fb != "" {
		sections = append(sections, fb)
	}
	if s.hint != nil {
		sections = append(sections, renderHint(s.hint.Text, cw))
	}
	if ex := s.renderExplanation(cw); ex != "" {
		sections = append(sections, ex)
	}
	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (s *SolveScreen) renderHeader(cw int) string {
	eq := theme.Equation.Render(s.opened.Expression)
	total := len(s.opened.Steps)
	done := s.step.Number - 1
	if s.completed {
		done = total
	}
	compact := layout.IsCompactWidth(cw + 8)
	barWidth := 40
	if compact {
		barWidth = 24
	}
	bar := components.NewProgressBar(fmt.Sprintf("Step %d/%d", min(done+1, total), total),
		components.Ratio(done, total), !compact, barWidth)
	return eq + "\n\n" + bar.View()
}

func (s *SolveScreen) renderStep() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.step.Instruction))
	b.WriteString("\n\n")
	for i, in := range s.inputs {
		label := s.step.Labels[i]
		marker := "  "
		if i == s.focus {
			marker = "▸ "
		}
		b.WriteString(fmt.Sprintf("%s%-18s %s\n", marker, label+":", in.View()))
	}
	return b.String()
}

func (s *SolveScreen) renderCompleted() string {
	msg := "Equation solved!"
	if s.last != nil {
		if s.last.Replay {
			msg = "Solved again! Your recorded result is unchanged."
		} else if s.last.Elapsed > 0 {
			msg = fmt.Sprintf("Equation solved in %.1f seconds!", s.last.Elapsed)
		}
	}
	return theme.Correct.Render(msg)
}

func (s *SolveScreen) renderFeedback() string {
	if s.last == nil || s.completed {
		return ""
	}
	out := s.last
	style := theme.Incorrect
	if out.Accepted && out.Correct {
		style = theme.Correct
	}
	text := style.Render(out.Message)
	if out.Nudge != "" {
		text += "\n" + theme.Hint.Render(out.Nudge)
	}
	return text
}

func renderHint(text string, cw int) string {
	return theme.Card.
		Width(cw).
		BorderForeground(theme.Accent).
		Render(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Hint") + "\n" + text)
}

func (s *SolveScreen) renderExplanation(cw int) string {
	switch {
	case s.explaining:
		return theme.Hint.Render("Writing an explanation...")
	case s.explainErr != "":
		return theme.Incorrect.Render("Explanation unavailable: " + s.explainErr)
	case s.explanation == nil:
		return ""
	}

	ex := s.explanation
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(ex.Title))
	b.WriteString("\n")
	b.WriteString(ex.Explanation)
	for i, step := range ex.WorkedSteps {
		b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
	}
	return theme.Card.
		Width(cw).
		BorderForeground(theme.Secondary).
		Render(b.String())
}
