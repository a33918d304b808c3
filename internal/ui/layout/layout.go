package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/algebrix/algebrix/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// CompactWidth is the width below which screens drop side panels.
	CompactWidth = 100
)

// KeyHint is one binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool { return width < CompactWidth }

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage replaces the whole frame when the terminal is too small.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Align(lipgloss.Center, lipgloss.Center).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("Algebrix needs at least %d x %d.\n\nThis terminal is %d x %d.",
			MinWidth, MinHeight, width, height))
}

// RenderHeader lays out the app name on the left, the screen title centered
// and the learner with their hint level on the right. Empty learner or level
// values are left out.
func RenderHeader(title, learner, level string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Algebrix")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	var right []string
	if learner != "" {
		right = append(right, lipgloss.NewStyle().Foreground(theme.Text).Render(learner))
	}
	if level != "" {
		right = append(right, lipgloss.NewStyle().Foreground(theme.Accent).Render("level: "+level))
	}
	rightText := strings.Join(right, "   ") + "  "

	inner := max(width-2, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(rightText)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	row := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + rightText
	return theme.Bar.Width(width).Render(row)
}

// RenderFooter lists key hints in order.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return theme.Bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}
