package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/algebrix/algebrix/internal/ui/theme"
)

// ProgressBar is a labelled horizontal bar. Width covers the label, the bar
// and the optional percentage.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// Ratio returns done/total clamped to [0, 1]; zero when total is zero.
func Ratio(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return min(float64(done)/float64(total), 1)
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

const minBarWidth = 4

func (p ProgressBar) View() string {
	var label, suffix string
	if p.Label != "" {
		label = theme.Body.Render(p.Label) + "  "
	}
	if p.ShowPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", int(p.Percent*100)))
	}

	bar := max(p.Width-lipgloss.Width(label)-lipgloss.Width(suffix), minBarWidth)
	filled := min(max(int(float64(bar)*p.Percent), 0), bar)

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", bar-filled)) +
		suffix
}
