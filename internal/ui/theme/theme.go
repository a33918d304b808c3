package theme

import "charm.land/lipgloss/v2"

// Chalkboard palette.
var (
	Primary   = lipgloss.Color("#38BDF8") // sky
	Secondary = lipgloss.Color("#34D399") // mint
	Accent    = lipgloss.Color("#FBBF24") // chalk yellow
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1C2B26") // board green
	Border    = lipgloss.Color("#3F5A50")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)

	Body = lipgloss.NewStyle().Foreground(Text)

	// Hint is used for hint text and other secondary guidance.
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	// Equation renders an expression or a value the learner typed.
	Equation = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	// Bar frames the header and footer rows.
	Bar = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
)

var (
	Selected  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Locked    = lipgloss.NewStyle().Foreground(Border)

	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)
)
