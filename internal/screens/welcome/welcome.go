package welcome

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/algebrix/algebrix/internal/router"
	"github.com/algebrix/algebrix/internal/screen"
	"github.com/algebrix/algebrix/internal/tutor"
	"github.com/algebrix/algebrix/internal/ui/components"
	"github.com/algebrix/algebrix/internal/ui/layout"
	"github.com/algebrix/algebrix/internal/ui/theme"
)

// Loginer starts learner sessions.
type Loginer interface {
	Login(ctx context.Context, name string) (tutor.Info, error)
}

type loginResultMsg struct {
	info tutor.Info
	err  error
}

// WelcomeScreen shows the banner and asks for the learner's name.
type WelcomeScreen struct {
	tutor    Loginer
	next     func(tutor.Info) screen.Screen
	input    components.TextInput
	errMsg   string
	inFlight bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. next builds the screen that replaces it once
// the learner is logged in.
func New(t Loginer, next func(tutor.Info) screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		tutor: t,
		next:  next,
		input: components.NewTextInput("Your name", false, 32),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.input.Init()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		w.inFlight = false
		if msg.err != nil {
			w.errMsg = msg.err.Error()
			return w, nil
		}
		id := msg.info.ID
		return w, tea.Batch(
			func() tea.Msg { return screen.SessionMsg{ID: id} },
			router.Replace(w.next(msg.info)),
		)

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return w, w.login()
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) login() tea.Cmd {
	if w.inFlight {
		return nil
	}
	name := strings.TrimSpace(w.input.Value())
	if name == "" {
		w.errMsg = "Please enter your name."
		return nil
	}
	w.inFlight = true
	w.errMsg = ""
	return func() tea.Msg {
		info, err := w.tutor.Login(context.Background(), name)
		return loginResultMsg{info: info, err: err}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		RenderBanner(width),
		"",
		lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Step-by-step linear and quadratic equations"),
		"",
		"What's your name?  " + w.input.View(),
	}

	if w.errMsg != "" {
		sections = append(sections, "", theme.Incorrect.Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
