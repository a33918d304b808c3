package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/algebrix/algebrix/internal/diagnostic"
	"github.com/algebrix/algebrix/internal/router"
	"github.com/algebrix/algebrix/internal/screen"
	"github.com/algebrix/algebrix/internal/screens/home"
	"github.com/algebrix/algebrix/internal/screens/quiz"
	"github.com/algebrix/algebrix/internal/screens/welcome"
	"github.com/algebrix/algebrix/internal/tutor"
	"github.com/algebrix/algebrix/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc       *tutor.Service
	router    *router.Router
	sessionID string
	width     int
	height    int
}

// newAppModel creates a new AppModel starting at the login screen.
func newAppModel(svc *tutor.Service) AppModel {
	return AppModel{
		svc:    svc,
		router: router.New(welcome.New(svc, afterLogin(svc))),
	}
}

// afterLogin sends unassessed learners to the quiz and everyone else home.
func afterLogin(svc *tutor.Service) func(tutor.Info) screen.Screen {
	return func(info tutor.Info) screen.Screen {
		if info.Assessed {
			return home.New(svc, info.ID)
		}
		return quiz.New(svc, info.ID, func(diagnostic.Result) screen.Screen {
			return home.New(svc, info.ID)
		})
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.SessionMsg:
		m.sessionID = msg.ID
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) quit() tea.Cmd {
	if m.sessionID != "" {
		m.svc.Logout(m.sessionID)
	}
	return tea.Quit
}

func (m AppModel) header(title string) string {
	var learner, level string
	if m.sessionID != "" {
		if info, err := m.svc.Session(m.sessionID); err == nil {
			learner = info.Learner
			if info.Assessed {
				level = string(info.Level)
			}
		}
	}
	return layout.RenderHeader(title, learner, level, m.width)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := m.header(title)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program on the tutor service.
func Run(svc *tutor.Service) error {
	p := tea.NewProgram(newAppModel(svc))
	_, err := p.Run()
	return err
}
