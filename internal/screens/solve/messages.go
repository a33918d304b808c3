package solve

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/algebrix/algebrix/internal/engine"
	"github.com/algebrix/algebrix/internal/explain"
	"github.com/algebrix/algebrix/internal/hints"
)

const explainPollInterval = 250 * time.Millisecond

type submittedMsg struct {
	outcome engine.Outcome
	err     error
}

type hintMsg struct {
	hint hints.Hint
	err  error
}

type explainPollMsg struct{}

type explainDoneMsg struct {
	result explain.Result
}

func pollExplanation() tea.Cmd {
	return tea.Tick(explainPollInterval, func(time.Time) tea.Msg {
		return explainPollMsg{}
	})
}
