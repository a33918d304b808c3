// Package solve walks the learner through one equation step by step.
package solve

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/algebrix/algebrix/internal/engine"
	"github.com/algebrix/algebrix/internal/explain"
	"github.com/algebrix/algebrix/internal/hints"
	"github.com/algebrix/algebrix/internal/router"
	"github.com/algebrix/algebrix/internal/screen"
	"github.com/algebrix/algebrix/internal/tutor"
	"github.com/algebrix/algebrix/internal/ui/components"
	"github.com/algebrix/algebrix/internal/ui/layout"
)

// SolveScreen drives the step engine for the open equation.
type SolveScreen struct {
	svc       *tutor.Service
	sessionID string
	opened    tutor.Opened

	step   engine.Step
	inputs []components.TextInput
	focus  int

	last      *engine.Outcome
	hint      *hints.Hint
	progress  []string
	completed bool
	errMsg    string

	explaining  bool
	explanation *explain.Explanation
	explainErr  string
}

var _ screen.Screen = (*SolveScreen)(nil)
var _ screen.KeyHintProvider = (*SolveScreen)(nil)

// New creates a SolveScreen for an equation already opened on the session.
func New(svc *tutor.Service, sessionID string, opened tutor.Opened) *SolveScreen {
	s := &SolveScreen{
		svc:       svc,
		sessionID: sessionID,
		opened:    opened,
	}
	s.setStep(opened.Step)
	return s
}

// setStep rebuilds the inputs for step, one per label.
func (s *SolveScreen) setStep(step engine.Step) {
	s.step = step
	s.inputs = make([]components.TextInput, len(step.Labels))
	for i, label := range step.Labels {
		numeric := step.Input != engine.InputText
		ti := components.NewTextInput(label, numeric, 40)
		if i > 0 {
			ti.Blur()
		}
		s.inputs[i] = ti
	}
	s.focus = 0
}

func (s *SolveScreen) Init() tea.Cmd {
	if len(s.inputs) == 0 {
		return nil
	}
	return s.inputs[0].Init()
}

func (s *SolveScreen) Title() string {
	return "Solve " + s.opened.Expression
}

func (s *SolveScreen) KeyHints() []layout.KeyHint {
	if s.completed {
		return []layout.KeyHint{{Key: "any key", Description: "Back to list"}}
	}
	h := []layout.KeyHint{{Key: "Enter", Description: "Check"}}
	if len(s.inputs) > 1 {
		h = append(h, layout.KeyHint{Key: "Tab", Description: "Next field"})
	}
	h = append(h, layout.KeyHint{Key: "?", Description: "Hint"})
	if s.svc.ExplainEnabled() {
		h = append(h, layout.KeyHint{Key: "e", Description: "Explain"})
	}
	return append(h, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *SolveScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		return s, s.handleSubmitted(msg)

	case hintMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.hint = &msg.hint
		}
		return s, nil

	case explainPollMsg:
		return s, s.consumeExplanation()

	case explainDoneMsg:
		s.explaining = false
		if msg.result.Err != nil {
			s.explainErr = msg.result.Err.Error()
			s.explanation = nil
		} else {
			s.explanation = msg.result.Explanation
			s.explainErr = ""
		}
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	return s, s.updateFocused(msg)
}

func (s *SolveScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.completed {
		return router.Pop()
	}

	switch msg.String() {
	case "enter":
		return s.submit()
	case "tab", "down":
		return s.moveFocus(1)
	case "shift+tab", "up":
		return s.moveFocus(-1)
	case "?":
		if s.focusedEmpty() {
			return s.requestHint()
		}
	case "e":
		if s.focusedEmpty() && s.svc.ExplainEnabled() {
			return s.requestExplanation()
		}
	}
	return s.updateFocused(msg)
}

func (s *SolveScreen) focusedEmpty() bool {
	return len(s.inputs) == 0 || s.inputs[s.focus].Value() == ""
}

func (s *SolveScreen) updateFocused(msg tea.Msg) tea.Cmd {
	if len(s.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd
}

func (s *SolveScreen) moveFocus(delta int) tea.Cmd {
	if len(s.inputs) < 2 {
		return nil
	}
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + len(s.inputs)) % len(s.inputs)
	return s.inputs[s.focus].Focus()
}

func (s *SolveScreen) payload() engine.Payload {
	fields := make([]string, len(s.inputs))
	for i, in := range s.inputs {
		fields[i] = in.Value()
	}
	return engine.Payload{Fields: fields}
}

func (s *SolveScreen) submit() tea.Cmd {
	p := s.payload()
	kind := s.opened.Kind
	return func() tea.Msg {
		out, err := s.svc.Submit(context.Background(), s.sessionID, kind, p)
		return submittedMsg{outcome: out, err: err}
	}
}

func (s *SolveScreen) handleSubmitted(msg submittedMsg) tea.Cmd {
	if msg.err != nil {
		s.errMsg = msg.err.Error()
		return nil
	}
	s.errMsg = ""
	out := msg.outcome
	s.last = &out
	if out.Hint != nil {
		s.hint = out.Hint
	}
	if !out.Accepted || !out.Correct {
		if len(s.inputs) > 0 {
			s.inputs[s.focus].Submit(false)
		}
		return nil
	}

	if out.ProgressText != "" {
		s.progress = append(s.progress, out.ProgressText)
	}
	s.hint = nil
	s.explanation = nil
	s.explainErr = ""

	if out.Completed {
		s.completed = true
		s.inputs = nil
		return nil
	}
	if out.NextStep != nil {
		s.setStep(*out.NextStep)
		return s.inputs[0].Init()
	}
	return nil
}

func (s *SolveScreen) requestHint() tea.Cmd {
	kind := s.opened.Kind
	return func() tea.Msg {
		h, err := s.svc.RequestHint(context.Background(), s.sessionID, kind)
		return hintMsg{hint: h, err: err}
	}
}

func (s *SolveScreen) requestExplanation() tea.Cmd {
	if s.explaining {
		return nil
	}
	if err := s.svc.RequestExplanation(context.Background(), s.sessionID, s.opened.Kind); err != nil {
		s.explainErr = err.Error()
		return nil
	}
	s.explaining = true
	s.explainErr = ""
	return pollExplanation()
}

func (s *SolveScreen) consumeExplanation() tea.Cmd {
	if !s.explaining {
		return nil
	}
	res, ok, err := s.svc.ConsumeExplanation(s.sessionID)
	if err != nil {
		s.explaining = false
		s.explainErr = err.Error()
		return nil
	}
	if !ok {
		return pollExplanation()
	}
	return func() tea.Msg { return explainDoneMsg{result: res} }
}
