package tutor

import (
	"sync"

	"github.com/algebrix/algebrix/internal/diagnostic"
	"github.com/algebrix/algebrix/internal/engine"
	"github.com/algebrix/algebrix/internal/equation"
	"github.com/algebrix/algebrix/internal/explain"
	"github.com/algebrix/algebrix/internal/progress"
)

// session is one learner's in-memory state. mu serializes every operation
// on it so concurrent requests cannot lose attempt counts or step moves.
type session struct {
	mu sync.Mutex

	id      string
	learner string

	level    equation.Level
	assessed bool
	quiz     *diagnostic.Result

	trackers map[equation.Kind]*progress.Tracker
	open     map[equation.Kind]*engine.State

	explainer *explain.Service
}

func newSession(id, learner string) *session {
	return &session{
		id:       id,
		learner:  learner,
		level:    equation.LevelLow,
		trackers: make(map[equation.Kind]*progress.Tracker),
		open:     make(map[equation.Kind]*engine.State),
	}
}

// Info is the caller-visible view of a session.
type Info struct {
	ID       string         `json:"session_id"`
	Learner  string         `json:"name"`
	Level    equation.Level `json:"level"`
	Assessed bool           `json:"assessed"`
	// Resumed is set by Login when saved progress was restored.
	Resumed bool `json:"resumed"`
}

func (s *session) info() Info {
	return Info{ID: s.id, Learner: s.learner, Level: s.level, Assessed: s.assessed}
}
