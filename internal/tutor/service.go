// Package tutor ties the catalog, step engine, progress ledgers and
// diagnostic quiz into per-learner sessions.
package tutor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/algebrix/algebrix/internal/diagnostic"
	"github.com/algebrix/algebrix/internal/engine"
	"github.com/algebrix/algebrix/internal/equation"
	"github.com/algebrix/algebrix/internal/explain"
	"github.com/algebrix/algebrix/internal/hints"
	"github.com/algebrix/algebrix/internal/llm"
	"github.com/algebrix/algebrix/internal/progress"
	"github.com/algebrix/algebrix/internal/store"
)

// snapshotsKept is how many snapshots per learner survive a save.
const snapshotsKept = 5

// Options configures a Service. Zero values select the defaults.
type Options struct {
	HintThreshold int
	RootTolerance *float64
	// Resume restores the latest snapshot on Login.
	Resume bool
	Clock  func() time.Time

	Events    store.EventRepo
	Snapshots store.SnapshotRepo
	Observer  Observer
	Logger    *zap.Logger

	// Provider enables explanations. Nil disables them.
	Provider      llm.Provider
	ExplainConfig explain.Config
}

// Service is safe for concurrent use. Operations on one session are
// serialized; different sessions proceed independently.
type Service struct {
	catalog  *equation.Catalog
	engine   *engine.Engine
	resume   bool
	events   store.EventRepo
	snaps    store.SnapshotRepo
	observer Observer
	logger   *zap.Logger

	provider   llm.Provider
	explainCfg explain.Config

	mu       sync.RWMutex
	sessions map[string]*session
}

// New creates a Service over catalog.
func New(catalog *equation.Catalog, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	engineOpts := []engine.Option{engine.WithHintThreshold(opts.HintThreshold)}
	if opts.RootTolerance != nil {
		engineOpts = append(engineOpts, engine.WithTolerance(*opts.RootTolerance))
	}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, engine.WithClock(opts.Clock))
	}

	explainCfg := opts.ExplainConfig
	if explainCfg.MaxTokens == 0 {
		explainCfg = explain.DefaultConfig()
	}

	return &Service{
		catalog:    catalog,
		engine:     engine.New(hints.New(logger.Named("hints")), engineOpts...),
		resume:     opts.Resume,
		events:     opts.Events,
		snaps:      opts.Snapshots,
		observer:   observer,
		logger:     logger.Named("tutor"),
		provider:   opts.Provider,
		explainCfg: explainCfg,
		sessions:   make(map[string]*session),
	}
}

// Catalog returns the equation catalog the service serves.
func (s *Service) Catalog() *equation.Catalog {
	return s.catalog
}

// ExplainEnabled reports whether an LLM provider is configured.
func (s *Service) ExplainEnabled() bool {
	return s.provider != nil
}

// Login starts a session for name. With resume enabled, the learner's latest
// snapshot restores the performance level and both ledgers. Open equations
// always start fresh.
func (s *Service) Login(ctx context.Context, name string) (Info, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Info{}, ErrBlankName
	}

	sess := newSession(uuid.NewString(), name)
	if s.provider != nil {
		sess.explainer = explain.NewService(s.provider, s.explainCfg, s.logger)
	}

	resumed := s.resume && s.restore(ctx, sess)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("learner logged in",
		zap.String("learner", name),
		zap.String("session", sess.id),
		zap.Bool("resumed", resumed))

	info := sess.info()
	info.Resumed = resumed
	return info, nil
}

// restore loads the latest snapshot into sess. A snapshot that no longer
// fits the catalog is ignored.
func (s *Service) restore(ctx context.Context, sess *session) bool {
	if s.snaps == nil {
		return false
	}
	snap, err := s.snaps.Latest(ctx, sess.learner)
	if err != nil {
		s.logger.Warn("failed to load snapshot", zap.String("learner", sess.learner), zap.Error(err))
		return false
	}
	if snap == nil || snap.Data.Version != store.SnapshotVersion || !snap.Data.Assessed {
		return false
	}

	level, err := equation.ParseLevel(snap.Data.Level)
	if err != nil {
		s.logger.Warn("discarding snapshot", zap.String("learner", sess.learner), zap.Error(err))
		return false
	}

	trackers := make(map[equation.Kind]*progress.Tracker, len(equation.Kinds))
	for _, kind := range equation.Kinds {
		entries := snap.Data.Progress[string(kind)]
		if len(entries) != s.catalog.Len(kind) {
			s.logger.Warn("discarding snapshot: catalog size changed",
				zap.String("learner", sess.learner),
				zap.String("kind", string(kind)),
				zap.Int("saved", len(entries)),
				zap.Int("catalog", s.catalog.Len(kind)))
			return false
		}
		t, err := progress.Restore(entries)
		if err != nil {
			s.logger.Warn("discarding snapshot", zap.String("learner", sess.learner), zap.Error(err))
			return false
		}
		trackers[kind] = t
	}

	sess.level = level
	sess.assessed = true
	sess.trackers = trackers
	return true
}

// Logout drops the session.
func (s *Service) Logout(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Session returns the session's current view.
func (s *Service) Session(id string) (Info, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Info{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.info(), nil
}

func (s *Service) lookup(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownSession
	}
	return sess, nil
}

// withSession runs fn under the session lock.
func (s *Service) withSession(id string, fn func(*session) error) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

// withAssessed is withSession for operations that need a scored quiz.
func (s *Service) withAssessed(id string, fn func(*session) error) error {
	return s.withSession(id, func(sess *session) error {
		if !sess.assessed {
			return ErrNotAssessed
		}
		return fn(sess)
	})
}

// Questions returns the diagnostic quiz.
func (s *Service) Questions() []diagnostic.Question {
	return diagnostic.Questions()
}

// ScoreQuiz scores answers, sets the performance level, and resets both
// progress ledgers and any open equations.
func (s *Service) ScoreQuiz(ctx context.Context, id string, answers map[int]int) (diagnostic.Result, error) {
	var res diagnostic.Result
	err := s.withSession(id, func(sess *session) error {
		res = diagnostic.Score(answers)
		sess.level = res.Level
		sess.assessed = true
		sess.quiz = &res
		for _, kind := range equation.Kinds {
			sess.trackers[kind] = progress.New(s.catalog.Len(kind))
		}
		clear(sess.open)

		s.observer.ObserveQuiz(string(res.Level))
		s.appendEvent(ctx, "quiz", func(r store.EventRepo) error {
			return r.AppendQuiz(ctx, store.QuizEventData{
				Learner:    sess.learner,
				SessionID:  sess.id,
				Correct:    res.Correct,
				Total:      res.Total,
				Percentage: res.Percentage,
				Level:      string(res.Level),
			})
		})
		s.saveSnapshot(ctx, sess)
		return nil
	})
	return res, err
}

// Opened describes a freshly opened equation.
type Opened struct {
	Kind       equation.Kind   `json:"kind"`
	Index      int             `json:"equation_id"`
	Expression string          `json:"equation"`
	Step       engine.Step     `json:"step"`
	Steps      []engine.Step   `json:"steps"`
	Status     progress.Status `json:"status"`
}

// OpenEquation resets the engine state for kind to equation index and starts
// its clock. Completed equations may be reopened for practice.
func (s *Service) OpenEquation(ctx context.Context, id string, kind equation.Kind, index int) (Opened, error) {
	var out Opened
	err := s.withAssessed(id, func(sess *session) error {
		rec, err := s.catalog.Get(kind, index)
		if err != nil {
			return err
		}
		entry, err := sess.trackers[kind].Entry(index)
		if err != nil {
			return err
		}
		if entry.Status == progress.StatusLocked {
			return fmt.Errorf("%w: %s #%d", ErrLocked, kind, index+1)
		}

		st := s.engine.Open(rec, index)
		sess.open[kind] = st

		out = Opened{
			Kind:       kind,
			Index:      index,
			Expression: rec.Expression,
			Step:       st.Current(),
			Steps:      engine.Steps(kind),
			Status:     entry.Status,
		}
		return nil
	})
	return out, err
}

// Submit validates one submission against the open equation of kind.
func (s *Service) Submit(ctx context.Context, id string, kind equation.Kind, p engine.Payload) (engine.Outcome, error) {
	var out engine.Outcome
	err := s.withAssessed(id, func(sess *session) error {
		st, ok := sess.open[kind]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNoOpenEquation, kind)
		}
		rec, err := s.catalog.Get(kind, st.Index)
		if err != nil {
			return err
		}

		step := st.Current()
		out, err = s.engine.Submit(rec, st, sess.level, p, sess.trackers[kind])
		if err != nil {
			return err
		}

		if !out.Accepted {
			s.observer.ObserveSubmission(string(kind), resultInvalid)
			return nil
		}

		result := resultIncorrect
		if out.Correct {
			result = resultCorrect
		}
		s.observer.ObserveSubmission(string(kind), result)
		s.appendEvent(ctx, "attempt", func(r store.EventRepo) error {
			return r.AppendAttempt(ctx, store.AttemptEventData{
				Learner:   sess.learner,
				SessionID: sess.id,
				Kind:      string(kind),
				Index:     st.Index,
				Step:      step.Number,
				Level:     string(sess.level),
				Correct:   out.Correct,
				Answer:    strings.Join(p.Fields, ", "),
			})
		})

		if out.Hint != nil {
			s.recordHint(ctx, sess, kind, st.Index, step.Number, *out.Hint)
		}

		if out.Completed {
			if !out.Replay {
				s.observer.ObserveCompletion(string(kind))
			}
			s.appendEvent(ctx, "completion", func(r store.EventRepo) error {
				return r.AppendCompletion(ctx, store.CompletionEventData{
					Learner:   sess.learner,
					SessionID: sess.id,
					Kind:      string(kind),
					Index:     st.Index,
					Elapsed:   out.Elapsed,
					Replay:    out.Replay,
				})
			})
			s.logger.Info("equation completed",
				zap.String("learner", sess.learner),
				zap.String("kind", string(kind)),
				zap.Int("index", st.Index),
				zap.Float64("elapsed", out.Elapsed),
				zap.Bool("replay", out.Replay))
			if !out.Replay {
				s.saveSnapshot(ctx, sess)
			}
		}
		return nil
	})
	return out, err
}

// RequestHint resolves the hint for the current step of the open equation
// without counting an attempt.
func (s *Service) RequestHint(ctx context.Context, id string, kind equation.Kind) (hints.Hint, error) {
	var h hints.Hint
	err := s.withAssessed(id, func(sess *session) error {
		st, ok := sess.open[kind]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNoOpenEquation, kind)
		}
		rec, err := s.catalog.Get(kind, st.Index)
		if err != nil {
			return err
		}
		h = s.engine.Hint(rec, st, sess.level)
		s.recordHint(ctx, sess, kind, st.Index, st.Current().Number, h)
		return nil
	})
	return h, err
}

func (s *Service) recordHint(ctx context.Context, sess *session, kind equation.Kind, index, step int, h hints.Hint) {
	s.observer.ObserveHint(string(kind), string(h.Source))
	s.appendEvent(ctx, "hint", func(r store.EventRepo) error {
		return r.AppendHint(ctx, store.HintEventData{
			Learner:   sess.learner,
			SessionID: sess.id,
			Kind:      string(kind),
			Index:     index,
			Step:      step,
			Level:     string(sess.level),
			Source:    string(h.Source),
			Text:      h.Text,
		})
	})
}

// Current returns the open equation state for kind.
func (s *Service) Current(id string, kind equation.Kind) (engine.State, error) {
	var st engine.State
	err := s.withAssessed(id, func(sess *session) error {
		open, ok := sess.open[kind]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNoOpenEquation, kind)
		}
		st = *open
		return nil
	})
	return st, err
}

// GetProgress returns the ledger summary for kind.
func (s *Service) GetProgress(id string, kind equation.Kind) (progress.Summary, error) {
	var sum progress.Summary
	err := s.withAssessed(id, func(sess *session) error {
		t, ok := sess.trackers[kind]
		if !ok {
			return fmt.Errorf("%w: %q", equation.ErrNotFound, kind)
		}
		sum = t.Summary()
		return nil
	})
	return sum, err
}

// EquationInfo is one row of the equation list.
type EquationInfo struct {
	Index      int             `json:"id"`
	Expression string          `json:"equation"`
	Status     progress.Status `json:"status"`
	Attempts   int             `json:"attempts"`
	Time       float64         `json:"time"`
}

// Equations lists the catalog for kind with the session's ledger.
func (s *Service) Equations(id string, kind equation.Kind) ([]EquationInfo, error) {
	var out []EquationInfo
	err := s.withAssessed(id, func(sess *session) error {
		t := sess.trackers[kind]
		for i, rec := range s.catalog.Equations(kind) {
			e, err := t.Entry(i)
			if err != nil {
				return err
			}
			out = append(out, EquationInfo{
				Index:      i,
				Expression: rec.Expression,
				Status:     e.Status,
				Attempts:   e.Attempts,
				Time:       e.Time,
			})
		}
		return nil
	})
	return out, err
}

// Graph samples the equation at index for plotting.
func (s *Service) Graph(kind equation.Kind, index int) (equation.GraphData, error) {
	rec, err := s.catalog.Get(kind, index)
	if err != nil {
		return equation.GraphData{}, err
	}
	return equation.Graph(rec), nil
}

// Report builds the progress overview across both kinds.
func (s *Service) Report(id string) (progress.Report, error) {
	var rep progress.Report
	err := s.withAssessed(id, func(sess *session) error {
		rep = progress.BuildReport(sess.learner,
			sess.trackers[equation.KindLinear].Summary(),
			sess.trackers[equation.KindQuadratic].Summary())
		return nil
	})
	return rep, err
}

func (s *Service) explainInput(sess *session, kind equation.Kind) (explain.Input, error) {
	st, ok := sess.open[kind]
	if !ok {
		return explain.Input{}, fmt.Errorf("%w: %s", ErrNoOpenEquation, kind)
	}
	rec, err := s.catalog.Get(kind, st.Index)
	if err != nil {
		return explain.Input{}, err
	}
	return explain.Input{
		Kind:       kind,
		Index:      st.Index,
		Expression: rec.Expression,
		Step:       st.Current(),
		Level:      sess.level,
		Attempts:   st.StepAttempts,
	}, nil
}

// Explain generates an explanation of the current step and waits for it.
func (s *Service) Explain(ctx context.Context, id string, kind equation.Kind) (*explain.Explanation, error) {
	var (
		in  explain.Input
		svc *explain.Service
	)
	err := s.withAssessed(id, func(sess *session) error {
		if sess.explainer == nil {
			return ErrExplainUnavailable
		}
		var err error
		in, err = s.explainInput(sess, kind)
		svc = sess.explainer
		return err
	})
	if err != nil {
		return nil, err
	}
	// The LLM call runs outside the session lock.
	return svc.Generate(ctx, in)
}

// RequestExplanation starts generating an explanation in the background.
// Collect it with ConsumeExplanation.
func (s *Service) RequestExplanation(ctx context.Context, id string, kind equation.Kind) error {
	return s.withAssessed(id, func(sess *session) error {
		if sess.explainer == nil {
			return ErrExplainUnavailable
		}
		in, err := s.explainInput(sess, kind)
		if err != nil {
			return err
		}
		sess.explainer.Request(ctx, in)
		return nil
	})
}

// ConsumeExplanation returns a finished background explanation, if any.
func (s *Service) ConsumeExplanation(id string) (explain.Result, bool, error) {
	var (
		res explain.Result
		ok  bool
	)
	err := s.withSession(id, func(sess *session) error {
		if sess.explainer == nil {
			return ErrExplainUnavailable
		}
		res, ok = sess.explainer.Consume()
		return nil
	})
	return res, ok, err
}

func (s *Service) appendEvent(ctx context.Context, what string, fn func(store.EventRepo) error) {
	if s.events == nil {
		return
	}
	if err := fn(s.events); err != nil {
		s.logger.Warn("failed to record event", zap.String("event", what), zap.Error(err))
	}
}

func (s *Service) saveSnapshot(ctx context.Context, sess *session) {
	if s.snaps == nil {
		return
	}
	data := store.SnapshotData{
		Version:  store.SnapshotVersion,
		Level:    string(sess.level),
		Assessed: sess.assessed,
		Progress: make(map[string][]progress.Entry, len(sess.trackers)),
	}
	if sess.quiz != nil {
		data.QuizScore = sess.quiz.Percentage
	}
	for kind, t := range sess.trackers {
		data.Progress[string(kind)] = t.Entries()
	}

	if err := s.snaps.Save(ctx, &store.Snapshot{Learner: sess.learner, Data: data}); err != nil {
		s.logger.Warn("failed to save snapshot", zap.String("learner", sess.learner), zap.Error(err))
		return
	}
	if err := s.snaps.Prune(ctx, sess.learner, snapshotsKept); err != nil {
		s.logger.Warn("failed to prune snapshots", zap.String("learner", sess.learner), zap.Error(err))
	}
}
