package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/algebrix/algebrix/internal/llm"
)

// Purpose labels explanation calls in the LLM event log.
const Purpose = "explain"

// Service generates step explanations asynchronously. It holds at most one
// result; a newer request replaces an unconsumed one.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger

	mu      sync.Mutex
	gen     uint64
	pending *Explanation
	err     error
	ready   bool
}

// NewService creates an explanation service.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger.Named("explain")}
}

// Request starts generation in the background. Results of earlier requests
// that finish late are discarded.
func (s *Service) Request(ctx context.Context, in Input) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.ready = false
	s.pending = nil
	s.err = nil
	s.mu.Unlock()

	go func() {
		exp, err := s.Generate(ctx, in)
		if err != nil {
			s.logger.Warn("explanation failed",
				zap.String("kind", string(in.Kind)),
				zap.Int("index", in.Index),
				zap.Int("step", in.Step.Number),
				zap.Error(err))
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.pending = exp
		s.err = err
		s.ready = true
	}()
}

// Result is a finished explanation request.
type Result struct {
	Explanation *Explanation
	Err         error
}

// Consume returns the finished result, if any, and clears the slot.
// It reports false while generation is still running or nothing was requested.
func (s *Service) Consume() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return Result{}, false
	}
	res := Result{Explanation: s.pending, Err: s.err}
	s.pending = nil
	s.err = nil
	s.ready = false
	return res, true
}

type explanationOutput struct {
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	WorkedSteps []string `json:"worked_steps"`
}

// Generate calls the provider synchronously.
func (s *Service) Generate(ctx context.Context, in Input) (*Explanation, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in)},
		},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explanation generation: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation response: %w", err)
	}

	return &Explanation{
		Kind:        in.Kind,
		Index:       in.Index,
		Step:        in.Step.Number,
		Title:       out.Title,
		Explanation: out.Explanation,
		WorkedSteps: out.WorkedSteps,
	}, nil
}
