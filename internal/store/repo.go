package store

import (
	"context"
	"time"

	"github.com/algebrix/algebrix/internal/progress"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotVersion is the current SnapshotData layout.
const SnapshotVersion = 1

// SnapshotData captures one learner's resumable state.
type SnapshotData struct {
	Version   int     `json:"version"`
	Level     string  `json:"level"`
	Assessed  bool    `json:"assessed"`
	QuizScore float64 `json:"quiz_score"`
	// Progress holds the ledger per equation kind.
	Progress map[string][]progress.Entry `json:"progress"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Learner   string
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is assigned from the
	// global counter.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the learner's most recent snapshot, or nil if none exist.
	Latest(ctx context.Context, learner string) (*Snapshot, error)

	// Prune deletes all but the learner's N most recent snapshots.
	Prune(ctx context.Context, learner string, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// AttemptEventData records one well-formed step submission.
type AttemptEventData struct {
	Learner   string
	SessionID string
	Kind      string
	Index     int
	Step      int
	Level     string
	Correct   bool
	Answer    string
}

// HintEventData records a hint shown to the learner.
type HintEventData struct {
	Learner   string
	SessionID string
	Kind      string
	Index     int
	Step      int
	Level     string
	Source    string
	Text      string
}

// CompletionEventData records a finished equation.
type CompletionEventData struct {
	Learner   string
	SessionID string
	Kind      string
	Index     int
	Elapsed   float64
	Replay    bool
}

// QuizEventData records a scored diagnostic quiz.
type QuizEventData struct {
	Learner    string
	SessionID  string
	Correct    int
	Total      int
	Percentage float64
	Level      string
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	AppendAttempt(ctx context.Context, data AttemptEventData) error
	AppendHint(ctx context.Context, data HintEventData) error
	AppendCompletion(ctx context.Context, data CompletionEventData) error
	AppendQuiz(ctx context.Context, data QuizEventData) error
}
