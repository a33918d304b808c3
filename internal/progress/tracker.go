package progress

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfRange is returned for an index outside the ledger.
	ErrOutOfRange = errors.New("equation index out of range")

	// ErrAlreadyCompleted is returned when completing an equation twice.
	ErrAlreadyCompleted = errors.New("equation already completed")
)

// Status is the unlock state of one equation.
type Status string

const (
	StatusLocked    Status = "locked"
	StatusUnlocked  Status = "unlocked"
	StatusCompleted Status = "completed"
)

// Entry is the ledger row for one equation.
type Entry struct {
	Status Status `json:"status"`
	// Attempts counts completed runs, not per-step retries.
	Attempts int `json:"attempts"`
	// Time is the seconds from open to final correct submission.
	Time float64 `json:"time"`
}

// Tracker owns the unlock/attempt/time ledger for one equation kind.
// It is not safe for concurrent use; callers serialize per session.
type Tracker struct {
	entries []Entry
}

// New creates a tracker with count entries, index 0 unlocked.
func New(count int) *Tracker {
	t := &Tracker{}
	t.Initialize(count)
	return t
}

// Initialize discards prior progress and rebuilds count entries.
func (t *Tracker) Initialize(count int) {
	if count < 0 {
		count = 0
	}
	t.entries = make([]Entry, count)
	for i := range t.entries {
		t.entries[i].Status = StatusLocked
	}
	if count > 0 {
		t.entries[0].Status = StatusUnlocked
	}
}

// Restore rebuilds a tracker from saved entries. The entries must form a
// valid ledger: completed entries first, then at most one unlocked entry,
// then locked ones.
func Restore(entries []Entry) (*Tracker, error) {
	seenOpen := false
	for i, e := range entries {
		switch e.Status {
		case StatusCompleted:
			if seenOpen {
				return nil, fmt.Errorf("entry %d: completed after an open entry", i)
			}
			if i+1 < len(entries) && entries[i+1].Status == StatusLocked {
				return nil, fmt.Errorf("entry %d: successor of a completed entry is locked", i+1)
			}
		case StatusUnlocked:
			if seenOpen {
				return nil, fmt.Errorf("entry %d: more than one unlocked entry", i)
			}
			seenOpen = true
		case StatusLocked:
			if i == 0 {
				return nil, fmt.Errorf("entry 0 is locked")
			}
			seenOpen = true
		default:
			return nil, fmt.Errorf("entry %d: unknown status %q", i, e.Status)
		}
		if e.Attempts < 0 || e.Time < 0 {
			return nil, fmt.Errorf("entry %d: negative counters", i)
		}
	}
	t := &Tracker{entries: make([]Entry, len(entries))}
	copy(t.entries, entries)
	return t, nil
}

// Len returns the number of entries.
func (t *Tracker) Len() int {
	return len(t.entries)
}

// Entry returns the entry at index.
func (t *Tracker) Entry(index int) (Entry, error) {
	if index < 0 || index >= len(t.entries) {
		return Entry{}, fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	return t.entries[index], nil
}

// Entries returns a copy of the ledger.
func (t *Tracker) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// RecordCompletion marks index completed with the elapsed seconds and
// unlocks its successor.
func (t *Tracker) RecordCompletion(index int, elapsed float64) error {
	if index < 0 || index >= len(t.entries) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	e := &t.entries[index]
	if e.Status == StatusCompleted {
		return fmt.Errorf("%w: %d", ErrAlreadyCompleted, index)
	}

	e.Attempts++
	e.Time = math.Round(elapsed*100) / 100
	e.Status = StatusCompleted

	if next := index + 1; next < len(t.entries) && t.entries[next].Status == StatusLocked {
		t.entries[next].Status = StatusUnlocked
	}
	return nil
}

// Key returns the ledger key for index, e.g. "Equation1".
func Key(index int) string {
	return fmt.Sprintf("Equation%d", index+1)
}

// EntrySummary is one keyed row of a Summary.
type EntrySummary struct {
	Key string `json:"key"`
	Entry
}

// Summary is the per-entry view plus aggregates consumed by reporting.
type Summary struct {
	Entries   []EntrySummary `json:"entries"`
	Completed int            `json:"completed"`
	Total     int            `json:"total"`
	Attempts  int            `json:"attempts"`
	Time      float64        `json:"time"`
}

// Summary returns the current ledger view.
func (t *Tracker) Summary() Summary {
	s := Summary{Total: len(t.entries)}
	for i, e := range t.entries {
		s.Entries = append(s.Entries, EntrySummary{Key: Key(i), Entry: e})
		if e.Status == StatusCompleted {
			s.Completed++
		}
		s.Attempts += e.Attempts
		s.Time += e.Time
	}
	return s
}
