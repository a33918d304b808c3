package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/algebrix/algebrix/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked against a file below.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algebrix.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"snapshots", "llm_request_events", "tutor_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx, "ada")
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	err = repo.Save(ctx, &Snapshot{
		Learner:   "ada",
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version:  SnapshotVersion,
			Level:    "moderate",
			Assessed: true,
			Progress: map[string][]progress.Entry{
				"linear": {
					{Status: progress.StatusCompleted, Attempts: 1, Time: 12.5},
					{Status: progress.StatusUnlocked},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx, "ada")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 || !snap.Timestamp.Equal(now) {
		t.Errorf("snapshot = seq %d at %v", snap.Sequence, snap.Timestamp)
	}
	if snap.Data.Level != "moderate" || !snap.Data.Assessed {
		t.Errorf("data = %+v", snap.Data)
	}
	lin := snap.Data.Progress["linear"]
	if len(lin) != 2 || lin[0].Time != 12.5 || lin[1].Status != progress.StatusUnlocked {
		t.Errorf("linear progress = %+v", lin)
	}

	// Other learners see nothing.
	if other, _ := repo.Latest(ctx, "grace"); other != nil {
		t.Errorf("snapshot leaked across learners: %+v", other)
	}
}

func TestSnapshotSaveAssignsSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap := &Snapshot{Learner: "ada", Data: SnapshotData{Version: SnapshotVersion}}
	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	if snap.Sequence == 0 || snap.Timestamp.IsZero() {
		t.Errorf("snapshot not stamped: %+v", snap)
	}
	if err := repo.Save(ctx, &Snapshot{}); err == nil {
		t.Error("expected error for empty learner")
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Learner:   "ada",
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx, "ada")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for _, learner := range []string{"ada", "grace"} {
		for i := 0; i < 7; i++ {
			err := repo.Save(ctx, &Snapshot{
				Learner:   learner,
				Timestamp: base.Add(time.Duration(i) * time.Minute),
				Data:      SnapshotData{Version: i + 1},
			})
			if err != nil {
				t.Fatalf("save %d: %v", i, err)
			}
		}
	}

	if err := repo.Prune(ctx, "ada", 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, "snapshots"); n != 12 {
		t.Errorf("remaining snapshots = %d, want 12", n)
	}

	snap, err := repo.Latest(ctx, "ada")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Data.Version != 7 {
		t.Errorf("latest version = %d, want 7", snap.Data.Version)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.Save(ctx, &Snapshot{Learner: "ada", Data: SnapshotData{Version: 1}}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune with keep=5 should be a no-op.
	if err := repo.Prune(ctx, "ada", 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, "snapshots"); n != 2 {
		t.Errorf("remaining snapshots = %d, want 2", n)
	}
}

func TestLearnersAndDelete(t *testing.T) {
	s := openTestStore(t)
	snaps := s.SnapshotRepo()
	events := s.EventRepo()
	ctx := context.Background()

	for _, name := range []string{"grace", "ada"} {
		if err := snaps.Save(ctx, &Snapshot{Learner: name}); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := events.AppendQuiz(ctx, QuizEventData{Learner: name, Correct: 5, Total: 7, Level: "moderate"}); err != nil {
			t.Fatalf("append quiz: %v", err)
		}
	}

	names, err := snaps.Learners(ctx)
	if err != nil {
		t.Fatalf("learners: %v", err)
	}
	if len(names) != 2 || names[0] != "ada" || names[1] != "grace" {
		t.Errorf("learners = %v", names)
	}

	if n, err := snaps.DeleteLearner(ctx, "ada"); err != nil || n != 1 {
		t.Errorf("delete snapshots = %d, %v", n, err)
	}
	if n, err := events.DeleteLearner(ctx, "ada"); err != nil || n != 1 {
		t.Errorf("delete events = %d, %v", n, err)
	}
	if n := countRows(t, s, "tutor_events"); n != 1 {
		t.Errorf("tutor events = %d, want 1", n)
	}

	if _, err := events.DeleteLearner(ctx, ""); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n := countRows(t, s, "tutor_events"); n != 0 {
		t.Errorf("tutor events after clear = %d", n)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}
