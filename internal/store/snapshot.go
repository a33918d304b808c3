package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SnapshotStore implements SnapshotRepo on the snapshots table.
type SnapshotStore struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ SnapshotRepo = (*SnapshotStore)(nil)

func (r *SnapshotStore) Save(ctx context.Context, snap *Snapshot) error {
	if snap.Learner == "" {
		return errors.New("save snapshot: empty learner")
	}
	b, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}
	if snap.Sequence == 0 {
		if snap.Sequence, err = r.seq.Next(ctx); err != nil {
			return err
		}
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	query, args := builder().Insert(tableSnapshots).
		Columns("learner", "sequence", "timestamp", "data").
		Values(snap.Learner, snap.Sequence, snap.Timestamp.UTC().UnixMilli(), string(b)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotStore) Latest(ctx context.Context, learner string) (*Snapshot, error) {
	query, args := builder().Select("id", "learner", "sequence", "timestamp", "data").
		From(entsql.Table(tableSnapshots)).
		Where(entsql.EQ("learner", learner)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		s    Snapshot
		ts   int64
		data string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Learner, &s.Sequence, &ts, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &s.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	s.Timestamp = time.UnixMilli(ts).UTC()
	return &s, nil
}

func (r *SnapshotStore) Prune(ctx context.Context, learner string, keep int) error {
	// Find the id threshold: the Nth most recent snapshot.
	query, args := builder().Select("id").
		From(entsql.Table(tableSnapshots)).
		Where(entsql.EQ("learner", learner)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil // fewer than keep snapshots exist
		}
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(tableSnapshots).
		Where(entsql.And(entsql.EQ("learner", learner), entsql.LTE("id", threshold))).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// Learners returns every learner with at least one snapshot.
func (r *SnapshotStore) Learners(ctx context.Context) ([]string, error) {
	query, args := builder().Select("DISTINCT learner").
		From(entsql.Table(tableSnapshots)).
		OrderBy(entsql.Asc("learner")).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query learners: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan learner: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// DeleteLearner removes a learner's snapshots. An empty learner deletes all.
func (r *SnapshotStore) DeleteLearner(ctx context.Context, learner string) (int64, error) {
	del := builder().Delete(tableSnapshots)
	if learner != "" {
		del.Where(entsql.EQ("learner", learner))
	}
	query, args := del.Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete snapshots: %w", err)
	}
	return res.RowsAffected()
}
