package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// TutorEventType discriminates rows of the tutor event table.
type TutorEventType string

const (
	EventAttempt    TutorEventType = "attempt"
	EventHint       TutorEventType = "hint"
	EventCompletion TutorEventType = "completion"
	EventQuiz       TutorEventType = "quiz"
)

// TutorEvent is one stored learner event. Detail and Value carry the
// type-specific payload: the answer for attempts, the hint text for hints,
// the elapsed seconds for completions and the percentage for quizzes.
type TutorEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Type      TutorEventType
	Learner   string
	SessionID string
	Kind      string
	Index     int
	Step      int
	Level     string
	Correct   bool
	Detail    string
	Value     float64
}

var tutorColumns = []string{
	"id", "sequence", "timestamp", "type", "learner", "session_id", "kind",
	"equation_index", "step", "level", "correct", "detail", "value",
}

func (r *EventLog) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	return r.appendTutor(ctx, TutorEvent{
		Type:      EventAttempt,
		Learner:   data.Learner,
		SessionID: data.SessionID,
		Kind:      data.Kind,
		Index:     data.Index,
		Step:      data.Step,
		Level:     data.Level,
		Correct:   data.Correct,
		Detail:    data.Answer,
	})
}

func (r *EventLog) AppendHint(ctx context.Context, data HintEventData) error {
	return r.appendTutor(ctx, TutorEvent{
		Type:      EventHint,
		Learner:   data.Learner,
		SessionID: data.SessionID,
		Kind:      data.Kind,
		Index:     data.Index,
		Step:      data.Step,
		Level:     data.Level,
		Detail:    data.Source + ": " + data.Text,
	})
}

func (r *EventLog) AppendCompletion(ctx context.Context, data CompletionEventData) error {
	return r.appendTutor(ctx, TutorEvent{
		Type:      EventCompletion,
		Learner:   data.Learner,
		SessionID: data.SessionID,
		Kind:      data.Kind,
		Index:     data.Index,
		Correct:   !data.Replay,
		Detail:    "replay=" + strconv.FormatBool(data.Replay),
		Value:     data.Elapsed,
	})
}

func (r *EventLog) AppendQuiz(ctx context.Context, data QuizEventData) error {
	return r.appendTutor(ctx, TutorEvent{
		Type:      EventQuiz,
		Learner:   data.Learner,
		SessionID: data.SessionID,
		Level:     data.Level,
		Detail:    fmt.Sprintf("%d/%d", data.Correct, data.Total),
		Value:     data.Percentage,
	})
}

func (r *EventLog) appendTutor(ctx context.Context, e TutorEvent) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableTutorEvents).
		Columns(tutorColumns[1:]...).
		Values(
			seqNum, time.Now().UTC().UnixMilli(),
			string(e.Type), e.Learner, e.SessionID, e.Kind,
			e.Index, e.Step, e.Level, e.Correct, e.Detail, e.Value,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save %s event: %w", e.Type, err)
	}
	return nil
}

// QueryTutorEvents returns a learner's events oldest first. An empty learner
// matches everyone.
func (r *EventLog) QueryTutorEvents(ctx context.Context, learner string, opts QueryOpts) ([]TutorEvent, error) {
	sel := builder().Select(tutorColumns...).From(entsql.Table(tableTutorEvents))
	if learner != "" {
		sel.Where(entsql.EQ("learner", learner))
	}
	applyOpts(sel, opts)
	sel.OrderBy(entsql.Asc("sequence"))

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tutor events: %w", err)
	}
	defer rows.Close()

	var out []TutorEvent
	for rows.Next() {
		var (
			e  TutorEvent
			ts int64
			t  string
		)
		err := rows.Scan(&e.ID, &e.Sequence, &ts, &t, &e.Learner, &e.SessionID, &e.Kind,
			&e.Index, &e.Step, &e.Level, &e.Correct, &e.Detail, &e.Value)
		if err != nil {
			return nil, fmt.Errorf("scan tutor event: %w", err)
		}
		e.Type = TutorEventType(t)
		e.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteLearner removes a learner's tutor events. An empty learner deletes
// every tutor and LLM event.
func (r *EventLog) DeleteLearner(ctx context.Context, learner string) (int64, error) {
	if learner == "" {
		var total int64
		for _, table := range []string{tableTutorEvents, tableLLMEvents} {
			query, args := builder().Delete(table).Query()
			res, err := r.db.ExecContext(ctx, query, args...)
			if err != nil {
				return total, fmt.Errorf("clear %s: %w", table, err)
			}
			n, _ := res.RowsAffected()
			total += n
		}
		return total, nil
	}

	query, args := builder().Delete(tableTutorEvents).
		Where(entsql.EQ("learner", learner)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete events for %q: %w", learner, err)
	}
	return res.RowsAffected()
}
