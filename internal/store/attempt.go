package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// AttemptAction names a step in the lifecycle of one quiz attempt.
type AttemptAction string

const (
	ActionStart          AttemptAction = "start"
	ActionGenerated      AttemptAction = "generated"
	ActionGenerateFailed AttemptAction = "generate_failed"
	ActionSubmitted      AttemptAction = "submitted"
	ActionSubmitFailed   AttemptAction = "submit_failed"
	ActionAbandon        AttemptAction = "abandon"
)

// AttemptEvent is one row of the local attempt journal.
type AttemptEvent struct {
	Sequence      int64
	Timestamp     time.Time
	AttemptID     string
	Action        AttemptAction
	QuestionCount int
	AnsweredCount int
	Score         float64
	Message       string // failure message, empty on success
}

// QueryOpts configures journal queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	AttemptID string    // exact attempt match
}

// AttemptRepo provides append and query access to the attempt journal.
type AttemptRepo interface {
	// Append stamps e with the next sequence number and stores it.
	// A zero Timestamp is set to now.
	Append(ctx context.Context, e AttemptEvent) error

	// Query returns matching events, newest first.
	Query(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error)
}

const tableAttemptEvents = "attempt_events"

var attemptEventsColumns = []*schema.Column{
	{Name: "id", Type: field.TypeInt, Increment: true},
	{Name: "sequence", Type: field.TypeInt64, Unique: true},
	{Name: "timestamp", Type: field.TypeTime},
	{Name: "attempt_id", Type: field.TypeString},
	{Name: "action", Type: field.TypeString},
	{Name: "question_count", Type: field.TypeInt, Default: 0},
	{Name: "answered_count", Type: field.TypeInt, Default: 0},
	{Name: "score", Type: field.TypeFloat64, Default: 0},
	{Name: "message", Type: field.TypeString, Default: ""},
}

// AttemptEventsTable holds the schema information for the "attempt_events" table.
var AttemptEventsTable = &schema.Table{
	Name:       tableAttemptEvents,
	Columns:    attemptEventsColumns,
	PrimaryKey: []*schema.Column{attemptEventsColumns[0]},
	Indexes: []*schema.Index{
		{
			Name:    "attemptevent_attempt_id",
			Unique:  false,
			Columns: []*schema.Column{attemptEventsColumns[3]},
		},
		{
			Name:    "attemptevent_timestamp",
			Unique:  false,
			Columns: []*schema.Column{attemptEventsColumns[2]},
		},
	},
}

// Tables holds all the tables in the journal schema.
var Tables = []*schema.Table{
	AttemptEventsTable,
}

type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *attemptRepo) Append(ctx context.Context, e AttemptEvent) error {
	if e.AttemptID == "" {
		return fmt.Errorf("append attempt event: missing attempt id")
	}
	if e.Action == "" {
		return fmt.Errorf("append attempt event: missing action")
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := e.Timestamp
	if ts.IsZero() {
		ts = r.now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAttemptEvents).
		Columns("sequence", "timestamp", "attempt_id", "action",
			"question_count", "answered_count", "score", "message").
		Values(seqNum, ts.UTC(), e.AttemptID, string(e.Action),
			e.QuestionCount, e.AnsweredCount, e.Score, e.Message).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *attemptRepo) Query(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error) {
	t := entsql.Table(tableAttemptEvents)
	sel := entsql.Dialect(dialect.SQLite).
		Select(t.C("sequence"), t.C("timestamp"), t.C("attempt_id"), t.C("action"),
			t.C("question_count"), t.C("answered_count"), t.C("score"), t.C("message")).
		From(t)

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(t.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("timestamp"), opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C("timestamp"), opts.To.UTC()))
	}
	if opts.AttemptID != "" {
		preds = append(preds, entsql.EQ(t.C("attempt_id"), opts.AttemptID))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var out []AttemptEvent
	for rows.Next() {
		var (
			e      AttemptEvent
			action string
		)
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.AttemptID, &action,
			&e.QuestionCount, &e.AnsweredCount, &e.Score, &e.Message); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		e.Action = AttemptAction(action)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	return out, nil
}
