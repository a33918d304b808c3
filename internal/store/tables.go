package store

import (
	"slices"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tableLLMEvents   = "llm_request_events"
	tableTutorEvents = "tutor_events"
	tableSnapshots   = "snapshots"
)

// eventColumns are the base columns shared by every event table: a row id,
// the global sequence number and a UTC timestamp in Unix milliseconds.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
	}
}

// eventTable builds an event table from the base columns plus cols. Each
// column named in indexed gets a single-column index.
func eventTable(name string, indexed []string, cols ...*schema.Column) *schema.Table {
	base := eventColumns()
	t := &schema.Table{
		Name:       name,
		Columns:    append(base, cols...),
		PrimaryKey: []*schema.Column{base[0]},
	}
	for _, c := range t.Columns {
		if c.Name == "timestamp" || slices.Contains(indexed, c.Name) {
			t.Indexes = append(t.Indexes, &schema.Index{
				Name:    name + "_" + c.Name,
				Columns: []*schema.Column{c},
			})
		}
	}
	return t
}

var (
	llmEventsTable = eventTable(tableLLMEvents, []string{"purpose"},
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
	)

	tutorEventsTable = eventTable(tableTutorEvents, []string{"learner"},
		&schema.Column{Name: "type", Type: field.TypeString},
		&schema.Column{Name: "learner", Type: field.TypeString},
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "kind", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "equation_index", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "step", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "level", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "correct", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "detail", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "value", Type: field.TypeFloat64, Default: 0},
	)

	snapshotsTable = func() *schema.Table {
		cols := []*schema.Column{
			{Name: "id", Type: field.TypeInt, Increment: true},
			{Name: "learner", Type: field.TypeString},
			{Name: "sequence", Type: field.TypeInt64},
			{Name: "timestamp", Type: field.TypeInt64},
			{Name: "data", Type: field.TypeString, Size: 1 << 20},
		}
		return &schema.Table{
			Name:       tableSnapshots,
			Columns:    cols,
			PrimaryKey: []*schema.Column{cols[0]},
			Indexes: []*schema.Index{
				{Name: "snapshots_learner", Columns: []*schema.Column{cols[1]}},
			},
		}
	}()
)

// Tables lists every table the store migrates.
var Tables = []*schema.Table{llmEventsTable, tutorEventsTable, snapshotsTable}
