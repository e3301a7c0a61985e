package store

import (
	"context"
	"time"

	"github.com/homehni/homehni-web/internal/model"
)

const createEvent = `
INSERT INTO events (level, category, message, meta, created_at)
VALUES (?, ?, ?, ?, ?)
`

// CreateEventParams holds the fields for CreateEvent.
type CreateEventParams struct {
	Level    string
	Category string
	Message  string
	Meta     string
}

// CreateEvent records one event log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	meta := arg.Meta
	if meta == "" {
		meta = "{}"
	}
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.Level,
		arg.Category,
		arg.Message,
		meta,
		time.Now().UTC(),
	)
	return err
}

const listEvents = `
SELECT id, level, category, message, meta, created_at
FROM events ORDER BY created_at DESC LIMIT ? OFFSET ?
`

// ListEventsParams holds pagination for ListEvents.
type ListEventsParams struct {
	Limit  int64
	Offset int64
}

// ListEvents returns event log entries newest first.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var event model.Event
		err := rows.Scan(
			&event.ID,
			&event.Level,
			&event.Category,
			&event.Message,
			&event.Metadata,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

const countEvents = `SELECT COUNT(*) FROM events`

// CountEvents returns the total number of event log entries.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countEvents).Scan(&count)
	return count, err
}

const pruneEvents = `DELETE FROM events WHERE created_at < ?`

// PruneEvents deletes event log entries older than the cutoff and returns
// how many were removed.
func (q *Queries) PruneEvents(ctx context.Context, before time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, pruneEvents, before.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
