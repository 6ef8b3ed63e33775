package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is one feed event row. Seq is assigned by AssignSeq; an event
// without a sequence number is invisible to readers.
type Event struct {
	ID         uuid.UUID
	Seq        int64
	Kind       string
	Payload    json.RawMessage
	RecordedAt time.Time
}

// InsertEvent appends a new, unsequenced event.
func (s *Store) InsertEvent(ctx context.Context, db DB, ev Event) error {
	_, err := db.Exec(ctx,
		`INSERT INTO events (id, kind, payload, recorded_at) VALUES ($1, $2, $3, $4)`,
		ev.ID, ev.Kind, ev.Payload, ev.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event %s: %w", ev.ID, err)
	}
	return nil
}

// EntriesForPage returns up to size+1 sequenced events for the page,
// newest first. The extra row is the lookahead the pagination engine uses
// to detect an older page.
func (s *Store) EntriesForPage(ctx context.Context, db DB, page int64, size int) ([]Event, error) {
	rows, err := db.Query(ctx,
		`SELECT id, seq, kind, payload, recorded_at
		   FROM events
		  WHERE seq IS NOT NULL
		  ORDER BY seq DESC
		 OFFSET $1 LIMIT $2`,
		page*int64(size), size+1,
	)
	if err != nil {
		return nil, fmt.Errorf("query page %d: %w", page, err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Seq, &ev.Kind, &ev.Payload, &ev.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read page %d: %w", page, err)
	}
	return out, nil
}

// AssignSeq numbers all pending events in arrival order, continuing from
// the highest assigned sequence. Returns how many events became visible.
// Runs inside the caller's transaction; row_number keeps the numbering
// gap-free regardless of insert interleaving.
func (s *Store) AssignSeq(ctx context.Context, db DB) (int64, error) {
	tag, err := db.Exec(ctx, `
		UPDATE events e
		   SET seq = base.max_seq + pending.rn
		  FROM (SELECT COALESCE(MAX(seq), 0) AS max_seq FROM events) base,
		       (SELECT id, row_number() OVER (ORDER BY recorded_at, id) AS rn
		          FROM events
		         WHERE seq IS NULL) pending
		 WHERE e.id = pending.id`)
	if err != nil {
		return 0, fmt.Errorf("assign sequence numbers: %w", err)
	}
	return tag.RowsAffected(), nil
}
