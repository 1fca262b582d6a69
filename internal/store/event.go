package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// EventKind is the type of a ledger event.
type EventKind string

const (
	EventCrossing EventKind = "crossing"
	EventLateral  EventKind = "lateral"
	EventVoice    EventKind = "voice"
	EventHit      EventKind = "hit"
	EventPoint    EventKind = "point"
	EventUnlock   EventKind = "unlock"
	EventReset    EventKind = "reset"
)

// Event is one thing that happened during a session.
type Event struct {
	ID        string
	SessionID string
	Kind      EventKind
	// Side is the paddle side for hits and points.
	Side string
	// Count is the counter value after the event, where one applies.
	Count int
	At    time.Time
}

// EventRepository provides access to session events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts an event. A missing ID or time is filled in.
func (r *EventRepository) Record(e *Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO events (id, session_id, kind, side, count, at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, string(e.Kind), e.Side, e.Count, e.At,
	)
	return err
}

// ListBySession retrieves a session's events in the order they happened.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, kind, side, count, at
		 FROM events WHERE session_id = ? ORDER BY at, rowid`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var kind string
		if err := rows.Scan(&e.ID, &e.SessionID, &kind, &e.Side, &e.Count, &e.At); err != nil {
			return nil, err
		}
		e.Kind = EventKind(kind)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountByKind returns how many events of each kind a session has.
func (r *EventRepository) CountByKind(sessionID string) (map[EventKind]int, error) {
	rows, err := r.db.Query(
		`SELECT kind, COUNT(*) FROM events WHERE session_id = ? GROUP BY kind`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[EventKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[EventKind(kind)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
