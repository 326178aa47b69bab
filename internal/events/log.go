package events

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// EventLog is the append-only audit trail of pass and release events.
type EventLog struct {
	db *sql.DB
}

// NewEventLog creates an event log over the shared database.
func NewEventLog(db *sql.DB) *EventLog {
	return &EventLog{db: db}
}

// Append stores an event with its JSON payload and returns the row ID.
func (l *EventLog) Append(e Event) (int64, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("marshal event: %w", err)
	}

	result, err := l.db.Exec(`
		INSERT INTO events (type, entity_type, entity_id, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.EventType(), e.EntityType(), e.EntityID(), string(payload), e.OccurredAt(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return result.LastInsertId()
}

// RawEvent is a persisted event with its payload still serialized.
type RawEvent struct {
	ID         int64
	Type       string
	EntityType string
	EntityID   int64
	Payload    string
	OccurredAt time.Time
}

// Since returns events at or after t, oldest first.
func (l *EventLog) Since(t time.Time) ([]RawEvent, error) {
	return l.query(`WHERE occurred_at >= ?`, t)
}

// ForEntity returns the event history of one entity, oldest first.
func (l *EventLog) ForEntity(entityType string, entityID int64) ([]RawEvent, error) {
	return l.query(`WHERE entity_type = ? AND entity_id = ?`, entityType, entityID)
}

// Prune deletes events older than the retention window and returns the
// number removed.
func (l *EventLog) Prune(olderThan time.Duration) (int64, error) {
	result, err := l.db.Exec(`DELETE FROM events WHERE occurred_at < ?`,
		time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return result.RowsAffected()
}

func (l *EventLog) query(where string, args ...any) ([]RawEvent, error) {
	rows, err := l.db.Query(`
		SELECT id, type, entity_type, entity_id, payload, occurred_at
		FROM events `+where+` ORDER BY id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []RawEvent
	for rows.Next() {
		var e RawEvent
		if err := rows.Scan(&e.ID, &e.Type, &e.EntityType, &e.EntityID, &e.Payload, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
