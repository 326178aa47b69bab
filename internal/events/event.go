// Package events carries progress and telemetry for matching passes over
// a pub/sub bus backed by a SQLite audit log.
package events

import "time"

// Event is implemented by every published event.
type Event interface {
	EventType() string
	EntityType() string // "release" or "pass"
	EntityID() int64
	OccurredAt() time.Time
}

// BaseEvent carries the fields shared by all concrete events.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	ID        int64     `json:"entity_id"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() int64       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent(eventType, entityType string, entityID int64) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Entity:    entityType,
		ID:        entityID,
		Timestamp: time.Now(),
	}
}
