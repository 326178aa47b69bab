package events

import (
	"context"
	"log/slog"
	"sync"
)

// subscription is one registered listener. An empty eventType means the
// listener receives every event.
type subscription struct {
	eventType string
	ch        chan Event
}

// Bus fans events out to subscribers and appends them to the event log.
// Delivery is non-blocking: a subscriber that falls behind loses events
// rather than stalling the matching pass that published them.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	log    *EventLog // nil disables persistence
	logger *slog.Logger
	closed bool
}

// NewBus creates an event bus. Pass a nil EventLog to keep events
// in-memory only.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{log: log, logger: logger}
}

// Publish persists the event and delivers it to matching subscribers.
// Publishing on a closed bus is a no-op.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	// The read lock is held through delivery: Unsubscribe and Close need
	// the write lock to close a channel, so no send can race a close.
	// Sends never block, so holding it here is cheap.
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	if b.log != nil {
		if _, err := b.log.Append(e); err != nil {
			// Delivery still proceeds; the log is an audit trail, not
			// the transport.
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}

	for _, sub := range b.subs {
		if sub.eventType != "" && sub.eventType != e.EventType() {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}
	return nil
}

// Subscribe returns a channel receiving events of one type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	return b.add(eventType, bufferSize)
}

// SubscribeAll returns a channel receiving every event.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.add("", bufferSize)
}

func (b *Bus) add(eventType string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	b.subs = append(b.subs, subscription{eventType: eventType, ch: ch})
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub.ch == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(sub.ch)
			return
		}
	}
}

// Close shuts the bus down and closes every subscriber channel.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, sub := range b.subs {
		close(sub.ch)
	}
	b.subs = nil
	return nil
}
