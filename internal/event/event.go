// Package event provides a synchronous publish/subscribe bus for session
// notifications: region changes, mode transitions, completed commands and
// configuration reloads.
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/selex/internal/event/topic"
)

// Event is one published notification.
type Event struct {
	// Type is the hierarchical event type (e.g., "selections.changed").
	Type topic.Topic

	// Payload contains the event-specific data.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string

	// CorrelationID links the event to the command that caused it.
	CorrelationID string
}

// NewEvent creates a new event with the given type and payload.
func NewEvent(eventType topic.Topic, payload any, source string) Event {
	return Event{
		Type:    eventType,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// WithCorrelation returns the event with its correlation id set.
func (e Event) WithCorrelation(id string) Event {
	e.Metadata.CorrelationID = id
	return e
}
