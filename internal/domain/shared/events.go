package shared

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that happened
// during an enlistment session. Events are published after the aggregate has
// committed its state change; rejected operations never produce events.
const (
	// Section events
	EventSectionRegistered EventType = "enlistment.section_registered"

	// Student events
	EventSectionEnlisted    EventType = "enlistment.enlisted"
	EventEnlistmentCanceled EventType = "enlistment.cancelled"
	EventStudentAssessed    EventType = "enlistment.assessed"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// EventID returns the unique identifier of this event instance.
	EventID() string

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string
}

// EventHandler processes a published domain event. Handlers must be safe for
// concurrent invocation when the bus dispatches asynchronously.
type EventHandler func(event Event) error

// BaseEvent provides common event functionality.
type BaseEvent struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// EventID implements Event interface.
func (e BaseEvent) EventID() string {
	return e.ID
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// WithCorrelation returns a copy of the base event carrying a correlation ID
// for tracing a request through the application layer.
func (e BaseEvent) WithCorrelation(correlationID string) BaseEvent {
	e.CorrelationID = correlationID
	return e
}
