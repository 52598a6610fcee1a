package events

import "time"

// Event is the contract every published domain event satisfies. The type
// code doubles as the NATS subject suffix.
type Event interface {
	// EventType returns the event code (e.g. "CHAT_ANSWERED").
	EventType() string

	// Payload returns the event data as published on the bus.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent backs the typed constructors in chat_events.go; events are
// built through those, not by filling BaseEvent directly.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
