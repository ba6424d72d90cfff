package events

import (
	"context"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "POST_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher is implemented by the NATS publisher. Services hold this
// interface and treat a nil value as "events disabled".
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

const (
	PostCreated    = "POST_CREATED"
	PostUpdated    = "POST_UPDATED"
	PostDeleted    = "POST_DELETED"
	PostIndexed    = "POST_INDEXED"
	CommentCreated = "COMMENT_CREATED"
	CommentUpdated = "COMMENT_UPDATED"
	CommentDeleted = "COMMENT_DELETED"
	UserCreated    = "USER_CREATED"
	UserUpdated    = "USER_UPDATED"
	UserDeleted    = "USER_DELETED"
	UserLogin      = "USER_LOGIN"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
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
