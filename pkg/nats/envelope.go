package nats

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"blog-admin-be/pkg/events"
)

const (
	StreamName    = "EVENTS"
	SubjectPrefix = "events."
)

// envelope is the wire form of an event. The type travels in the body so
// subscribers do not have to parse it back out of the subject.
type envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func Subject(eventType string) string {
	return SubjectPrefix + eventType
}

func Marshal(event events.Event) ([]byte, error) {
	data, err := json.Marshal(envelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a message body. Bodies without a type fall back to the
// subject, which keeps messages from older publishers readable.
func Unmarshal(subject string, data []byte) (events.BaseEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return events.BaseEvent{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if env.Type == "" {
		env.Type = strings.TrimPrefix(subject, SubjectPrefix)
	}
	if env.OccurredAt.IsZero() {
		env.OccurredAt = time.Now()
	}
	return events.BaseEvent{
		Type:       env.Type,
		Data:       env.Data,
		OccurredAt: env.OccurredAt,
	}, nil
}
