package dto

import "time"

// LiveMessage is one frame of the /ws/live feed.
type LiveMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
