package service

import (
	"context"

	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/pkg/events"
)

// publishEvent emits a domain event. Events are auxiliary: a missing
// publisher or a failed publish is logged and never fails the caller.
func publishEvent(ctx context.Context, publisher events.Publisher, log logger.ILogger, eventType string, data map[string]interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.New(eventType, data)); err != nil && log != nil {
		log.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
