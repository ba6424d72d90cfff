package service

import (
	"context"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/pkg/events"
	pktNats "blog-admin-be/pkg/nats"

	"github.com/google/uuid"
)

// LiveBroadcaster is implemented by the websocket hub.
type LiveBroadcaster interface {
	BroadcastLocal(msg dto.LiveMessage)
	SendToUser(userID uuid.UUID, msg dto.LiveMessage)
}

// EventSubscriber is implemented by the NATS subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

type ILiveService interface {
	// Start forwards every domain event to the connections of this
	// instance until ctx is cancelled.
	Start(ctx context.Context) error
	Forward(ctx context.Context, event events.Event) error
}

type liveService struct {
	subscriber  EventSubscriber
	broadcaster LiveBroadcaster
	logger      logger.ILogger
}

func NewLiveService(subscriber EventSubscriber, broadcaster LiveBroadcaster, log logger.ILogger) ILiveService {
	return &liveService{
		subscriber:  subscriber,
		broadcaster: broadcaster,
		logger:      log,
	}
}

func (s *liveService) Start(ctx context.Context) error {
	if s.subscriber == nil {
		s.logger.Warn("LIVE", "No event subscriber configured, live feed only carries local messages", nil)
		return nil
	}
	// Ephemeral consumer: each instance needs every event for its own
	// connections.
	return s.subscriber.Subscribe(ctx, pktNats.SubjectPrefix+">", "", s.Forward)
}

func (s *liveService) Forward(ctx context.Context, event events.Event) error {
	s.broadcaster.BroadcastLocal(dto.LiveMessage{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	return nil
}
