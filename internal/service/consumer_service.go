package service

import (
	"context"
	"encoding/json"
	"time"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/repository/specification"
	"blog-admin-be/internal/repository/unitofwork"
	"blog-admin-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const indexModule = "INDEXER"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService keeps the derived excerpt and search text of posts in
// sync with their content.
type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	contentService IContentService
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	contentService IContentService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		uowFactory:     uowFactory,
		contentService: contentService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexPostMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(indexModule, "Failed to unmarshal index message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // a malformed message never becomes valid
		return
	}

	if err := cs.indexPost(ctx, payload); err != nil {
		cs.logger.Error(indexModule, "Failed to index post", map[string]interface{}{
			"post_id": payload.PostId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *consumerService) indexPost(ctx context.Context, payload dto.PublishIndexPostMessage) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: payload.PostId})
	if err != nil {
		return err
	}
	if post == nil {
		cs.logger.Warn(indexModule, "Post vanished before indexing", map[string]interface{}{"post_id": payload.PostId.String()})
		return nil
	}

	excerpt, searchText := cs.contentService.Index(ctx, post.Content)
	if err := uow.PostRepository().UpdateIndex(ctx, post.Id, excerpt, searchText, time.Now()); err != nil {
		return err
	}

	cs.logger.Info(indexModule, "Post indexed", map[string]interface{}{
		"post_id": post.Id.String(),
		"length":  len(searchText),
	})

	publishEvent(ctx, cs.eventPublisher, cs.logger, events.PostIndexed, map[string]interface{}{
		"post_id": post.Id.String(),
		"title":   post.Title,
		"excerpt": excerpt,
	})
	return nil
}
