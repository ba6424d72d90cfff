package service

import (
	"context"
	"time"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/repository/specification"
	"blog-admin-be/internal/repository/unitofwork"
	"blog-admin-be/pkg/events"

	"github.com/google/uuid"
)

type ICommentService interface {
	Create(ctx context.Context, actor entity.Actor, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Update(ctx context.Context, actor entity.Actor, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actor entity.Actor, postId, commentId uuid.UUID) error
}

type commentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewCommentService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher, log logger.ILogger) ICommentService {
	return &commentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *commentService) Create(ctx context.Context, actor entity.Actor, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: req.PostId})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := entity.Comment{
		Id:        uuid.New(),
		PostId:    post.Id,
		UserId:    actor.Id,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.CommentRepository().Create(ctx, &comment); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.CommentCreated, map[string]interface{}{
		"post_id":    post.Id.String(),
		"comment_id": comment.Id.String(),
		"user_id":    actor.Id.String(),
		"title":      post.Title,
	})

	resp := toCommentResponse(&comment)
	return &resp, nil
}

// load fetches a comment of the given post that the actor may modify.
func (s *commentService) load(ctx context.Context, uow unitofwork.UnitOfWork, actor entity.Actor, postId, commentId uuid.UUID) (*entity.Comment, error) {
	comment, err := uow.CommentRepository().FindOne(ctx,
		specification.ByID{ID: commentId},
		specification.CommentByPost{PostID: postId},
	)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if !actor.CanModify(comment.UserId) {
		return nil, ErrForbidden
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor entity.Actor, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	comment, err := s.load(ctx, uow, actor, req.PostId, req.CommentId)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		comment.Title = *req.Title
	}
	if req.Content != nil {
		comment.Content = *req.Content
	}
	if err := uow.CommentRepository().Update(ctx, comment); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.CommentUpdated, map[string]interface{}{
		"post_id":    comment.PostId.String(),
		"comment_id": comment.Id.String(),
		"user_id":    actor.Id.String(),
	})

	resp := toCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, actor entity.Actor, postId, commentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	comment, err := s.load(ctx, uow, actor, postId, commentId)
	if err != nil {
		return err
	}
	if err := uow.CommentRepository().Delete(ctx, comment.Id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.CommentDeleted, map[string]interface{}{
		"post_id":    postId.String(),
		"comment_id": commentId.String(),
		"user_id":    actor.Id.String(),
	})
	return nil
}
