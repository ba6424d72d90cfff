package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/repository/specification"
	"blog-admin-be/internal/repository/unitofwork"
	"blog-admin-be/pkg/events"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Columns the post table may be sorted by, keyed by the client field name.
var postSortColumns = map[string]string{
	"title":        "title",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"rate":         "rate",
	"time_lecture": "time_lecture",
	"category":     "category",
	"status":       "status",
}

type IPostService interface {
	List(ctx context.Context, query dto.PostListQuery) (*dto.PageResponse[dto.PostResponse], error)
	Show(ctx context.Context, id uuid.UUID) (*dto.PostResponse, error)
	Create(ctx context.Context, actor entity.Actor, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	Update(ctx context.Context, actor entity.Actor, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	Content(ctx context.Context, id uuid.UUID, format string) (*dto.PostContentResponse, error)
	// SetContent replaces the body of a post on behalf of the editor.
	SetContent(ctx context.Context, actor entity.Actor, id uuid.UUID, content string) (*dto.PostResponse, error)
}

type postService struct {
	uowFactory       unitofwork.RepositoryFactory
	contentService   IContentService
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

func NewPostService(
	uowFactory unitofwork.RepositoryFactory,
	contentService IContentService,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IPostService {
	return &postService{
		uowFactory:       uowFactory,
		contentService:   contentService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func pageBounds(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func (s *postService) List(ctx context.Context, query dto.PostListQuery) (*dto.PageResponse[dto.PostResponse], error) {
	page, pageSize := pageBounds(query.Page, query.PageSize)

	filters := []specification.Specification{}
	if q := strings.TrimSpace(query.Q); q != "" {
		filters = append(filters, specification.PostSearch(q))
	}
	if query.Category != "" {
		filters = append(filters, specification.PostByCategory{Category: query.Category})
	}
	if query.Status != "" {
		filters = append(filters, specification.PostByStatus{Status: query.Status})
	}
	if query.UserId != "" {
		userId, err := uuid.Parse(query.UserId)
		if err != nil {
			return nil, fmt.Errorf("%w: user_id %q", ErrInvalidFilter, query.UserId)
		}
		filters = append(filters, specification.PostOwnedBy{UserID: userId})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.PostRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append([]specification.Specification{}, filters...)
	if column, ok := postSortColumns[query.Sort]; ok {
		specs = append(specs, specification.OrderBy{Field: column, Desc: query.Desc})
	} else {
		specs = append(specs, specification.NewestFirst{})
	}
	specs = append(specs, specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize})

	posts, err := uow.PostRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		items = append(items, *toPostResponse(p, false))
	}

	return &dto.PageResponse[dto.PostResponse]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *postService) Show(ctx context.Context, id uuid.UUID) (*dto.PostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.WithComments{},
	)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return toPostResponse(post, true), nil
}

func (s *postService) Create(ctx context.Context, actor entity.Actor, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	content, err := s.contentService.Canonical(ctx, req.Content)
	if err != nil {
		return nil, err
	}

	status := entity.PostStatus(req.Status)
	if status == "" {
		status = entity.PostStatusDraft
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	post := entity.Post{
		Id:          uuid.New(),
		UserId:      actor.Id,
		Title:       req.Title,
		Content:     content,
		Tags:        tags,
		Rate:        req.Rate,
		TimeLecture: req.TimeLecture,
		Image:       req.Image,
		Category:    entity.PostCategory(req.Category),
		Status:      status,
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PostRepository().Create(ctx, &post); err != nil {
		return nil, err
	}

	s.requestIndex(ctx, post.Id)
	publishEvent(ctx, s.eventPublisher, s.logger, events.PostCreated, map[string]interface{}{
		"post_id": post.Id.String(),
		"user_id": actor.Id.String(),
		"title":   post.Title,
	})

	return toPostResponse(&post, false), nil
}

func (s *postService) Update(ctx context.Context, actor entity.Actor, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	var content *string
	if req.Content != nil {
		canonical, err := s.contentService.Canonical(ctx, *req.Content)
		if err != nil {
			return nil, err
		}
		content = &canonical
	}

	post, err := s.mutate(ctx, actor, req.Id, func(post *entity.Post) {
		if req.Title != nil {
			post.Title = *req.Title
		}
		if content != nil {
			post.Content = *content
		}
		if req.Tags != nil {
			post.Tags = *req.Tags
		}
		if req.Rate != nil {
			post.Rate = *req.Rate
		}
		if req.TimeLecture != nil {
			post.TimeLecture = *req.TimeLecture
		}
		if req.Image != nil {
			post.Image = *req.Image
		}
		if req.Category != nil {
			post.Category = entity.PostCategory(*req.Category)
		}
		if req.Status != nil {
			post.Status = entity.PostStatus(*req.Status)
		}
	})
	if err != nil {
		return nil, err
	}

	if content != nil {
		s.requestIndex(ctx, post.Id)
	}
	publishEvent(ctx, s.eventPublisher, s.logger, events.PostUpdated, map[string]interface{}{
		"post_id": post.Id.String(),
		"user_id": actor.Id.String(),
		"title":   post.Title,
	})

	return toPostResponse(post, false), nil
}

func (s *postService) SetContent(ctx context.Context, actor entity.Actor, id uuid.UUID, content string) (*dto.PostResponse, error) {
	return s.Update(ctx, actor, &dto.UpdatePostRequest{Id: id, Content: &content})
}

// mutate loads a post, checks ownership, applies fn and saves it with a
// fresh updated_at inside one transaction.
func (s *postService) mutate(ctx context.Context, actor entity.Actor, id uuid.UUID, fn func(post *entity.Post)) (*entity.Post, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !actor.CanModify(post.UserId) {
		return nil, ErrForbidden
	}

	fn(post)
	now := time.Now()
	post.UpdatedAt = &now

	if err := uow.PostRepository().Update(ctx, post); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if !actor.CanModify(post.UserId) {
		return ErrForbidden
	}

	if err := uow.CommentRepository().DeleteByPostId(ctx, id); err != nil {
		return err
	}
	if err := uow.PostRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.PostDeleted, map[string]interface{}{
		"post_id": id.String(),
		"user_id": actor.Id.String(),
		"title":   post.Title,
	})
	return nil
}

func (s *postService) Content(ctx context.Context, id uuid.UUID, format string) (*dto.PostContentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	rendered, err := s.contentService.Render(ctx, post.Content, format)
	if err != nil {
		return nil, err
	}
	return &dto.PostContentResponse{
		PostId:                post.Id,
		RenderContentResponse: *rendered,
	}, nil
}

// requestIndex queues the post for excerpt and search text extraction.
func (s *postService) requestIndex(ctx context.Context, postId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishIndexPostMessage{PostId: postId})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn(indexModule, "Failed to queue post for indexing", map[string]interface{}{
			"post_id": postId.String(),
			"error":   err.Error(),
		})
	}
}

func toPostResponse(p *entity.Post, withComments bool) *dto.PostResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	resp := &dto.PostResponse{
		Id:          p.Id,
		UserId:      p.UserId,
		Title:       p.Title,
		Content:     p.Content,
		Tags:        tags,
		Rate:        p.Rate,
		TimeLecture: p.TimeLecture,
		Image:       p.Image,
		Category:    string(p.Category),
		Status:      string(p.Status),
		Excerpt:     p.Excerpt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if withComments {
		resp.Comments = make([]dto.CommentResponse, 0, len(p.Comments))
		for _, c := range p.Comments {
			resp.Comments = append(resp.Comments, toCommentResponse(c))
		}
	}
	return resp
}

func toCommentResponse(c *entity.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		Id:        c.Id,
		PostId:    c.PostId,
		UserId:    c.UserId,
		Title:     c.Title,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
