package contract

import (
	"context"
	"time"

	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Post, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Post, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountBy groups live posts by one of "category" or "status".
	CountBy(ctx context.Context, column string) (map[string]int64, error)
	// UpdateIndex writes the derived text columns without touching updated_at.
	UpdateIndex(ctx context.Context, id uuid.UUID, excerpt, searchText string, indexedAt time.Time) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPostId(ctx context.Context, postId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Comment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Comment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
