package specification

import (
	"blog-admin-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostByCategory struct {
	Category string
}

func (s PostByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type PostByStatus struct {
	Status string
}

func (s PostByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type PostOwnedBy struct {
	UserID uuid.UUID
}

func (s PostOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// PostSearch matches the title and the indexed plain text. Posts not yet
// indexed are matched on their raw content.
func PostSearch(q string) Specification {
	return SearchQuery{Query: q, Columns: []string{"title", "search_text", "content"}}
}

// WithComments preloads comments oldest first.
type WithComments struct{}

func (s WithComments) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Comments", scope.OrderByCreatedAsc)
}

type CommentByPost struct {
	PostID uuid.UUID
}

func (s CommentByPost) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("post_id = ?", s.PostID)
}

// NewestFirst is the default ordering of admin tables.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return scope.OrderByCreatedDesc(db)
}
