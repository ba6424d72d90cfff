package entity

import (
	"time"

	"github.com/google/uuid"
)

type PostCategory string

const (
	PostCategoryTravel     PostCategory = "Travel"
	PostCategoryFood       PostCategory = "Food"
	PostCategoryFashion    PostCategory = "Fashion"
	PostCategoryTechnology PostCategory = "Technology"
	PostCategoryHealth     PostCategory = "Health"
)

var PostCategories = []PostCategory{
	PostCategoryTravel,
	PostCategoryFood,
	PostCategoryFashion,
	PostCategoryTechnology,
	PostCategoryHealth,
}

type PostStatus string

const (
	PostStatusPublished PostStatus = "published"
	PostStatusDraft     PostStatus = "draft"
)

type Post struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Content     string // persisted rich-text document
	Tags        []string
	Rate        int
	TimeLecture int // reading time in minutes
	Image       string
	Category    PostCategory
	Status      PostStatus

	// Derived from Content by the indexing consumer
	Excerpt    string
	SearchText string
	IndexedAt  *time.Time

	Comments  []*Comment
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type Comment struct {
	Id        uuid.UUID
	PostId    uuid.UUID
	UserId    uuid.UUID
	Title     string
	Content   string
	CreatedAt time.Time
}
