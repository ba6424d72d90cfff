package dto

import (
	"time"

	"github.com/google/uuid"
)

type CommentResponse struct {
	Id        uuid.UUID `json:"id"`
	PostId    uuid.UUID `json:"post_id"`
	UserId    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type PostResponse struct {
	Id          uuid.UUID         `json:"id"`
	UserId      uuid.UUID         `json:"user_id"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Tags        []string          `json:"tags"`
	Rate        int               `json:"rate"`
	TimeLecture int               `json:"time_lecture"`
	Image       string            `json:"image"`
	Category    string            `json:"category"`
	Status      string            `json:"status"`
	Excerpt     string            `json:"excerpt"`
	Comments    []CommentResponse `json:"comments,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
}

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	Rate        int      `json:"rate" validate:"min=0,max=5"`
	TimeLecture int      `json:"time_lecture" validate:"min=0"`
	Image       string   `json:"image" validate:"max=500"`
	Category    string   `json:"category" validate:"required,oneof=Travel Food Fashion Technology Health"`
	Status      string   `json:"status" validate:"omitempty,oneof=published draft"`
}

// UpdatePostRequest is merged into the stored post; nil fields are kept.
type UpdatePostRequest struct {
	Id          uuid.UUID `json:"-"`
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content     *string   `json:"content,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Rate        *int      `json:"rate,omitempty" validate:"omitempty,min=0,max=5"`
	TimeLecture *int      `json:"time_lecture,omitempty" validate:"omitempty,min=0"`
	Image       *string   `json:"image,omitempty" validate:"omitempty,max=500"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,oneof=Travel Food Fashion Technology Health"`
	Status      *string   `json:"status,omitempty" validate:"omitempty,oneof=published draft"`
}

type PostListQuery struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Q        string `query:"q"`
	Sort     string `query:"sort"`
	Desc     bool   `query:"desc"`
	Category string `query:"category"`
	Status   string `query:"status"`
	UserId   string `query:"user_id"`
}

type CreateCommentRequest struct {
	PostId  uuid.UUID `json:"-"`
	Title   string    `json:"title" validate:"required,max=255"`
	Content string    `json:"content" validate:"required"`
}

type UpdateCommentRequest struct {
	PostId    uuid.UUID `json:"-"`
	CommentId uuid.UUID `json:"-"`
	Title     *string   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content   *string   `json:"content,omitempty" validate:"omitempty,min=1"`
}

type PostContentResponse struct {
	PostId uuid.UUID `json:"post_id"`
	RenderContentResponse
}

type PublishIndexPostMessage struct {
	PostId uuid.UUID `json:"post_id"`
}
