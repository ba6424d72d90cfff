package mapper

import (
	"time"

	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostMapper struct{}

func NewPostMapper() *PostMapper {
	return &PostMapper{}
}

func (m *PostMapper) ToEntity(p *model.Post) *entity.Post {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}

	var comments []*entity.Comment
	if p.Comments != nil {
		comments = make([]*entity.Comment, len(p.Comments))
		for i := range p.Comments {
			comments[i] = m.CommentToEntity(&p.Comments[i])
		}
	}

	return &entity.Post{
		Id:          p.Id,
		UserId:      p.UserId,
		Title:       p.Title,
		Content:     p.Content,
		Tags:        tags,
		Rate:        p.Rate,
		TimeLecture: p.TimeLecture,
		Image:       p.Image,
		Category:    entity.PostCategory(p.Category),
		Status:      entity.PostStatus(p.Status),
		Excerpt:     p.Excerpt,
		SearchText:  p.SearchText,
		IndexedAt:   p.IndexedAt,
		Comments:    comments,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   p.DeletedAt.Valid,
	}
}

// ToModel leaves Comments empty; comments are written through their own
// repository.
func (m *PostMapper) ToModel(p *entity.Post) *model.Post {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return &model.Post{
		Id:          p.Id,
		UserId:      p.UserId,
		Title:       p.Title,
		Content:     p.Content,
		Tags:        datatypes.JSONSlice[string](tags),
		Rate:        p.Rate,
		TimeLecture: p.TimeLecture,
		Image:       p.Image,
		Category:    string(p.Category),
		Status:      string(p.Status),
		Excerpt:     p.Excerpt,
		SearchText:  p.SearchText,
		IndexedAt:   p.IndexedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *PostMapper) ToEntities(posts []*model.Post) []*entity.Post {
	entities := make([]*entity.Post, len(posts))
	for i, p := range posts {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PostMapper) CommentToEntity(c *model.Comment) *entity.Comment {
	if c == nil {
		return nil
	}
	return &entity.Comment{
		Id:        c.Id,
		PostId:    c.PostId,
		UserId:    c.UserId,
		Title:     c.Title,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (m *PostMapper) CommentToModel(c *entity.Comment) *model.Comment {
	if c == nil {
		return nil
	}
	return &model.Comment{
		Id:        c.Id,
		PostId:    c.PostId,
		UserId:    c.UserId,
		Title:     c.Title,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (m *PostMapper) CommentsToEntities(comments []*model.Comment) []*entity.Comment {
	entities := make([]*entity.Comment, len(comments))
	for i, c := range comments {
		entities[i] = m.CommentToEntity(c)
	}
	return entities
}
