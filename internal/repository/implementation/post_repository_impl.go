package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/mapper"
	"blog-admin-be/internal/model"
	"blog-admin-be/internal/repository/contract"
	"blog-admin-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var groupableColumns = map[string]struct{}{
	"category": {},
	"status":   {},
}

type PostRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PostMapper
}

func NewPostRepository(db *gorm.DB) contract.PostRepository {
	return &PostRepositoryImpl{
		db:     db,
		mapper: mapper.NewPostMapper(),
	}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *entity.Post) error {
	m := r.mapper.ToModel(post)
	if err := r.db.WithContext(ctx).Omit("Comments").Create(m).Error; err != nil {
		return err
	}
	*post = *r.mapper.ToEntity(m)
	return nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *entity.Post) error {
	comments := post.Comments
	m := r.mapper.ToModel(post)
	if err := r.db.WithContext(ctx).Omit("Comments").Save(m).Error; err != nil {
		return err
	}
	*post = *r.mapper.ToEntity(m)
	post.Comments = comments
	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, "id = ?", id).Error
}

func (r *PostRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Post, error) {
	var m model.Post
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PostRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Post, error) {
	var models []*model.Post
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Post{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostRepositoryImpl) CountBy(ctx context.Context, column string) (map[string]int64, error) {
	if _, ok := groupableColumns[column]; !ok {
		return nil, fmt.Errorf("cannot group posts by %q", column)
	}

	var rows []struct {
		Grp   string
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Select(column + " AS grp, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Grp] = row.Total
	}
	return out, nil
}

func (r *PostRepositoryImpl) UpdateIndex(ctx context.Context, id uuid.UUID, excerpt, searchText string, indexedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"excerpt":     excerpt,
			"search_text": searchText,
			"indexed_at":  indexedAt,
		}).Error
}
