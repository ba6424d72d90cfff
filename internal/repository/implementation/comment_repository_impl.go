package implementation

import (
	"context"
	"errors"

	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/mapper"
	"blog-admin-be/internal/model"
	"blog-admin-be/internal/repository/contract"
	"blog-admin-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PostMapper
}

func NewCommentRepository(db *gorm.DB) contract.CommentRepository {
	return &CommentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPostMapper(),
	}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *entity.Comment) error {
	m := r.mapper.CommentToModel(comment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*comment = *r.mapper.CommentToEntity(m)
	return nil
}

func (r *CommentRepositoryImpl) Update(ctx context.Context, comment *entity.Comment) error {
	m := r.mapper.CommentToModel(comment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*comment = *r.mapper.CommentToEntity(m)
	return nil
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id).Error
}

func (r *CommentRepositoryImpl) DeleteByPostId(ctx context.Context, postId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postId).Delete(&model.Comment{}).Error
}

func (r *CommentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Comment, error) {
	var m model.Comment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CommentToEntity(&m), nil
}

func (r *CommentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Comment, error) {
	var models []*model.Comment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.CommentsToEntities(models), nil
}

func (r *CommentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Comment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
