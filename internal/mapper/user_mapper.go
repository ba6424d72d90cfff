package mapper

import (
	"time"

	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/model"

	"gorm.io/gorm"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var deletedAt *time.Time
	if u.DeletedAt.Valid {
		t := u.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.User{
		Id:           u.Id,
		Name:         u.Name,
		Surname:      u.Surname,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Address:      u.Address,
		City:         u.City,
		ZipCode:      u.ZipCode,
		Country:      u.Country,
		Province:     u.Province,
		Role:         entity.UserRole(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    u.DeletedAt.Valid,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if u.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *u.DeletedAt, Valid: true}
	} else if u.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.User{
		Id:           u.Id,
		Name:         u.Name,
		Surname:      u.Surname,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Address:      u.Address,
		City:         u.City,
		ZipCode:      u.ZipCode,
		Country:      u.Country,
		Province:     u.Province,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
