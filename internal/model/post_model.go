package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Post struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Title       string                      `gorm:"type:varchar(255);not null"`
	Content     string                      `gorm:"type:text"`
	Tags        datatypes.JSONSlice[string] `gorm:"not null"`
	Rate        int                         `gorm:"not null;default:0"`
	TimeLecture int                         `gorm:"not null;default:0"`
	Image       string                      `gorm:"type:varchar(500)"`
	Category    string                      `gorm:"type:varchar(40);not null;index"`
	Status      string                      `gorm:"type:varchar(20);not null;default:'draft';index"`
	Excerpt     string                      `gorm:"type:text"`
	SearchText  string                      `gorm:"type:text"`
	IndexedAt   *time.Time
	Comments    []Comment      `gorm:"foreignKey:PostId"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   *time.Time     `gorm:"autoUpdateTime:false"` // set only by edits
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}

type Comment struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PostId    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Comment) TableName() string {
	return "post_comments"
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Post{},
		&Comment{},
	}
}
