package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name         string         `gorm:"type:varchar(120);not null"`
	Surname      string         `gorm:"type:varchar(120)"`
	Email        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	Address      string         `gorm:"type:varchar(255)"`
	City         string         `gorm:"type:varchar(120)"`
	ZipCode      string         `gorm:"type:varchar(20)"`
	Country      string         `gorm:"type:varchar(120)"`
	Province     string         `gorm:"type:varchar(120)"`
	Role         string         `gorm:"type:varchar(20);not null;default:'user';index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
