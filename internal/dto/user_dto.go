package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	Email     string     `json:"email"`
	Address   string     `json:"address,omitempty"`
	City      string     `json:"city,omitempty"`
	ZipCode   string     `json:"zip_code,omitempty"`
	Country   string     `json:"country,omitempty"`
	Province  string     `json:"province,omitempty"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Surname  string `json:"surname" validate:"max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address"`
	City     string `json:"city"`
	ZipCode  string `json:"zip_code"`
	Country  string `json:"country"`
	Province string `json:"province"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// UpdateUserRequest is a partial update; nil fields are left unchanged.
type UpdateUserRequest struct {
	Id       uuid.UUID `json:"-"`
	Name     *string   `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Surname  *string   `json:"surname,omitempty" validate:"omitempty,max=120"`
	Email    *string   `json:"email,omitempty" validate:"omitempty,email"`
	Password *string   `json:"password,omitempty" validate:"omitempty,min=6"`
	Address  *string   `json:"address,omitempty"`
	City     *string   `json:"city,omitempty"`
	ZipCode  *string   `json:"zip_code,omitempty"`
	Country  *string   `json:"country,omitempty"`
	Province *string   `json:"province,omitempty"`
	Role     *string   `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
}

type UserListQuery struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Q        string `query:"q"`
	Sort     string `query:"sort"`
	Desc     bool   `query:"desc"`
	Role     string `query:"role"`
}
