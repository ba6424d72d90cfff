package specification

import (
	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(email) = ?", toLower(s.Email))
}

type UserByRole struct {
	Role string
}

func (s UserByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

func UserSearch(q string) Specification {
	return SearchQuery{Query: q, Columns: []string{"name", "surname", "email", "city", "country"}}
}
