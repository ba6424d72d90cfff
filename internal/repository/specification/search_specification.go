package specification

import (
	"strings"

	"gorm.io/gorm"
)

func toLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SearchQuery matches any of Columns against Query, case-insensitively.
type SearchQuery struct {
	Query   string
	Columns []string
}

func (s SearchQuery) Apply(db *gorm.DB) *gorm.DB {
	if strings.TrimSpace(s.Query) == "" || len(s.Columns) == 0 {
		return db
	}
	pattern := likePattern(s.Query)

	clauses := make([]string, len(s.Columns))
	args := make([]interface{}, len(s.Columns))
	for i, col := range s.Columns {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
