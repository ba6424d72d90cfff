package dto

import (
	"time"

	"blog-admin-be/pkg/richtext"

	"github.com/google/uuid"
)

type OpenEditorSessionRequest struct {
	PostId  *uuid.UUID `json:"post_id,omitempty"`
	Content *string    `json:"content,omitempty"`
}

type ActiveFormats struct {
	Marks  map[string]bool `json:"marks"`
	Blocks []string        `json:"blocks"`
	Align  string          `json:"align,omitempty"`
}

type EditorSessionResponse struct {
	Id        uuid.UUID           `json:"id"`
	PostId    *uuid.UUID          `json:"post_id,omitempty"`
	Document  richtext.Document   `json:"document"`
	Selection *richtext.Selection `json:"selection,omitempty"`
	Active    ActiveFormats       `json:"active"`
	Dirty     bool                `json:"dirty"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// SelectionRequest sets the selection. All selects the whole document and
// Clear removes the selection; otherwise Anchor and Focus are used.
type SelectionRequest struct {
	Anchor richtext.Point `json:"anchor"`
	Focus  richtext.Point `json:"focus"`
	All    bool           `json:"all,omitempty"`
	Clear  bool           `json:"clear,omitempty"`
}

type SaveEditorSessionResponse struct {
	PostId  uuid.UUID `json:"post_id"`
	Content string    `json:"content"`
}
