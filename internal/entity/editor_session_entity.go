package entity

import (
	"sync"
	"time"

	"blog-admin-be/pkg/richtext"

	"github.com/google/uuid"
)

// EditorSession is a server-side editing session. Callers hold the embedded
// mutex while reading or changing Editor.
type EditorSession struct {
	sync.Mutex

	Id        uuid.UUID
	UserId    uuid.UUID
	PostId    *uuid.UUID
	Editor    *richtext.Session
	Dirty     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
