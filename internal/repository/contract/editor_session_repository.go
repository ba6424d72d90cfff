package contract

import (
	"blog-admin-be/internal/entity"

	"github.com/google/uuid"
)

type EditorSessionRepository interface {
	Save(session *entity.EditorSession)
	Get(id uuid.UUID) (*entity.EditorSession, bool)
	Delete(id uuid.UUID)
	CountByUser(userId uuid.UUID) int
}
