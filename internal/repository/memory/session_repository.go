package memory

import (
	"time"

	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// EditorSessionRepository keeps editing sessions in process memory. Saving
// a session again extends its expiry.
type EditorSessionRepository struct {
	cache *cache.Cache
}

func NewEditorSessionRepository(ttl, cleanupInterval time.Duration) contract.EditorSessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &EditorSessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *EditorSessionRepository) Save(session *entity.EditorSession) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *EditorSessionRepository) Get(id uuid.UUID) (*entity.EditorSession, bool) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*entity.EditorSession), true
	}
	return nil, false
}

func (r *EditorSessionRepository) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}

func (r *EditorSessionRepository) CountByUser(userId uuid.UUID) int {
	count := 0
	for _, item := range r.cache.Items() {
		if s, ok := item.Object.(*entity.EditorSession); ok && s.UserId == userId {
			count++
		}
	}
	return count
}
