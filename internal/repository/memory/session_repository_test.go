package memory

import (
	"testing"
	"time"

	"blog-admin-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorSessionRepository(t *testing.T) {
	repo := NewEditorSessionRepository(time.Hour, time.Minute)
	owner := uuid.New()

	a := &entity.EditorSession{Id: uuid.New(), UserId: owner}
	b := &entity.EditorSession{Id: uuid.New(), UserId: owner}
	c := &entity.EditorSession{Id: uuid.New(), UserId: uuid.New()}
	repo.Save(a)
	repo.Save(b)
	repo.Save(c)

	got, ok := repo.Get(a.Id)
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, 2, repo.CountByUser(owner))

	repo.Delete(a.Id)
	_, ok = repo.Get(a.Id)
	assert.False(t, ok)
	assert.Equal(t, 1, repo.CountByUser(owner))
}

func TestEditorSessionRepository_Expiry(t *testing.T) {
	repo := NewEditorSessionRepository(20*time.Millisecond, time.Hour)
	s := &entity.EditorSession{Id: uuid.New()}
	repo.Save(s)

	time.Sleep(40 * time.Millisecond)
	_, ok := repo.Get(s.Id)
	assert.False(t, ok)
}
