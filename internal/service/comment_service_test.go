package service

import (
	"testing"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"
	"blog-admin-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "author@example.com", entity.UserRoleUser)
	reader := env.seedUser(t, "reader@example.com", entity.UserRoleUser)
	admin := env.seedUser(t, "admin@example.com", entity.UserRoleAdmin)
	post := env.seedPost(t, author, "Commented", headingDoc)
	svc := NewCommentService(env.uow, env.events, env.log)

	first, err := svc.Create(env.ctx, reader, &dto.CreateCommentRequest{PostId: post.Id, Title: "First", Content: "Hello"})
	require.NoError(t, err)
	_, err = svc.Create(env.ctx, author, &dto.CreateCommentRequest{PostId: post.Id, Title: "Reply", Content: "Thanks"})
	require.NoError(t, err)

	_, err = svc.Create(env.ctx, reader, &dto.CreateCommentRequest{PostId: uuid.New(), Title: "Lost", Content: "?"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	shown, err := env.postService().Show(env.ctx, post.Id)
	require.NoError(t, err)
	require.Len(t, shown.Comments, 2)
	assert.Equal(t, "First", shown.Comments[0].Title)

	t.Run("update keeps unset fields", func(t *testing.T) {
		content := "Hello again"
		updated, err := svc.Update(env.ctx, reader, &dto.UpdateCommentRequest{PostId: post.Id, CommentId: first.Id, Content: &content})
		require.NoError(t, err)
		assert.Equal(t, "First", updated.Title)
		assert.Equal(t, "Hello again", updated.Content)
	})

	t.Run("only owner or admin may modify", func(t *testing.T) {
		title := "Hijacked"
		_, err := svc.Update(env.ctx, author, &dto.UpdateCommentRequest{PostId: post.Id, CommentId: first.Id, Title: &title})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.ErrorIs(t, svc.Delete(env.ctx, author, post.Id, first.Id), ErrForbidden)
	})

	t.Run("comment must belong to the post", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(env.ctx, admin, uuid.New(), first.Id), ErrCommentNotFound)
	})

	require.NoError(t, svc.Delete(env.ctx, admin, post.Id, first.Id))
	shown, err = env.postService().Show(env.ctx, post.Id)
	require.NoError(t, err)
	assert.Len(t, shown.Comments, 1)

	assert.Contains(t, env.events.Types(), events.CommentCreated)
	assert.Contains(t, env.events.Types(), events.CommentUpdated)
	assert.Contains(t, env.events.Types(), events.CommentDeleted)
}
