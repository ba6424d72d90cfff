package service

import (
	"testing"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_Stats(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "root@example.com", entity.UserRoleAdmin)
	author := env.seedUser(t, "author@example.com", entity.UserRoleUser)
	posts := env.postService()

	for _, req := range []dto.CreatePostRequest{
		{Title: "A", Category: "Food", Status: "published"},
		{Title: "B", Category: "Food"},
		{Title: "C", Category: "Health", Status: "published"},
	} {
		req := req
		_, err := posts.Create(env.ctx, author, &req)
		require.NoError(t, err)
	}
	doomed := env.seedPost(t, author, "D", "")
	require.NoError(t, posts.Delete(env.ctx, admin, doomed.Id))

	_, err := NewCommentService(env.uow, nil, env.log).Create(env.ctx, admin, &dto.CreateCommentRequest{
		PostId: doomed.Id, Title: "x", Content: "y",
	})
	assert.ErrorIs(t, err, ErrPostNotFound)

	stats, err := NewAdminService(env.uow, env.log).Stats(env.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalAdmins)
	assert.EqualValues(t, 3, stats.TotalPosts)
	assert.EqualValues(t, 2, stats.PublishedPosts)
	assert.EqualValues(t, 1, stats.DraftPosts)
	assert.EqualValues(t, 0, stats.TotalComments)
	assert.Equal(t, map[string]int64{
		"Travel": 0, "Food": 2, "Fashion": 0, "Technology": 0, "Health": 1,
	}, stats.PostsByCategory)
}

func TestAdminService_Logs(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAdminService(env.uow, env.log)

	env.log.Info("TEST", "first", nil)
	env.log.Error("TEST", "second", map[string]interface{}{"n": 2})

	all, err := svc.GetSystemLogs(env.ctx, dto.LogListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Message)

	errorsOnly, err := svc.GetSystemLogs(env.ctx, dto.LogListQuery{Level: "error"})
	require.NoError(t, err)
	require.Len(t, errorsOnly, 1)

	detail, err := svc.GetLogDetail(env.ctx, errorsOnly[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "second", detail.Message)
}
