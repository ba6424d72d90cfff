package service

import (
	"context"
	"testing"
	"time"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/repository/specification"
	"blog-admin-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumerService_IndexesPosts(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "author@example.com", entity.UserRoleUser)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	ctx, cancel := context.WithCancel(env.ctx)
	t.Cleanup(cancel)

	consumer := NewConsumerService(pubSub, "index-test", env.uow, env.content, env.events, env.log)
	require.NoError(t, consumer.Consume(ctx))

	posts := NewPostService(env.uow, env.content, NewPublisherService("index-test", pubSub), env.events, env.log)
	post, err := posts.Create(env.ctx, author, &dto.CreatePostRequest{
		Title:    "Indexed",
		Content:  headingDoc,
		Category: "Technology",
	})
	require.NoError(t, err)

	repo := env.uow.NewUnitOfWork(env.ctx).PostRepository()
	require.Eventually(t, func() bool {
		stored, err := repo.FindOne(env.ctx, specification.ByID{ID: post.Id})
		return err == nil && stored != nil && stored.IndexedAt != nil
	}, 2*time.Second, 20*time.Millisecond)

	stored, err := repo.FindOne(env.ctx, specification.ByID{ID: post.Id})
	require.NoError(t, err)
	assert.Equal(t, "Hello plain words here", stored.SearchText)
	assert.Equal(t, "Hello plain words here", stored.Excerpt)
	assert.Nil(t, stored.UpdatedAt, "indexing does not count as an edit")
	assert.Contains(t, env.events.Types(), events.PostIndexed)

	page, err := posts.List(env.ctx, dto.PostListQuery{Q: "plain words"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}
