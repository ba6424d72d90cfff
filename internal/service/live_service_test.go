package service

import (
	"context"
	"testing"
	"time"

	"blog-admin-be/pkg/events"
	pktNats "blog-admin-be/pkg/nats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriber struct {
	subject string
	durable string
	handler pktNats.EventHandler
}

func (s *fakeSubscriber) Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error {
	s.subject = subject
	s.durable = durableName
	s.handler = handler
	return nil
}

func TestLiveService_ForwardsEvents(t *testing.T) {
	env := newTestEnv(t)
	sub := &fakeSubscriber{}
	broadcaster := newRecordingBroadcaster()
	svc := NewLiveService(sub, broadcaster, env.log)

	require.NoError(t, svc.Start(env.ctx))
	assert.Equal(t, "events.>", sub.subject)
	assert.Empty(t, sub.durable)
	require.NotNil(t, sub.handler)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err := sub.handler(env.ctx, events.BaseEvent{
		Type:       events.PostCreated,
		Data:       map[string]interface{}{"title": "Fresh"},
		OccurredAt: at,
	})
	require.NoError(t, err)

	require.Len(t, broadcaster.local, 1)
	msg := broadcaster.local[0]
	assert.Equal(t, events.PostCreated, msg.Type)
	assert.Equal(t, "Fresh", msg.Data["title"])
	assert.Equal(t, at, msg.OccurredAt)
}

func TestLiveService_WithoutSubscriber(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLiveService(nil, newRecordingBroadcaster(), env.log)
	assert.NoError(t, svc.Start(env.ctx))
}
