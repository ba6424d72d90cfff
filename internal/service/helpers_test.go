package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/model"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/repository/unitofwork"
	"blog-admin-be/pkg/database"
	"blog-admin-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	gormlogger "gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

// recordingQueue stands in for the watermill publisher.
type recordingQueue struct {
	mu       sync.Mutex
	payloads []dto.PublishIndexPostMessage
}

func (q *recordingQueue) Publish(ctx context.Context, payload []byte) error {
	var msg dto.PublishIndexPostMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.payloads = append(q.payloads, msg)
	return nil
}

func (q *recordingQueue) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.payloads)
}

type testEnv struct {
	ctx     context.Context
	uow     unitofwork.RepositoryFactory
	log     *logger.ZapLogger
	events  *recordingPublisher
	queue   *recordingQueue
	content IContentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "service-test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLiteDB(dsn, gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "app.log"))
	return &testEnv{
		ctx:     context.Background(),
		uow:     unitofwork.NewRepositoryFactory(db),
		log:     log,
		events:  &recordingPublisher{},
		queue:   &recordingQueue{},
		content: NewContentService(log, 40),
	}
}

func (e *testEnv) postService() IPostService {
	return NewPostService(e.uow, e.content, e.queue, e.events, e.log)
}

func (e *testEnv) seedUser(t *testing.T, email string, role entity.UserRole) entity.Actor {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Name:         "Test",
		Surname:      email,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.uow.NewUnitOfWork(e.ctx).UserRepository().Create(e.ctx, user))
	return entity.Actor{Id: user.Id, Role: role}
}

func (e *testEnv) seedPost(t *testing.T, owner entity.Actor, title, content string) *dto.PostResponse {
	t.Helper()
	post, err := e.postService().Create(e.ctx, owner, &dto.CreatePostRequest{
		Title:    title,
		Content:  content,
		Category: string(entity.PostCategoryTravel),
	})
	require.NoError(t, err)
	return post
}

const headingDoc = `[{"type":"heading-one","children":[{"text":"Hello","bold":true}]},{"type":"paragraph","children":[{"text":"plain words here"}]}]`
