package service

import (
	"errors"
	"testing"
	"time"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/pkg/serverutils"
	"blog-admin-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendWelcome(toEmail, name string) error {
	m.sent = append(m.sent, toEmail)
	return m.err
}

func TestUserService_Create(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{}
	svc := NewUserService(env.uow, mailer, env.events, env.log)

	user, err := svc.Create(env.ctx, &dto.CreateUserRequest{
		Name:     "Grace",
		Surname:  "Hopper",
		Email:    " Grace@Example.com ",
		Password: "cobol-rules",
		City:     "Arlington",
	})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", user.Email)
	assert.Equal(t, "user", user.Role)
	assert.Equal(t, []string{"grace@example.com"}, mailer.sent)
	assert.Equal(t, []string{events.UserCreated}, env.events.Types())

	_, err = svc.Create(env.ctx, &dto.CreateUserRequest{Name: "Dup", Email: "GRACE@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserService_CreateSurvivesMailFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.uow, &fakeMailer{err: errors.New("smtp down")}, nil, env.log)

	_, err := svc.Create(env.ctx, &dto.CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "engine1"})
	require.NoError(t, err)

	logs, err := env.log.GetLogs("WARN", 5, 0)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	assert.Equal(t, "Failed to send welcome email", logs[0].Message)
}

func TestUserService_ListAndShow(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.uow, nil, nil, env.log)
	admin := env.seedUser(t, "root@example.com", entity.UserRoleAdmin)
	env.seedUser(t, "zoe@example.com", entity.UserRoleUser)
	env.seedUser(t, "amy@example.com", entity.UserRoleUser)

	page, err := svc.List(env.ctx, dto.UserListQuery{Role: "user", Sort: "email"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, "amy@example.com", page.Items[0].Email)

	page, err = svc.List(env.ctx, dto.UserListQuery{Q: "ZOE"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	shown, err := svc.Show(env.ctx, admin.Id)
	require.NoError(t, err)
	assert.Equal(t, "admin", shown.Role)

	_, err = svc.Show(env.ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateIsPartial(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.uow, nil, env.events, env.log)
	auth := NewAuthService(env.uow, 0, nil, env.log)
	target := env.seedUser(t, "target@example.com", entity.UserRoleUser)
	env.seedUser(t, "taken@example.com", entity.UserRoleUser)

	city := "Porto"
	updated, err := svc.Update(env.ctx, &dto.UpdateUserRequest{Id: target.Id, City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Porto", updated.City)
	assert.Equal(t, "target@example.com", updated.Email)

	taken := "taken@example.com"
	_, err = svc.Update(env.ctx, &dto.UpdateUserRequest{Id: target.Id, Email: &taken})
	assert.ErrorIs(t, err, ErrEmailExists)

	password := "new-password"
	_, err = svc.Update(env.ctx, &dto.UpdateUserRequest{Id: target.Id, Password: &password})
	require.NoError(t, err)
	_, err = auth.Login(env.ctx, &dto.LoginRequest{Email: "target@example.com", Password: "new-password"})
	require.NoError(t, err)

	_, err = svc.Update(env.ctx, &dto.UpdateUserRequest{Id: uuid.New(), City: &city})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.uow, nil, env.events, env.log)
	admin := env.seedUser(t, "root@example.com", entity.UserRoleAdmin)
	victim := env.seedUser(t, "victim@example.com", entity.UserRoleUser)

	assert.ErrorIs(t, svc.Delete(env.ctx, admin, admin.Id), ErrCannotDeleteSelf)
	require.NoError(t, svc.Delete(env.ctx, admin, victim.Id))

	_, err := svc.Show(env.ctx, victim.Id)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(env.ctx, admin, victim.Id), ErrUserNotFound)
	assert.Contains(t, env.events.Types(), events.UserDeleted)
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.uow, time.Hour, env.events, env.log)
	admin := env.seedUser(t, "root@example.com", entity.UserRoleAdmin)

	resp, err := svc.Login(env.ctx, &dto.LoginRequest{Email: "ROOT@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, admin.Id, resp.User.Id)

	claims, err := serverutils.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, admin.Id.String(), claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, []string{events.UserLogin}, env.events.Types())

	_, err = svc.Login(env.ctx, &dto.LoginRequest{Email: "root@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(env.ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	me, err := svc.Me(env.ctx, admin.Id)
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", me.Email)
}
