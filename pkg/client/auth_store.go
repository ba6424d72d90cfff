package client

import (
	"context"
	"sync"

	"blog-admin-be/internal/dto"
	"blog-admin-be/pkg/crudstate"
)

const (
	OpLogin  crudstate.Op = "login"
	OpLogout crudstate.Op = "logout"
)

// AuthStore keeps the signed-in user. The token lives on the Client so
// every store sharing it is authenticated at once.
type AuthStore struct {
	client *Client
	State  *crudstate.Tracker

	mu   sync.RWMutex
	user *dto.UserResponse
}

func NewAuthStore(c *Client) *AuthStore {
	return &AuthStore{client: c, State: crudstate.NewTracker()}
}

func (s *AuthStore) User() *dto.UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *AuthStore) IsAuthenticated() bool {
	return s.User() != nil && s.client.Token() != ""
}

func (s *AuthStore) IsAdmin() bool {
	u := s.User()
	return u != nil && u.Role == "admin"
}

func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	return s.State.Run(OpLogin, "Logged in", func() error {
		res, err := s.client.Login(ctx, email, password)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.user = &res.User
		s.mu.Unlock()
		return nil
	})
}

// Logout forgets the local session even when the server call fails.
func (s *AuthStore) Logout(ctx context.Context) error {
	return s.State.Run(OpLogout, "Logged out", func() error {
		err := s.client.Logout(ctx)
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		s.State.Reset(OpLogin)
		return err
	})
}
