package client

import (
	"context"
	"sync"

	"blog-admin-be/internal/dto"
	"blog-admin-be/pkg/crudstate"

	"github.com/google/uuid"
)

type UserStore struct {
	client *Client
	State  *crudstate.Tracker

	mu    sync.RWMutex
	users []dto.UserResponse
	user  *dto.UserResponse
	total int64
}

func NewUserStore(c *Client) *UserStore {
	return &UserStore{client: c, State: crudstate.NewTracker()}
}

func (s *UserStore) Users() []dto.UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.UserResponse, len(s.users))
	copy(out, s.users)
	return out
}

func (s *UserStore) User() *dto.UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *UserStore) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

func (s *UserStore) GetUserById(id uuid.UUID) (dto.UserResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Id == id {
			return u, true
		}
	}
	return dto.UserResponse{}, false
}

func (s *UserStore) GetUsersByRole(role string) []dto.UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []dto.UserResponse
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

func (s *UserStore) FetchUsers(ctx context.Context, query dto.UserListQuery) error {
	return s.State.Run(crudstate.OpFetch, "Users fetched successfully", func() error {
		page, err := s.client.ListUsers(ctx, query)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.users = page.Items
		s.total = page.Total
		s.mu.Unlock()
		return nil
	})
}

func (s *UserStore) FetchUser(ctx context.Context, id uuid.UUID) error {
	return s.State.Run(crudstate.OpItem, "User fetched successfully", func() error {
		user, err := s.client.GetUser(ctx, id)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.user = user
		s.mu.Unlock()
		return nil
	})
}

func (s *UserStore) AddUser(ctx context.Context, req dto.CreateUserRequest) error {
	return s.State.Run(crudstate.OpCreate, "User added!", func() error {
		user, err := s.client.CreateUser(ctx, req)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.users = append(s.users, *user)
		s.total++
		s.mu.Unlock()
		return nil
	})
}

func (s *UserStore) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) error {
	return s.State.Run(crudstate.OpUpdate, "User updated!", func() error {
		user, err := s.client.UpdateUser(ctx, id, req)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.users {
			if s.users[i].Id == id {
				s.users[i] = *user
			}
		}
		if s.user != nil && s.user.Id == id {
			s.user = user
		}
		return nil
	})
}

func (s *UserStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.State.Run(crudstate.OpDelete, "User deleted", func() error {
		if err := s.client.DeleteUser(ctx, id); err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		kept := s.users[:0]
		for _, u := range s.users {
			if u.Id != id {
				kept = append(kept, u)
			}
		}
		if len(kept) < len(s.users) {
			s.total--
		}
		s.users = kept
		return nil
	})
}
