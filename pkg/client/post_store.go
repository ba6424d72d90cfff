package client

import (
	"context"
	"sync"

	"blog-admin-be/internal/dto"
	"blog-admin-be/pkg/crudstate"

	"github.com/google/uuid"
)

// OpComment is the slot shared by the comment operations of PostStore.
const OpComment crudstate.Op = "comment"

// PostStore caches posts and records the outcome of each operation in its
// own crudstate slot. Failures are recorded and returned, never panicked.
type PostStore struct {
	client *Client
	State  *crudstate.Tracker

	mu    sync.RWMutex
	posts []dto.PostResponse
	post  *dto.PostResponse
	total int64
}

func NewPostStore(c *Client) *PostStore {
	return &PostStore{client: c, State: crudstate.NewTracker()}
}

func (s *PostStore) Posts() []dto.PostResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.PostResponse, len(s.posts))
	copy(out, s.posts)
	return out
}

// Post is the post loaded by the last FetchPost.
func (s *PostStore) Post() *dto.PostResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.post
}

func (s *PostStore) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

func (s *PostStore) GetPostById(id uuid.UUID) (dto.PostResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.Id == id {
			return p, true
		}
	}
	return dto.PostResponse{}, false
}

func (s *PostStore) GetPostsByCategory(category string) []dto.PostResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []dto.PostResponse
	for _, p := range s.posts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (s *PostStore) FetchPosts(ctx context.Context, query dto.PostListQuery) error {
	return s.State.Run(crudstate.OpFetch, "Posts fetched successfully", func() error {
		page, err := s.client.ListPosts(ctx, query)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.posts = page.Items
		s.total = page.Total
		s.mu.Unlock()
		return nil
	})
}

func (s *PostStore) FetchPost(ctx context.Context, id uuid.UUID) error {
	return s.State.Run(crudstate.OpItem, "Post fetched successfully", func() error {
		post, err := s.client.GetPost(ctx, id)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.post = post
		s.mu.Unlock()
		return nil
	})
}

func (s *PostStore) AddPost(ctx context.Context, req dto.CreatePostRequest) error {
	return s.State.Run(crudstate.OpCreate, "Post added successfully", func() error {
		post, err := s.client.CreatePost(ctx, req)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.posts = append(s.posts, *post)
		s.total++
		s.mu.Unlock()
		return nil
	})
}

func (s *PostStore) UpdatePost(ctx context.Context, id uuid.UUID, req dto.UpdatePostRequest) error {
	return s.State.Run(crudstate.OpUpdate, "Post updated successfully", func() error {
		post, err := s.client.UpdatePost(ctx, id, req)
		if err != nil {
			return err
		}
		s.replace(*post)
		return nil
	})
}

func (s *PostStore) DeletePost(ctx context.Context, id uuid.UUID) error {
	return s.State.Run(crudstate.OpDelete, "Post deleted!", func() error {
		if err := s.client.DeletePost(ctx, id); err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		kept := s.posts[:0]
		for _, p := range s.posts {
			if p.Id != id {
				kept = append(kept, p)
			}
		}
		if len(kept) < len(s.posts) {
			s.total--
		}
		s.posts = kept
		if s.post != nil && s.post.Id == id {
			s.post = nil
		}
		return nil
	})
}

func (s *PostStore) AddComment(ctx context.Context, postId uuid.UUID, req dto.CreateCommentRequest) error {
	return s.State.Run(OpComment, "Comment added", func() error {
		if _, err := s.client.CreateComment(ctx, postId, req); err != nil {
			return err
		}
		return s.refresh(ctx, postId)
	})
}

func (s *PostStore) UpdateComment(ctx context.Context, postId, commentId uuid.UUID, req dto.UpdateCommentRequest) error {
	return s.State.Run(OpComment, "Comment updated", func() error {
		if _, err := s.client.UpdateComment(ctx, postId, commentId, req); err != nil {
			return err
		}
		return s.refresh(ctx, postId)
	})
}

func (s *PostStore) DeleteComment(ctx context.Context, postId, commentId uuid.UUID) error {
	return s.State.Run(OpComment, "Comment deleted", func() error {
		if err := s.client.DeleteComment(ctx, postId, commentId); err != nil {
			return err
		}
		return s.refresh(ctx, postId)
	})
}

// refresh reloads a post after a comment change so the cached list and the
// current post carry the server's comment list.
func (s *PostStore) refresh(ctx context.Context, postId uuid.UUID) error {
	post, err := s.client.GetPost(ctx, postId)
	if err != nil {
		return err
	}
	s.replace(*post)
	return nil
}

func (s *PostStore) replace(post dto.PostResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].Id == post.Id {
			s.posts[i] = post
		}
	}
	if s.post != nil && s.post.Id == post.Id {
		p := post
		s.post = &p
	}
}
