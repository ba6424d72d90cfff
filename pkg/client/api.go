package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/pkg/logger"

	"github.com/google/uuid"
)

func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var res dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	c.SetToken(res.AccessToken)
	return &res, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var res dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Posts

func postQuery(q dto.PostListQuery) url.Values {
	v := listValues(q.Page, q.PageSize, q.Q, q.Sort, q.Desc)
	setIf(v, "category", q.Category)
	setIf(v, "status", q.Status)
	setIf(v, "user_id", q.UserId)
	return v
}

func (c *Client) ListPosts(ctx context.Context, query dto.PostListQuery) (*dto.PageResponse[dto.PostResponse], error) {
	var res dto.PageResponse[dto.PostResponse]
	if err := c.do(ctx, http.MethodGet, "/posts", postQuery(query), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetPost(ctx context.Context, id uuid.UUID) (*dto.PostResponse, error) {
	var res dto.PostResponse
	if err := c.do(ctx, http.MethodGet, "/posts/"+id.String(), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreatePost(ctx context.Context, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	var res dto.PostResponse
	if err := c.do(ctx, http.MethodPost, "/posts", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdatePost(ctx context.Context, id uuid.UUID, req dto.UpdatePostRequest) (*dto.PostResponse, error) {
	var res dto.PostResponse
	if err := c.do(ctx, http.MethodPut, "/posts/"+id.String(), nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeletePost(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+id.String(), nil, nil, nil)
}

func (c *Client) PostContent(ctx context.Context, id uuid.UUID, format string) (*dto.PostContentResponse, error) {
	var res dto.PostContentResponse
	query := url.Values{}
	setIf(query, "format", format)
	if err := c.do(ctx, http.MethodGet, "/posts/"+id.String()+"/content", query, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Comments

func commentPath(postId uuid.UUID) string {
	return "/posts/" + postId.String() + "/comments"
}

func (c *Client) CreateComment(ctx context.Context, postId uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	var res dto.CommentResponse
	if err := c.do(ctx, http.MethodPost, commentPath(postId), nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdateComment(ctx context.Context, postId, commentId uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	var res dto.CommentResponse
	if err := c.do(ctx, http.MethodPut, commentPath(postId)+"/"+commentId.String(), nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteComment(ctx context.Context, postId, commentId uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, commentPath(postId)+"/"+commentId.String(), nil, nil, nil)
}

// Users

func userQuery(q dto.UserListQuery) url.Values {
	v := listValues(q.Page, q.PageSize, q.Q, q.Sort, q.Desc)
	setIf(v, "role", q.Role)
	return v
}

func (c *Client) ListUsers(ctx context.Context, query dto.UserListQuery) (*dto.PageResponse[dto.UserResponse], error) {
	var res dto.PageResponse[dto.UserResponse]
	if err := c.do(ctx, http.MethodGet, "/users", userQuery(query), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	var res dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/"+id.String(), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	var res dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var res dto.UserResponse
	if err := c.do(ctx, http.MethodPut, "/users/"+id.String(), nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id.String(), nil, nil, nil)
}

// Content and admin

func (c *Client) RenderContent(ctx context.Context, content, format string) (*dto.RenderContentResponse, error) {
	var res dto.RenderContentResponse
	err := c.do(ctx, http.MethodPost, "/content/render", nil, dto.RenderContentRequest{Content: content, Format: format}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var res dto.DashboardStatsResponse
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Logs(ctx context.Context, query dto.LogListQuery) ([]logger.LogEntry, error) {
	v := url.Values{}
	setIf(v, "level", query.Level)
	if query.Limit > 0 {
		v.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		v.Set("offset", strconv.Itoa(query.Offset))
	}

	var res []logger.LogEntry
	if err := c.do(ctx, http.MethodGet, "/admin/logs", v, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func listValues(page, pageSize int, q, sort string, desc bool) url.Values {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		v.Set("page_size", strconv.Itoa(pageSize))
	}
	setIf(v, "q", q)
	setIf(v, "sort", sort)
	if desc {
		v.Set("desc", "true")
	}
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
