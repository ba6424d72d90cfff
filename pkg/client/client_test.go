package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"blog-admin-be/internal/dto"
	"blog-admin-be/pkg/crudstate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves the subset of routes the stores use from memory.
type fakeAPI struct {
	mu       sync.Mutex
	posts    map[uuid.UUID]dto.PostResponse
	users    map[uuid.UUID]dto.UserResponse
	lastAuth string
	lastURL  string
}

func writeJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": status < 300,
		"code":    status,
		"message": message,
		"data":    data,
	})
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{
		posts: make(map[uuid.UUID]dto.PostResponse),
		users: make(map[uuid.UUID]dto.UserResponse),
	}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret123" {
			writeJSON(w, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		writeJSON(w, http.StatusOK, "Login successful", dto.LoginResponse{
			AccessToken: "token-123",
			User:        dto.UserResponse{Id: uuid.New(), Email: req.Email, Role: "admin"},
		})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "Logged out successfully", nil)
	})

	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		api.lastAuth = r.Header.Get("Authorization")
		api.lastURL = r.URL.RawQuery
		items := []dto.PostResponse{}
		for _, p := range api.posts {
			items = append(items, p)
		}
		writeJSON(w, http.StatusOK, "Success list posts", dto.PageResponse[dto.PostResponse]{
			Items: items, Total: int64(len(items)), Page: 1, PageSize: 10,
		})
	})
	mux.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreatePostRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Title == "" {
			writeJSON(w, http.StatusBadRequest, "Title is required", nil)
			return
		}
		post := dto.PostResponse{Id: uuid.New(), Title: req.Title, Category: req.Category, CreatedAt: time.Now()}
		api.mu.Lock()
		api.posts[post.Id] = post
		api.mu.Unlock()
		writeJSON(w, http.StatusCreated, "Success create post", post)
	})
	mux.HandleFunc("GET /api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		post, ok := api.posts[uuid.MustParse(r.PathValue("id"))]
		if !ok {
			writeJSON(w, http.StatusNotFound, "post not found", nil)
			return
		}
		writeJSON(w, http.StatusOK, "Success show post", post)
	})
	mux.HandleFunc("PUT /api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req dto.UpdatePostRequest
		json.NewDecoder(r.Body).Decode(&req)
		api.mu.Lock()
		defer api.mu.Unlock()
		id := uuid.MustParse(r.PathValue("id"))
		post, ok := api.posts[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, "post not found", nil)
			return
		}
		if req.Title != nil {
			post.Title = *req.Title
		}
		now := time.Now()
		post.UpdatedAt = &now
		api.posts[id] = post
		writeJSON(w, http.StatusOK, "Success update post", post)
	})
	mux.HandleFunc("DELETE /api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		id := uuid.MustParse(r.PathValue("id"))
		if _, ok := api.posts[id]; !ok {
			writeJSON(w, http.StatusNotFound, "post not found", nil)
			return
		}
		delete(api.posts, id)
		writeJSON(w, http.StatusOK, "Success delete post", nil)
	})
	mux.HandleFunc("POST /api/posts/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateCommentRequest
		json.NewDecoder(r.Body).Decode(&req)
		api.mu.Lock()
		defer api.mu.Unlock()
		id := uuid.MustParse(r.PathValue("id"))
		post := api.posts[id]
		comment := dto.CommentResponse{Id: uuid.New(), PostId: id, Title: req.Title, Content: req.Content}
		post.Comments = append(post.Comments, comment)
		api.posts[id] = post
		writeJSON(w, http.StatusCreated, "Success create comment", comment)
	})

	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		items := []dto.UserResponse{}
		for _, u := range api.users {
			items = append(items, u)
		}
		writeJSON(w, http.StatusOK, "Success list users", dto.PageResponse[dto.UserResponse]{Items: items, Total: int64(len(items))})
	})
	mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateUserRequest
		json.NewDecoder(r.Body).Decode(&req)
		api.mu.Lock()
		defer api.mu.Unlock()
		for _, u := range api.users {
			if u.Email == req.Email {
				writeJSON(w, http.StatusConflict, "email already registered", nil)
				return
			}
		}
		role := req.Role
		if role == "" {
			role = "user"
		}
		user := dto.UserResponse{Id: uuid.New(), Name: req.Name, Email: req.Email, Role: role}
		api.users[user.Id] = user
		writeJSON(w, http.StatusCreated, "Success create user", user)
	})
	mux.HandleFunc("PUT /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req dto.UpdateUserRequest
		json.NewDecoder(r.Body).Decode(&req)
		api.mu.Lock()
		defer api.mu.Unlock()
		id := uuid.MustParse(r.PathValue("id"))
		user := api.users[id]
		if req.City != nil {
			user.City = *req.City
		}
		api.users[id] = user
		writeJSON(w, http.StatusOK, "Success update user", user)
	})
	mux.HandleFunc("DELETE /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		delete(api.users, uuid.MustParse(r.PathValue("id")))
		writeJSON(w, http.StatusOK, "Success delete user", nil)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api, srv
}

func TestClient_APIError(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := New(srv.URL + "/api")

	_, err := c.GetPost(context.Background(), uuid.New())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "post not found", crudstate.ErrorMessage(err))
}

func TestAuthStore(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := New(srv.URL + "/api")
	auth := NewAuthStore(c)
	ctx := context.Background()

	err := auth.Login(ctx, "admin@blog.test", "wrong")
	assert.Error(t, err)
	assert.Equal(t, "invalid email or password", auth.State.Get(OpLogin).Error)
	assert.False(t, auth.IsAuthenticated())

	require.NoError(t, auth.Login(ctx, "admin@blog.test", "secret123"))
	assert.True(t, auth.IsAuthenticated())
	assert.True(t, auth.IsAdmin())
	assert.Equal(t, "token-123", c.Token())

	posts := NewPostStore(c)
	require.NoError(t, posts.FetchPosts(ctx, dto.PostListQuery{}))
	assert.Equal(t, "Bearer token-123", api.lastAuth)

	require.NoError(t, auth.Logout(ctx))
	assert.False(t, auth.IsAuthenticated())
	assert.Empty(t, c.Token())
	assert.True(t, auth.State.Get(OpLogin).Idle())
}

func TestPostStore(t *testing.T) {
	_, srv := newFakeAPI(t)
	store := NewPostStore(New(srv.URL+"/api", WithToken("t")))
	ctx := context.Background()

	require.NoError(t, store.AddPost(ctx, dto.CreatePostRequest{Title: "First", Category: "Food"}))
	require.NoError(t, store.AddPost(ctx, dto.CreatePostRequest{Title: "Second", Category: "Travel"}))
	assert.Equal(t, crudstate.State{Success: "Post added successfully"}, store.State.Get(crudstate.OpCreate))

	err := store.AddPost(ctx, dto.CreatePostRequest{})
	assert.Error(t, err)
	assert.Equal(t, "Title is required", store.State.Get(crudstate.OpCreate).Error)
	assert.Len(t, store.Posts(), 2)

	require.NoError(t, store.FetchPosts(ctx, dto.PostListQuery{}))
	assert.Equal(t, int64(2), store.Total())
	food := store.GetPostsByCategory("Food")
	require.Len(t, food, 1)
	id := food[0].Id

	title := "First, edited"
	require.NoError(t, store.UpdatePost(ctx, id, dto.UpdatePostRequest{Title: &title}))
	updated, ok := store.GetPostById(id)
	require.True(t, ok)
	assert.Equal(t, title, updated.Title)
	assert.NotNil(t, updated.UpdatedAt)

	require.NoError(t, store.FetchPost(ctx, id))
	require.NoError(t, store.AddComment(ctx, id, dto.CreateCommentRequest{Title: "Hi", Content: "Nice"}))
	require.Len(t, store.Post().Comments, 1)
	updated, _ = store.GetPostById(id)
	assert.Len(t, updated.Comments, 1)

	require.NoError(t, store.DeletePost(ctx, id))
	assert.Nil(t, store.Post())
	_, ok = store.GetPostById(id)
	assert.False(t, ok)
	assert.Equal(t, int64(1), store.Total())

	err = store.DeletePost(ctx, id)
	assert.Error(t, err)
	assert.Equal(t, "post not found", store.State.Get(crudstate.OpDelete).Error)
	assert.Equal(t, "Post updated successfully", store.State.Get(crudstate.OpUpdate).Success, "other slots keep their outcome")
}

func TestUserStore(t *testing.T) {
	_, srv := newFakeAPI(t)
	store := NewUserStore(New(srv.URL + "/api"))
	ctx := context.Background()

	require.NoError(t, store.AddUser(ctx, dto.CreateUserRequest{Name: "Ada", Email: "ada@blog.test", Password: "secret123", Role: "admin"}))
	require.NoError(t, store.AddUser(ctx, dto.CreateUserRequest{Name: "Uma", Email: "uma@blog.test", Password: "secret123"}))

	err := store.AddUser(ctx, dto.CreateUserRequest{Name: "Dup", Email: "uma@blog.test", Password: "secret123"})
	assert.Error(t, err)
	assert.Equal(t, "email already registered", store.State.Get(crudstate.OpCreate).Error)

	require.NoError(t, store.FetchUsers(ctx, dto.UserListQuery{}))
	assert.Len(t, store.Users(), 2)
	admins := store.GetUsersByRole("admin")
	require.Len(t, admins, 1)

	city := "Lisbon"
	require.NoError(t, store.UpdateUser(ctx, admins[0].Id, dto.UpdateUserRequest{City: &city}))
	u, ok := store.GetUserById(admins[0].Id)
	require.True(t, ok)
	assert.Equal(t, "Lisbon", u.City)

	require.NoError(t, store.DeleteUser(ctx, admins[0].Id))
	assert.Len(t, store.Users(), 1)
	assert.Equal(t, "User deleted", store.State.Get(crudstate.OpDelete).Success)
}

func TestTableState_Queries(t *testing.T) {
	api, srv := newFakeAPI(t)
	table := NewTableState()

	assert.Equal(t, dto.PostListQuery{Page: 1, PageSize: DefaultPageSize}, table.PostQuery())

	table.SetPageIndex(2)
	table.SetPageSize(25)
	table.SetGlobalFilter("ramen")
	table.SetColumnFilter("category", "Food")
	table.SetColumnFilter("role", "admin")
	table.SetSorting([]SortRule{{Id: "title", Desc: true}, {Id: "created_at"}})

	q := table.PostQuery()
	assert.Equal(t, dto.PostListQuery{Page: 3, PageSize: 25, Q: "ramen", Sort: "title", Desc: true, Category: "Food"}, q)
	assert.Equal(t, "admin", table.UserQuery().Role)

	table.SetColumnFilter("category", "")
	table.SetPageIndex(-4)
	table.SetPageSize(0)
	assert.Equal(t, "", table.PostQuery().Category)
	assert.Equal(t, 0, table.PageIndex())
	assert.Equal(t, DefaultPageSize, table.PageSize())

	_, err := New(srv.URL+"/api").ListPosts(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "category=Food&desc=true&page=3&page_size=25&q=ramen&sort=title", api.lastURL)
}
