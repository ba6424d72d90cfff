package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin user"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(signupRequest{Email: "a@b.co"}))

	err := ValidateRequest(signupRequest{Email: "nope", Role: "root"})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "must be a valid email", vErr.Fields["Email"])
	assert.Equal(t, "must be one of admin user", vErr.Fields["Role"])
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/validation", func(ctx *fiber.Ctx) error {
		return ValidateRequest(signupRequest{})
	})
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Post not found")
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/me", JwtMiddleware, func(ctx *fiber.Ctx) error {
		id, err := CurrentUserId(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("me", id.String()))
	})
	app.Get("/admin", JwtMiddleware, AdminMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse[any]("ok", nil))
	})
	return app
}

func decode[T any](t *testing.T, app *fiber.App, path, token string) (int, BaseResponse[T]) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body BaseResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := newTestApp()

	code, body := decode[map[string]string](t, app, "/validation", "")
	assert.Equal(t, 400, code)
	assert.Equal(t, "is required", body.Data["Email"])

	code, anyBody := decode[any](t, app, "/missing", "")
	assert.Equal(t, 404, code)
	assert.Equal(t, "Post not found", anyBody.Message)

	code, anyBody = decode[any](t, app, "/boom", "")
	assert.Equal(t, 500, code)
	assert.False(t, anyBody.Success)
}

func TestJwtAndAdminMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()
	userId := uuid.New()

	userToken, err := SignToken(userId, "user", time.Hour)
	require.NoError(t, err)
	adminToken, err := SignToken(uuid.New(), "admin", time.Hour)
	require.NoError(t, err)
	expired, err := SignToken(userId, "admin", -time.Hour)
	require.NoError(t, err)

	code, body := decode[string](t, app, "/me", userToken)
	assert.Equal(t, 200, code)
	assert.Equal(t, userId.String(), body.Data)

	code, _ = decode[any](t, app, "/me", "")
	assert.Equal(t, 401, code)

	code, _ = decode[any](t, app, "/me", expired)
	assert.Equal(t, 401, code)

	code, _ = decode[any](t, app, "/admin", userToken)
	assert.Equal(t, 403, code)

	code, _ = decode[any](t, app, "/admin", adminToken)
	assert.Equal(t, 200, code)
}

func TestParseToken_RejectsOtherSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "one")
	token, err := SignToken(uuid.New(), "user", time.Hour)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "two")
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
