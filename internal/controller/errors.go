package controller

import (
	"errors"

	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/pkg/serverutils"
	"blog-admin-be/internal/service"
	"blog-admin-be/pkg/richtext"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{service.ErrForbidden, fiber.StatusForbidden},
	{service.ErrUserNotFound, fiber.StatusNotFound},
	{service.ErrPostNotFound, fiber.StatusNotFound},
	{service.ErrCommentNotFound, fiber.StatusNotFound},
	{service.ErrSessionNotFound, fiber.StatusNotFound},
	{logger.ErrLogNotFound, fiber.StatusNotFound},
	{service.ErrEmailExists, fiber.StatusConflict},
	{service.ErrSessionLimit, fiber.StatusTooManyRequests},
	{service.ErrCannotDeleteSelf, fiber.StatusBadRequest},
	{service.ErrUnsupportedFormat, fiber.StatusBadRequest},
	{service.ErrInvalidFilter, fiber.StatusBadRequest},
	{service.ErrUnknownFormat, fiber.StatusBadRequest},
	{service.ErrSessionUnbound, fiber.StatusBadRequest},
	{richtext.ErrInvalidSelection, fiber.StatusBadRequest},
}

// mapError converts service errors into fiber errors so the error handler
// middleware can render them. Unknown errors pass through as 500s.
func mapError(err error) error {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return fiber.NewError(m.status, err.Error())
		}
	}
	return err
}

func parseId(ctx *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(param))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+param)
	}
	return id, nil
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// currentActor builds the caller identity from the JWT locals.
func currentActor(ctx *fiber.Ctx) (entity.Actor, error) {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return entity.Actor{}, err
	}
	role, _ := ctx.Locals("role").(string)
	return entity.Actor{Id: userId, Role: entity.UserRole(role)}, nil
}
