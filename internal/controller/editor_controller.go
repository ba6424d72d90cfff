package controller

import (
	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/pkg/serverutils"
	"blog-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEditorController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
	ToggleMark(ctx *fiber.Ctx) error
	ToggleBlock(ctx *fiber.Ctx) error
	ToggleAlign(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
}

type editorController struct {
	service service.IEditorService
}

func NewEditorController(service service.IEditorService) IEditorController {
	return &editorController{
		service: service,
	}
}

func (c *editorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/editor/sessions")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Open)
	h.Get(":sid", c.Show)
	h.Put(":sid/selection", c.Select)
	h.Post(":sid/marks/:mark", c.ToggleMark)
	h.Post(":sid/blocks/:block", c.ToggleBlock)
	h.Post(":sid/align/:align", c.ToggleAlign)
	h.Post(":sid/save", c.Save)
	h.Delete(":sid", c.Close)
}

// session resolves the caller and the :sid param shared by every session route.
func (c *editorController) session(ctx *fiber.Ctx) (entity.Actor, uuid.UUID, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return entity.Actor{}, uuid.Nil, err
	}
	sessionId, err := parseId(ctx, "sid")
	if err != nil {
		return entity.Actor{}, uuid.Nil, err
	}
	return actor, sessionId, nil
}

func (c *editorController) Open(ctx *fiber.Ctx) error {
	actor, err := currentActor(ctx)
	if err != nil {
		return err
	}

	var req dto.OpenEditorSessionRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}

	res, err := c.service.Open(ctx.UserContext(), actor, &req)
	if err != nil {
		return mapError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Editor session opened", res))
}

func (c *editorController) Show(ctx *fiber.Ctx) error {
	actor, sessionId, err := c.session(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.UserContext(), actor, sessionId)
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show editor session", res))
}

func (c *editorController) Select(ctx *fiber.Ctx) error {
	actor, sessionId, err := c.session(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Select(ctx.UserContext(), actor, sessionId, &req)
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Selection updated", res))
}

func (c *editorController) ToggleMark(ctx *fiber.Ctx) error {
	actor, sessionId, err := c.session(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ToggleMark(ctx.UserContext(), actor, sessionId, ctx.Params("mark"))
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Mark toggled", res))
}

func (c *editorController) ToggleBlock(ctx *fiber.Ctx) error {
	actor, sessionId, err := c.session(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ToggleBlock(ctx.UserContext(), actor, sessionId, ctx.Params("block"))
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Block toggled", res))
}

func (c *editorController) ToggleAlign(ctx *fiber.Ctx) error {
	actor, sessionId, err := c.session(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ToggleAlign(ctx.UserContext(), actor, sessionId, ctx.Params("align"))
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Alignment toggled", res))
}

func (c *editorController) Save(ctx *fiber.Ctx) error {
	actor, sessionId, err := c.session(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Save(ctx.UserContext(), actor, sessionId)
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Editor session saved", res))
}

func (c *editorController) Close(ctx *fiber.Ctx) error {
	actor, sessionId, err := c.session(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Close(ctx.UserContext(), actor, sessionId); err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Editor session closed", nil))
}
