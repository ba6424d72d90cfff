package controller

import (
	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/pkg/serverutils"
	"blog-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IContentController interface {
	RegisterRoutes(r fiber.Router)
	Render(ctx *fiber.Ctx) error
	Normalize(ctx *fiber.Ctx) error
}

type contentController struct {
	service service.IContentService
}

func NewContentController(service service.IContentService) IContentController {
	return &contentController{
		service: service,
	}
}

func (c *contentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/content")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/render", c.Render)
	h.Post("/normalize", c.Normalize)
}

func (c *contentController) Render(ctx *fiber.Ctx) error {
	var req dto.RenderContentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if req.Format == "" {
		req.Format = dto.ContentFormatHTML
	}

	res, err := c.service.Render(ctx.UserContext(), req.Content, req.Format)
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success render content", res))
}

func (c *contentController) Normalize(ctx *fiber.Ctx) error {
	var req dto.NormalizeContentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Normalize(ctx.UserContext(), req.Content)
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success normalize content", res))
}
