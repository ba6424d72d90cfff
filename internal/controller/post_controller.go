package controller

import (
	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/pkg/serverutils"
	"blog-admin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPostController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Content(ctx *fiber.Ctx) error
	CreateComment(ctx *fiber.Ctx) error
	UpdateComment(ctx *fiber.Ctx) error
	DeleteComment(ctx *fiber.Ctx) error
}

type postController struct {
	postService    service.IPostService
	commentService service.ICommentService
}

func NewPostController(postService service.IPostService, commentService service.ICommentService) IPostController {
	return &postController{
		postService:    postService,
		commentService: commentService,
	}
}

func (c *postController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/posts")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Get(":id/content", c.Content)

	h.Post(":id/comments", c.CreateComment)
	h.Put(":id/comments/:commentId", c.UpdateComment)
	h.Delete(":id/comments/:commentId", c.DeleteComment)
}

func (c *postController) List(ctx *fiber.Ctx) error {
	var query dto.PostListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	res, err := c.postService.List(ctx.UserContext(), query)
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list posts", res))
}

func (c *postController) Show(ctx *fiber.Ctx) error {
	id, err := parseId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.postService.Show(ctx.UserContext(), id)
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show post", res))
}

func (c *postController) Create(ctx *fiber.Ctx) error {
	actor, err := currentActor(ctx)
	if err != nil {
		return err
	}

	var req dto.CreatePostRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.Create(ctx.UserContext(), actor, &req)
	if err != nil {
		return mapError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create post", res))
}

func (c *postController) Update(ctx *fiber.Ctx) error {
	actor, err := currentActor(ctx)
	if err != nil {
		return err
	}
	id, err := parseId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePostRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.Update(ctx.UserContext(), actor, &req)
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update post", res))
}

func (c *postController) Delete(ctx *fiber.Ctx) error {
	actor, err := currentActor(ctx)
	if err != nil {
		return err
	}
	id, err := parseId(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.postService.Delete(ctx.UserContext(), actor, id); err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete post", nil))
}

func (c *postController) Content(ctx *fiber.Ctx) error {
	id, err := parseId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.postService.Content(ctx.UserContext(), id, ctx.Query("format", dto.ContentFormatHTML))
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success render post content", res))
}

func (c *postController) CreateComment(ctx *fiber.Ctx) error {
	actor, err := currentActor(ctx)
	if err != nil {
		return err
	}
	postId, err := parseId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.CreateCommentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.PostId = postId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.commentService.Create(ctx.UserContext(), actor, &req)
	if err != nil {
		return mapError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create comment", res))
}

func (c *postController) UpdateComment(ctx *fiber.Ctx) error {
	actor, err := currentActor(ctx)
	if err != nil {
		return err
	}
	postId, err := parseId(ctx, "id")
	if err != nil {
		return err
	}
	commentId, err := parseId(ctx, "commentId")
	if err != nil {
		return err
	}

	var req dto.UpdateCommentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.PostId = postId
	req.CommentId = commentId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.commentService.Update(ctx.UserContext(), actor, &req)
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update comment", res))
}

func (c *postController) DeleteComment(ctx *fiber.Ctx) error {
	actor, err := currentActor(ctx)
	if err != nil {
		return err
	}
	postId, err := parseId(ctx, "id")
	if err != nil {
		return err
	}
	commentId, err := parseId(ctx, "commentId")
	if err != nil {
		return err
	}

	if err := c.commentService.Delete(ctx.UserContext(), actor, postId, commentId); err != nil {
		return mapError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete comment", nil))
}
