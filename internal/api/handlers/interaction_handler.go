package handlers

import (
	"github.com/gofiber/fiber/v2"

	"short_video_service/internal/interaction/app"
	"short_video_service/internal/interaction/domain"
)

// InteractionHandler 按讚與留言
type InteractionHandler struct {
	interactionUseCase app.InteractionUseCase
}

// NewInteractionHandler 建立 InteractionHandler
func NewInteractionHandler(interactionUseCase app.InteractionUseCase) *InteractionHandler {
	return &InteractionHandler{interactionUseCase: interactionUseCase}
}

// Like 按讚
// @Summary Like video
// @Tags Interactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "video id"
// @Success 200 {object} domain.LikeResult
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "already liked"
// @Router /api/videos/{id}/like [post]
func (h *InteractionHandler) Like(c *fiber.Ctx) error {
	res, err := h.interactionUseCase.Like(c.UserContext(), viewerOf(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Unlike 收回讚
// @Summary Unlike video
// @Tags Interactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "video id"
// @Success 200 {object} domain.LikeResult
// @Failure 404 {object} ErrorResponse
// @Router /api/videos/{id}/like [delete]
func (h *InteractionHandler) Unlike(c *fiber.Ctx) error {
	res, err := h.interactionUseCase.Unlike(c.UserContext(), viewerOf(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ListComments 留言列表
// @Summary List comments
// @Tags Interactions
// @Produce json
// @Param id path string true "video id"
// @Param page query int false "page, default 1"
// @Param limit query int false "page size, default 20"
// @Success 200 {object} domain.CommentPage
// @Failure 404 {object} ErrorResponse
// @Router /api/videos/{id}/comments [get]
func (h *InteractionHandler) ListComments(c *fiber.Ctx) error {
	page, err := h.interactionUseCase.ListComments(c.UserContext(), viewerOf(c), c.Params("id"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// CreateComment 留言
// @Summary Create comment
// @Tags Interactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "video id"
// @Param request body domain.CreateCommentInput true "comment"
// @Success 201 {object} domain.CommentView
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "comments disabled"
// @Failure 404 {object} ErrorResponse
// @Router /api/videos/{id}/comments [post]
func (h *InteractionHandler) CreateComment(c *fiber.Ctx) error {
	var req domain.CreateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.interactionUseCase.CreateComment(c.UserContext(), viewerOf(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment 刪除留言
// @Summary Delete comment
// @Description Allowed for the comment author and the video owner
// @Tags Interactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "comment id"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/comments/{id} [delete]
func (h *InteractionHandler) DeleteComment(c *fiber.Ctx) error {
	if err := h.interactionUseCase.DeleteComment(c.UserContext(), viewerOf(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(MessageResponse{Message: "Comment deleted"})
}
