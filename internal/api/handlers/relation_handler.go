package handlers

import (
	"github.com/gofiber/fiber/v2"

	"short_video_service/internal/relation/app"
)

// RelationHandler 追蹤
type RelationHandler struct {
	relationUseCase app.RelationUseCase
}

// NewRelationHandler 建立 RelationHandler
func NewRelationHandler(relationUseCase app.RelationUseCase) *RelationHandler {
	return &RelationHandler{relationUseCase: relationUseCase}
}

// Follow 追蹤使用者
// @Summary Follow user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "cannot follow yourself"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "already following"
// @Router /api/users/{id}/follow [post]
func (h *RelationHandler) Follow(c *fiber.Ctx) error {
	if err := h.relationUseCase.Follow(c.UserContext(), viewerOf(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(MessageResponse{Message: "Following"})
}

// Unfollow 取消追蹤
// @Summary Unfollow user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 200 {object} MessageResponse
// @Router /api/users/{id}/follow [delete]
func (h *RelationHandler) Unfollow(c *fiber.Ctx) error {
	if err := h.relationUseCase.Unfollow(c.UserContext(), viewerOf(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(MessageResponse{Message: "Unfollowed"})
}
