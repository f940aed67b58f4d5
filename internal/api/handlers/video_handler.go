package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"short_video_service/internal/video/app"
	"short_video_service/internal/video/domain"
	"short_video_service/pkg/logger"
)

// VideoHandler 處理影片與 feed 的 HTTP 請求
type VideoHandler struct {
	videoUseCase app.VideoUseCase
}

// NewVideoHandler 建立 VideoHandler
func NewVideoHandler(videoUseCase app.VideoUseCase) *VideoHandler {
	return &VideoHandler{videoUseCase: videoUseCase}
}

// ParseFeedQuery scope 優先; 其次 userId 為 byUser; following=true 為 following; 其餘為 global
func ParseFeedQuery(c *fiber.Ctx) (domain.FeedQuery, error) {
	q := domain.FeedQuery{
		TargetUserID: c.Query("userId"),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
	}

	if s := c.Query("scope"); s != "" {
		scope, err := domain.ParseScope(s)
		if err != nil {
			return q, err
		}
		q.Scope = scope
		return q, nil
	}

	following, _ := strconv.ParseBool(c.Query("following"))
	switch {
	case q.TargetUserID != "":
		q.Scope = domain.ScopeByUser
	case following:
		q.Scope = domain.ScopeFollowing
	default:
		q.Scope = domain.ScopeGlobal
	}
	return q, nil
}

// ListFeed 影片列表
// @Summary List videos
// @Description Global, following or per-user feed, newest first. isLiked is present only when authenticated.
// @Tags Videos
// @Produce json
// @Param scope query string false "global | following | byUser"
// @Param userId query string false "owner id for byUser"
// @Param following query bool false "shortcut for scope=following"
// @Param page query int false "page, default 1"
// @Param limit query int false "page size, default 10"
// @Success 200 {object} domain.VideoPage
// @Failure 400 {object} ErrorResponse
// @Router /api/videos [get]
func (h *VideoHandler) ListFeed(c *fiber.Ctx) error {
	q, err := ParseFeedQuery(c)
	if err != nil {
		return badRequest(c, "Invalid scope")
	}

	page, err := h.videoUseCase.ListFeed(c.UserContext(), viewerOf(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// CreateVideo 建立影片
// @Summary Create video
// @Description Publish an uploaded video; isPublic defaults to true
// @Tags Videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.CreateVideoInput true "video"
// @Success 201 {object} domain.Video
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/videos [post]
func (h *VideoHandler) CreateVideo(c *fiber.Ctx) error {
	var req domain.CreateVideoInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	video, err := h.videoUseCase.CreateVideo(c.UserContext(), viewerOf(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(video)
}

// GetVideo 單支影片, 每次讀取增加觀看數
// @Summary Get video
// @Tags Videos
// @Produce json
// @Param id path string true "video id"
// @Success 200 {object} domain.VideoView
// @Failure 404 {object} ErrorResponse
// @Router /api/videos/{id} [get]
func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	video, err := h.videoUseCase.GetVideo(c.UserContext(), viewerOf(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(video)
}

// UpdateVideo 修改自己的影片
// @Summary Update video
// @Description Only caption, isPublic and commentsDisabled present in the body are changed
// @Tags Videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "video id"
// @Param request body domain.VideoUpdate true "fields to update"
// @Success 200 {object} domain.Video
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/videos/{id} [patch]
func (h *VideoHandler) UpdateVideo(c *fiber.Ctx) error {
	var upd domain.VideoUpdate
	if err := c.BodyParser(&upd); err != nil {
		return badRequest(c, "Invalid request body")
	}

	video, err := h.videoUseCase.UpdateVideo(c.UserContext(), viewerOf(c), c.Params("id"), upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(video)
}

// DeleteVideo 刪除自己的影片
// @Summary Delete video
// @Tags Videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "video id"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(c *fiber.Ctx) error {
	if err := h.videoUseCase.DeleteVideo(c.UserContext(), viewerOf(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(MessageResponse{Message: "Video deleted"})
}

// UploadVideo 上傳影片檔
// @Summary Upload video file
// @Description multipart field "file"; mp4, webm, ogg or quicktime
// @Tags Videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "video file"
// @Success 200 {object} domain.UploadVideoRes
// @Failure 400 {object} ErrorResponse
// @Router /api/upload/video [post]
func (h *VideoHandler) UploadVideo(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Log.Error("open upload", zap.String("file", fileHeader.Filename), zap.Error(err))
		return badRequest(c, "Cannot read file")
	}
	defer file.Close()

	res, err := h.videoUseCase.UploadVideo(c.UserContext(), viewerOf(c), domain.UploadVideoReq{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:        fileHeader.Size,
		File:        file,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
