package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"short_video_service/internal/guard"
	errprocess "short_video_service/pkg/err"
	"short_video_service/pkg/logger"
	"short_video_service/pkg/middlewares"
)

// ErrorResponse 錯誤回應
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse 操作成功回應
type MessageResponse struct {
	Message string `json:"message"`
}

// ConnectCheck check api connect start
// @Summary Check service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "video service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("video service start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param status query bool true "Debug status"
// @Success 200 {string} string "debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	statusStr := c.Query("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	logger.Log.SetDebugMode(status)
	return c.SendString(fmt.Sprintf("debug mode is : %t", status))
}

// respondError AppError 轉成對應的 status 與 {"error": message}
func respondError(c *fiber.Ctx, err error) error {
	kind := errprocess.KindOf(err)
	if kind == errprocess.KindInternal {
		logger.Log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.Status(errprocess.HTTPStatus(kind)).JSON(ErrorResponse{Error: errprocess.MessageOf(err)})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}

// viewerOf 由 middleware 設定的身分建立 guard.Viewer
func viewerOf(c *fiber.Ctx) guard.Viewer {
	return guard.ViewerOf(middlewares.ViewerID(c))
}

// queryInt 非數字視為 0, 交由分頁套用預設值
func queryInt(c *fiber.Ctx, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
