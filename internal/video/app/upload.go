package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"short_video_service/internal/guard"
	"short_video_service/internal/video/domain"
	"short_video_service/pkg"
	errprocess "short_video_service/pkg/err"
	"short_video_service/pkg/logger"
)

// AllowedVideoTypes 可上傳的影片格式
var AllowedVideoTypes = []string{"video/mp4", "video/webm", "video/ogg", "video/quicktime"}

// uploadName <unix-ms>-<random><ext>, 測試時替換
var uploadName = func(original string) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", nowFunc().UnixMilli(), random, strings.ToLower(filepath.Ext(original)))
}

// UploadVideo 檢查格式與大小後存入 storage, 影片記錄由 CreateVideo 建立
func (v *videoUseCase) UploadVideo(ctx context.Context, viewer guard.Viewer, up domain.UploadVideoReq) (*domain.UploadVideoRes, error) {
	if err := guard.RequireViewer(viewer); err != nil {
		return nil, err
	}
	if up.File == nil || up.Size <= 0 {
		return nil, errprocess.InvalidInput("No file provided")
	}
	if !pkg.Contains(AllowedVideoTypes, up.ContentType) {
		return nil, errprocess.InvalidInput("Invalid file type. Only MP4, WebM, OGG, and QuickTime videos are allowed")
	}
	if v.opts.MaxFileSize > 0 && up.Size > v.opts.MaxFileSize {
		return nil, errprocess.InvalidInput(fmt.Sprintf("File too large. Maximum size is %dMB", v.opts.MaxFileSize/1024/1024))
	}

	name := uploadName(up.FileName)
	url, err := v.storage.Save(ctx, name, up.File, up.Size, up.ContentType)
	if err != nil {
		return nil, errprocess.Internal(fmt.Sprintf("fileName[%s] save upload", up.FileName), err)
	}

	logger.Log.Info("video uploaded",
		zap.String("user_id", viewer.ID()),
		zap.String("object", name),
		zap.Int64("size", up.Size),
	)
	return &domain.UploadVideoRes{
		VideoURL:         url,
		Size:             up.Size,
		OriginalFilename: up.FileName,
	}, nil
}
