package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"short_video_service/internal/guard"
	"short_video_service/internal/video/domain"
	"short_video_service/internal/video/repository"
	errprocess "short_video_service/pkg/err"
	"short_video_service/pkg/event"
	"short_video_service/pkg/logger"
	"short_video_service/pkg/pagination"
	"short_video_service/pkg/storage"
	"short_video_service/pkg/validation"
)

// 測試時替換
var (
	newVideoID = func() string { return uuid.New().String() }
	nowFunc    = time.Now
)

// VideoUseCase 這裡封裝了對外提供的應用服務
type VideoUseCase interface {
	ListFeed(ctx context.Context, viewer guard.Viewer, q domain.FeedQuery) (*domain.VideoPage, error)
	GetVideo(ctx context.Context, viewer guard.Viewer, videoID string) (*domain.VideoView, error)
	CreateVideo(ctx context.Context, viewer guard.Viewer, in domain.CreateVideoInput) (*domain.Video, error)
	UpdateVideo(ctx context.Context, viewer guard.Viewer, videoID string, upd domain.VideoUpdate) (*domain.Video, error)
	DeleteVideo(ctx context.Context, viewer guard.Viewer, videoID string) error
	UploadVideo(ctx context.Context, viewer guard.Viewer, up domain.UploadVideoReq) (*domain.UploadVideoRes, error)
}

// Options 分頁與上傳限制
type Options struct {
	DefaultLimit int
	MaxLimit     int
	MaxFileSize  int64
}

type videoUseCase struct {
	videoRepo repository.VideoRepo
	resolver  *VisibilityResolver
	paginator *FeedPaginator
	annotator *LikeAnnotator
	storage   storage.Storage
	events    event.Publisher
	opts      Options
}

// NewVideoUseCase 建立一個新的 VideoUseCase
func NewVideoUseCase(videoRepo repository.VideoRepo,
	following FollowingLister,
	likes LikeLookup,
	store storage.Storage,
	events event.Publisher,
	opts Options,
) VideoUseCase {
	if events == nil {
		events = event.NewNop()
	}
	return &videoUseCase{
		videoRepo: videoRepo,
		resolver:  NewVisibilityResolver(following),
		paginator: NewFeedPaginator(videoRepo),
		annotator: NewLikeAnnotator(likes),
		storage:   store,
		events:    events,
		opts:      opts,
	}
}

// ListFeed resolver -> paginator -> annotator
func (v *videoUseCase) ListFeed(ctx context.Context, viewer guard.Viewer, q domain.FeedQuery) (*domain.VideoPage, error) {
	filter, err := v.resolver.Resolve(ctx, viewer, q.Scope, q.TargetUserID)
	if err != nil {
		return nil, err
	}

	req := pagination.NewRequest(q.Page, q.Limit, v.opts.DefaultLimit, v.opts.MaxLimit)
	page, err := v.paginator.Page(ctx, filter, req)
	if err != nil {
		return nil, err
	}

	if err := v.annotator.Annotate(ctx, viewer, page.Videos); err != nil {
		return nil, err
	}
	return page, nil
}

// GetVideo 他人的草稿視為不存在; 每次讀取 views + 1, 回傳值包含這次
func (v *videoUseCase) GetVideo(ctx context.Context, viewer guard.Viewer, videoID string) (*domain.VideoView, error) {
	view, err := v.videoRepo.GetView(ctx, videoID)
	if err != nil {
		return nil, errprocess.Classify(err, "get video")
	}
	if !view.VisibleTo(viewer) {
		return nil, errprocess.NotFound("Video not found")
	}

	if err := v.videoRepo.IncrementViews(ctx, videoID); err != nil {
		return nil, errprocess.Classify(err, "increment views")
	}
	view.Views++

	videos := []domain.VideoView{*view}
	if err := v.annotator.Annotate(ctx, viewer, videos); err != nil {
		return nil, err
	}
	return &videos[0], nil
}

// CreateVideo isPublic 未填時預設公開
func (v *videoUseCase) CreateVideo(ctx context.Context, viewer guard.Viewer, in domain.CreateVideoInput) (*domain.Video, error) {
	if err := guard.RequireViewer(viewer); err != nil {
		return nil, err
	}
	in.Normalize()
	if err := validation.ValidateStruct(&in); err != nil {
		return nil, err
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}
	now := nowFunc().UTC()
	video := &domain.Video{
		ID:           newVideoID(),
		UserID:       viewer.ID(),
		Caption:      in.Caption,
		VideoURL:     in.VideoURL,
		ThumbnailURL: in.ThumbnailURL,
		Duration:     in.Duration,
		IsPublic:     isPublic,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := v.videoRepo.Create(ctx, video); err != nil {
		return nil, errprocess.Internal("create video", err)
	}

	logger.Log.Info("video created", zap.String("video_id", video.ID), zap.String("user_id", video.UserID))
	event.Emit(ctx, v.events, event.New(event.VideoCreated, viewer.ID(), video.ID))
	return video, nil
}

// UpdateVideo 只有擁有者可以修改
func (v *videoUseCase) UpdateVideo(ctx context.Context, viewer guard.Viewer, videoID string, upd domain.VideoUpdate) (*domain.Video, error) {
	if err := guard.RequireViewer(viewer); err != nil {
		return nil, err
	}
	video, err := v.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, errprocess.Classify(err, "get video")
	}
	if err := guard.RequireOwner(viewer, video.UserID, "videos"); err != nil {
		return nil, err
	}
	if c, ok := upd.Caption.Get(); ok && c != nil && len(*c) > 2200 {
		return nil, errprocess.InvalidInput("caption must be at most 2200 characters")
	}
	if upd.IsEmpty() {
		return video, nil
	}

	if err := v.videoRepo.Update(ctx, videoID, upd); err != nil {
		return nil, errprocess.Classify(err, "update video")
	}
	upd.Apply(video)
	video.UpdatedAt = nowFunc().UTC()

	event.Emit(ctx, v.events, event.New(event.VideoUpdated, viewer.ID(), videoID))
	return video, nil
}

// DeleteVideo 只有擁有者可以刪除
func (v *videoUseCase) DeleteVideo(ctx context.Context, viewer guard.Viewer, videoID string) error {
	if err := guard.RequireViewer(viewer); err != nil {
		return err
	}
	video, err := v.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return errprocess.Classify(err, "get video")
	}
	if err := guard.RequireOwner(viewer, video.UserID, "videos"); err != nil {
		return err
	}

	if err := v.videoRepo.Delete(ctx, videoID); err != nil {
		return errprocess.Classify(err, "delete video")
	}

	logger.Log.Info("video deleted", zap.String("video_id", videoID))
	event.Emit(ctx, v.events, event.New(event.VideoDeleted, viewer.ID(), videoID))
	return nil
}
