package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"short_video_service/internal/guard"
	"short_video_service/internal/interaction/domain"
	"short_video_service/internal/interaction/repository"
	videodomain "short_video_service/internal/video/domain"
	errprocess "short_video_service/pkg/err"
	"short_video_service/pkg/event"
	"short_video_service/pkg/logger"
	"short_video_service/pkg/pagination"
	"short_video_service/pkg/validation"
)

// 測試時替換
var (
	newID   = func() string { return uuid.New().String() }
	nowFunc = time.Now
)

// VideoFinder 取得影片, 由 video repository 提供
type VideoFinder interface {
	GetByID(ctx context.Context, id string) (*videodomain.Video, error)
}

// InteractionUseCase 按讚與留言
type InteractionUseCase interface {
	Like(ctx context.Context, viewer guard.Viewer, videoID string) (*domain.LikeResult, error)
	Unlike(ctx context.Context, viewer guard.Viewer, videoID string) (*domain.LikeResult, error)
	ListComments(ctx context.Context, viewer guard.Viewer, videoID string, page, limit int) (*domain.CommentPage, error)
	CreateComment(ctx context.Context, viewer guard.Viewer, videoID string, in domain.CreateCommentInput) (*domain.CommentView, error)
	DeleteComment(ctx context.Context, viewer guard.Viewer, commentID string) error
	LikedVideoIDs(ctx context.Context, userID string, videoIDs []string) ([]string, error)
}

// Options 留言分頁
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

type interactionUseCase struct {
	videos   VideoFinder
	likes    repository.LikeRepo
	comments repository.CommentRepo
	events   event.Publisher
	opts     Options
}

// NewInteractionUseCase 建立 InteractionUseCase
func NewInteractionUseCase(videos VideoFinder,
	likes repository.LikeRepo,
	comments repository.CommentRepo,
	events event.Publisher,
	opts Options,
) InteractionUseCase {
	if events == nil {
		events = event.NewNop()
	}
	return &interactionUseCase{
		videos:   videos,
		likes:    likes,
		comments: comments,
		events:   events,
		opts:     opts,
	}
}

// visibleVideo 不存在或看不到的影片一律 NotFound
func (u *interactionUseCase) visibleVideo(ctx context.Context, viewer guard.Viewer, videoID string) (*videodomain.Video, error) {
	video, err := u.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, errprocess.Classify(err, "get video")
	}
	if !video.VisibleTo(viewer) {
		return nil, errprocess.NotFound("Video not found")
	}
	return video, nil
}

// Like 重複按讚回傳 Conflict, 讚數不變
func (u *interactionUseCase) Like(ctx context.Context, viewer guard.Viewer, videoID string) (*domain.LikeResult, error) {
	if err := guard.RequireViewer(viewer); err != nil {
		return nil, err
	}
	if _, err := u.visibleVideo(ctx, viewer, videoID); err != nil {
		return nil, err
	}

	exists, err := u.likes.Exists(ctx, viewer.ID(), videoID)
	if err != nil {
		return nil, errprocess.Internal("check like", err)
	}
	if exists {
		return nil, errprocess.Conflict("You already liked this video")
	}

	like := &domain.Like{ID: newID(), UserID: viewer.ID(), VideoID: videoID, CreatedAt: nowFunc().UTC()}
	if err := u.likes.Create(ctx, like); err != nil {
		return nil, errprocess.Classify(err, "create like")
	}

	count, err := u.likes.CountByVideo(ctx, videoID)
	if err != nil {
		return nil, errprocess.Internal("count likes", err)
	}

	event.Emit(ctx, u.events, event.New(event.VideoLiked, viewer.ID(), videoID))
	return &domain.LikeResult{Liked: true, LikesCount: count}, nil
}

// Unlike 沒有按過讚時不做任何事
func (u *interactionUseCase) Unlike(ctx context.Context, viewer guard.Viewer, videoID string) (*domain.LikeResult, error) {
	if err := guard.RequireViewer(viewer); err != nil {
		return nil, err
	}
	if _, err := u.visibleVideo(ctx, viewer, videoID); err != nil {
		return nil, err
	}

	removed, err := u.likes.Delete(ctx, viewer.ID(), videoID)
	if err != nil {
		return nil, errprocess.Internal("delete like", err)
	}

	count, err := u.likes.CountByVideo(ctx, videoID)
	if err != nil {
		return nil, errprocess.Internal("count likes", err)
	}

	if removed {
		event.Emit(ctx, u.events, event.New(event.VideoUnliked, viewer.ID(), videoID))
	}
	return &domain.LikeResult{Liked: false, LikesCount: count}, nil
}

// ListComments 新的留言在前
func (u *interactionUseCase) ListComments(ctx context.Context, viewer guard.Viewer, videoID string, page, limit int) (*domain.CommentPage, error) {
	if _, err := u.visibleVideo(ctx, viewer, videoID); err != nil {
		return nil, err
	}

	req := pagination.NewRequest(page, limit, u.opts.DefaultLimit, u.opts.MaxLimit)
	comments, err := u.comments.ListByVideo(ctx, videoID, req.Offset(), req.Limit)
	if err != nil {
		return nil, errprocess.Internal("list comments", err)
	}
	total, err := u.comments.CountByVideo(ctx, videoID)
	if err != nil {
		return nil, errprocess.Internal("count comments", err)
	}

	return &domain.CommentPage{
		Comments:   comments,
		Pagination: pagination.New(req, total),
	}, nil
}

// CreateComment 關閉留言的影片回傳 Forbidden
func (u *interactionUseCase) CreateComment(ctx context.Context, viewer guard.Viewer, videoID string, in domain.CreateCommentInput) (*domain.CommentView, error) {
	if err := guard.RequireViewer(viewer); err != nil {
		return nil, err
	}
	in.Normalize()
	if in.Text == "" {
		return nil, errprocess.InvalidInput("Comment text cannot be empty")
	}
	if err := validation.ValidateStruct(&in); err != nil {
		return nil, err
	}

	video, err := u.visibleVideo(ctx, viewer, videoID)
	if err != nil {
		return nil, err
	}
	if video.CommentsDisabled {
		return nil, errprocess.Forbidden("Comments are disabled for this video")
	}

	now := nowFunc().UTC()
	comment := &domain.Comment{
		ID:        newID(),
		Text:      in.Text,
		UserID:    viewer.ID(),
		VideoID:   videoID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, errprocess.Classify(err, "create comment")
	}

	view, err := u.comments.GetView(ctx, comment.ID)
	if err != nil {
		return nil, errprocess.Classify(err, "get comment")
	}

	logger.Log.Debug("comment created", zap.String("comment_id", comment.ID), zap.String("video_id", videoID))
	event.Emit(ctx, u.events, event.New(event.CommentCreated, viewer.ID(), comment.ID))
	return view, nil
}

// DeleteComment 留言作者或影片擁有者可以刪除
func (u *interactionUseCase) DeleteComment(ctx context.Context, viewer guard.Viewer, commentID string) error {
	if err := guard.RequireViewer(viewer); err != nil {
		return err
	}
	comment, err := u.comments.GetByID(ctx, commentID)
	if err != nil {
		return errprocess.Classify(err, "get comment")
	}
	video, err := u.videos.GetByID(ctx, comment.VideoID)
	if err != nil {
		return errprocess.Classify(err, "get video")
	}
	if err := guard.RequireCommentDeleter(viewer, comment.UserID, video.UserID); err != nil {
		return err
	}

	if err := u.comments.Delete(ctx, commentID); err != nil {
		return errprocess.Classify(err, "delete comment")
	}

	event.Emit(ctx, u.events, event.New(event.CommentDeleted, viewer.ID(), commentID))
	return nil
}

// LikedVideoIDs 提供 feed 批次標記按讚狀態
func (u *interactionUseCase) LikedVideoIDs(ctx context.Context, userID string, videoIDs []string) ([]string, error) {
	return u.likes.LikedVideoIDs(ctx, userID, videoIDs)
}
