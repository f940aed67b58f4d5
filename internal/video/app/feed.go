package app

import (
	"context"

	"short_video_service/internal/guard"
	"short_video_service/internal/video/domain"
	"short_video_service/internal/video/repository"
	"short_video_service/pkg"
	errprocess "short_video_service/pkg/err"
	"short_video_service/pkg/pagination"
)

// LikeLookup 批次查詢按讚狀態, 由 interaction 提供
type LikeLookup interface {
	LikedVideoIDs(ctx context.Context, userID string, videoIDs []string) ([]string, error)
}

// FeedPaginator 依條件分頁取出影片
type FeedPaginator struct {
	repo repository.VideoRepo
}

// NewFeedPaginator 建立 FeedPaginator
func NewFeedPaginator(repo repository.VideoRepo) *FeedPaginator {
	return &FeedPaginator{repo: repo}
}

// Page 空條件直接回傳 total = 0, 不查詢資料庫
func (p *FeedPaginator) Page(ctx context.Context, filter domain.VideoFilter, req pagination.Request) (*domain.VideoPage, error) {
	if filter.IsEmpty() {
		return &domain.VideoPage{
			Videos:     []domain.VideoView{},
			Pagination: pagination.New(req, 0),
		}, nil
	}

	videos, err := p.repo.ListVideos(ctx, filter, req.Offset(), req.Limit)
	if err != nil {
		return nil, errprocess.Internal("list videos", err)
	}
	total, err := p.repo.CountVideos(ctx, filter)
	if err != nil {
		return nil, errprocess.Internal("count videos", err)
	}

	return &domain.VideoPage{
		Videos:     videos,
		Pagination: pagination.New(req, total),
	}, nil
}

// LikeAnnotator 標記操作者是否按過讚
type LikeAnnotator struct {
	likes LikeLookup
}

// NewLikeAnnotator 建立 LikeAnnotator
func NewLikeAnnotator(likes LikeLookup) *LikeAnnotator {
	return &LikeAnnotator{likes: likes}
}

// Annotate 整頁只查詢一次; 匿名時不標記
func (a *LikeAnnotator) Annotate(ctx context.Context, viewer guard.Viewer, videos []domain.VideoView) error {
	if viewer.IsAnonymous() || len(videos) == 0 {
		return nil
	}

	ids := make([]string, len(videos))
	for i := range videos {
		ids[i] = videos[i].ID
	}

	liked, err := a.likes.LikedVideoIDs(ctx, viewer.ID(), ids)
	if err != nil {
		return errprocess.Internal("lookup likes", err)
	}

	set := pkg.Set(liked)
	for i := range videos {
		_, ok := set[videos[i].ID]
		videos[i].IsLiked = &ok
	}
	return nil
}
