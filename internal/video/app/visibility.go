package app

import (
	"context"

	"short_video_service/internal/guard"
	"short_video_service/internal/video/domain"
	errprocess "short_video_service/pkg/err"
)

// FollowingLister 取得使用者追蹤中的 ID, 由 relation 提供
type FollowingLister interface {
	FollowingIDs(ctx context.Context, followerID string) ([]string, error)
}

// VisibilityResolver 依操作者與 scope 決定可見影片的條件
type VisibilityResolver struct {
	following FollowingLister
}

// NewVisibilityResolver 建立 VisibilityResolver
func NewVisibilityResolver(following FollowingLister) *VisibilityResolver {
	return &VisibilityResolver{following: following}
}

// Resolve 非本人只看得到公開影片; following 在匿名或沒有追蹤任何人時為空結果
func (r *VisibilityResolver) Resolve(ctx context.Context, viewer guard.Viewer, scope domain.Scope, targetUserID string) (domain.VideoFilter, error) {
	switch scope {
	case domain.ScopeByUser:
		if targetUserID == "" {
			return domain.VideoFilter{}, errprocess.InvalidInput("userId is required for byUser scope")
		}
		return domain.OwnedBy(targetUserID, viewer.Is(targetUserID)), nil

	case domain.ScopeFollowing:
		if viewer.IsAnonymous() {
			return domain.NoVideos(), nil
		}
		ids, err := r.following.FollowingIDs(ctx, viewer.ID())
		if err != nil {
			return domain.VideoFilter{}, errprocess.Internal("list following", err)
		}
		return domain.PublicOwnedByAny(ids), nil

	default:
		return domain.PublicVideos(), nil
	}
}
