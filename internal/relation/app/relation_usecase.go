package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"short_video_service/internal/guard"
	"short_video_service/internal/relation/domain"
	"short_video_service/internal/relation/repository"
	errprocess "short_video_service/pkg/err"
	"short_video_service/pkg/event"
	"short_video_service/pkg/logger"
)

// 測試時替換
var (
	newFollowID = func() string { return uuid.New().String() }
	nowFunc     = time.Now
)

// MemberChecker 確認使用者存在, 由 member 提供
type MemberChecker interface {
	Exists(ctx context.Context, memberID string) (bool, error)
}

// RelationUseCase 追蹤關係
type RelationUseCase interface {
	Follow(ctx context.Context, viewer guard.Viewer, targetID string) error
	Unfollow(ctx context.Context, viewer guard.Viewer, targetID string) error
	FollowingIDs(ctx context.Context, followerID string) ([]string, error)
}

type relationUseCase struct {
	follows repository.FollowRepo
	members MemberChecker
	events  event.Publisher
}

// NewRelationUseCase 建立 RelationUseCase
func NewRelationUseCase(follows repository.FollowRepo, members MemberChecker, events event.Publisher) RelationUseCase {
	if events == nil {
		events = event.NewNop()
	}
	return &relationUseCase{follows: follows, members: members, events: events}
}

// Follow 不能追蹤自己, 重複追蹤回傳 Conflict
func (r *relationUseCase) Follow(ctx context.Context, viewer guard.Viewer, targetID string) error {
	if err := guard.RequireNotSelf(viewer, targetID); err != nil {
		return err
	}

	exists, err := r.members.Exists(ctx, targetID)
	if err != nil {
		return errprocess.Internal("check member", err)
	}
	if !exists {
		return errprocess.NotFound("User not found")
	}

	following, err := r.follows.Exists(ctx, viewer.ID(), targetID)
	if err != nil {
		return errprocess.Internal("check follow", err)
	}
	if following {
		return errprocess.Conflict("You already follow this user")
	}

	follow := &domain.Follow{
		ID:          newFollowID(),
		FollowerID:  viewer.ID(),
		FollowingID: targetID,
		CreatedAt:   nowFunc().UTC(),
	}
	if err := r.follows.Create(ctx, follow); err != nil {
		return errprocess.Classify(err, "create follow")
	}

	logger.Log.Debug("member followed", zap.String("follower", viewer.ID()), zap.String("following", targetID))
	event.Emit(ctx, r.events, event.New(event.UserFollowed, viewer.ID(), targetID))
	return nil
}

// Unfollow 沒有追蹤時不做任何事
func (r *relationUseCase) Unfollow(ctx context.Context, viewer guard.Viewer, targetID string) error {
	if err := guard.RequireViewer(viewer); err != nil {
		return err
	}

	removed, err := r.follows.Delete(ctx, viewer.ID(), targetID)
	if err != nil {
		return errprocess.Internal("delete follow", err)
	}
	if removed {
		event.Emit(ctx, r.events, event.New(event.UserUnfollowed, viewer.ID(), targetID))
	}
	return nil
}

// FollowingIDs 提供 following feed 使用
func (r *relationUseCase) FollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	return r.follows.FollowingIDs(ctx, followerID)
}
