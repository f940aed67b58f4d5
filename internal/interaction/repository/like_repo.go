package repository

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"short_video_service/internal/interaction/domain"
	errprocess "short_video_service/pkg/err"
)

// LikeRepo definition like persistence
type LikeRepo interface {
	Create(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, userID, videoID string) (bool, error)
	Exists(ctx context.Context, userID, videoID string) (bool, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	LikedVideoIDs(ctx context.Context, userID string, videoIDs []string) ([]string, error)
}

type likeRepo struct {
	db *gorm.DB
}

// NewLikeRepo create LikeRepo
func NewLikeRepo(db *gorm.DB) LikeRepo {
	return &likeRepo{db: db}
}

// Create 重複按讚由 unique index 擋下並回傳 Conflict
func (r *likeRepo) Create(ctx context.Context, like *domain.Like) error {
	err := r.db.WithContext(ctx).Omit("User", "Video").Create(like).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errprocess.Wrap(errprocess.KindConflict, "You already liked this video", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errprocess.Wrap(errprocess.KindNotFound, "Video not found", err)
	default:
		return pkgerrors.Wrapf(err, "create like %s/%s", like.UserID, like.VideoID)
	}
}

// Delete 回傳是否有刪除
func (r *likeRepo) Delete(ctx context.Context, userID, videoID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(&domain.Like{})
	if res.Error != nil {
		return false, pkgerrors.Wrapf(res.Error, "delete like %s/%s", userID, videoID)
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepo) Exists(ctx context.Context, userID, videoID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&n).Error
	return n > 0, pkgerrors.Wrap(err, "check like")
}

func (r *likeRepo) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Like{}).Where("video_id = ?", videoID).Count(&n).Error
	return n, pkgerrors.Wrapf(err, "count likes of %s", videoID)
}

// LikedVideoIDs 一次查詢整頁影片的按讚狀態
func (r *likeRepo) LikedVideoIDs(ctx context.Context, userID string, videoIDs []string) ([]string, error) {
	if len(videoIDs) == 0 {
		return []string{}, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "liked video ids")
	}
	return ids, nil
}
