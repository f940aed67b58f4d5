package repository

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"short_video_service/internal/relation/domain"
	errprocess "short_video_service/pkg/err"
)

// FollowRepo definition follow persistence
type FollowRepo interface {
	Create(ctx context.Context, follow *domain.Follow) error
	Delete(ctx context.Context, followerID, followingID string) (bool, error)
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	FollowingIDs(ctx context.Context, followerID string) ([]string, error)
}

type followRepo struct {
	db *gorm.DB
}

// NewFollowRepo create FollowRepo
func NewFollowRepo(db *gorm.DB) FollowRepo {
	return &followRepo{db: db}
}

func (r *followRepo) Create(ctx context.Context, follow *domain.Follow) error {
	err := r.db.WithContext(ctx).Omit("Follower", "Following").Create(follow).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errprocess.Wrap(errprocess.KindConflict, "You already follow this user", err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return errprocess.Wrap(errprocess.KindInvalidInput, "You cannot follow yourself", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errprocess.Wrap(errprocess.KindNotFound, "User not found", err)
	default:
		return pkgerrors.Wrapf(err, "create follow %s -> %s", follow.FollowerID, follow.FollowingID)
	}
}

// Delete 回傳是否有刪除
func (r *followRepo) Delete(ctx context.Context, followerID, followingID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&domain.Follow{})
	if res.Error != nil {
		return false, pkgerrors.Wrapf(res.Error, "delete follow %s -> %s", followerID, followingID)
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&n).Error
	return n > 0, pkgerrors.Wrap(err, "check follow")
}

// FollowingIDs 只取 following_id 一欄
func (r *followRepo) FollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "following ids of %s", followerID)
	}
	return ids, nil
}
