package repository

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"short_video_service/internal/interaction/domain"
	memberdomain "short_video_service/internal/member/domain"
	errprocess "short_video_service/pkg/err"
)

// CommentRepo definition comment persistence
type CommentRepo interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	GetView(ctx context.Context, id string) (*domain.CommentView, error)
	Delete(ctx context.Context, id string) error
	ListByVideo(ctx context.Context, videoID string, offset, limit int) ([]domain.CommentView, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
}

const commentColumns = `comments.id, comments.text, comments.user_id, comments.video_id, comments.created_at, comments.updated_at,
	users.username AS author_username, users.name AS author_name, users.avatar AS author_avatar, users.verified AS author_verified`

type commentRow struct {
	ID             string    `gorm:"column:id"`
	Text           string    `gorm:"column:text"`
	UserID         string    `gorm:"column:user_id"`
	VideoID        string    `gorm:"column:video_id"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
	AuthorUsername string    `gorm:"column:author_username"`
	AuthorName     *string   `gorm:"column:author_name"`
	AuthorAvatar   *string   `gorm:"column:author_avatar"`
	AuthorVerified bool      `gorm:"column:author_verified"`
}

func (row commentRow) toView() domain.CommentView {
	return domain.CommentView{
		Comment: domain.Comment{
			ID:        row.ID,
			Text:      row.Text,
			UserID:    row.UserID,
			VideoID:   row.VideoID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Author: memberdomain.PublicProfile{
			ID:       row.UserID,
			Username: row.AuthorUsername,
			Name:     row.AuthorName,
			Avatar:   row.AuthorAvatar,
			Verified: row.AuthorVerified,
		},
	}
}

type commentRepo struct {
	db *gorm.DB
}

// NewCommentRepo create CommentRepo
func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	err := r.db.WithContext(ctx).Omit("User", "Video").Create(comment).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errprocess.Wrap(errprocess.KindNotFound, "Video not found", err)
	}
	return pkgerrors.Wrapf(err, "create comment on %s", comment.VideoID)
}

func (r *commentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errprocess.NotFound("Comment not found")
		}
		return nil, pkgerrors.Wrapf(err, "get comment %s", id)
	}
	return &c, nil
}

func (r *commentRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Comment{})
	if res.Error != nil {
		return pkgerrors.Wrapf(res.Error, "delete comment %s", id)
	}
	if res.RowsAffected == 0 {
		return errprocess.NotFound("Comment not found")
	}
	return nil
}

// GetView 單則留言與作者
func (r *commentRepo) GetView(ctx context.Context, id string) (*domain.CommentView, error) {
	var rows []commentRow
	if err := r.base(ctx).Where("comments.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, pkgerrors.Wrapf(err, "get comment view %s", id)
	}
	if len(rows) == 0 {
		return nil, errprocess.NotFound("Comment not found")
	}
	v := rows[0].toView()
	return &v, nil
}

// ListByVideo 新的留言在前
func (r *commentRepo) ListByVideo(ctx context.Context, videoID string, offset, limit int) ([]domain.CommentView, error) {
	var rows []commentRow
	err := r.base(ctx).
		Where("comments.video_id = ?", videoID).
		Order("comments.created_at DESC, comments.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list comments of %s", videoID)
	}

	out := make([]domain.CommentView, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toView())
	}
	return out, nil
}

func (r *commentRepo) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Comment{}).Where("video_id = ?", videoID).Count(&n).Error
	return n, pkgerrors.Wrapf(err, "count comments of %s", videoID)
}

func (r *commentRepo) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("comments").
		Select(commentColumns).
		Joins("JOIN users ON users.id = comments.user_id")
}
