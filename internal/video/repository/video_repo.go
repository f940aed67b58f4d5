package repository

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	memberdomain "short_video_service/internal/member/domain"
	"short_video_service/internal/video/domain"
	errprocess "short_video_service/pkg/err"
)

// VideoRepo definition get video info
type VideoRepo interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	GetView(ctx context.Context, id string) (*domain.VideoView, error)
	Update(ctx context.Context, id string, upd domain.VideoUpdate) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	ListVideos(ctx context.Context, filter domain.VideoFilter, offset, limit int) ([]domain.VideoView, error)
	CountVideos(ctx context.Context, filter domain.VideoFilter) (int64, error)
}

// videoColumns feed 需要的欄位, 讚數與留言數在讀取時計算
const videoColumns = `videos.id, videos.user_id, videos.caption, videos.video_url, videos.thumbnail_url,
	videos.duration, videos.views, videos.is_public, videos.comments_disabled, videos.created_at, videos.updated_at,
	users.username AS owner_username, users.name AS owner_name, users.avatar AS owner_avatar, users.verified AS owner_verified,
	(SELECT COUNT(*) FROM likes WHERE likes.video_id = videos.id) AS likes_count,
	(SELECT COUNT(*) FROM comments WHERE comments.video_id = videos.id) AS comments_count`

// videoRow 一列 join 結果
type videoRow struct {
	ID               string    `gorm:"column:id"`
	UserID           string    `gorm:"column:user_id"`
	Caption          *string   `gorm:"column:caption"`
	VideoURL         string    `gorm:"column:video_url"`
	ThumbnailURL     *string   `gorm:"column:thumbnail_url"`
	Duration         *int      `gorm:"column:duration"`
	Views            int64     `gorm:"column:views"`
	IsPublic         bool      `gorm:"column:is_public"`
	CommentsDisabled bool      `gorm:"column:comments_disabled"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
	OwnerUsername    string    `gorm:"column:owner_username"`
	OwnerName        *string   `gorm:"column:owner_name"`
	OwnerAvatar      *string   `gorm:"column:owner_avatar"`
	OwnerVerified    bool      `gorm:"column:owner_verified"`
	LikesCount       int64     `gorm:"column:likes_count"`
	CommentsCount    int64     `gorm:"column:comments_count"`
}

func (r videoRow) toView() domain.VideoView {
	return domain.VideoView{
		Video: domain.Video{
			ID:               r.ID,
			UserID:           r.UserID,
			Caption:          r.Caption,
			VideoURL:         r.VideoURL,
			ThumbnailURL:     r.ThumbnailURL,
			Duration:         r.Duration,
			Views:            r.Views,
			IsPublic:         r.IsPublic,
			CommentsDisabled: r.CommentsDisabled,
			CreatedAt:        r.CreatedAt,
			UpdatedAt:        r.UpdatedAt,
		},
		User: memberdomain.PublicProfile{
			ID:       r.UserID,
			Username: r.OwnerUsername,
			Name:     r.OwnerName,
			Avatar:   r.OwnerAvatar,
			Verified: r.OwnerVerified,
		},
		Counts: domain.VideoCounts{Likes: r.LikesCount, Comments: r.CommentsCount},
	}
}

type videoRepo struct {
	db *gorm.DB
}

// NewVideoRepo create VideoRepo
func NewVideoRepo(db *gorm.DB) VideoRepo {
	return &videoRepo{db: db}
}

func (r *videoRepo) Create(ctx context.Context, video *domain.Video) error {
	err := r.db.WithContext(ctx).Omit("Owner").Create(video).Error
	return pkgerrors.Wrapf(err, "create video %s", video.ID)
}

func (r *videoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	var v domain.Video
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "get video "+id)
	}
	return &v, nil
}

// GetView 單支影片, 含擁有者與統計
func (r *videoRepo) GetView(ctx context.Context, id string) (*domain.VideoView, error) {
	var rows []videoRow
	err := r.base(ctx).Where("videos.id = ?", id).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "get video view %s", id)
	}
	if len(rows) == 0 {
		return nil, errprocess.NotFound("Video not found")
	}
	v := rows[0].toView()
	return &v, nil
}

// Update 只更新有設定的欄位
func (r *videoRepo) Update(ctx context.Context, id string, upd domain.VideoUpdate) error {
	fields := map[string]interface{}{}
	if c, ok := upd.Caption.Get(); ok {
		fields["caption"] = c
	}
	if p, ok := upd.IsPublic.Get(); ok {
		fields["is_public"] = p
	}
	if d, ok := upd.CommentsDisabled.Get(); ok {
		fields["comments_disabled"] = d
	}
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&domain.Video{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return pkgerrors.Wrapf(res.Error, "update video %s", id)
	}
	if res.RowsAffected == 0 {
		return errprocess.NotFound("Video not found")
	}
	return nil
}

// Delete 讚與留言由外鍵 ON DELETE CASCADE 一併刪除
func (r *videoRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Video{})
	if res.Error != nil {
		return pkgerrors.Wrapf(res.Error, "delete video %s", id)
	}
	if res.RowsAffected == 0 {
		return errprocess.NotFound("Video not found")
	}
	return nil
}

// IncrementViews 原子地 views + 1, 不更新 updated_at
func (r *videoRepo) IncrementViews(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return pkgerrors.Wrapf(res.Error, "increment views %s", id)
	}
	if res.RowsAffected == 0 {
		return errprocess.NotFound("Video not found")
	}
	return nil
}

// ListVideos 依 created_at DESC, id DESC 排序, id 讓同一時間的影片順序固定
func (r *videoRepo) ListVideos(ctx context.Context, filter domain.VideoFilter, offset, limit int) ([]domain.VideoView, error) {
	if filter.IsEmpty() {
		return []domain.VideoView{}, nil
	}

	var rows []videoRow
	err := applyFilter(r.base(ctx), filter).
		Order("videos.created_at DESC, videos.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list videos")
	}

	views := make([]domain.VideoView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.toView())
	}
	return views, nil
}

// CountVideos 與 ListVideos 相同條件, 不受分頁影響
func (r *videoRepo) CountVideos(ctx context.Context, filter domain.VideoFilter) (int64, error) {
	if filter.IsEmpty() {
		return 0, nil
	}

	var n int64
	err := applyFilter(r.db.WithContext(ctx).Table("videos"), filter).Count(&n).Error
	return n, pkgerrors.Wrap(err, "count videos")
}

func (r *videoRepo) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("videos").
		Select(videoColumns).
		Joins("JOIN users ON users.id = videos.user_id")
}

func applyFilter(db *gorm.DB, f domain.VideoFilter) *gorm.DB {
	if f.PublicOnly {
		db = db.Where("videos.is_public = ?", true)
	}
	if f.OwnerIDs != nil {
		db = db.Where("videos.user_id IN ?", f.OwnerIDs)
	}
	return db
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errprocess.NotFound("Video not found")
	}
	return pkgerrors.Wrap(err, msg)
}
