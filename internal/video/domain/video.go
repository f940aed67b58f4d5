package domain

import (
	"io"
	"strings"
	"time"

	"short_video_service/internal/guard"
	memberdomain "short_video_service/internal/member/domain"
	"short_video_service/pkg/optional"
)

// Video 定義影片模型. IsPublic=false 為草稿, 只有擁有者看得到
type Video struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID           string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	Caption          *string   `gorm:"type:text" json:"caption"`
	VideoURL         string    `gorm:"type:text;not null" json:"videoUrl"`
	ThumbnailURL     *string   `gorm:"type:text" json:"thumbnailUrl"`
	Duration         *int      `json:"duration"`
	Views            int64     `gorm:"not null;default:0" json:"views"`
	IsPublic         bool      `gorm:"not null;index" json:"isPublic"`
	CommentsDisabled bool      `gorm:"not null;default:false" json:"commentsDisabled"`
	CreatedAt        time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	Owner *memberdomain.Member `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// VisibleTo 公開影片任何人可見, 草稿只有擁有者可見
func (v *Video) VisibleTo(viewer guard.Viewer) bool {
	return v.IsPublic || viewer.Is(v.UserID)
}

// VideoCounts 讀取時計算的統計
type VideoCounts struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// VideoView feed 與單支影片回應, IsLiked 只在有登入時出現
type VideoView struct {
	Video
	User    memberdomain.PublicProfile `json:"user"`
	Counts  VideoCounts                `json:"counts"`
	IsLiked *bool                      `json:"isLiked,omitempty"`
}

// CreateVideoInput 建立影片
type CreateVideoInput struct {
	VideoURL     string  `json:"videoUrl" validate:"required"`
	Caption      *string `json:"caption" validate:"omitempty,max=2200"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Duration     *int    `json:"duration" validate:"omitempty,gte=0"`
	IsPublic     *bool   `json:"isPublic"`
}

// Normalize 去除前後空白, 空 caption 視為未填
func (in *CreateVideoInput) Normalize() {
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	if in.Caption != nil {
		c := strings.TrimSpace(*in.Caption)
		if c == "" {
			in.Caption = nil
		} else {
			in.Caption = &c
		}
	}
}

// VideoUpdate 只更新有設定的欄位
type VideoUpdate struct {
	Caption          optional.Field[*string] `json:"caption"`
	IsPublic         optional.Field[bool]    `json:"isPublic"`
	CommentsDisabled optional.Field[bool]    `json:"commentsDisabled"`
}

// IsEmpty 沒有任何欄位需要更新
func (u VideoUpdate) IsEmpty() bool {
	return !u.Caption.IsSet() && !u.IsPublic.IsSet() && !u.CommentsDisabled.IsSet()
}

// Apply 套用到記憶體中的影片
func (u VideoUpdate) Apply(v *Video) {
	if c, ok := u.Caption.Get(); ok {
		v.Caption = c
	}
	if p, ok := u.IsPublic.Get(); ok {
		v.IsPublic = p
	}
	if d, ok := u.CommentsDisabled.Get(); ok {
		v.CommentsDisabled = d
	}
}

// UploadVideoReq usecase upload video request
type UploadVideoReq struct {
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

// UploadVideoRes usecase upload video response
type UploadVideoRes struct {
	VideoURL         string  `json:"videoUrl"`
	ThumbnailURL     *string `json:"thumbnailUrl"`
	Size             int64   `json:"size"`
	OriginalFilename string  `json:"originalFilename"`
}
