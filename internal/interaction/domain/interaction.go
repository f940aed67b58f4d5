package domain

import (
	"strings"
	"time"

	memberdomain "short_video_service/internal/member/domain"
	videodomain "short_video_service/internal/video/domain"
	"short_video_service/pkg/pagination"
)

// Like 每個使用者對同一支影片最多一個
type Like struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_likes_user_video" json:"userId"`
	VideoID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_likes_user_video;index" json:"videoId"`
	CreatedAt time.Time `json:"createdAt"`

	User  *memberdomain.Member `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Video *videodomain.Video   `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName gorm table name
func (Like) TableName() string { return "likes" }

// LikeResult 按讚或收回後的狀態與最新讚數
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

// Comment 留言
type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	VideoID   string    `gorm:"type:varchar(36);not null;index" json:"videoId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User  *memberdomain.Member `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Video *videodomain.Video   `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName gorm table name
func (Comment) TableName() string { return "comments" }

// CommentView 留言與作者資訊
type CommentView struct {
	Comment
	Author memberdomain.PublicProfile `json:"user"`
}

// CommentPage 留言列表回應
type CommentPage struct {
	Comments   []CommentView         `json:"comments"`
	Pagination pagination.Pagination `json:"pagination"`
}

// CreateCommentInput 建立留言
type CreateCommentInput struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// Normalize 去除前後空白
func (in *CreateCommentInput) Normalize() {
	in.Text = strings.TrimSpace(in.Text)
}
