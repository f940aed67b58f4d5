package domain

import (
	"time"

	memberdomain "short_video_service/internal/member/domain"
)

// Follow FollowerID 追蹤 FollowingID, 同一組只有一筆且不能追蹤自己
type Follow struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FollowerID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_follows_pair;check:chk_follows_not_self,follower_id <> following_id" json:"followerId"`
	FollowingID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_follows_pair;index" json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`

	Follower  *memberdomain.Member `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Following *memberdomain.Member `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName gorm table name
func (Follow) TableName() string { return "follows" }
