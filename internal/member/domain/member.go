package domain

import (
	"strings"
	"time"

	"short_video_service/pkg/encrypt"
	"short_video_service/pkg/optional"
)

// MemberStatus 用來表示使用者狀態
type MemberStatus int

// 状态: 0=offline, 1=online, 2=ban ,3=delete
const (
	MemberStatusOffLine MemberStatus = iota
	MemberStatusOnLine
	MemberStatusBan
	MemberStatusDelete
)

// Member 使用者, 對應 users 表
type Member struct {
	ID        string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email     string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username  string       `gorm:"type:varchar(30);uniqueIndex;not null" json:"username"`
	Password  string       `gorm:"not null" json:"-"`
	Name      *string      `gorm:"type:varchar(100)" json:"name"`
	Bio       *string      `gorm:"type:text" json:"bio"`
	Avatar    *string      `gorm:"type:text" json:"avatar"`
	Verified  bool         `gorm:"not null;default:false" json:"verified"`
	Status    MemberStatus `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// TableName gorm table name
func (Member) TableName() string {
	return "users"
}

// IsPasswordMatch 密碼驗證
func (m *Member) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(m.Password, inputPwd)
}

// Public 對外公開的欄位
func (m *Member) Public() PublicProfile {
	return PublicProfile{ID: m.ID, Username: m.Username, Name: m.Name, Avatar: m.Avatar, Verified: m.Verified}
}

// PublicProfile 影片與留言附帶的作者資訊
type PublicProfile struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Name     *string `json:"name"`
	Avatar   *string `json:"avatar"`
	Verified bool    `json:"verified"`
}

// ProfileCounts 個人頁的統計
type ProfileCounts struct {
	Videos    int64 `json:"videos"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// Profile 個人頁
type Profile struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Name      *string       `json:"name"`
	Bio       *string       `json:"bio"`
	Avatar    *string       `json:"avatar"`
	Verified  bool          `json:"verified"`
	CreatedAt time.Time     `json:"createdAt"`
	Counts    ProfileCounts `json:"counts"`
}

// MemberSession 存在 redis 的登入狀態
type MemberSession struct {
	Token        string    `json:"Token"`
	MemberID     string    `json:"MemberID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsExpired 檢查 Session 是否已過期
func (s *MemberSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// MemberQuery join conditions are used to query members
type MemberQuery struct {
	ID       *string `db:"id"`
	Email    *string `db:"email"`
	Username *string `db:"username"`
}

// RegisterInput 註冊資料
type RegisterInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Username string  `json:"username" validate:"required,min=2,max=30,handle"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
}

// Normalize email 轉小寫, 去除前後空白
func (in *RegisterInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
}

// LoginInput 登入資料
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate 只更新有設定的欄位, Set(nil) 代表清空
type ProfileUpdate struct {
	Name   optional.Field[*string] `json:"name"`
	Bio    optional.Field[*string] `json:"bio"`
	Avatar optional.Field[*string] `json:"avatar"`
}

// IsEmpty 沒有任何欄位需要更新
func (u ProfileUpdate) IsEmpty() bool {
	return !u.Name.IsSet() && !u.Bio.IsSet() && !u.Avatar.IsSet()
}
