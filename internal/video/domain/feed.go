package domain

import (
	"fmt"

	"short_video_service/pkg/pagination"
)

// Scope feed 的範圍
type Scope string

const (
	ScopeGlobal    Scope = "global"
	ScopeFollowing Scope = "following"
	ScopeByUser    Scope = "byUser"
)

// ParseScope 空字串視為 global
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeGlobal:
		return ScopeGlobal, nil
	case ScopeFollowing:
		return ScopeFollowing, nil
	case ScopeByUser:
		return ScopeByUser, nil
	default:
		return "", fmt.Errorf("unknown scope %q", s)
	}
}

// FeedQuery feed 查詢, Page/Limit 為原始輸入, 由 usecase 正規化
type FeedQuery struct {
	Scope        Scope
	TargetUserID string
	Page         int
	Limit        int
}

// VideoFilter 可見性條件.
// MatchNone 為 true 時不回傳任何影片; OwnerIDs 為 nil 表示不限制擁有者.
type VideoFilter struct {
	OwnerIDs   []string
	PublicOnly bool
	MatchNone  bool
}

// PublicVideos 所有公開影片
func PublicVideos() VideoFilter {
	return VideoFilter{PublicOnly: true}
}

// OwnedBy 指定擁有者, includeDrafts 只在擁有者本人查看時為 true
func OwnedBy(ownerID string, includeDrafts bool) VideoFilter {
	return VideoFilter{OwnerIDs: []string{ownerID}, PublicOnly: !includeDrafts}
}

// PublicOwnedByAny 多個擁有者的公開影片, 空集合不回傳任何影片
func PublicOwnedByAny(ownerIDs []string) VideoFilter {
	if len(ownerIDs) == 0 {
		return NoVideos()
	}
	ids := make([]string, len(ownerIDs))
	copy(ids, ownerIDs)
	return VideoFilter{OwnerIDs: ids, PublicOnly: true}
}

// NoVideos 空結果
func NoVideos() VideoFilter {
	return VideoFilter{MatchNone: true}
}

// IsEmpty 確定不會有結果, 不需查詢
func (f VideoFilter) IsEmpty() bool {
	return f.MatchNone || (f.OwnerIDs != nil && len(f.OwnerIDs) == 0)
}

// VideoPage feed 回應
type VideoPage struct {
	Videos     []VideoView           `json:"videos"`
	Pagination pagination.Pagination `json:"pagination"`
}
