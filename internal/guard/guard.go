// Package guard 權限檢查. 呼叫者明確傳入操作者, 不讀取任何 request 狀態.
package guard

import errprocess "short_video_service/pkg/err"

// Viewer 操作者身分, 零值為匿名
type Viewer struct {
	id string
}

// Anonymous 未登入
var Anonymous = Viewer{}

// ViewerOf 由 member ID 建立, 空字串即匿名
func ViewerOf(id string) Viewer {
	return Viewer{id: id}
}

// ID member ID, 匿名為空字串
func (v Viewer) ID() string {
	return v.id
}

// IsAnonymous 是否未登入
func (v Viewer) IsAnonymous() bool {
	return v.id == ""
}

// Is 登入且為指定使用者
func (v Viewer) Is(userID string) bool {
	return !v.IsAnonymous() && v.id == userID
}

// RequireViewer 必須登入
func RequireViewer(v Viewer) error {
	if v.IsAnonymous() {
		return errprocess.Unauthenticated("Unauthorized")
	}
	return nil
}

// RequireOwner 只有擁有者可以修改, what 用於錯誤訊息
func RequireOwner(v Viewer, ownerID, what string) error {
	if err := RequireViewer(v); err != nil {
		return err
	}
	if !v.Is(ownerID) {
		return errprocess.Forbidden("You can only modify your own " + what)
	}
	return nil
}

// RequireCommentDeleter 留言作者或影片擁有者可刪除留言
func RequireCommentDeleter(v Viewer, authorID, videoOwnerID string) error {
	if err := RequireViewer(v); err != nil {
		return err
	}
	if !v.Is(authorID) && !v.Is(videoOwnerID) {
		return errprocess.Forbidden("You can only delete your own comments or comments on your videos")
	}
	return nil
}

// RequireNotSelf 不能對自己操作 (例如追蹤自己)
func RequireNotSelf(v Viewer, targetID string) error {
	if err := RequireViewer(v); err != nil {
		return err
	}
	if v.Is(targetID) {
		return errprocess.InvalidInput("You cannot follow yourself")
	}
	return nil
}
