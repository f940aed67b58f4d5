// Package pagination offset 分頁的計算.
package pagination

import "math"

// Request 已正規化的分頁參數, Page 與 Limit 皆 >= 1
type Request struct {
	Page  int
	Limit int
}

// NewRequest page/limit 小於 1 時使用預設值, limit 不超過 maxLimit (maxLimit <= 0 表示不限制)
func NewRequest(page, limit, defaultLimit, maxLimit int) Request {
	if page < 1 {
		page = 1
	}
	if defaultLimit < 1 {
		defaultLimit = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	// (page-1)*limit 不可溢位; 超出的頁數仍落在最後一頁之後
	if maxPage := math.MaxInt/limit + 1; page > maxPage {
		page = maxPage
	}
	return Request{Page: page, Limit: limit}
}

// Offset (page-1)*limit
func (r Request) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Pagination 回應中的分頁資訊
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// New total 與視窗無關
func New(r Request, total int64) Pagination {
	return Pagination{
		Page:       r.Page,
		Limit:      r.Limit,
		Total:      total,
		TotalPages: TotalPages(total, r.Limit),
	}
}

// TotalPages ceil(total/limit), total 為 0 時為 0
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
