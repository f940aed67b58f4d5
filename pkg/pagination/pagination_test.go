package pagination

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestNewRequest(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		want        Request
	}{
		{"預設值", 0, 0, Request{Page: 1, Limit: 10}},
		{"負數退回預設", -3, -1, Request{Page: 1, Limit: 10}},
		{"一般", 3, 20, Request{Page: 3, Limit: 20}},
		{"超過上限", 1, 1000, Request{Page: 1, Limit: 100}},
		{"極大頁數", 922337203685477581, 100, Request{Page: math.MaxInt/100 + 1, Limit: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRequest(tt.page, tt.limit, 10, 100))
		})
	}
}

func TestOffsetPastLastPage(t *testing.T) {
	r := NewRequest(922337203685477581, 100, 10, 100)
	assert.GreaterOrEqual(t, r.Offset(), 0)
	assert.Greater(t, r.Page, New(r, 1_000_000).TotalPages)
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 0, TotalPages: 0}, New(Request{Page: 1, Limit: 10}, 0))
	assert.Equal(t, Pagination{Page: 2, Limit: 10, Total: 21, TotalPages: 3}, New(Request{Page: 2, Limit: 10}, 21))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 1, TotalPages(1, 100))
}

func TestPaginationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("normalized request is always valid", prop.ForAll(
		func(page, limit int) bool {
			r := NewRequest(page, limit, 10, 100)
			return r.Page >= 1 && r.Limit >= 1 && r.Limit <= 100 && r.Offset() >= 0
		},
		gen.IntRange(-1000, 1000),
		gen.IntRange(-1000, 1000),
	))

	properties.Property("offset never overflows", prop.ForAll(
		func(page, limit int) bool {
			r := NewRequest(page, limit, 10, 0)
			return r.Page >= 1 && r.Offset() >= 0
		},
		gen.IntRange(1, math.MaxInt),
		gen.IntRange(1, math.MaxInt),
	))

	properties.Property("totalPages covers total exactly", prop.ForAll(
		func(total int64, limit int) bool {
			pages := TotalPages(total, limit)
			if total == 0 {
				return pages == 0
			}
			covered := int64(pages) * int64(limit)
			return covered >= total && covered-total < int64(limit)
		},
		gen.Int64Range(0, 1_000_000),
		gen.IntRange(1, 100),
	))

	properties.Property("pages partition the items", prop.ForAll(
		func(total int64, limit int) bool {
			var seen int64
			for page := 1; page <= TotalPages(total, limit); page++ {
				r := Request{Page: page, Limit: limit}
				window := total - int64(r.Offset())
				if window > int64(limit) {
					window = int64(limit)
				}
				if window <= 0 {
					return false
				}
				seen += window
			}
			return seen == total
		},
		gen.Int64Range(0, 5000),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}
