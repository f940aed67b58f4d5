package errprocess

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"未登入", Unauthenticated("no token"), KindUnauthenticated, http.StatusUnauthorized},
		{"無權限", Forbidden("not owner"), KindForbidden, http.StatusForbidden},
		{"找不到", NotFound("video not found"), KindNotFound, http.StatusNotFound},
		{"重複", Conflict("already liked"), KindConflict, http.StatusConflict},
		{"參數錯誤", InvalidInput("bad limit"), KindInvalidInput, http.StatusBadRequest},
		{"被包裝的錯誤", fmt.Errorf("repo: %w", NotFound("user not found")), KindNotFound, http.StatusNotFound},
		{"未分類錯誤", errors.New("boom"), KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.status, HTTPStatus(KindOf(tt.err)))
		})
	}
}

func TestMessageOfHidesInternalDetail(t *testing.T) {
	err := Wrap(KindInternal, "query videos", errors.New("pq: connection refused"))
	assert.Equal(t, "Internal server error", MessageOf(err))
	assert.Equal(t, "query videos: pq: connection refused", err.Error())

	assert.Equal(t, "Video not found", MessageOf(NotFound("Video not found")))
}

func TestIs(t *testing.T) {
	assert.True(t, Is(Conflict("dup"), KindConflict))
	assert.False(t, Is(nil, KindConflict))
	assert.False(t, Is(Conflict("dup"), KindNotFound))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify(nil, "noop"))

	nf := NotFound("Video not found")
	assert.Same(t, nf, Classify(nf, "get video"))

	err := Classify(errors.New("dial tcp: refused"), "get video")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "Internal server error", MessageOf(err))
}
