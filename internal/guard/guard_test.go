package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errprocess "short_video_service/pkg/err"
)

func kind(err error) errprocess.Kind {
	if err == nil {
		return ""
	}
	return errprocess.KindOf(err)
}

func TestRequireOwner(t *testing.T) {
	assert.NoError(t, RequireOwner(ViewerOf("a"), "a", "videos"))
	assert.Equal(t, errprocess.KindForbidden, kind(RequireOwner(ViewerOf("b"), "a", "videos")))
	assert.Equal(t, errprocess.KindUnauthenticated, kind(RequireOwner(Anonymous, "a", "videos")))
	// 匿名與空 owner 不可視為同一人
	assert.Equal(t, errprocess.KindUnauthenticated, kind(RequireOwner(Anonymous, "", "videos")))
}

func TestRequireCommentDeleter(t *testing.T) {
	tests := []struct {
		name   string
		viewer Viewer
		want   errprocess.Kind
	}{
		{"留言作者", ViewerOf("author"), ""},
		{"影片擁有者", ViewerOf("owner"), ""},
		{"其他人", ViewerOf("stranger"), errprocess.KindForbidden},
		{"匿名", Anonymous, errprocess.KindUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kind(RequireCommentDeleter(tt.viewer, "author", "owner")))
		})
	}
}

func TestRequireNotSelf(t *testing.T) {
	assert.NoError(t, RequireNotSelf(ViewerOf("a"), "b"))
	assert.Equal(t, errprocess.KindInvalidInput, kind(RequireNotSelf(ViewerOf("a"), "a")))
	assert.Equal(t, errprocess.KindUnauthenticated, kind(RequireNotSelf(Anonymous, "a")))
}

func TestViewer(t *testing.T) {
	assert.True(t, Anonymous.IsAnonymous())
	assert.True(t, ViewerOf("").IsAnonymous())
	assert.False(t, Anonymous.Is(""))
	assert.True(t, ViewerOf("x").Is("x"))
	assert.Equal(t, "x", ViewerOf("x").ID())
}
