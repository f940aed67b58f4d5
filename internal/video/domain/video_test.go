package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"short_video_service/internal/guard"
)

func TestVisibleTo(t *testing.T) {
	draft := &Video{UserID: "bob", IsPublic: false}
	assert.True(t, draft.VisibleTo(guard.ViewerOf("bob")))
	assert.False(t, draft.VisibleTo(guard.ViewerOf("alice")))
	assert.False(t, draft.VisibleTo(guard.Anonymous))

	published := &Video{UserID: "bob", IsPublic: true}
	assert.True(t, published.VisibleTo(guard.Anonymous))
}

func TestParseScope(t *testing.T) {
	for in, want := range map[string]Scope{"": ScopeGlobal, "global": ScopeGlobal, "following": ScopeFollowing, "byUser": ScopeByUser} {
		got, err := ParseScope(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseScope("trending")
	assert.Error(t, err)
}

func TestVideoFilter(t *testing.T) {
	t.Run("空的追蹤清單不會變成不限制", func(t *testing.T) {
		assert.True(t, PublicOwnedByAny(nil).IsEmpty())
		assert.True(t, PublicOwnedByAny([]string{}).IsEmpty())
		assert.True(t, VideoFilter{OwnerIDs: []string{}}.IsEmpty())
	})

	t.Run("複製 owner 清單", func(t *testing.T) {
		ids := []string{"a", "b"}
		f := PublicOwnedByAny(ids)
		ids[0] = "z"
		assert.Equal(t, []string{"a", "b"}, f.OwnerIDs)
		assert.True(t, f.PublicOnly)
	})

	t.Run("全站不限制擁有者", func(t *testing.T) {
		f := PublicVideos()
		assert.Nil(t, f.OwnerIDs)
		assert.False(t, f.IsEmpty())
	})
}

func TestVideoUpdate(t *testing.T) {
	var upd VideoUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"caption":null,"isPublic":false}`), &upd))
	assert.False(t, upd.IsEmpty())
	assert.False(t, upd.CommentsDisabled.IsSet())

	caption := "old"
	v := &Video{Caption: &caption, IsPublic: true, CommentsDisabled: true}
	upd.Apply(v)
	assert.Nil(t, v.Caption)
	assert.False(t, v.IsPublic)
	assert.True(t, v.CommentsDisabled)

	var empty VideoUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"isPublic":null}`), &empty))
	assert.True(t, empty.IsEmpty())
}

func TestVideoViewJSON(t *testing.T) {
	view := VideoView{Video: Video{ID: "v1", UserID: "u1"}, Counts: VideoCounts{Likes: 2}}
	b, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "isLiked")
	assert.Contains(t, string(b), `"counts":{"likes":2,"comments":0}`)

	liked := true
	view.IsLiked = &liked
	b, err = json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"isLiked":true`)
}
