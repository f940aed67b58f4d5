package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"short_video_service/internal/relation/domain"
	errprocess "short_video_service/pkg/err"
	"short_video_service/pkg/logger"
	testtool "short_video_service/pkg/test_tool"
)

func newRepo(t *testing.T) (FollowRepo, sqlmock.Sqlmock) {
	logger.Log = logger.SetNewNop()
	db, mock := testtool.NewMockGorm(t)
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return NewFollowRepo(db), mock
}

func TestFollowingIDs(t *testing.T) {
	t.Run("只查 following_id", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "following_id" FROM "follows" WHERE follower_id = $1`)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"following_id"}).AddRow("bob").AddRow("carol"))

		ids, err := repo.FollowingIDs(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"bob", "carol"}, ids)
	})

	t.Run("沒有追蹤為空集合", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`SELECT "following_id" FROM "follows"`).
			WillReturnRows(sqlmock.NewRows([]string{"following_id"}))

		ids, err := repo.FollowingIDs(context.Background(), "dave")
		require.NoError(t, err)
		assert.NotNil(t, ids)
		assert.Empty(t, ids)
	})
}

func TestCreateFollow(t *testing.T) {
	follow := &domain.Follow{ID: "f1", FollowerID: "alice", FollowingID: "bob", CreatedAt: time.Now()}

	tests := []struct {
		name string
		code string
		kind errprocess.Kind
	}{
		{"重複追蹤", "23505", errprocess.KindConflict},
		{"追蹤自己", "23514", errprocess.KindInvalidInput},
		{"使用者不存在", "23503", errprocess.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)
			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "follows"`)).
				WillReturnError(&pgconn.PgError{Code: tt.code})

			err := repo.Create(context.Background(), follow)
			assert.Equal(t, tt.kind, errprocess.KindOf(err))
		})
	}
}

func TestDeleteFollow(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "follows" WHERE follower_id = $1 AND following_id = $2`)).
		WithArgs("alice", "bob").
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.Delete(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.True(t, removed)
}
