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
	"gorm.io/gorm"

	"short_video_service/internal/interaction/domain"
	errprocess "short_video_service/pkg/err"
	"short_video_service/pkg/logger"
	testtool "short_video_service/pkg/test_tool"
)

func newDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	logger.Log = logger.SetNewNop()
	db, mock := testtool.NewMockGorm(t)
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return db, mock
}

func TestLikeRepo_Create(t *testing.T) {
	like := &domain.Like{ID: "l1", UserID: "alice", VideoID: "v1", CreatedAt: time.Now()}

	t.Run("重複按讚", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "likes"`)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_likes_user_video"})

		err := NewLikeRepo(db).Create(context.Background(), like)
		assert.Equal(t, errprocess.KindConflict, errprocess.KindOf(err))
	})

	t.Run("影片已刪除", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "likes"`)).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		err := NewLikeRepo(db).Create(context.Background(), like)
		assert.Equal(t, errprocess.KindNotFound, errprocess.KindOf(err))
	})

	t.Run("成功", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "likes" ("id","user_id","video_id","created_at") VALUES ($1,$2,$3,$4)`)).
			WithArgs("l1", "alice", "v1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewLikeRepo(db).Create(context.Background(), like))
	})
}

func TestLikeRepo_LikedVideoIDs(t *testing.T) {
	t.Run("單一批次查詢", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "video_id" FROM "likes" WHERE user_id = $1 AND video_id IN ($2,$3,$4)`)).
			WithArgs("alice", "v1", "v2", "v3").
			WillReturnRows(sqlmock.NewRows([]string{"video_id"}).AddRow("v2"))

		ids, err := NewLikeRepo(db).LikedVideoIDs(context.Background(), "alice", []string{"v1", "v2", "v3"})
		require.NoError(t, err)
		assert.Equal(t, []string{"v2"}, ids)
	})

	t.Run("空頁不查詢", func(t *testing.T) {
		db, _ := newDB(t)
		ids, err := NewLikeRepo(db).LikedVideoIDs(context.Background(), "alice", nil)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestLikeRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND video_id = $2`)).
		WithArgs("alice", "v1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := NewLikeRepo(db).Delete(context.Background(), "alice", "v1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLikeRepo_CountByVideo(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE video_id = $1`)).
		WithArgs("v1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := NewLikeRepo(db).CountByVideo(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestCommentRepo_ListByVideo(t *testing.T) {
	db, mock := newDB(t)
	now := time.Now()
	mock.ExpectQuery(`JOIN users ON users.id = comments.user_id WHERE comments.video_id = \$1 ORDER BY comments.created_at DESC, comments.id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("v1", 20, 20).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "text", "user_id", "video_id", "created_at", "updated_at",
			"author_username", "author_name", "author_avatar", "author_verified",
		}).AddRow("c1", "nice", "carol", "v1", now, now, "carol", nil, nil, false))

	comments, err := NewCommentRepo(db).ListByVideo(context.Background(), "v1", 20, 20)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Text)
	assert.Equal(t, "carol", comments[0].Author.Username)
	assert.Equal(t, "carol", comments[0].Author.ID)
}

func TestCommentRepo_GetByID(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewCommentRepo(db).GetByID(context.Background(), "nope")
	assert.Equal(t, errprocess.KindNotFound, errprocess.KindOf(err))
}

func TestCommentRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE id = $1`)).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewCommentRepo(db).Delete(context.Background(), "c1"))
}
