package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"short_video_service/internal/member/domain"
	errprocess "short_video_service/pkg/err"
	"short_video_service/pkg/optional"
)

const uniqueViolation = "23505"

// MemberRepository definition get Member info
type MemberRepository interface {
	CreateMember(ctx context.Context, member *domain.Member) error
	UpdateMemberStatus(ctx context.Context, memberID string, status domain.MemberStatus) error
	FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	CountMembers(ctx context.Context) (int64, error)
	Exists(ctx context.Context, memberID string) (bool, error)
	GetProfile(ctx context.Context, memberID string, includePrivate bool) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, memberID string, upd domain.ProfileUpdate) error
}

// querier *pgxpool.Pool 使用到的方法
type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type memberRepository struct {
	db querier
}

// NewMemberRepository create a MemberRepository
func NewMemberRepository(db *pgxpool.Pool) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) CreateMember(ctx context.Context, m *domain.Member) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, username, password, name, verified, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.Email, m.Username, m.Password, m.Name, m.Verified, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errprocess.Wrap(errprocess.KindConflict, "Email or username already exists", err)
		}
		return pkgerrors.Wrapf(err, "insert member %s", m.ID)
	}
	return nil
}

func (r *memberRepository) UpdateMemberStatus(ctx context.Context, memberID string, status domain.MemberStatus) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET status = $1 WHERE id = $2", status, memberID)
	return pkgerrors.Wrapf(err, "update status of member %s", memberID)
}

func (r *memberRepository) FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error) {
	queryStr := `SELECT id, email, username, password, name, bio, avatar, verified, status, created_at, updated_at
		FROM users WHERE 1=1`
	params := []interface{}{}

	if memberQuery.ID != nil {
		params = append(params, *memberQuery.ID)
		queryStr += fmt.Sprintf(" AND id = $%d", len(params))
	}
	if memberQuery.Email != nil {
		params = append(params, *memberQuery.Email)
		queryStr += fmt.Sprintf(" AND email = $%d", len(params))
	}
	if memberQuery.Username != nil {
		params = append(params, *memberQuery.Username)
		queryStr += fmt.Sprintf(" AND username = $%d", len(params))
	}
	if len(params) == 0 {
		return nil, errprocess.InvalidInput("member query requires at least one condition")
	}

	var m domain.Member
	err := r.db.QueryRow(ctx, queryStr+" LIMIT 1", params...).Scan(
		&m.ID, &m.Email, &m.Username, &m.Password, &m.Name, &m.Bio, &m.Avatar,
		&m.Verified, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errprocess.NotFound("User not found")
		}
		return nil, pkgerrors.Wrap(err, "find member")
	}
	return &m, nil
}

func (r *memberRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)",
		email, username,
	).Scan(&exists)
	return exists, pkgerrors.Wrap(err, "check member exists")
}

func (r *memberRepository) CountMembers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, pkgerrors.Wrap(err, "count members")
}

func (r *memberRepository) Exists(ctx context.Context, memberID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", memberID).Scan(&exists)
	return exists, pkgerrors.Wrapf(err, "check member %s", memberID)
}

// GetProfile includePrivate 為 false 時影片數只計算公開影片
func (r *memberRepository) GetProfile(ctx context.Context, memberID string, includePrivate bool) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.QueryRow(ctx,
		`SELECT u.id, u.username, u.name, u.bio, u.avatar, u.verified, u.created_at,
			(SELECT COUNT(*) FROM videos v WHERE v.user_id = u.id AND ($2 OR v.is_public)),
			(SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id),
			(SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id)
		FROM users u WHERE u.id = $1`,
		memberID, includePrivate,
	).Scan(
		&p.ID, &p.Username, &p.Name, &p.Bio, &p.Avatar, &p.Verified, &p.CreatedAt,
		&p.Counts.Videos, &p.Counts.Followers, &p.Counts.Following,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errprocess.NotFound("User not found")
		}
		return nil, pkgerrors.Wrapf(err, "get profile %s", memberID)
	}
	return &p, nil
}

// UpdateProfile 只 SET 有設定的欄位
func (r *memberRepository) UpdateProfile(ctx context.Context, memberID string, upd domain.ProfileUpdate) error {
	sets := []string{}
	params := []interface{}{}

	add := func(column string, f optional.Field[*string]) {
		if v, ok := f.Get(); ok {
			params = append(params, v)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(params)))
		}
	}
	add("name", upd.Name)
	add("bio", upd.Bio)
	add("avatar", upd.Avatar)
	if len(sets) == 0 {
		return nil
	}

	params = append(params, memberID)
	queryStr := fmt.Sprintf("UPDATE users SET %s, updated_at = NOW() WHERE id = $%d", strings.Join(sets, ", "), len(params))

	tag, err := r.db.Exec(ctx, queryStr, params...)
	if err != nil {
		return pkgerrors.Wrapf(err, "update profile %s", memberID)
	}
	if tag.RowsAffected() == 0 {
		return errprocess.NotFound("User not found")
	}
	return nil
}
