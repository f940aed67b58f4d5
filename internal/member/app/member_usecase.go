package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"short_video_service/internal/guard"
	"short_video_service/internal/member/domain"
	"short_video_service/internal/member/repository"
	"short_video_service/pkg/database"
	errprocess "short_video_service/pkg/err"
	"short_video_service/pkg/event"
	"short_video_service/pkg/logger"
	"short_video_service/pkg/token"
	"short_video_service/pkg/validation"
)

// 測試時替換
var (
	newMemberID = func() string { return uuid.New().String() }
	nowFunc     = time.Now
)

// MemberUseCase 這裡封裝了對外提供的應用服務
type MemberUseCase interface {
	Register(ctx context.Context, in domain.RegisterInput) (*domain.Member, error)
	FindMember(ctx context.Context, param *domain.MemberQuery) (*domain.Member, error)
	Login(ctx context.Context, in domain.LoginInput) (string, error)
	Logout(ctx context.Context, viewer guard.Viewer) error
	GetProfile(ctx context.Context, viewer guard.Viewer, memberID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, viewer guard.Viewer, memberID string, upd domain.ProfileUpdate) (*domain.Profile, error)
	Exists(ctx context.Context, memberID string) (bool, error)
}

type memberUseCase struct {
	memberRepo   repository.MemberRepository
	sessionTTL   time.Duration
	redisRepo    database.RedisRepository[domain.MemberSession]
	hashPassword func(string) (string, error)
	maxUsers     int
	events       event.Publisher
}

// NewMemberUseCase 建立一個新的 MemberUseCase, maxUsers <= 0 表示不限制註冊人數
func NewMemberUseCase(memberRepo repository.MemberRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.MemberSession],
	hashPassword func(string) (string, error),
	maxUsers int,
	events event.Publisher,
) MemberUseCase {
	if events == nil {
		events = event.NewNop()
	}
	return &memberUseCase{
		memberRepo:   memberRepo,
		sessionTTL:   sessionTTL,
		redisRepo:    redisRepo,
		hashPassword: hashPassword,
		maxUsers:     maxUsers,
		events:       events,
	}
}

// Register 建立帳號, name 未填時使用 username
func (m *memberUseCase) Register(ctx context.Context, in domain.RegisterInput) (*domain.Member, error) {
	in.Normalize()
	if err := validation.ValidateStruct(&in); err != nil {
		return nil, err
	}

	if m.maxUsers > 0 {
		count, err := m.memberRepo.CountMembers(ctx)
		if err != nil {
			return nil, errprocess.Internal("count members", err)
		}
		if count >= int64(m.maxUsers) {
			return nil, errprocess.Forbidden("Registration is closed: maximum number of users reached")
		}
	}

	exists, err := m.memberRepo.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, errprocess.Internal("check member exists", err)
	}
	if exists {
		return nil, errprocess.Conflict("Email or username already exists")
	}

	pw, err := m.hashPassword(in.Password)
	if err != nil {
		if errprocess.KindOf(err) == errprocess.KindInvalidInput {
			return nil, err
		}
		return nil, errprocess.Internal("hash password", err)
	}

	name := in.Name
	if name == nil || *name == "" {
		name = &in.Username
	}
	now := nowFunc().UTC()
	member := &domain.Member{
		ID:        newMemberID(),
		Email:     in.Email,
		Username:  in.Username,
		Password:  pw,
		Name:      name,
		Status:    domain.MemberStatusOffLine,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.memberRepo.CreateMember(ctx, member); err != nil {
		if errprocess.KindOf(err) == errprocess.KindConflict {
			return nil, err
		}
		return nil, errprocess.Internal("create member", err)
	}

	logger.Log.Info("member registered", zap.String("member_id", member.ID), zap.String("username", member.Username))
	event.Emit(ctx, m.events, event.New(event.UserRegistered, member.ID, member.ID))
	return member, nil
}

// FindMember 以條件尋找使用者
func (m *memberUseCase) FindMember(ctx context.Context, param *domain.MemberQuery) (*domain.Member, error) {
	return m.memberRepo.FindByMember(ctx, param)
}

// Login 驗證密碼, 簽發 token 並在 redis 存 session
func (m *memberUseCase) Login(ctx context.Context, in domain.LoginInput) (string, error) {
	if err := validation.ValidateStruct(&in); err != nil {
		return "", err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	member, err := m.memberRepo.FindByMember(ctx, &domain.MemberQuery{Email: &email})
	if err != nil {
		if errprocess.KindOf(err) == errprocess.KindNotFound {
			return "", errprocess.Unauthenticated("Invalid email or password")
		}
		return "", errprocess.Internal("find member", err)
	}

	if err = member.IsPasswordMatch(in.Password); err != nil {
		logger.Log.Debug("password mismatch", zap.String("member_id", member.ID))
		return "", errprocess.Unauthenticated("Invalid email or password")
	}

	tokenStr, err := token.GenerateJWTWrapper(member.ID, string(token.RoleMember))
	if err != nil {
		return "", errprocess.Internal("generate token", err)
	}

	now := nowFunc()
	session := domain.MemberSession{
		Token:        tokenStr,
		MemberID:     member.ID,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(m.sessionTTL),
	}
	if err := m.redisRepo.Set(ctx, member.ID, session, m.sessionTTL); err != nil {
		return "", errprocess.Internal("save session", err)
	}

	if err := m.memberRepo.UpdateMemberStatus(ctx, member.ID, domain.MemberStatusOnLine); err != nil {
		return "", errprocess.Internal("update member status", err)
	}
	return tokenStr, nil
}

// Logout 刪除 session
func (m *memberUseCase) Logout(ctx context.Context, viewer guard.Viewer) error {
	if err := guard.RequireViewer(viewer); err != nil {
		return err
	}

	if err := m.redisRepo.Del(ctx, viewer.ID()); err != nil {
		return errprocess.Internal("delete session", err)
	}

	if err := m.memberRepo.UpdateMemberStatus(ctx, viewer.ID(), domain.MemberStatusOffLine); err != nil {
		return errprocess.Internal("update member status", err)
	}
	return nil
}

// GetProfile 本人可看到包含未公開影片的數量
func (m *memberUseCase) GetProfile(ctx context.Context, viewer guard.Viewer, memberID string) (*domain.Profile, error) {
	profile, err := m.memberRepo.GetProfile(ctx, memberID, viewer.Is(memberID))
	if err != nil {
		if errprocess.KindOf(err) == errprocess.KindNotFound {
			return nil, err
		}
		return nil, errprocess.Internal("get profile", err)
	}
	return profile, nil
}

// UpdateProfile 只能修改自己的資料
func (m *memberUseCase) UpdateProfile(ctx context.Context, viewer guard.Viewer, memberID string, upd domain.ProfileUpdate) (*domain.Profile, error) {
	if err := guard.RequireOwner(viewer, memberID, "profile"); err != nil {
		return nil, err
	}
	if name, ok := upd.Name.Get(); ok && name != nil && len(*name) > 100 {
		return nil, errprocess.InvalidInput("name must be at most 100 characters")
	}

	if err := m.memberRepo.UpdateProfile(ctx, memberID, upd); err != nil {
		if errprocess.KindOf(err) == errprocess.KindNotFound {
			return nil, err
		}
		return nil, errprocess.Internal("update profile", err)
	}
	return m.GetProfile(ctx, viewer, memberID)
}

// Exists 使用者是否存在
func (m *memberUseCase) Exists(ctx context.Context, memberID string) (bool, error) {
	return m.memberRepo.Exists(ctx, memberID)
}
