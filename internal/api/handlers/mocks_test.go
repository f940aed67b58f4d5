package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"short_video_service/internal/guard"
	interactiondomain "short_video_service/internal/interaction/domain"
	memberdomain "short_video_service/internal/member/domain"
	videodomain "short_video_service/internal/video/domain"
)

type MockVideoUseCase struct {
	mock.Mock
}

func (m *MockVideoUseCase) ListFeed(ctx context.Context, viewer guard.Viewer, q videodomain.FeedQuery) (*videodomain.VideoPage, error) {
	args := m.Called(ctx, viewer, q)
	page, _ := args.Get(0).(*videodomain.VideoPage)
	return page, args.Error(1)
}

func (m *MockVideoUseCase) GetVideo(ctx context.Context, viewer guard.Viewer, videoID string) (*videodomain.VideoView, error) {
	args := m.Called(ctx, viewer, videoID)
	v, _ := args.Get(0).(*videodomain.VideoView)
	return v, args.Error(1)
}

func (m *MockVideoUseCase) CreateVideo(ctx context.Context, viewer guard.Viewer, in videodomain.CreateVideoInput) (*videodomain.Video, error) {
	args := m.Called(ctx, viewer, in)
	v, _ := args.Get(0).(*videodomain.Video)
	return v, args.Error(1)
}

func (m *MockVideoUseCase) UpdateVideo(ctx context.Context, viewer guard.Viewer, videoID string, upd videodomain.VideoUpdate) (*videodomain.Video, error) {
	args := m.Called(ctx, viewer, videoID, upd)
	v, _ := args.Get(0).(*videodomain.Video)
	return v, args.Error(1)
}

func (m *MockVideoUseCase) DeleteVideo(ctx context.Context, viewer guard.Viewer, videoID string) error {
	return m.Called(ctx, viewer, videoID).Error(0)
}

func (m *MockVideoUseCase) UploadVideo(ctx context.Context, viewer guard.Viewer, up videodomain.UploadVideoReq) (*videodomain.UploadVideoRes, error) {
	args := m.Called(ctx, viewer, up)
	res, _ := args.Get(0).(*videodomain.UploadVideoRes)
	return res, args.Error(1)
}

type MockInteractionUseCase struct {
	mock.Mock
}

func (m *MockInteractionUseCase) Like(ctx context.Context, viewer guard.Viewer, videoID string) (*interactiondomain.LikeResult, error) {
	args := m.Called(ctx, viewer, videoID)
	res, _ := args.Get(0).(*interactiondomain.LikeResult)
	return res, args.Error(1)
}

func (m *MockInteractionUseCase) Unlike(ctx context.Context, viewer guard.Viewer, videoID string) (*interactiondomain.LikeResult, error) {
	args := m.Called(ctx, viewer, videoID)
	res, _ := args.Get(0).(*interactiondomain.LikeResult)
	return res, args.Error(1)
}

func (m *MockInteractionUseCase) ListComments(ctx context.Context, viewer guard.Viewer, videoID string, page, limit int) (*interactiondomain.CommentPage, error) {
	args := m.Called(ctx, viewer, videoID, page, limit)
	res, _ := args.Get(0).(*interactiondomain.CommentPage)
	return res, args.Error(1)
}

func (m *MockInteractionUseCase) CreateComment(ctx context.Context, viewer guard.Viewer, videoID string, in interactiondomain.CreateCommentInput) (*interactiondomain.CommentView, error) {
	args := m.Called(ctx, viewer, videoID, in)
	res, _ := args.Get(0).(*interactiondomain.CommentView)
	return res, args.Error(1)
}

func (m *MockInteractionUseCase) DeleteComment(ctx context.Context, viewer guard.Viewer, commentID string) error {
	return m.Called(ctx, viewer, commentID).Error(0)
}

func (m *MockInteractionUseCase) LikedVideoIDs(ctx context.Context, userID string, videoIDs []string) ([]string, error) {
	args := m.Called(ctx, userID, videoIDs)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type MockMemberUseCase struct {
	mock.Mock
}

func (m *MockMemberUseCase) Register(ctx context.Context, in memberdomain.RegisterInput) (*memberdomain.Member, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*memberdomain.Member)
	return res, args.Error(1)
}

func (m *MockMemberUseCase) FindMember(ctx context.Context, param *memberdomain.MemberQuery) (*memberdomain.Member, error) {
	args := m.Called(ctx, param)
	res, _ := args.Get(0).(*memberdomain.Member)
	return res, args.Error(1)
}

func (m *MockMemberUseCase) Login(ctx context.Context, in memberdomain.LoginInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockMemberUseCase) Logout(ctx context.Context, viewer guard.Viewer) error {
	return m.Called(ctx, viewer).Error(0)
}

func (m *MockMemberUseCase) GetProfile(ctx context.Context, viewer guard.Viewer, memberID string) (*memberdomain.Profile, error) {
	args := m.Called(ctx, viewer, memberID)
	res, _ := args.Get(0).(*memberdomain.Profile)
	return res, args.Error(1)
}

func (m *MockMemberUseCase) UpdateProfile(ctx context.Context, viewer guard.Viewer, memberID string, upd memberdomain.ProfileUpdate) (*memberdomain.Profile, error) {
	args := m.Called(ctx, viewer, memberID, upd)
	res, _ := args.Get(0).(*memberdomain.Profile)
	return res, args.Error(1)
}

func (m *MockMemberUseCase) Exists(ctx context.Context, memberID string) (bool, error) {
	args := m.Called(ctx, memberID)
	return args.Bool(0), args.Error(1)
}

type MockRelationUseCase struct {
	mock.Mock
}

func (m *MockRelationUseCase) Follow(ctx context.Context, viewer guard.Viewer, targetID string) error {
	return m.Called(ctx, viewer, targetID).Error(0)
}

func (m *MockRelationUseCase) Unfollow(ctx context.Context, viewer guard.Viewer, targetID string) error {
	return m.Called(ctx, viewer, targetID).Error(0)
}

func (m *MockRelationUseCase) FollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	args := m.Called(ctx, followerID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

// fakeSessions 所有 session 皆有效
type fakeSessions struct{}

func (fakeSessions) GetTTL(context.Context, string) (int, error) { return 60, nil }
