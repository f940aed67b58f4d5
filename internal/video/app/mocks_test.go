package app

import (
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"

	"short_video_service/internal/video/domain"
	"short_video_service/pkg/event"
)

// MockVideoRepo Mock VideoRepo
type MockVideoRepo struct {
	mock.Mock
}

func (m *MockVideoRepo) Create(ctx context.Context, video *domain.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *MockVideoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepo) GetView(ctx context.Context, id string) (*domain.VideoView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.VideoView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepo) Update(ctx context.Context, id string, upd domain.VideoUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockVideoRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVideoRepo) IncrementViews(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVideoRepo) ListVideos(ctx context.Context, filter domain.VideoFilter, offset, limit int) ([]domain.VideoView, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.VideoView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepo) CountVideos(ctx context.Context, filter domain.VideoFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockFollowing Mock FollowingLister
type MockFollowing struct {
	mock.Mock
}

func (m *MockFollowing) FollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	args := m.Called(ctx, followerID)
	if args.Get(0) != nil {
		return args.Get(0).([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockLikes Mock LikeLookup
type MockLikes struct {
	mock.Mock
}

func (m *MockLikes) LikedVideoIDs(ctx context.Context, userID string, videoIDs []string) ([]string, error) {
	args := m.Called(ctx, userID, videoIDs)
	if args.Get(0) != nil {
		return args.Get(0).([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockStorage Mock storage.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, objectName, r, size, contentType)
	return args.String(0), args.Error(1)
}

// recordingPublisher 記錄發布過的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
