package app

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"short_video_service/internal/guard"
	"short_video_service/internal/video/domain"
	"short_video_service/pkg/logger"
)

// memoryStore 記憶體中的影片與追蹤關係
type memoryStore struct {
	videos  []domain.Video
	follows map[string][]string
	likes   map[string]map[string]bool
	clock   time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		follows: map[string][]string{},
		likes:   map[string]map[string]bool{},
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memoryStore) add(owner string, public bool) {
	s.clock = s.clock.Add(time.Minute)
	s.videos = append(s.videos, domain.Video{
		ID:        fmt.Sprintf("v%03d", len(s.videos)+1),
		UserID:    owner,
		IsPublic:  public,
		CreatedAt: s.clock,
	})
}

func (s *memoryStore) match(f domain.VideoFilter) []domain.Video {
	if f.IsEmpty() {
		return nil
	}
	var out []domain.Video
	for _, v := range s.videos {
		if f.PublicOnly && !v.IsPublic {
			continue
		}
		if f.OwnerIDs != nil && !contains(f.OwnerIDs, v.UserID) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *memoryStore) Create(_ context.Context, v *domain.Video) error {
	s.videos = append(s.videos, *v)
	return nil
}

func (s *memoryStore) GetByID(_ context.Context, id string) (*domain.Video, error) {
	for i := range s.videos {
		if s.videos[i].ID == id {
			v := s.videos[i]
			return &v, nil
		}
	}
	return nil, fmt.Errorf("video %s not found", id)
}

func (s *memoryStore) GetView(ctx context.Context, id string) (*domain.VideoView, error) {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.VideoView{Video: *v}, nil
}

func (s *memoryStore) Update(context.Context, string, domain.VideoUpdate) error { return nil }

func (s *memoryStore) Delete(context.Context, string) error { return nil }

func (s *memoryStore) IncrementViews(context.Context, string) error { return nil }

func (s *memoryStore) ListVideos(_ context.Context, f domain.VideoFilter, offset, limit int) ([]domain.VideoView, error) {
	all := s.match(f)
	out := []domain.VideoView{}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		out = append(out, domain.VideoView{Video: all[i]})
	}
	return out, nil
}

func (s *memoryStore) CountVideos(_ context.Context, f domain.VideoFilter) (int64, error) {
	return int64(len(s.match(f))), nil
}

func (s *memoryStore) FollowingIDs(_ context.Context, followerID string) ([]string, error) {
	return append([]string{}, s.follows[followerID]...), nil
}

func (s *memoryStore) LikedVideoIDs(_ context.Context, userID string, videoIDs []string) ([]string, error) {
	var out []string
	for _, id := range videoIDs {
		if s.likes[userID][id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func splitNames(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

type feedScenario struct {
	store *memoryStore
	uc    VideoUseCase
	page  *domain.VideoPage
}

func (f *feedScenario) usersExist(string) error { return nil }

func (f *feedScenario) hasVideos(owner string, public, drafts int) error {
	for i := 0; i < public; i++ {
		f.store.add(owner, true)
	}
	for i := 0; i < drafts; i++ {
		f.store.add(owner, false)
	}
	return nil
}

func (f *feedScenario) follows(follower, target string) error {
	f.store.follows[follower] = append(f.store.follows[follower], target)
	return nil
}

func (f *feedScenario) request(viewer guard.Viewer, q domain.FeedQuery) error {
	page, err := f.uc.ListFeed(context.Background(), viewer, q)
	f.page = page
	return err
}

func (f *feedScenario) requestsFeed(viewer, scope string) error {
	return f.request(guard.ViewerOf(viewer), domain.FeedQuery{Scope: domain.Scope(scope)})
}

func (f *feedScenario) anonymousRequestsFeed(scope string) error {
	return f.request(guard.Anonymous, domain.FeedQuery{Scope: domain.Scope(scope)})
}

func (f *feedScenario) requestsVideosOf(viewer, target string) error {
	return f.request(guard.ViewerOf(viewer), domain.FeedQuery{Scope: domain.ScopeByUser, TargetUserID: target})
}

func (f *feedScenario) anonymousRequestsVideosOf(target string) error {
	return f.request(guard.Anonymous, domain.FeedQuery{Scope: domain.ScopeByUser, TargetUserID: target})
}

func (f *feedScenario) requestsPage(viewer string, page int, scope string, limit int) error {
	return f.request(guard.ViewerOf(viewer), domain.FeedQuery{Scope: domain.Scope(scope), Page: page, Limit: limit})
}

func (f *feedScenario) feedContains(n int) error {
	if len(f.page.Videos) != n {
		return fmt.Errorf("expected %d videos, got %d", n, len(f.page.Videos))
	}
	return nil
}

func (f *feedScenario) onlyFrom(owners string) error {
	allowed := splitNames(owners)
	for _, v := range f.page.Videos {
		if !contains(allowed, v.UserID) {
			return fmt.Errorf("video %s belongs to %s", v.ID, v.UserID)
		}
	}
	return nil
}

func (f *feedScenario) newestFirst() error {
	for i := 1; i < len(f.page.Videos); i++ {
		if f.page.Videos[i].CreatedAt.After(f.page.Videos[i-1].CreatedAt) {
			return fmt.Errorf("video %s is newer than %s", f.page.Videos[i].ID, f.page.Videos[i-1].ID)
		}
	}
	return nil
}

func (f *feedScenario) noDraft() error {
	for _, v := range f.page.Videos {
		if !v.IsPublic {
			return fmt.Errorf("draft %s returned", v.ID)
		}
	}
	return nil
}

func (f *feedScenario) totalIs(n int) error {
	if f.page.Pagination.Total != int64(n) {
		return fmt.Errorf("expected total %d, got %d", n, f.page.Pagination.Total)
	}
	return nil
}

func (f *feedScenario) pagesAre(n int) error {
	if f.page.Pagination.TotalPages != n {
		return fmt.Errorf("expected %d pages, got %d", n, f.page.Pagination.TotalPages)
	}
	return nil
}

func initializeFeedScenario(s *godog.ScenarioContext) {
	f := &feedScenario{}
	s.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		f.store = newMemoryStore()
		f.uc = NewVideoUseCase(f.store, f.store, f.store, nil, nil, Options{DefaultLimit: 10, MaxLimit: 100})
		f.page = nil
		return ctx, nil
	})

	s.Step(`^users "([^"]*)" exist$`, f.usersExist)
	s.Step(`^"([^"]*)" has (\d+) public and (\d+) draft videos$`, f.hasVideos)
	s.Step(`^"([^"]*)" follows "([^"]*)"$`, f.follows)
	s.Step(`^"([^"]*)" requests the "([^"]*)" feed$`, f.requestsFeed)
	s.Step(`^an anonymous viewer requests the "([^"]*)" feed$`, f.anonymousRequestsFeed)
	s.Step(`^"([^"]*)" requests the videos of "([^"]*)"$`, f.requestsVideosOf)
	s.Step(`^an anonymous viewer requests the videos of "([^"]*)"$`, f.anonymousRequestsVideosOf)
	s.Step(`^"([^"]*)" requests page (\d+) of the "([^"]*)" feed with limit (\d+)$`, f.requestsPage)
	s.Step(`^the feed contains (\d+) videos?$`, f.feedContains)
	s.Step(`^the feed only contains videos from "([^"]*)"$`, f.onlyFrom)
	s.Step(`^the feed is ordered newest first$`, f.newestFirst)
	s.Step(`^no draft is returned$`, f.noDraft)
	s.Step(`^the total is (\d+)$`, f.totalIs)
	s.Step(`^there are (\d+) pages$`, f.pagesAre)
}

func TestFeedFeatures(t *testing.T) {
	logger.Log = logger.SetNewNop()

	suite := godog.TestSuite{
		ScenarioInitializer: initializeFeedScenario,
		Options: &godog.Options{
			Paths:    []string{"./features"},
			Format:   "pretty",
			Output:   os.Stdout,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fail()
	}
}
