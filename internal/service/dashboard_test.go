package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"vidtube/internal/model"
)

func existingUser(ctx context.Context, id int64) (bool, error) { return true, nil }

func TestDashboardStatsOwnerOnly(t *testing.T) {
	svc := NewDashboardService(
		&mockDashboardRepo{},
		&mockVideoRepo{},
		&mockUserRepo{existsFn: existingUser},
		nil,
	)

	_, err := svc.GetStats(context.Background(), 2, 3)
	if !errors.Is(err, model.ErrNotChannelOwner) {
		t.Errorf("got %v, want ErrNotChannelOwner", err)
	}
}

func TestDashboardStatsMissingChannel(t *testing.T) {
	svc := NewDashboardService(
		&mockDashboardRepo{},
		&mockVideoRepo{},
		&mockUserRepo{existsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil }},
		nil,
	)

	// A missing channel reads as not found even when the caller would not
	// own it, so channel IDs are not probeable.
	_, err := svc.GetStats(context.Background(), 99, 3)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestDashboardStatsAggregation(t *testing.T) {
	// Two published videos with 5 and 7 views, two subscribers.
	stats := &model.ChannelStats{TotalVideos: 2, TotalViews: 12, TotalSubscribers: 2, TotalLikes: 3}
	svc := NewDashboardService(
		&mockDashboardRepo{
			getChannelStatsFn: func(ctx context.Context, channelID int64) (*model.ChannelStats, error) {
				return stats, nil
			},
		},
		&mockVideoRepo{},
		&mockUserRepo{existsFn: existingUser},
		nil,
	)

	got, err := svc.GetStats(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if got.TotalVideos != 2 || got.TotalViews != 12 || got.TotalSubscribers != 2 {
		t.Errorf("got %+v, want videos=2 views=12 subscribers=2", got)
	}
}

func TestDashboardStatsZeroChannel(t *testing.T) {
	svc := NewDashboardService(
		&mockDashboardRepo{
			getChannelStatsFn: func(ctx context.Context, channelID int64) (*model.ChannelStats, error) {
				return &model.ChannelStats{}, nil
			},
		},
		&mockVideoRepo{},
		&mockUserRepo{existsFn: existingUser},
		nil,
	)

	got, err := svc.GetStats(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if got.TotalVideos != 0 || got.TotalViews != 0 || got.TotalSubscribers != 0 || got.TotalLikes != 0 {
		t.Errorf("zero-video channel should report zeros, got %+v", got)
	}
}

func TestDashboardStatsCacheHitSkipsRepo(t *testing.T) {
	cached := &model.ChannelStats{TotalVideos: 1, TotalViews: 5}
	repoCalled := false
	svc := NewDashboardService(
		&mockDashboardRepo{
			getChannelStatsFn: func(ctx context.Context, channelID int64) (*model.ChannelStats, error) {
				repoCalled = true
				return nil, fmt.Errorf("should not be reached")
			},
		},
		&mockVideoRepo{},
		&mockUserRepo{existsFn: existingUser},
		&mockStatsCache{
			getFn: func(ctx context.Context, channelID int64) (*model.ChannelStats, bool, error) {
				return cached, true, nil
			},
		},
	)

	got, err := svc.GetStats(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if repoCalled {
		t.Error("cache hit should not reach the database")
	}
	if got.TotalViews != 5 {
		t.Errorf("got views %d, want 5", got.TotalViews)
	}
}

func TestDashboardStatsCacheFailureFallsThrough(t *testing.T) {
	stats := &model.ChannelStats{TotalVideos: 4}
	svc := NewDashboardService(
		&mockDashboardRepo{
			getChannelStatsFn: func(ctx context.Context, channelID int64) (*model.ChannelStats, error) {
				return stats, nil
			},
		},
		&mockVideoRepo{},
		&mockUserRepo{existsFn: existingUser},
		&mockStatsCache{
			getFn: func(ctx context.Context, channelID int64) (*model.ChannelStats, bool, error) {
				return nil, false, fmt.Errorf("redis down")
			},
			setFn: func(ctx context.Context, channelID int64, stats *model.ChannelStats) error {
				return fmt.Errorf("redis down")
			},
		},
	)

	got, err := svc.GetStats(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("get stats with broken cache: %v", err)
	}
	if got.TotalVideos != 4 {
		t.Errorf("got videos %d, want 4", got.TotalVideos)
	}
}

func TestDashboardVideosIncludesDrafts(t *testing.T) {
	svc := NewDashboardService(
		&mockDashboardRepo{},
		&mockVideoRepo{
			listByChannelFn: func(ctx context.Context, ownerID int64, offset, limit int) ([]model.Video, error) {
				return []model.Video{
					{ID: 1, IsPublished: true},
					{ID: 2, IsPublished: false},
				}, nil
			},
		},
		&mockUserRepo{existsFn: existingUser},
		nil,
	)

	videos, err := svc.GetVideos(context.Background(), 2, 2, 0, 10)
	if err != nil {
		t.Fatalf("get videos: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("got %d videos, want 2", len(videos))
	}
	if videos[1].IsPublished {
		t.Error("expected the draft to stay unpublished")
	}

	if _, err := svc.GetVideos(context.Background(), 2, 3, 0, 10); !errors.Is(err, model.ErrNotChannelOwner) {
		t.Errorf("non-owner: got %v, want ErrNotChannelOwner", err)
	}
}
