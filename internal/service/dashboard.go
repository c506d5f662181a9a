package service

import (
	"context"
	"log"

	"vidtube/internal/cache"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// DashboardService serves a channel owner's aggregate stats. Aggregation
// happens on read; a short-lived Redis cache absorbs repeated dashboard
// polls without letting the numbers go meaningfully stale.
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	videoRepo     repository.VideoRepository
	userRepo      repository.UserRepository
	statsCache    cache.StatsCache
}

func NewDashboardService(
	dashboardRepo repository.DashboardRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	statsCache cache.StatsCache,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		videoRepo:     videoRepo,
		userRepo:      userRepo,
		statsCache:    statsCache,
	}
}

// GetStats returns a channel's stats. Owner only. Cache failures fall
// through to the database; the dashboard must not break when Redis is down.
func (s *DashboardService) GetStats(ctx context.Context, channelID, callerID int64) (*model.ChannelStats, error) {
	if err := s.authorize(ctx, channelID, callerID); err != nil {
		return nil, err
	}

	if s.statsCache != nil {
		stats, found, err := s.statsCache.GetStats(ctx, channelID)
		if err != nil {
			log.Printf("[DashboardService] stats cache read failed: channel=%d err=%v", channelID, err)
		} else if found {
			return stats, nil
		}
	}

	stats, err := s.dashboardRepo.GetChannelStats(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if s.statsCache != nil {
		if err := s.statsCache.SetStats(ctx, channelID, stats); err != nil {
			log.Printf("[DashboardService] stats cache write failed: channel=%d err=%v", channelID, err)
		}
	}

	return stats, nil
}

// GetVideos returns a channel's own videos, drafts included, newest first.
// Owner only.
func (s *DashboardService) GetVideos(ctx context.Context, channelID, callerID int64, offset, limit int) ([]model.Video, error) {
	if err := s.authorize(ctx, channelID, callerID); err != nil {
		return nil, err
	}

	return s.videoRepo.ListByChannel(ctx, channelID, offset, limit)
}

func (s *DashboardService) authorize(ctx context.Context, channelID, callerID int64) error {
	exists, err := s.userRepo.Exists(ctx, channelID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrUserNotFound
	}
	return requireOwner(channelID, callerID, model.ErrNotChannelOwner)
}
