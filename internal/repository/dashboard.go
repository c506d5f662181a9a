package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type dashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// GetChannelStats aggregates on read so the numbers always reflect the
// current rows. Subscriber count comes from the subscriptions table itself
// rather than the denormalized users counter.
func (r *dashboardRepository) GetChannelStats(ctx context.Context, channelID int64) (*model.ChannelStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE owner_id = $1) AS total_videos,
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1) AS total_views,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1) AS total_subscribers,
			(SELECT COALESCE(SUM(like_count), 0) FROM videos WHERE owner_id = $1) AS total_likes
	`

	var stats model.ChannelStats
	if err := r.db.GetContext(ctx, &stats, query, channelID); err != nil {
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}

	return &stats, nil
}
