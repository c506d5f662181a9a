package model

import "errors"

// ErrNotChannelOwner is returned when a caller asks for another channel's
// dashboard.
var ErrNotChannelOwner = errors.New("not the owner of this channel")

// ChannelStats aggregates a channel's footprint for the dashboard.
// Sums over zero videos are zeros, never null.
type ChannelStats struct {
	TotalVideos      int64 `db:"total_videos" json:"total_videos"`
	TotalViews       int64 `db:"total_views" json:"total_views"`
	TotalSubscribers int64 `db:"total_subscribers" json:"total_subscribers"`
	TotalLikes       int64 `db:"total_likes" json:"total_likes"`
}
