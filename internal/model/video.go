package model

import (
	"errors"
	"time"
)

// Video represents a published (or draft) video and its denormalized counters.
type Video struct {
	ID           int64     `db:"id" json:"id"`
	OwnerID      int64     `db:"owner_id" json:"owner_id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	VideoURL     string    `db:"video_url" json:"video_url"`
	ThumbnailURL string    `db:"thumbnail_url" json:"thumbnail_url"`
	Duration     float64   `db:"duration" json:"duration"`
	Views        int64     `db:"views" json:"views"`
	LikeCount    int       `db:"like_count" json:"like_count"`
	IsPublished  bool      `db:"is_published" json:"is_published"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`

	// Joined field (not in videos table)
	Owner *ChannelSummary `db:"-" json:"owner,omitempty"`
}

// PublishVideoRequest carries the metadata of a video upload. The video file
// and thumbnail arrive as multipart files.
type PublishVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateVideoRequest is the request body for updating video details.
// Nil fields are left unchanged.
type UpdateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// VideoListOptions narrows and orders a video listing.
type VideoListOptions struct {
	Query    string // optional case-insensitive title match
	OwnerID  *int64 // optional owner filter
	SortBy   string // created_at | views | title
	SortDesc bool
}

// VideoListResponse is the paginated video list response.
type VideoListResponse struct {
	Videos []Video `json:"videos"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// WatchHistoryEntry is a watched video with its reduced owner projection.
type WatchHistoryEntry struct {
	Video
	WatchedAt time.Time `db:"watched_at" json:"watched_at"`
}

// Video constraints
const (
	MaxVideoTitleLength       = 200
	MaxVideoDescriptionLength = 5000
)

// Allowed sort fields for video listings. Anything else is a validation error.
var VideoSortFields = map[string]struct{}{
	"created_at": {},
	"views":      {},
	"title":      {},
}

// Video errors
var (
	ErrVideoNotFound      = errors.New("video not found")
	ErrNotVideoOwner      = errors.New("not the owner of this video")
	ErrTitleRequired      = errors.New("video title is required")
	ErrTitleTooLong       = errors.New("video title too long")
	ErrDescriptionTooLong = errors.New("video description too long")
	ErrInvalidSortField   = errors.New("invalid sort field")
)
