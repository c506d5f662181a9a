package model

import (
	"errors"
	"time"
)

// Tweet is a short text post on a user's channel page.
type Tweet struct {
	ID        int64     `db:"id" json:"id"`
	OwnerID   int64     `db:"owner_id" json:"owner_id"`
	Content   string    `db:"content" json:"content"`
	LikeCount int       `db:"like_count" json:"like_count"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Joined field
	Owner *ChannelSummary `db:"-" json:"owner,omitempty"`
}

// CreateTweetRequest is the request body for creating a tweet.
type CreateTweetRequest struct {
	Content string `json:"content"`
}

// UpdateTweetRequest is the request body for updating a tweet.
type UpdateTweetRequest struct {
	Content string `json:"content"`
}

// Tweet constraints
const (
	MaxTweetLength = 280
)

// Tweet errors
var (
	ErrTweetNotFound = errors.New("tweet not found")
	ErrNotTweetOwner = errors.New("not the owner of this tweet")
)
