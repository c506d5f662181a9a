package model

import (
	"errors"
	"time"
)

// Playlist is an owner-curated, ordered collection of video references.
type Playlist struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     int64     `db:"owner_id" json:"owner_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// Joined field: videos in playlist order
	Videos []Video `db:"-" json:"videos,omitempty"`
}

// CreatePlaylistRequest is the request body for creating a playlist.
type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdatePlaylistRequest is the request body for updating a playlist.
// Nil fields are left unchanged.
type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Playlist constraints
const (
	MaxPlaylistNameLength        = 120
	MaxPlaylistDescriptionLength = 1000
)

// Playlist errors
var (
	ErrPlaylistNotFound       = errors.New("playlist not found")
	ErrNotPlaylistOwner       = errors.New("not the owner of this playlist")
	ErrPlaylistNameRequired   = errors.New("playlist name is required")
	ErrVideoAlreadyInPlaylist = errors.New("video already in playlist")
	ErrVideoNotInPlaylist     = errors.New("video not in playlist")
)
