package service

import (
	"context"
	"strings"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		userRepo:     userRepo,
	}
}

// Create makes a new empty playlist for the caller.
func (s *PlaylistService) Create(ctx context.Context, callerID int64, req model.CreatePlaylistRequest) (*model.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrPlaylistNameRequired
	}

	playlist := &model.Playlist{
		OwnerID:     callerID,
		Name:        name,
		Description: req.Description,
	}

	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// GetByID returns a playlist with its videos in insertion order.
func (s *PlaylistService) GetByID(ctx context.Context, playlistID int64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	videos, err := s.playlistRepo.GetVideos(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	playlist.Videos = videos

	return playlist, nil
}

// ListByUser returns a user's playlists.
func (s *PlaylistService) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]model.Playlist, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	return s.playlistRepo.ListByOwner(ctx, userID, offset, limit)
}

// Update edits playlist name/description. Owner only.
func (s *PlaylistService) Update(ctx context.Context, playlistID, callerID int64, req model.UpdatePlaylistRequest) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(playlist.OwnerID, callerID, model.ErrNotPlaylistOwner); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, model.ErrPlaylistNameRequired
		}
		req.Name = &name
	}

	return s.playlistRepo.Update(ctx, playlistID, req.Name, req.Description)
}

// Delete removes a playlist and its video references. Owner only. Videos
// themselves are untouched.
func (s *PlaylistService) Delete(ctx context.Context, playlistID, callerID int64) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if err := requireOwner(playlist.OwnerID, callerID, model.ErrNotPlaylistOwner); err != nil {
		return err
	}

	return s.playlistRepo.Delete(ctx, playlistID)
}

// AddVideo appends a video to the playlist. Owner only; duplicates rejected.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, callerID int64) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if err := requireOwner(playlist.OwnerID, callerID, model.ErrNotPlaylistOwner); err != nil {
		return err
	}

	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrVideoNotFound
	}

	added, err := s.playlistRepo.AddVideo(ctx, playlistID, videoID)
	if err != nil {
		return err
	}
	if !added {
		return model.ErrVideoAlreadyInPlaylist
	}
	return nil
}

// RemoveVideo drops a video reference from the playlist. Owner only.
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, callerID int64) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if err := requireOwner(playlist.OwnerID, callerID, model.ErrNotPlaylistOwner); err != nil {
		return err
	}

	removed, err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return err
	}
	if !removed {
		return model.ErrVideoNotInPlaylist
	}
	return nil
}
