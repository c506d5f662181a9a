package service

import (
	"context"
	"errors"
	"testing"

	"vidtube/internal/model"
)

func playlistOwnedBy(ownerID int64) func(ctx context.Context, id int64) (*model.Playlist, error) {
	return func(ctx context.Context, id int64) (*model.Playlist, error) {
		if id != 1 {
			return nil, model.ErrPlaylistNotFound
		}
		return &model.Playlist{ID: 1, OwnerID: ownerID, Name: "favorites"}, nil
	}
}

func TestPlaylistCreateRequiresName(t *testing.T) {
	svc := NewPlaylistService(&mockPlaylistRepo{}, &mockVideoRepo{}, &mockUserRepo{})

	_, err := svc.Create(context.Background(), 1, model.CreatePlaylistRequest{Name: "  "})
	if !errors.Is(err, model.ErrPlaylistNameRequired) {
		t.Errorf("got %v, want ErrPlaylistNameRequired", err)
	}
}

func TestPlaylistAddVideo(t *testing.T) {
	added := map[int64]bool{}
	playlistRepo := &mockPlaylistRepo{
		getByIDFn: playlistOwnedBy(1),
		addVideoFn: func(ctx context.Context, playlistID, videoID int64) (bool, error) {
			if added[videoID] {
				return false, nil
			}
			added[videoID] = true
			return true, nil
		},
	}
	videoRepo := &mockVideoRepo{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return id != 404, nil },
	}
	svc := NewPlaylistService(playlistRepo, videoRepo, &mockUserRepo{})
	ctx := context.Background()

	if err := svc.AddVideo(ctx, 1, 10, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}

	// Same video again is a conflict, not a silent no-op.
	if err := svc.AddVideo(ctx, 1, 10, 1); !errors.Is(err, model.ErrVideoAlreadyInPlaylist) {
		t.Errorf("duplicate add: got %v, want ErrVideoAlreadyInPlaylist", err)
	}

	if err := svc.AddVideo(ctx, 1, 404, 1); !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("missing video: got %v, want ErrVideoNotFound", err)
	}

	if err := svc.AddVideo(ctx, 1, 11, 2); !errors.Is(err, model.ErrNotPlaylistOwner) {
		t.Errorf("non-owner: got %v, want ErrNotPlaylistOwner", err)
	}

	if err := svc.AddVideo(ctx, 99, 11, 1); !errors.Is(err, model.ErrPlaylistNotFound) {
		t.Errorf("missing playlist: got %v, want ErrPlaylistNotFound", err)
	}
}

func TestPlaylistRemoveVideo(t *testing.T) {
	playlistRepo := &mockPlaylistRepo{
		getByIDFn: playlistOwnedBy(1),
		removeVideoFn: func(ctx context.Context, playlistID, videoID int64) (bool, error) {
			return videoID == 10, nil
		},
	}
	svc := NewPlaylistService(playlistRepo, &mockVideoRepo{}, &mockUserRepo{})
	ctx := context.Background()

	if err := svc.RemoveVideo(ctx, 1, 10, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.RemoveVideo(ctx, 1, 11, 1); !errors.Is(err, model.ErrVideoNotInPlaylist) {
		t.Errorf("absent video: got %v, want ErrVideoNotInPlaylist", err)
	}
}

func TestPlaylistUpdateOwnership(t *testing.T) {
	playlistRepo := &mockPlaylistRepo{getByIDFn: playlistOwnedBy(1)}
	svc := NewPlaylistService(playlistRepo, &mockVideoRepo{}, &mockUserRepo{})
	ctx := context.Background()

	name := "renamed"
	if _, err := svc.Update(ctx, 1, 2, model.UpdatePlaylistRequest{Name: &name}); !errors.Is(err, model.ErrNotPlaylistOwner) {
		t.Errorf("non-owner: got %v, want ErrNotPlaylistOwner", err)
	}
	if _, err := svc.Update(ctx, 99, 2, model.UpdatePlaylistRequest{Name: &name}); !errors.Is(err, model.ErrPlaylistNotFound) {
		t.Errorf("missing: got %v, want ErrPlaylistNotFound", err)
	}

	blank := "   "
	if _, err := svc.Update(ctx, 1, 1, model.UpdatePlaylistRequest{Name: &blank}); !errors.Is(err, model.ErrPlaylistNameRequired) {
		t.Errorf("blank name: got %v, want ErrPlaylistNameRequired", err)
	}
}

func TestPlaylistGetByIDLoadsVideos(t *testing.T) {
	playlistRepo := &mockPlaylistRepo{
		getByIDFn: playlistOwnedBy(1),
		getVideosFn: func(ctx context.Context, playlistID int64) ([]model.Video, error) {
			return []model.Video{{ID: 10}, {ID: 11}}, nil
		},
	}
	svc := NewPlaylistService(playlistRepo, &mockVideoRepo{}, &mockUserRepo{})

	playlist, err := svc.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(playlist.Videos) != 2 {
		t.Errorf("got %d videos, want 2", len(playlist.Videos))
	}
}
