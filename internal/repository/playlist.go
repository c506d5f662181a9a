package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type playlistRepository struct {
	db *sqlx.DB
}

func NewPlaylistRepository(db *sqlx.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, p *model.Playlist) error {
	query := `
		INSERT INTO playlists (owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, p.OwnerID, p.Name, p.Description).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE id = $1
	`

	var playlist model.Playlist
	err := r.db.GetContext(ctx, &playlist, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	return &playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	var playlists []model.Playlist
	if err := r.db.SelectContext(ctx, &playlists, query, ownerID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

func (r *playlistRepository) Update(ctx context.Context, id int64, name, description *string) (*model.Playlist, error) {
	query := `
		UPDATE playlists
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING id, owner_id, name, description, created_at, updated_at
	`

	var playlist model.Playlist
	err := r.db.GetContext(ctx, &playlist, query, name, description, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}

	return &playlist, nil
}

func (r *playlistRepository) Delete(ctx context.Context, id int64) error {
	// playlist_videos rows go first; they have no counters to reconcile.
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_videos WHERE playlist_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete playlist videos: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPlaylistNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id, added_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, playlistID, videoID)
	if err != nil {
		return false, fmt.Errorf("failed to add video to playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	query := `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`

	result, err := r.db.ExecContext(ctx, query, playlistID, videoID)
	if err != nil {
		return false, fmt.Errorf("failed to remove video from playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// GetVideos returns a playlist's videos in insertion order.
func (r *playlistRepository) GetVideos(ctx context.Context, playlistID int64) ([]model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE pv.playlist_id = $1
		ORDER BY pv.added_at ASC, pv.video_id ASC
	`

	var rows []videoRow
	if err := r.db.SelectContext(ctx, &rows, query, playlistID); err != nil {
		return nil, fmt.Errorf("failed to get playlist videos: %w", err)
	}

	videos := make([]model.Video, 0, len(rows))
	for i := range rows {
		videos = append(videos, rows[i].toVideo())
	}
	return videos, nil
}
