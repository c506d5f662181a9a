package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type videoRepository struct {
	db *sqlx.DB
}

func NewVideoRepository(db *sqlx.DB) VideoRepository {
	return &videoRepository{db: db}
}

// videoColumns is the select list shared by video queries that join the owner.
const videoColumns = `
	v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
	v.duration, v.views, v.like_count, v.is_published, v.created_at, v.updated_at,
	u.id AS "owner.id", u.username AS "owner.username",
	u.full_name AS "owner.full_name", u.avatar_url AS "owner.avatar_url"
`

// videoRow scans a video joined with its owner projection.
type videoRow struct {
	model.Video
	OwnerSummary model.ChannelSummary `db:"owner"`
}

func (row *videoRow) toVideo() model.Video {
	v := row.Video
	owner := row.OwnerSummary
	v.Owner = &owner
	return v
}

func (r *videoRepository) Create(ctx context.Context, v *model.Video) error {
	query := `
		INSERT INTO videos (owner_id, title, description, video_url, thumbnail_url, duration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, views, like_count, is_published, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		v.OwnerID, v.Title, v.Description, v.VideoURL, v.ThumbnailURL, v.Duration,
	).Scan(&v.ID, &v.Views, &v.LikeCount, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.id = $1
	`

	var row videoRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	video := row.toVideo()
	return &video, nil
}

func (r *videoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check video existence: %w", err)
	}
	return exists, nil
}

// List returns published videos. Sorting is restricted to the whitelist in
// model.VideoSortFields; the ORDER BY clause is assembled only from those
// fixed identifiers.
func (r *videoRepository) List(ctx context.Context, opts model.VideoListOptions, offset, limit int) ([]model.Video, error) {
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	if _, ok := model.VideoSortFields[sortBy]; !ok {
		return nil, model.ErrInvalidSortField
	}

	direction := "ASC"
	if opts.SortDesc {
		direction = "DESC"
	}

	var conditions []string
	var args []interface{}
	conditions = append(conditions, "v.is_published = TRUE")

	if opts.Query != "" {
		args = append(args, "%"+opts.Query+"%")
		conditions = append(conditions, fmt.Sprintf("v.title ILIKE $%d", len(args)))
	}
	if opts.OwnerID != nil {
		args = append(args, *opts.OwnerID)
		conditions = append(conditions, fmt.Sprintf("v.owner_id = $%d", len(args)))
	}

	args = append(args, limit)
	limitPos := len(args)
	args = append(args, offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE %s
		ORDER BY v.%s %s, v.id %s
		LIMIT $%d OFFSET $%d
	`, videoColumns, strings.Join(conditions, " AND "), sortBy, direction, direction, limitPos, offsetPos)

	var rows []videoRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	videos := make([]model.Video, 0, len(rows))
	for i := range rows {
		videos = append(videos, rows[i].toVideo())
	}
	return videos, nil
}

// ListByChannel returns all of a channel's videos, drafts included, for the
// owner dashboard. Newest first.
func (r *videoRepository) ListByChannel(ctx context.Context, ownerID int64, offset, limit int) ([]model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.owner_id = $1
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT $2 OFFSET $3
	`

	var rows []videoRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list channel videos: %w", err)
	}

	videos := make([]model.Video, 0, len(rows))
	for i := range rows {
		videos = append(videos, rows[i].toVideo())
	}
	return videos, nil
}

// Update sets only the provided fields via COALESCE.
func (r *videoRepository) Update(ctx context.Context, id int64, title, description, thumbnailURL *string) (*model.Video, error) {
	query := `
		UPDATE videos
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    thumbnail_url = COALESCE($3, thumbnail_url),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING id, owner_id, title, description, video_url, thumbnail_url,
		          duration, views, like_count, is_published, created_at, updated_at
	`

	var v model.Video
	err := r.db.GetContext(ctx, &v, query, title, description, thumbnailURL, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	return &v, nil
}

// Delete removes the video and everything hanging off it: likes on the video,
// likes on its comments, the comments themselves, playlist references, and
// watch history. All inside the caller's transaction so a partial cascade
// never commits.
func (r *videoRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	statements := []string{
		`DELETE FROM likes
		 WHERE subject_type = 'comment'
		   AND subject_id IN (SELECT id FROM comments WHERE video_id = $1)`,
		`DELETE FROM likes WHERE subject_type = 'video' AND subject_id = $1`,
		`DELETE FROM comments WHERE video_id = $1`,
		`DELETE FROM playlist_videos WHERE video_id = $1`,
		`DELETE FROM watch_history WHERE video_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to cascade video delete: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrVideoNotFound
	}

	return nil
}

func (r *videoRepository) TogglePublish(ctx context.Context, id int64) (*model.Video, error) {
	query := `
		UPDATE videos SET is_published = NOT is_published, updated_at = NOW()
		WHERE id = $1
		RETURNING id, owner_id, title, description, video_url, thumbnail_url,
		          duration, views, like_count, is_published, created_at, updated_at
	`

	var v model.Video
	err := r.db.GetContext(ctx, &v, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle publish status: %w", err)
	}

	return &v, nil
}

func (r *videoRepository) AdjustLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error) {
	query := `
		UPDATE videos SET like_count = like_count + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING like_count
	`

	var count int
	err := tx.GetContext(ctx, &count, query, delta, id)
	if err == sql.ErrNoRows {
		return 0, model.ErrVideoNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust video like count: %w", err)
	}

	return count, nil
}

// IncrementViews bumps the view counter. A single atomic UPDATE, so
// concurrent watches never lose counts.
func (r *videoRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// RecordWatch upserts a watch-history row; re-watching refreshes watched_at
// so the video moves back to the top of the history.
func (r *videoRepository) RecordWatch(ctx context.Context, userID, videoID int64) error {
	query := `
		INSERT INTO watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, userID, videoID)
	if err != nil {
		return fmt.Errorf("failed to record watch: %w", err)
	}
	return nil
}

// GetWatchHistory returns the user's watched videos, most recent first, each
// carrying the reduced owner projection.
func (r *videoRepository) GetWatchHistory(ctx context.Context, userID int64, offset, limit int) ([]model.WatchHistoryEntry, error) {
	query := `
		SELECT ` + videoColumns + `, h.watched_at
		FROM watch_history h
		JOIN videos v ON v.id = h.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.watched_at DESC
		LIMIT $2 OFFSET $3
	`

	type historyRow struct {
		videoRow
		WatchedAt time.Time `db:"watched_at"`
	}

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}

	entries := make([]model.WatchHistoryEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, model.WatchHistoryEntry{
			Video:     rows[i].toVideo(),
			WatchedAt: rows[i].WatchedAt,
		})
	}
	return entries, nil
}
