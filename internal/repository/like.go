package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Insert relies on the unique (user_id, subject_type, subject_id) index;
// ON CONFLICT DO NOTHING makes the toggle race-safe, and the affected row
// count tells the caller whether this was the liking half of the toggle.
func (r *likeRepository) Insert(ctx context.Context, tx *sqlx.Tx, userID int64, subject model.LikeSubject, subjectID int64) (bool, error) {
	query := `
		INSERT INTO likes (user_id, subject_type, subject_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, subject_type, subject_id) DO NOTHING
	`

	result, err := tx.ExecContext(ctx, query, userID, subject, subjectID)
	if err != nil {
		return false, fmt.Errorf("failed to insert like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, tx *sqlx.Tx, userID int64, subject model.LikeSubject, subjectID int64) (bool, error) {
	query := `DELETE FROM likes WHERE user_id = $1 AND subject_type = $2 AND subject_id = $3`

	result, err := tx.ExecContext(ctx, query, userID, subject, subjectID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *likeRepository) Count(ctx context.Context, subject model.LikeSubject, subjectID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM likes WHERE subject_type = $1 AND subject_id = $2`,
		subject, subjectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// ListLikedVideos returns published videos the user has liked, most recently
// liked first.
func (r *likeRepository) ListLikedVideos(ctx context.Context, userID int64, offset, limit int) ([]model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM likes l
		JOIN videos v ON v.id = l.subject_id
		JOIN users u ON u.id = v.owner_id
		WHERE l.user_id = $1 AND l.subject_type = 'video' AND v.is_published = TRUE
		ORDER BY l.created_at DESC, l.subject_id DESC
		LIMIT $2 OFFSET $3
	`

	var rows []videoRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}

	videos := make([]model.Video, 0, len(rows))
	for i := range rows {
		videos = append(videos, rows[i].toVideo())
	}
	return videos, nil
}
