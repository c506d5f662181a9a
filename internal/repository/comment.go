package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, videoID, ownerID int64, content string) (*model.Comment, error) {
	query := `
		INSERT INTO comments (video_id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, video_id, owner_id, content, like_count, created_at, updated_at
	`

	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, videoID, ownerID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return &comment, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	query := `
		SELECT id, video_id, owner_id, content, like_count, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

func (r *commentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check comment existence: %w", err)
	}
	return exists, nil
}

// ListByVideo returns a video's comments, newest first, each joined with its
// author projection.
func (r *commentRepository) ListByVideo(ctx context.Context, videoID int64, offset, limit int) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.video_id, c.owner_id, c.content, c.like_count, c.created_at, c.updated_at,
		       u.id AS "owner.id", u.username AS "owner.username",
		       u.full_name AS "owner.full_name", u.avatar_url AS "owner.avatar_url"
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`

	type commentRow struct {
		model.Comment
		OwnerSummary model.ChannelSummary `db:"owner"`
	}

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, videoID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]model.Comment, 0, len(rows))
	for i := range rows {
		c := rows[i].Comment
		owner := rows[i].OwnerSummary
		c.Owner = &owner
		comments = append(comments, c)
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, id int64, content string) (*model.Comment, error) {
	query := `
		UPDATE comments SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, video_id, owner_id, content, like_count, created_at, updated_at
	`

	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, content, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return &comment, nil
}

// Delete removes the comment and its likes in the caller's transaction.
func (r *commentRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE subject_type = 'comment' AND subject_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment likes: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrCommentNotFound
	}

	return nil
}

func (r *commentRepository) AdjustLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error) {
	query := `
		UPDATE comments SET like_count = like_count + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING like_count
	`

	var count int
	err := tx.GetContext(ctx, &count, query, delta, id)
	if err == sql.ErrNoRows {
		return 0, model.ErrCommentNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust comment like count: %w", err)
	}

	return count, nil
}
