package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type tweetRepository struct {
	db *sqlx.DB
}

func NewTweetRepository(db *sqlx.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, ownerID int64, content string) (*model.Tweet, error) {
	query := `
		INSERT INTO tweets (owner_id, content, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, owner_id, content, like_count, created_at, updated_at
	`

	var tweet model.Tweet
	err := r.db.GetContext(ctx, &tweet, query, ownerID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tweet: %w", err)
	}

	return &tweet, nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id int64) (*model.Tweet, error) {
	query := `
		SELECT id, owner_id, content, like_count, created_at, updated_at
		FROM tweets
		WHERE id = $1
	`

	var tweet model.Tweet
	err := r.db.GetContext(ctx, &tweet, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrTweetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}

	return &tweet, nil
}

func (r *tweetRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM tweets WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check tweet existence: %w", err)
	}
	return exists, nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Tweet, error) {
	query := `
		SELECT t.id, t.owner_id, t.content, t.like_count, t.created_at, t.updated_at,
		       u.id AS "owner.id", u.username AS "owner.username",
		       u.full_name AS "owner.full_name", u.avatar_url AS "owner.avatar_url"
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		WHERE t.owner_id = $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2 OFFSET $3
	`

	type tweetRow struct {
		model.Tweet
		OwnerSummary model.ChannelSummary `db:"owner"`
	}

	var rows []tweetRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}

	tweets := make([]model.Tweet, 0, len(rows))
	for i := range rows {
		t := rows[i].Tweet
		owner := rows[i].OwnerSummary
		t.Owner = &owner
		tweets = append(tweets, t)
	}
	return tweets, nil
}

func (r *tweetRepository) Update(ctx context.Context, id int64, content string) (*model.Tweet, error) {
	query := `
		UPDATE tweets SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, owner_id, content, like_count, created_at, updated_at
	`

	var tweet model.Tweet
	err := r.db.GetContext(ctx, &tweet, query, content, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrTweetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}

	return &tweet, nil
}

// Delete removes the tweet and its likes in the caller's transaction.
func (r *tweetRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE subject_type = 'tweet' AND subject_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tweet likes: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrTweetNotFound
	}

	return nil
}

func (r *tweetRepository) AdjustLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error) {
	query := `
		UPDATE tweets SET like_count = like_count + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING like_count
	`

	var count int
	err := tx.GetContext(ctx, &count, query, delta, id)
	if err == sql.ErrNoRows {
		return 0, model.ErrTweetNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust tweet like count: %w", err)
	}

	return count, nil
}
