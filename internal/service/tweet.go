package service

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/database"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
	tx        database.Transactor
}

func NewTweetService(
	tweetRepo repository.TweetRepository,
	userRepo repository.UserRepository,
	tx database.Transactor,
) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
		tx:        tx,
	}
}

// Create posts a tweet on the caller's channel.
func (s *TweetService) Create(ctx context.Context, callerID int64, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, model.ErrContentRequired
	}
	if len(content) > model.MaxTweetLength {
		return nil, model.ErrContentTooLong
	}

	return s.tweetRepo.Create(ctx, callerID, content)
}

// ListByUser returns a user's tweets, newest first.
func (s *TweetService) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]model.Tweet, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	return s.tweetRepo.ListByOwner(ctx, userID, offset, limit)
}

// Update edits a tweet's text. Owner only.
func (s *TweetService) Update(ctx context.Context, tweetID, callerID int64, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, model.ErrContentRequired
	}
	if len(content) > model.MaxTweetLength {
		return nil, model.ErrContentTooLong
	}

	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(tweet.OwnerID, callerID, model.ErrNotTweetOwner); err != nil {
		return nil, err
	}

	return s.tweetRepo.Update(ctx, tweetID, content)
}

// Delete removes a tweet and its likes in one transaction. Owner only.
func (s *TweetService) Delete(ctx context.Context, tweetID, callerID int64) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if err := requireOwner(tweet.OwnerID, callerID, model.ErrNotTweetOwner); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		return s.tweetRepo.Delete(ctx, tx, tweetID)
	})
}
