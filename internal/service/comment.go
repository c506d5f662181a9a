package service

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/database"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	tx          database.Transactor
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	tx database.Transactor,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		tx:          tx,
	}
}

// Create adds a comment to a video.
func (s *CommentService) Create(ctx context.Context, videoID, callerID int64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, model.ErrContentRequired
	}
	if len(content) > model.MaxCommentLength {
		return nil, model.ErrContentTooLong
	}

	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrVideoNotFound
	}

	return s.commentRepo.Create(ctx, videoID, callerID, content)
}

// ListByVideo returns a video's comments, newest first.
func (s *CommentService) ListByVideo(ctx context.Context, videoID int64, offset, limit int) ([]model.Comment, error) {
	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrVideoNotFound
	}

	return s.commentRepo.ListByVideo(ctx, videoID, offset, limit)
}

// Update edits a comment's text. Owner only.
func (s *CommentService) Update(ctx context.Context, commentID, callerID int64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, model.ErrContentRequired
	}
	if len(content) > model.MaxCommentLength {
		return nil, model.ErrContentTooLong
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(comment.OwnerID, callerID, model.ErrNotCommentOwner); err != nil {
		return nil, err
	}

	return s.commentRepo.Update(ctx, commentID, content)
}

// Delete removes a comment and its likes in one transaction. Owner only.
func (s *CommentService) Delete(ctx context.Context, commentID, callerID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := requireOwner(comment.OwnerID, callerID, model.ErrNotCommentOwner); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		return s.commentRepo.Delete(ctx, tx, commentID)
	})
}
