package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/database"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// LikeService toggles likes across the likeable subject kinds. The
// relationship row and the subject's denormalized counter always change in
// the same transaction, so the counter can never drift from the rows.
type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
	tx          database.Transactor
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
	tx database.Transactor,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		tx:          tx,
	}
}

// Toggle likes the subject if the caller hasn't liked it, unlikes it
// otherwise. The insert itself decides which half runs: ON CONFLICT DO
// NOTHING reports whether a row was created, so two racing toggles can
// never double-count.
func (s *LikeService) Toggle(ctx context.Context, callerID int64, subject model.LikeSubject, subjectID int64) (*model.ToggleResult, error) {
	if !subject.Valid() {
		return nil, model.ErrInvalidSubjectType
	}

	if err := s.checkSubjectExists(ctx, subject, subjectID); err != nil {
		return nil, err
	}

	var result model.ToggleResult
	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		inserted, err := s.likeRepo.Insert(ctx, tx, callerID, subject, subjectID)
		if err != nil {
			return err
		}

		if inserted {
			count, err := s.adjustCount(ctx, tx, subject, subjectID, +1)
			if err != nil {
				return err
			}
			result = model.ToggleResult{State: model.LikeStateLiked, Count: count}
			return nil
		}

		removed, err := s.likeRepo.Delete(ctx, tx, callerID, subject, subjectID)
		if err != nil {
			return err
		}
		if !removed {
			// another transaction removed the row first; treat as unliked
			count, err := s.currentCount(ctx, tx, subject, subjectID)
			if err != nil {
				return err
			}
			result = model.ToggleResult{State: model.LikeStateUnliked, Count: count}
			return nil
		}

		count, err := s.adjustCount(ctx, tx, subject, subjectID, -1)
		if err != nil {
			return err
		}
		result = model.ToggleResult{State: model.LikeStateUnliked, Count: count}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetLikedVideos returns the published videos the caller has liked.
func (s *LikeService) GetLikedVideos(ctx context.Context, callerID int64, offset, limit int) ([]model.Video, error) {
	return s.likeRepo.ListLikedVideos(ctx, callerID, offset, limit)
}

func (s *LikeService) checkSubjectExists(ctx context.Context, subject model.LikeSubject, subjectID int64) error {
	var (
		exists   bool
		err      error
		notFound error
	)

	switch subject {
	case model.SubjectVideo:
		exists, err = s.videoRepo.Exists(ctx, subjectID)
		notFound = model.ErrVideoNotFound
	case model.SubjectComment:
		exists, err = s.commentRepo.Exists(ctx, subjectID)
		notFound = model.ErrCommentNotFound
	case model.SubjectTweet:
		exists, err = s.tweetRepo.Exists(ctx, subjectID)
		notFound = model.ErrTweetNotFound
	default:
		return model.ErrInvalidSubjectType
	}

	if err != nil {
		return err
	}
	if !exists {
		return notFound
	}
	return nil
}

func (s *LikeService) adjustCount(ctx context.Context, tx *sqlx.Tx, subject model.LikeSubject, subjectID int64, delta int) (int, error) {
	switch subject {
	case model.SubjectVideo:
		return s.videoRepo.AdjustLikeCount(ctx, tx, subjectID, delta)
	case model.SubjectComment:
		return s.commentRepo.AdjustLikeCount(ctx, tx, subjectID, delta)
	case model.SubjectTweet:
		return s.tweetRepo.AdjustLikeCount(ctx, tx, subjectID, delta)
	}
	return 0, fmt.Errorf("adjust like count: %w", model.ErrInvalidSubjectType)
}

func (s *LikeService) currentCount(ctx context.Context, tx *sqlx.Tx, subject model.LikeSubject, subjectID int64) (int, error) {
	return s.adjustCount(ctx, tx, subject, subjectID, 0)
}
