package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/database"
	"vidtube/internal/model"
	"vidtube/internal/queue"
	"vidtube/internal/repository"
)

type VideoService struct {
	videoRepo repository.VideoRepository
	tx        database.Transactor
	publisher queue.Publisher
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	tx database.Transactor,
	publisher queue.Publisher,
) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		tx:        tx,
		publisher: publisher,
	}
}

// Publish creates a new video record. The file and thumbnail were uploaded
// by the caller; only metadata and URLs land here.
func (s *VideoService) Publish(ctx context.Context, ownerID int64, req model.PublishVideoRequest, videoURL, thumbnailURL string, duration float64) (*model.Video, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, model.ErrTitleRequired
	}
	if len(title) > model.MaxVideoTitleLength {
		return nil, model.ErrTitleTooLong
	}
	if len(req.Description) > model.MaxVideoDescriptionLength {
		return nil, model.ErrDescriptionTooLong
	}

	video := &model.Video{
		OwnerID:      ownerID,
		Title:        title,
		Description:  req.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		IsPublished:  true,
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}

	return video, nil
}

// List returns published videos matching the options.
func (s *VideoService) List(ctx context.Context, opts model.VideoListOptions, offset, limit int) ([]model.Video, error) {
	if opts.SortBy != "" {
		if _, ok := model.VideoSortFields[opts.SortBy]; !ok {
			return nil, model.ErrInvalidSortField
		}
	}
	return s.videoRepo.List(ctx, opts, offset, limit)
}

// GetByID returns a single video and emits a watch event. Unpublished videos
// are visible only to their owner and never counted as watched.
func (s *VideoService) GetByID(ctx context.Context, videoID int64, viewerID *int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if !video.IsPublished {
		if viewerID == nil || *viewerID != video.OwnerID {
			return nil, model.ErrVideoNotFound
		}
		return video, nil
	}

	var viewer int64
	if viewerID != nil {
		viewer = *viewerID
	}

	event := queue.NewVideoWatchedEvent(videoID, viewer)
	msgID, err := s.publisher.Publish(ctx, queue.StreamEngagement, event)
	if err != nil {
		// Log but don't fail; the video is served even if the view is lost
		log.Printf("[VideoService] Failed to publish VideoWatched event: video=%d err=%v", videoID, err)
	} else {
		log.Printf("[VideoService] Published VideoWatched: video=%d msgID=%s", videoID, msgID)
	}

	return video, nil
}

// Update edits video metadata. Owner only; nil fields stay unchanged.
func (s *VideoService) Update(ctx context.Context, videoID, callerID int64, req model.UpdateVideoRequest, thumbnailURL *string) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(video.OwnerID, callerID, model.ErrNotVideoOwner); err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, model.ErrTitleRequired
		}
		if len(title) > model.MaxVideoTitleLength {
			return nil, model.ErrTitleTooLong
		}
		req.Title = &title
	}
	if req.Description != nil && len(*req.Description) > model.MaxVideoDescriptionLength {
		return nil, model.ErrDescriptionTooLong
	}

	return s.videoRepo.Update(ctx, videoID, req.Title, req.Description, thumbnailURL)
}

// Delete removes a video together with its comments, likes, playlist
// references, and watch history in one transaction. Owner only.
func (s *VideoService) Delete(ctx context.Context, videoID, callerID int64) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if err := requireOwner(video.OwnerID, callerID, model.ErrNotVideoOwner); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		return s.videoRepo.Delete(ctx, tx, videoID)
	})
}

// TogglePublish flips a video between draft and published. Owner only.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, callerID int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(video.OwnerID, callerID, model.ErrNotVideoOwner); err != nil {
		return nil, err
	}

	return s.videoRepo.TogglePublish(ctx, videoID)
}
