package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"vidtube/internal/queue"
)

// EngagementRecorder defines the interface for applying watch events.
// This abstracts the repository layer so workers don't depend on DB directly.
type EngagementRecorder interface {
	// IncrementViews bumps a video's view counter by one.
	IncrementViews(ctx context.Context, videoID int64) error

	// RecordWatch upserts a (user, video) watch history row. Re-watching
	// refreshes the timestamp instead of adding a second entry.
	RecordWatch(ctx context.Context, userID, videoID int64) error
}

// Handler processes engagement events from the queue.
type Handler struct {
	recorder EngagementRecorder
}

// NewHandler creates a new event handler.
func NewHandler(recorder EngagementRecorder) *Handler {
	return &Handler{recorder: recorder}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.EngagementEvent) error {
	startTime := time.Now()
	var err error

	switch event.Type {
	case queue.EventVideoWatched:
		err = h.handleVideoWatched(ctx, event)
	default:
		log.Printf("[Worker] Unknown event type: %s", event.Type)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s duration=%v err=%v",
			event.Type, time.Since(startTime), err)
		return err
	}

	log.Printf("[Worker] HandleEvent OK: type=%s duration=%v", event.Type, time.Since(startTime))
	return nil
}

// handleVideoWatched bumps the view counter and, for signed-in viewers,
// records watch history. The two writes are independent; a history failure
// must not roll back the already counted view.
func (h *Handler) handleVideoWatched(ctx context.Context, event queue.EngagementEvent) error {
	log.Printf("[Worker] VideoWatched: video=%d viewer=%d", event.VideoID, event.ViewerID)

	if err := h.recorder.IncrementViews(ctx, event.VideoID); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}

	if event.ViewerID == 0 {
		log.Printf("[Worker] VideoWatched DONE: video=%d (anonymous, no history)", event.VideoID)
		return nil
	}

	if err := h.recorder.RecordWatch(ctx, event.ViewerID, event.VideoID); err != nil {
		log.Printf("[Worker] VideoWatched: failed to record history viewer=%d video=%d err=%v",
			event.ViewerID, event.VideoID, err)
		return nil
	}

	log.Printf("[Worker] VideoWatched DONE: video=%d viewer=%d", event.VideoID, event.ViewerID)
	return nil
}
