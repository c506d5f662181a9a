package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"vidtube/internal/model"
	"vidtube/internal/queue"
)

type mockPublisher struct {
	mu     sync.Mutex
	events []queue.EngagementEvent
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.EngagementEvent) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.events = append(m.events, event)
	return "1-0", nil
}

func videoFixture() *model.Video {
	return &model.Video{ID: 1, OwnerID: 1, Title: "demo", IsPublished: true}
}

func TestVideoPublishValidation(t *testing.T) {
	svc := NewVideoService(&mockVideoRepo{}, &mockTx{}, &mockPublisher{})
	ctx := context.Background()

	_, err := svc.Publish(ctx, 1, model.PublishVideoRequest{Title: "  "}, "v.mp4", "t.jpg", 10)
	if !errors.Is(err, model.ErrTitleRequired) {
		t.Errorf("blank title: got %v, want ErrTitleRequired", err)
	}

	long := strings.Repeat("t", model.MaxVideoTitleLength+1)
	_, err = svc.Publish(ctx, 1, model.PublishVideoRequest{Title: long}, "v.mp4", "t.jpg", 10)
	if !errors.Is(err, model.ErrTitleTooLong) {
		t.Errorf("long title: got %v, want ErrTitleTooLong", err)
	}
}

func TestVideoPublishStartsPublished(t *testing.T) {
	repo := &mockVideoRepo{
		createFn: func(ctx context.Context, video *model.Video) error {
			video.ID = 1
			return nil
		},
	}
	svc := NewVideoService(repo, &mockTx{}, &mockPublisher{})

	video, err := svc.Publish(context.Background(), 1, model.PublishVideoRequest{Title: "demo"}, "v.mp4", "t.jpg", 10)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !video.IsPublished {
		t.Error("freshly published video should be visible")
	}
}

func TestVideoListRejectsUnknownSortField(t *testing.T) {
	svc := NewVideoService(&mockVideoRepo{}, &mockTx{}, &mockPublisher{})

	_, err := svc.List(context.Background(), model.VideoListOptions{SortBy: "password_hashed"}, 0, 10)
	if !errors.Is(err, model.ErrInvalidSortField) {
		t.Errorf("got %v, want ErrInvalidSortField", err)
	}
}

func TestVideoGetEmitsWatchEvent(t *testing.T) {
	pub := &mockPublisher{}
	repo := &mockVideoRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) {
			return videoFixture(), nil
		},
	}
	svc := NewVideoService(repo, &mockTx{}, pub)
	ctx := context.Background()

	viewer := int64(7)
	if _, err := svc.GetByID(ctx, 1, &viewer); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("got %d events, want 1", len(pub.events))
	}
	if pub.events[0].VideoID != 1 || pub.events[0].ViewerID != 7 {
		t.Errorf("event %+v, want video=1 viewer=7", pub.events[0])
	}

	// Anonymous viewers still produce an event, with a zero viewer ID.
	if _, err := svc.GetByID(ctx, 1, nil); err != nil {
		t.Fatalf("anonymous get: %v", err)
	}
	if pub.events[1].ViewerID != 0 {
		t.Errorf("anonymous event viewer %d, want 0", pub.events[1].ViewerID)
	}
}

func TestVideoGetPublishFailureStillServes(t *testing.T) {
	pub := &mockPublisher{err: errors.New("stream unavailable")}
	repo := &mockVideoRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) {
			return videoFixture(), nil
		},
	}
	svc := NewVideoService(repo, &mockTx{}, pub)

	video, err := svc.GetByID(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("get with broken stream: %v", err)
	}
	if video.ID != 1 {
		t.Errorf("got video %d, want 1", video.ID)
	}
}

func TestVideoGetDraftVisibility(t *testing.T) {
	pub := &mockPublisher{}
	repo := &mockVideoRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) {
			return &model.Video{ID: 1, OwnerID: 1, IsPublished: false}, nil
		},
	}
	svc := NewVideoService(repo, &mockTx{}, pub)
	ctx := context.Background()

	// Drafts read as not found for everyone but the owner.
	if _, err := svc.GetByID(ctx, 1, nil); !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("anonymous draft: got %v, want ErrVideoNotFound", err)
	}
	other := int64(2)
	if _, err := svc.GetByID(ctx, 1, &other); !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("non-owner draft: got %v, want ErrVideoNotFound", err)
	}

	owner := int64(1)
	if _, err := svc.GetByID(ctx, 1, &owner); err != nil {
		t.Fatalf("owner draft: %v", err)
	}

	// Owner previews are not watches.
	if len(pub.events) != 0 {
		t.Errorf("draft view emitted %d events, want 0", len(pub.events))
	}
}

func TestVideoMutationsOwnerOnly(t *testing.T) {
	repo := &mockVideoRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) {
			if id != 1 {
				return nil, model.ErrVideoNotFound
			}
			return videoFixture(), nil
		},
	}
	svc := NewVideoService(repo, &mockTx{}, &mockPublisher{})
	ctx := context.Background()

	if _, err := svc.Update(ctx, 1, 2, model.UpdateVideoRequest{}, nil); !errors.Is(err, model.ErrNotVideoOwner) {
		t.Errorf("update: got %v, want ErrNotVideoOwner", err)
	}
	if err := svc.Delete(ctx, 1, 2); !errors.Is(err, model.ErrNotVideoOwner) {
		t.Errorf("delete: got %v, want ErrNotVideoOwner", err)
	}
	if _, err := svc.TogglePublish(ctx, 1, 2); !errors.Is(err, model.ErrNotVideoOwner) {
		t.Errorf("toggle publish: got %v, want ErrNotVideoOwner", err)
	}
	if err := svc.Delete(ctx, 404, 2); !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("missing video: got %v, want ErrVideoNotFound", err)
	}
}
