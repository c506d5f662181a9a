package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

func TestCommentCreateMissingVideo(t *testing.T) {
	videoRepo := &mockVideoRepo{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := NewCommentService(&mockCommentRepo{}, videoRepo, &mockTx{})

	_, err := svc.Create(context.Background(), 99, 1, "nice video")
	if !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("got %v, want ErrVideoNotFound", err)
	}
}

func TestCommentCreateValidation(t *testing.T) {
	svc := NewCommentService(&mockCommentRepo{}, &mockVideoRepo{}, &mockTx{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, 1, "   "); !errors.Is(err, model.ErrContentRequired) {
		t.Errorf("blank content: got %v, want ErrContentRequired", err)
	}

	long := strings.Repeat("a", model.MaxCommentLength+1)
	if _, err := svc.Create(ctx, 1, 1, long); !errors.Is(err, model.ErrContentTooLong) {
		t.Errorf("long content: got %v, want ErrContentTooLong", err)
	}
}

func TestCommentUpdateOwnership(t *testing.T) {
	commentRepo := &mockCommentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			if id != 5 {
				return nil, model.ErrCommentNotFound
			}
			return &model.Comment{ID: 5, OwnerID: 1, Content: "original"}, nil
		},
		updateFn: func(ctx context.Context, id int64, content string) (*model.Comment, error) {
			return &model.Comment{ID: id, OwnerID: 1, Content: content}, nil
		},
	}
	svc := NewCommentService(commentRepo, &mockVideoRepo{}, &mockTx{})
	ctx := context.Background()

	// Non-owner against an existing comment is forbidden.
	if _, err := svc.Update(ctx, 5, 2, "edited"); !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("non-owner: got %v, want ErrNotCommentOwner", err)
	}

	// Missing comment reports not found even for a would-be non-owner.
	if _, err := svc.Update(ctx, 404, 2, "edited"); !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("missing: got %v, want ErrCommentNotFound", err)
	}

	updated, err := svc.Update(ctx, 5, 1, "edited")
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("got content %q, want %q", updated.Content, "edited")
	}
}

func TestCommentDeleteRunsInTransaction(t *testing.T) {
	var deleted bool
	commentRepo := &mockCommentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: id, OwnerID: 1}, nil
		},
		deleteFn: func(ctx context.Context, tx *sqlx.Tx, id int64) error {
			deleted = true
			return nil
		},
	}
	svc := NewCommentService(commentRepo, &mockVideoRepo{}, &mockTx{})

	if err := svc.Delete(context.Background(), 5, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Error("comment repo delete was not called")
	}

	if err := svc.Delete(context.Background(), 5, 2); !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("non-owner delete: got %v, want ErrNotCommentOwner", err)
	}
}
