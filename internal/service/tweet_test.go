package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

func TestTweetCreateValidation(t *testing.T) {
	svc := NewTweetService(&mockTweetRepo{}, &mockUserRepo{}, &mockTx{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, ""); !errors.Is(err, model.ErrContentRequired) {
		t.Errorf("blank content: got %v, want ErrContentRequired", err)
	}

	long := strings.Repeat("x", model.MaxTweetLength+1)
	if _, err := svc.Create(ctx, 1, long); !errors.Is(err, model.ErrContentTooLong) {
		t.Errorf("long content: got %v, want ErrContentTooLong", err)
	}
}

func TestTweetCreateTrimsContent(t *testing.T) {
	tweetRepo := &mockTweetRepo{
		createFn: func(ctx context.Context, ownerID int64, content string) (*model.Tweet, error) {
			return &model.Tweet{ID: 1, OwnerID: ownerID, Content: content}, nil
		},
	}
	svc := NewTweetService(tweetRepo, &mockUserRepo{}, &mockTx{})

	tweet, err := svc.Create(context.Background(), 1, "  hello  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tweet.Content != "hello" {
		t.Errorf("got content %q, want %q", tweet.Content, "hello")
	}
}

func TestTweetListMissingUser(t *testing.T) {
	userRepo := &mockUserRepo{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := NewTweetService(&mockTweetRepo{}, userRepo, &mockTx{})

	_, err := svc.ListByUser(context.Background(), 99, 0, 10)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestTweetOwnership(t *testing.T) {
	tweetRepo := &mockTweetRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Tweet, error) {
			if id != 3 {
				return nil, model.ErrTweetNotFound
			}
			return &model.Tweet{ID: 3, OwnerID: 1, Content: "yo"}, nil
		},
		deleteFn: func(ctx context.Context, tx *sqlx.Tx, id int64) error { return nil },
	}
	svc := NewTweetService(tweetRepo, &mockUserRepo{}, &mockTx{})
	ctx := context.Background()

	if _, err := svc.Update(ctx, 3, 2, "edited"); !errors.Is(err, model.ErrNotTweetOwner) {
		t.Errorf("non-owner update: got %v, want ErrNotTweetOwner", err)
	}
	if _, err := svc.Update(ctx, 404, 2, "edited"); !errors.Is(err, model.ErrTweetNotFound) {
		t.Errorf("missing update: got %v, want ErrTweetNotFound", err)
	}
	if err := svc.Delete(ctx, 3, 2); !errors.Is(err, model.ErrNotTweetOwner) {
		t.Errorf("non-owner delete: got %v, want ErrNotTweetOwner", err)
	}
	if err := svc.Delete(ctx, 3, 1); err != nil {
		t.Errorf("owner delete: %v", err)
	}
}
