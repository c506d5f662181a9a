package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type subStore struct {
	subscribed map[int64]bool // keyed by subscriber ID, single channel
	count      int
}

func newSubscriptionFixture(store *subStore) *SubscriptionService {
	subRepo := &mockSubscriptionRepo{
		insertFn: func(ctx context.Context, tx *sqlx.Tx, subscriberID, channelID int64) (bool, error) {
			if store.subscribed[subscriberID] {
				return false, nil
			}
			store.subscribed[subscriberID] = true
			return true, nil
		},
		deleteFn: func(ctx context.Context, tx *sqlx.Tx, subscriberID, channelID int64) (bool, error) {
			if !store.subscribed[subscriberID] {
				return false, nil
			}
			delete(store.subscribed, subscriberID)
			return true, nil
		},
	}
	userRepo := &mockUserRepo{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		adjustSubscriberCountFn: func(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error) {
			store.count += delta
			return store.count, nil
		},
	}
	return NewSubscriptionService(subRepo, userRepo, &mockTx{})
}

func TestSubscriptionTogglePair(t *testing.T) {
	store := &subStore{subscribed: map[int64]bool{}}
	svc := newSubscriptionFixture(store)
	ctx := context.Background()

	state, count, err := svc.Toggle(ctx, 7, 2)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if state != model.SubscriptionStateSubscribed || count != 1 {
		t.Errorf("first toggle: got %q/%d, want subscribed/1", state, count)
	}

	state, count, err = svc.Toggle(ctx, 7, 2)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if state != model.SubscriptionStateUnsubscribed || count != 0 {
		t.Errorf("second toggle: got %q/%d, want unsubscribed/0", state, count)
	}
}

func TestSubscriptionToggleSelf(t *testing.T) {
	svc := NewSubscriptionService(&mockSubscriptionRepo{}, &mockUserRepo{}, &mockTx{})

	_, _, err := svc.Toggle(context.Background(), 5, 5)
	if !errors.Is(err, model.ErrCannotSubscribeSelf) {
		t.Errorf("got %v, want ErrCannotSubscribeSelf", err)
	}
}

func TestSubscriptionToggleMissingChannel(t *testing.T) {
	userRepo := &mockUserRepo{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := NewSubscriptionService(&mockSubscriptionRepo{}, userRepo, &mockTx{})

	_, _, err := svc.Toggle(context.Background(), 5, 99)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestSubscriptionDistinctSubscribersAccumulate(t *testing.T) {
	store := &subStore{subscribed: map[int64]bool{}}
	svc := newSubscriptionFixture(store)
	ctx := context.Background()

	for _, subscriber := range []int64{10, 11, 12} {
		if _, _, err := svc.Toggle(ctx, subscriber, 2); err != nil {
			t.Fatalf("subscriber %d: %v", subscriber, err)
		}
	}

	if store.count != 3 {
		t.Errorf("got subscriber count %d, want 3", store.count)
	}
}
