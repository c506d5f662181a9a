package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/database"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// SubscriptionService manages channel subscriptions and the denormalized
// subscriber counter on the channel's user row.
type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
	tx       database.Transactor
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	tx database.Transactor,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
		tx:       tx,
	}
}

// Toggle subscribes the caller to a channel, or unsubscribes if already
// subscribed. Self-subscription is rejected. The subscription row and the
// channel's subscriber_count move in the same transaction.
func (s *SubscriptionService) Toggle(ctx context.Context, callerID, channelID int64) (string, int, error) {
	if callerID == channelID {
		return "", 0, model.ErrCannotSubscribeSelf
	}

	exists, err := s.userRepo.Exists(ctx, channelID)
	if err != nil {
		return "", 0, err
	}
	if !exists {
		return "", 0, model.ErrUserNotFound
	}

	var (
		state string
		count int
	)
	err = s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		inserted, err := s.subRepo.Insert(ctx, tx, callerID, channelID)
		if err != nil {
			return err
		}

		if inserted {
			count, err = s.userRepo.AdjustSubscriberCount(ctx, tx, channelID, +1)
			if err != nil {
				return err
			}
			state = model.SubscriptionStateSubscribed
			return nil
		}

		removed, err := s.subRepo.Delete(ctx, tx, callerID, channelID)
		if err != nil {
			return err
		}
		state = model.SubscriptionStateUnsubscribed
		if !removed {
			count, err = s.userRepo.AdjustSubscriberCount(ctx, tx, channelID, 0)
			return err
		}

		count, err = s.userRepo.AdjustSubscriberCount(ctx, tx, channelID, -1)
		return err
	})
	if err != nil {
		return "", 0, err
	}

	return state, count, nil
}

// GetSubscribers lists the users subscribed to a channel.
func (s *SubscriptionService) GetSubscribers(ctx context.Context, channelID int64, offset, limit int) ([]model.ChannelSummary, error) {
	exists, err := s.userRepo.Exists(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	return s.subRepo.ListSubscribers(ctx, channelID, offset, limit)
}

// GetSubscribedChannels lists the channels a user is subscribed to.
func (s *SubscriptionService) GetSubscribedChannels(ctx context.Context, subscriberID int64, offset, limit int) ([]model.ChannelSummary, error) {
	exists, err := s.userRepo.Exists(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	return s.subRepo.ListSubscribedTo(ctx, subscriberID, offset, limit)
}
