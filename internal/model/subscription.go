package model

import (
	"errors"
	"time"
)

// Subscription links a subscriber to a channel (both users). At most one
// subscription exists per (subscriber, channel) pair.
type Subscription struct {
	ID           int64     `db:"id" json:"id"`
	SubscriberID int64     `db:"subscriber_id" json:"subscriber_id"`
	ChannelID    int64     `db:"channel_id" json:"channel_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Toggle states for subscriptions.
const (
	SubscriptionStateSubscribed   = "subscribed"
	SubscriptionStateUnsubscribed = "unsubscribed"
)

// SubscriptionListResponse is the paginated subscriber (or subscribed-to)
// list response.
type SubscriptionListResponse struct {
	Users []ChannelSummary `json:"users"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// Subscription errors
var (
	ErrCannotSubscribeSelf = errors.New("cannot subscribe to your own channel")
)
