package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// SubscriptionHandler serves subscription toggles and listings.
type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle subscribes or unsubscribes the caller from a channel.
// POST /subscriptions/{channelId}
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	channelID, err := strconv.ParseInt(chi.URLParam(r, "channelId"), 10, 64)
	if err != nil || channelID < 1 {
		httputil.WriteBadRequest(w, "Invalid channel ID")
		return
	}

	state, count, err := h.subscriptionService.Toggle(r.Context(), userID, channelID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCannotSubscribeSelf):
			httputil.WriteBadRequest(w, "Cannot subscribe to your own channel")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "Channel not found")
		default:
			httputil.WriteInternalError(w, "Failed to toggle subscription")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"state":            state,
		"subscriber_count": count,
	}, "Subscription toggled")
}

// Subscribers lists the users subscribed to a channel.
// GET /subscriptions/{channelId}/subscribers
func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := strconv.ParseInt(chi.URLParam(r, "channelId"), 10, 64)
	if err != nil || channelID < 1 {
		httputil.WriteBadRequest(w, "Invalid channel ID")
		return
	}

	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	users, err := h.subscriptionService.GetSubscribers(r.Context(), channelID, page.Offset(), page.Limit)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "Channel not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to list subscribers")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, model.SubscriptionListResponse{
		Users: users,
		Page:  page.Number,
		Limit: page.Limit,
	}, "Subscribers fetched")
}

// SubscribedChannels lists the channels a user is subscribed to.
// GET /subscriptions/u/{id}
func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || subscriberID < 1 {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	users, err := h.subscriptionService.GetSubscribedChannels(r.Context(), subscriberID, page.Offset(), page.Limit)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to list subscribed channels")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, model.SubscriptionListResponse{
		Users: users,
		Page:  page.Number,
		Limit: page.Limit,
	}, "Subscribed channels fetched")
}
