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

// DashboardHandler serves a channel owner's stats and video inventory.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns a channel's aggregate stats.
// GET /dashboard/{channelId}/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
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

	stats, err := h.dashboardService.GetStats(r.Context(), channelID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "Channel not found")
		case errors.Is(err, model.ErrNotChannelOwner):
			httputil.WriteForbidden(w, "You do not own this channel")
		default:
			httputil.WriteInternalError(w, "Failed to get channel stats")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, stats, "Channel stats fetched")
}

// Videos returns the channel's videos including unpublished drafts.
// GET /dashboard/{channelId}/videos
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
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

	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	videos, err := h.dashboardService.GetVideos(r.Context(), channelID, userID, page.Offset(), page.Limit)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "Channel not found")
		case errors.Is(err, model.ErrNotChannelOwner):
			httputil.WriteForbidden(w, "You do not own this channel")
		default:
			httputil.WriteInternalError(w, "Failed to get channel videos")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, model.VideoListResponse{
		Videos: videos,
		Page:   page.Number,
		Limit:  page.Limit,
	}, "Channel videos fetched")
}
