package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// PlaylistHandler serves playlist CRUD and video membership endpoints.
type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create makes a new playlist for the caller.
// POST /playlists
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	playlist, err := h.playlistService.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, model.ErrPlaylistNameRequired) {
			httputil.WriteBadRequest(w, "Playlist name is required")
			return
		}
		httputil.WriteInternalError(w, "Failed to create playlist")
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, playlist, "Playlist created successfully")
}

// ListByUser returns a user's playlists.
// GET /playlists/u/{id}
func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID < 1 {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	playlists, err := h.playlistService.ListByUser(r.Context(), userID, page.Offset(), page.Limit)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to list playlists")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"playlists": playlists,
		"page":      page.Number,
		"limit":     page.Limit,
	}, "Playlists fetched")
}

// Get returns a playlist with its videos.
// GET /playlists/{id}
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || playlistID < 1 {
		httputil.WriteBadRequest(w, "Invalid playlist ID")
		return
	}

	playlist, err := h.playlistService.GetByID(r.Context(), playlistID)
	if err != nil {
		if errors.Is(err, model.ErrPlaylistNotFound) {
			httputil.WriteNotFound(w, "Playlist not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get playlist")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, playlist, "Playlist fetched")
}

// Update edits playlist name/description.
// PATCH /playlists/{id}
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	playlistID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || playlistID < 1 {
		httputil.WriteBadRequest(w, "Invalid playlist ID")
		return
	}

	var req model.UpdatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	playlist, err := h.playlistService.Update(r.Context(), playlistID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPlaylistNotFound):
			httputil.WriteNotFound(w, "Playlist not found")
		case errors.Is(err, model.ErrNotPlaylistOwner):
			httputil.WriteForbidden(w, "You do not own this playlist")
		case errors.Is(err, model.ErrPlaylistNameRequired):
			httputil.WriteBadRequest(w, "Playlist name is required")
		default:
			httputil.WriteInternalError(w, "Failed to update playlist")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, playlist, "Playlist updated successfully")
}

// Delete removes a playlist.
// DELETE /playlists/{id}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	playlistID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || playlistID < 1 {
		httputil.WriteBadRequest(w, "Invalid playlist ID")
		return
	}

	if err := h.playlistService.Delete(r.Context(), playlistID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrPlaylistNotFound):
			httputil.WriteNotFound(w, "Playlist not found")
		case errors.Is(err, model.ErrNotPlaylistOwner):
			httputil.WriteForbidden(w, "You do not own this playlist")
		default:
			httputil.WriteInternalError(w, "Failed to delete playlist")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Playlist deleted successfully")
}

// AddVideo appends a video to a playlist.
// POST /playlists/{id}/videos/{videoId}
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	playlistID, videoID, ok := h.memberIDs(w, r)
	if !ok {
		return
	}

	if err := h.playlistService.AddVideo(r.Context(), playlistID, videoID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrPlaylistNotFound):
			httputil.WriteNotFound(w, "Playlist not found")
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrNotPlaylistOwner):
			httputil.WriteForbidden(w, "You do not own this playlist")
		case errors.Is(err, model.ErrVideoAlreadyInPlaylist):
			httputil.WriteConflict(w, "Video already in playlist")
		default:
			httputil.WriteInternalError(w, "Failed to add video to playlist")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Video added to playlist")
}

// RemoveVideo drops a video from a playlist.
// DELETE /playlists/{id}/videos/{videoId}
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	playlistID, videoID, ok := h.memberIDs(w, r)
	if !ok {
		return
	}

	if err := h.playlistService.RemoveVideo(r.Context(), playlistID, videoID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrPlaylistNotFound):
			httputil.WriteNotFound(w, "Playlist not found")
		case errors.Is(err, model.ErrNotPlaylistOwner):
			httputil.WriteForbidden(w, "You do not own this playlist")
		case errors.Is(err, model.ErrVideoNotInPlaylist):
			httputil.WriteNotFound(w, "Video not in playlist")
		default:
			httputil.WriteInternalError(w, "Failed to remove video from playlist")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Video removed from playlist")
}

func (h *PlaylistHandler) memberIDs(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	playlistID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || playlistID < 1 {
		httputil.WriteBadRequest(w, "Invalid playlist ID")
		return 0, 0, false
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "videoId"), 10, 64)
	if err != nil || videoID < 1 {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return 0, 0, false
	}

	return playlistID, videoID, true
}
