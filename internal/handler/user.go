package handler

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// uploadFunc matches the MediaService image upload methods.
type uploadFunc func(context.Context, multipart.File, *multipart.FileHeader) (*model.UploadResult, error)

// UserHandler serves account maintenance and channel page endpoints.
type UserHandler struct {
	userService  *service.UserService
	mediaService *service.MediaService
}

func NewUserHandler(userService *service.UserService, mediaService *service.MediaService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		mediaService: mediaService,
	}
}

// UpdateAccount updates the caller's full name and email.
// PATCH /users/me
func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" {
		httputil.WriteBadRequest(w, "full_name and email are required")
		return
	}

	user, err := h.userService.UpdateAccountDetails(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to update account")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, user, "Account updated successfully")
}

// UpdateAvatar replaces the caller's avatar with an uploaded image.
// PATCH /users/me/avatar
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", h.mediaService.UploadAvatar, h.userService.UpdateAvatar)
}

// UpdateCoverImage replaces the caller's cover image with an uploaded image.
// PATCH /users/me/cover-image
func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "cover_image", h.mediaService.UploadCoverImage, h.userService.UpdateCoverImage)
}

// GetChannelProfile returns a channel page by username, with subscription
// aggregates and the viewer's subscription state.
// GET /users/c/{username}
func (h *UserHandler) GetChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if strings.TrimSpace(username) == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}

	viewerID := middleware.ViewerID(r.Context())

	profile, err := h.userService.GetChannelProfile(r.Context(), username, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "Channel not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get channel profile")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, profile, "Channel profile fetched")
}

// GetWatchHistory returns the caller's watch history, most recent first.
// GET /users/history
func (h *UserHandler) GetWatchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	entries, err := h.userService.GetWatchHistory(r.Context(), userID, page.Offset(), page.Limit)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to get watch history")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"history": entries,
		"page":    page.Number,
		"limit":   page.Limit,
	}, "Watch history fetched")
}

func (h *UserHandler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	upload uploadFunc,
	store func(context.Context, int64, string) (*model.User, error),
) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	maxFormSize := int64(model.MaxImageSizeBytes) + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		httputil.WriteBadRequest(w, field+" file is required")
		return
	}
	defer file.Close()

	result, err := upload(r.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Image exceeds 5MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, webp")
		default:
			httputil.WriteInternalError(w, "Failed to upload "+field)
		}
		return
	}

	user, err := store(r.Context(), userID, result.URL)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to update "+field)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, user, "Image updated successfully")
}
