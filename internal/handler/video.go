package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"vidtube/internal/httputil"
	"vidtube/internal/model"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// VideoHandler serves video CRUD, listing, and publish toggling.
type VideoHandler struct {
	videoService *service.VideoService
	mediaService *service.MediaService
}

func NewVideoHandler(videoService *service.VideoService, mediaService *service.MediaService) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		mediaService: mediaService,
	}
}

// List returns published videos with pagination, optional title search, and
// whitelist-validated sorting.
// GET /videos?page=&limit=&query=&sort_by=&sort_order=&owner_id=
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := httputil.ParsePage(r)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	opts := model.VideoListOptions{
		Query:    strings.TrimSpace(r.URL.Query().Get("query")),
		SortBy:   r.URL.Query().Get("sort_by"),
		SortDesc: r.URL.Query().Get("sort_order") != "asc",
	}

	if raw := r.URL.Query().Get("owner_id"); raw != "" {
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID < 1 {
			httputil.WriteBadRequest(w, "Invalid owner_id")
			return
		}
		opts.OwnerID = &ownerID
	}

	videos, err := h.videoService.List(r.Context(), opts, page.Offset(), page.Limit)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSortField) {
			httputil.WriteBadRequest(w, "sort_by must be one of: created_at, views, title")
			return
		}
		httputil.WriteInternalError(w, "Failed to list videos")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, model.VideoListResponse{
		Videos: videos,
		Page:   page.Number,
		Limit:  page.Limit,
	}, "Videos fetched")
}

// Publish handles a multipart video upload with its thumbnail.
// POST /videos
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	maxFormSize := int64(model.MaxVideoSizeBytes+model.MaxImageSizeBytes) + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
			return
		}
		if strings.Contains(err.Error(), "request body too large") {
			httputil.WriteBadRequest(w, "Video exceeds 200MB limit")
			return
		}
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	req := model.PublishVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if strings.TrimSpace(req.Title) == "" {
		httputil.WriteBadRequest(w, "Title is required")
		return
	}

	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)

	videoFile, videoHeader, err := r.FormFile("video")
	if err != nil {
		httputil.WriteBadRequest(w, "video file is required")
		return
	}
	defer videoFile.Close()

	thumbFile, thumbHeader, err := r.FormFile("thumbnail")
	if err != nil {
		httputil.WriteBadRequest(w, "thumbnail file is required")
		return
	}
	defer thumbFile.Close()

	videoUpload, err := h.mediaService.UploadVideo(r.Context(), videoFile, videoHeader)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Video exceeds 200MB limit")
		case errors.Is(err, model.ErrInvalidVideoType):
			httputil.WriteBadRequest(w, "Unsupported video type. Allowed: mp4, webm")
		default:
			httputil.WriteInternalError(w, "Failed to upload video")
		}
		return
	}

	thumbUpload, err := h.mediaService.UploadThumbnail(r.Context(), thumbFile, thumbHeader)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Thumbnail exceeds 5MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, webp")
		default:
			httputil.WriteInternalError(w, "Failed to upload thumbnail")
		}
		return
	}

	video, err := h.videoService.Publish(r.Context(), userID, req, videoUpload.URL, thumbUpload.URL, duration)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTitleRequired), errors.Is(err, model.ErrTitleTooLong),
			errors.Is(err, model.ErrDescriptionTooLong):
			httputil.WriteBadRequest(w, err.Error())
		default:
			httputil.WriteInternalError(w, "Failed to publish video")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, video, "Video published successfully")
}

// Get returns a single video. Authenticated views are counted asynchronously.
// GET /videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || videoID < 1 {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	viewerID := middleware.ViewerID(r.Context())

	video, err := h.videoService.GetByID(r.Context(), videoID, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrVideoNotFound) {
			httputil.WriteNotFound(w, "Video not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get video")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, video, "Video fetched")
}

// Update edits video metadata and optionally replaces the thumbnail.
// PATCH /videos/{id}
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || videoID < 1 {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	var req model.UpdateVideoRequest
	var thumbnailURL *string

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		maxFormSize := int64(model.MaxImageSizeBytes) + 1024*1024
		r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
		if err := r.ParseMultipartForm(maxFormSize); err != nil {
			httputil.WriteBadRequest(w, "Invalid form data")
			return
		}

		if _, present := r.MultipartForm.Value["title"]; present {
			title := r.FormValue("title")
			req.Title = &title
		}
		if _, present := r.MultipartForm.Value["description"]; present {
			description := r.FormValue("description")
			req.Description = &description
		}

		file, header, err := r.FormFile("thumbnail")
		if err == nil {
			defer file.Close()
			upload, uploadErr := h.mediaService.UploadThumbnail(r.Context(), file, header)
			if uploadErr != nil {
				switch {
				case errors.Is(uploadErr, model.ErrFileTooLarge):
					httputil.WriteBadRequest(w, "Thumbnail exceeds 5MB limit")
				case errors.Is(uploadErr, model.ErrInvalidImageType):
					httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, webp")
				default:
					httputil.WriteInternalError(w, "Failed to upload thumbnail")
				}
				return
			}
			thumbnailURL = &upload.URL
		} else if err != http.ErrMissingFile {
			httputil.WriteBadRequest(w, "Invalid thumbnail upload")
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteBadRequest(w, "Invalid request body")
			return
		}
	}

	video, err := h.videoService.Update(r.Context(), videoID, userID, req, thumbnailURL)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrNotVideoOwner):
			httputil.WriteForbidden(w, "You do not own this video")
		case errors.Is(err, model.ErrTitleRequired), errors.Is(err, model.ErrTitleTooLong),
			errors.Is(err, model.ErrDescriptionTooLong):
			httputil.WriteBadRequest(w, err.Error())
		default:
			httputil.WriteInternalError(w, "Failed to update video")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, video, "Video updated successfully")
}

// Delete removes a video and everything attached to it.
// DELETE /videos/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || videoID < 1 {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	if err := h.videoService.Delete(r.Context(), videoID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrNotVideoOwner):
			httputil.WriteForbidden(w, "You do not own this video")
		default:
			httputil.WriteInternalError(w, "Failed to delete video")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Video deleted successfully")
}

// TogglePublish flips the video's publish status.
// PATCH /videos/{id}/publish
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || videoID < 1 {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	video, err := h.videoService.TogglePublish(r.Context(), videoID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrNotVideoOwner):
			httputil.WriteForbidden(w, "You do not own this video")
		default:
			httputil.WriteInternalError(w, "Failed to toggle publish status")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, video, "Publish status toggled")
}
