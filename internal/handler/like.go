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

// LikeHandler serves like toggles and the liked-videos listing.
type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideo toggles the caller's like on a video.
// POST /likes/video/{id}
func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.SubjectVideo)
}

// ToggleComment toggles the caller's like on a comment.
// POST /likes/comment/{id}
func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.SubjectComment)
}

// ToggleTweet toggles the caller's like on a tweet.
// POST /likes/tweet/{id}
func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.SubjectTweet)
}

// LikedVideos returns the videos the caller has liked.
// GET /likes/videos
func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
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

	videos, err := h.likeService.GetLikedVideos(r.Context(), userID, page.Offset(), page.Limit)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list liked videos")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, model.LikedVideosResponse{
		Videos: videos,
		Page:   page.Number,
		Limit:  page.Limit,
	}, "Liked videos fetched")
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, subject model.LikeSubject) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	subjectID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || subjectID < 1 {
		httputil.WriteBadRequest(w, "Invalid "+string(subject)+" ID")
		return
	}

	result, err := h.likeService.Toggle(r.Context(), userID, subject, subjectID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrTweetNotFound):
			httputil.WriteNotFound(w, "Tweet not found")
		case errors.Is(err, model.ErrInvalidSubjectType):
			httputil.WriteBadRequest(w, "Invalid like subject")
		default:
			httputil.WriteInternalError(w, "Failed to toggle like")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, result, "Like toggled")
}
