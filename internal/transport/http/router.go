package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vidtube/internal/handler"
	"vidtube/internal/httputil"
	authmw "vidtube/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	VideoHandler        *handler.VideoHandler
	CommentHandler      *handler.CommentHandler
	LikeHandler         *handler.LikeHandler
	SubscriptionHandler *handler.SubscriptionHandler
	PlaylistHandler     *handler.PlaylistHandler
	TweetHandler        *handler.TweetHandler
	DashboardHandler    *handler.DashboardHandler
	JWTSecret           string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(60 * time.Second))

	requireAuth := authmw.AuthMiddleware(cfg.JWTSecret)
	optionalAuth := authmw.OptionalAuthMiddleware(cfg.JWTSecret)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/refresh-token", cfg.AuthHandler.Refresh)
		r.Post("/logout", cfg.AuthHandler.Logout)

		r.With(optionalAuth).Get("/c/{username}", cfg.UserHandler.GetChannelProfile)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout-all", cfg.AuthHandler.LogoutAll)
			r.Post("/change-password", cfg.AuthHandler.ChangePassword)
			r.Get("/me", cfg.AuthHandler.Me)
			r.Patch("/me", cfg.UserHandler.UpdateAccount)
			r.Patch("/me/avatar", cfg.UserHandler.UpdateAvatar)
			r.Patch("/me/cover-image", cfg.UserHandler.UpdateCoverImage)
			r.Get("/history", cfg.UserHandler.GetWatchHistory)
		})
	})

	r.Route("/videos", func(r chi.Router) {
		r.Get("/", cfg.VideoHandler.List)
		r.With(optionalAuth).Get("/{id}", cfg.VideoHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", cfg.VideoHandler.Publish)
			r.Patch("/{id}", cfg.VideoHandler.Update)
			r.Delete("/{id}", cfg.VideoHandler.Delete)
			r.Patch("/{id}/publish", cfg.VideoHandler.TogglePublish)
		})
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/{videoId}", cfg.CommentHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/{videoId}", cfg.CommentHandler.Create)
			r.Patch("/c/{commentId}", cfg.CommentHandler.Update)
			r.Delete("/c/{commentId}", cfg.CommentHandler.Delete)
		})
	})

	r.Route("/likes", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/video/{id}", cfg.LikeHandler.ToggleVideo)
		r.Post("/comment/{id}", cfg.LikeHandler.ToggleComment)
		r.Post("/tweet/{id}", cfg.LikeHandler.ToggleTweet)
		r.Get("/videos", cfg.LikeHandler.LikedVideos)
	})

	r.Route("/subscriptions", func(r chi.Router) {
		r.Get("/{channelId}/subscribers", cfg.SubscriptionHandler.Subscribers)
		r.Get("/u/{id}", cfg.SubscriptionHandler.SubscribedChannels)
		r.With(requireAuth).Post("/{channelId}", cfg.SubscriptionHandler.Toggle)
	})

	r.Route("/playlists", func(r chi.Router) {
		r.Get("/{id}", cfg.PlaylistHandler.Get)
		r.Get("/u/{id}", cfg.PlaylistHandler.ListByUser)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", cfg.PlaylistHandler.Create)
			r.Patch("/{id}", cfg.PlaylistHandler.Update)
			r.Delete("/{id}", cfg.PlaylistHandler.Delete)
			r.Post("/{id}/videos/{videoId}", cfg.PlaylistHandler.AddVideo)
			r.Delete("/{id}/videos/{videoId}", cfg.PlaylistHandler.RemoveVideo)
		})
	})

	r.Route("/tweets", func(r chi.Router) {
		r.Get("/u/{id}", cfg.TweetHandler.ListByUser)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", cfg.TweetHandler.Create)
			r.Patch("/{id}", cfg.TweetHandler.Update)
			r.Delete("/{id}", cfg.TweetHandler.Delete)
		})
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/{channelId}/stats", cfg.DashboardHandler.Stats)
		r.Get("/{channelId}/videos", cfg.DashboardHandler.Videos)
	})

	return r
}
