package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/handler"
	"vidtube/internal/queue"
	"vidtube/internal/redis"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/internal/worker"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Connect to Redis
	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	err = redisClient.Ping(pingCtx)
	cancelPing()
	if err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	transactor := database.NewTransactor(db)

	// 5. Queue and Cache
	publisher := queue.NewPublisher(redisClient.Client)
	consumer := queue.NewConsumer(redisClient.Client)
	statsCache := cache.NewStatsCache(redisClient.Client)

	// 6. Services
	mediaService, err := service.NewMediaService(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create media service: %w", err)
	}
	authService := service.NewAuthService(refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo, videoRepo)
	videoService := service.NewVideoService(videoRepo, transactor, publisher)
	commentService := service.NewCommentService(commentRepo, videoRepo, transactor)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo, transactor)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, transactor)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo, transactor)
	dashboardService := service.NewDashboardService(dashboardRepo, videoRepo, userRepo, statsCache)

	// 7. Handlers
	authHandler := handler.NewAuthHandler(userService, authService, mediaService)
	userHandler := handler.NewUserHandler(userService, mediaService)
	videoHandler := handler.NewVideoHandler(videoService, mediaService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	tweetHandler := handler.NewTweetHandler(tweetService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// 8. Background Workers
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	engagementHandler := worker.NewHandler(videoRepo)
	manager := worker.NewManager(consumer, engagementHandler, worker.DefaultManagerConfig())
	if err := manager.Start(workerCtx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}

	// 9. Router and HTTP Server
	router := NewRouter(RouterConfig{
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		VideoHandler:        videoHandler,
		CommentHandler:      commentHandler,
		LikeHandler:         likeHandler,
		SubscriptionHandler: subscriptionHandler,
		PlaylistHandler:     playlistHandler,
		TweetHandler:        tweetHandler,
		DashboardHandler:    dashboardHandler,
		JWTSecret:           cfg.JWTSecret,
	})

	server := &stdhttp.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		cancelWorkers()
		manager.Stop()
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("[Server] Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Server] Shutdown error: %v", err)
	}

	// Drain in-flight queue messages after the HTTP surface is closed.
	cancelWorkers()
	manager.Stop()

	log.Println("[Server] Stopped")
	return nil
}
