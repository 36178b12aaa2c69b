package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/viewly-dev/viewly/internal/api/handler"
	"github.com/viewly-dev/viewly/internal/api/middleware"
	"github.com/viewly-dev/viewly/internal/config"
	"github.com/viewly-dev/viewly/internal/infrastructure/cache"
	"github.com/viewly-dev/viewly/internal/infrastructure/postgres"
	"github.com/viewly-dev/viewly/internal/infrastructure/queue"
	"github.com/viewly-dev/viewly/internal/infrastructure/storage"
	"github.com/viewly-dev/viewly/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize infrastructure clients
	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	logger.Info("connected to PostgreSQL")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:       cfg.MinIO.Endpoint,
		PublicEndpoint: cfg.MinIO.PublicEndpoint,
		AccessKey:      cfg.MinIO.AccessKey,
		SecretKey:      cfg.MinIO.SecretKey,
		Bucket:         cfg.MinIO.Bucket,
		UseSSL:         cfg.MinIO.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO")

	queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pgClient.Pool())
	engagementRepo := postgres.NewEngagementRepository(pgClient.Pool())
	videoRepo := postgres.NewVideoRepository(pgClient.Pool())
	commentRepo := postgres.NewCommentRepository(pgClient.Pool())
	tweetRepo := postgres.NewTweetRepository(pgClient.Pool())
	videoCache := cache.NewRedisVideoCache(redisClient)

	// Initialize services
	authSvc := usecase.NewAuthService(userRepo, usecase.AuthServiceConfig{
		AccessTokenSecret:  []byte(cfg.Auth.AccessTokenSecret),
		RefreshTokenSecret: []byte(cfg.Auth.RefreshTokenSecret),
		AccessTokenTTL:     cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL:    cfg.Auth.RefreshTokenTTL,
	})
	engagementSvc := usecase.NewEngagementService(engagementRepo, queueClient)
	channelSvc := usecase.NewChannelService(userRepo)
	videoSvc := usecase.NewCachedVideoService(
		usecase.NewVideoService(videoRepo, storageClient),
		videoCache,
		usecase.DefaultCachedVideoServiceConfig(),
	)
	commentSvc := usecase.NewCommentService(commentRepo, videoRepo)
	tweetSvc := usecase.NewTweetService(tweetRepo)
	trendingSvc := usecase.NewTrendingService(cache.NewTrendingCounter(redisClient))

	r := setupRouter(routerDeps{
		logger:       logger,
		cookieSecure: cfg.Server.CookieSecure,
		auth:         authSvc,
		engagements:  engagementSvc,
		channels:     channelSvc,
		videos:       videoSvc,
		comments:     commentSvc,
		tweets:       tweetSvc,
		trending:     trendingSvc,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

type routerDeps struct {
	logger       *slog.Logger
	cookieSecure bool
	auth         usecase.AuthService
	engagements  usecase.EngagementService
	channels     usecase.ChannelService
	videos       usecase.VideoService
	comments     usecase.CommentService
	tweets       usecase.TweetService
	trending     usecase.TrendingService
}

func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))

	r.Get("/health", handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	authH := handler.NewAuthHandler(deps.auth, deps.cookieSecure)
	engagementH := handler.NewEngagementHandler(deps.engagements)
	channelH := handler.NewChannelHandler(deps.channels)
	videoH := handler.NewVideoHandler(deps.videos)
	commentH := handler.NewCommentHandler(deps.comments)
	tweetH := handler.NewTweetHandler(deps.tweets)
	trendingH := handler.NewTrendingHandler(deps.trending)

	requireAuth := middleware.RequireAuth(deps.auth)
	optionalAuth := middleware.OptionalAuth(deps.auth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.Post("/refresh-token", authH.Refresh)
		r.Get("/trending/{category}", trendingH.Top)

		// Authenticated session and account endpoints
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", authH.Logout)
			r.Post("/change-password", authH.ChangePassword)
			r.Get("/me", authH.Me)
			r.Patch("/me", channelH.UpdateAccount)
		})

		// Engagement toggles
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/like/video/{videoId}", engagementH.ToggleVideoLike)
			r.Post("/like/comment/{commentId}", engagementH.ToggleCommentLike)
			r.Post("/like/tweet/{tweetId}", engagementH.ToggleTweetLike)
			r.Post("/subscribe/{channelId}", engagementH.ToggleSubscription)
		})

		// Read paths resolve the viewer when a token is present and fall
		// back to anonymous otherwise.
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/channels/{username}", channelH.GetProfile)
			r.Get("/videos/{videoId}", videoH.Get)
			r.Get("/videos/{videoId}/comments", commentH.ListByVideo)
			r.Get("/users/{userId}/videos", videoH.ListByOwner)
			r.Get("/users/{userId}/tweets", tweetH.ListByOwner)
		})

		// Content mutations
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/videos", videoH.Publish)
			r.Delete("/videos/{videoId}", videoH.Delete)
			r.Post("/videos/{videoId}/comments", commentH.Add)
			r.Patch("/comments/{commentId}", commentH.Update)
			r.Delete("/comments/{commentId}", commentH.Delete)
			r.Post("/tweets", tweetH.Create)
			r.Patch("/tweets/{tweetId}", tweetH.Update)
			r.Delete("/tweets/{tweetId}", tweetH.Delete)
		})
	})

	return r
}
