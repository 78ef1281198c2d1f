package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aidosqali/vidtube/internal/admin"
	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/comment"
	"github.com/aidosqali/vidtube/internal/config"
	"github.com/aidosqali/vidtube/internal/dashboard"
	"github.com/aidosqali/vidtube/internal/like"
	"github.com/aidosqali/vidtube/internal/media"
	"github.com/aidosqali/vidtube/internal/metrics"
	"github.com/aidosqali/vidtube/internal/playlist"
	"github.com/aidosqali/vidtube/internal/respond"
	"github.com/aidosqali/vidtube/internal/server"
	"github.com/aidosqali/vidtube/internal/storage"
	"github.com/aidosqali/vidtube/internal/subscription"
	"github.com/aidosqali/vidtube/internal/tweet"
	"github.com/aidosqali/vidtube/internal/user"
	"github.com/aidosqali/vidtube/internal/video"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	respond.SetDevMode(cfg.DevMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer dbPool.Close()

	if err := storage.EnsureSchema(ctx, dbPool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("connect minio: %v", err)
	}

	if err := storage.EnsureBucket(ctx, minioClient, cfg.MinIO); err != nil {
		log.Fatalf("ensure bucket: %v", err)
	}

	mediaStore := media.NewStore(minioClient, cfg.MinIO.Bucket)

	userRepo := user.NewRepository(dbPool)
	videoRepo := video.NewRepository(dbPool)
	commentRepo := comment.NewRepository(dbPool)
	likeRepo := like.NewRepository(dbPool)
	subscriptionRepo := subscription.NewRepository(dbPool)
	tweetRepo := tweet.NewRepository(dbPool)
	playlistRepo := playlist.NewRepository(dbPool)
	dashboardRepo := dashboard.NewRepository(dbPool)
	adminRepo := admin.NewRepository(dbPool)

	tokens := auth.NewTokenService(userRepo, cfg.Auth)

	userService := user.NewService(userRepo, mediaStore, tokens, cfg.Auth.BcryptCost)
	videoService := video.NewService(videoRepo, mediaStore, likeRepo, commentRepo, userRepo)
	commentService := comment.NewService(commentRepo)
	likeService := like.NewService(likeRepo)
	subscriptionService := subscription.NewService(subscriptionRepo)
	tweetService := tweet.NewService(tweetRepo)
	playlistService := playlist.NewService(playlistRepo)
	dashboardService := dashboard.NewService(dashboardRepo)
	adminService := admin.NewService(adminRepo, userRepo, videoRepo, likeRepo,
		commentRepo, subscriptionRepo, tweetRepo, mediaStore)

	metrics.InitMetrics()

	router := server.NewRouter(server.Dependencies{
		Config:              cfg,
		DB:                  dbPool,
		ObjectStore:         minioClient,
		Tokens:              tokens,
		UserService:         userService,
		VideoService:        videoService,
		CommentService:      commentService,
		LikeService:         likeService,
		SubscriptionService: subscriptionService,
		TweetService:        tweetService,
		PlaylistService:     playlistService,
		DashboardService:    dashboardService,
		AdminService:        adminService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("VidTube API listening on %s", cfg.Server.Address())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Println("shutting down gracefully...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
