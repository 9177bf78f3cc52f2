package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Harshil0408/contentify-backend/internal/config"
	"github.com/Harshil0408/contentify-backend/internal/db"
	"github.com/Harshil0408/contentify-backend/internal/handler"
	"github.com/Harshil0408/contentify-backend/internal/media"
	"github.com/Harshil0408/contentify-backend/internal/middleware"
	"github.com/Harshil0408/contentify-backend/internal/repository"
	"github.com/Harshil0408/contentify-backend/internal/router"
	"github.com/Harshil0408/contentify-backend/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "contentify-backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(pool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	store := media.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)

	userRepo := repository.NewUserRepo(pool)
	videoRepo := repository.NewVideoRepo(pool)
	viewRepo := repository.NewViewRepo(pool)
	likeRepo := repository.NewLikeRepo(pool)
	subRepo := repository.NewSubscriptionRepo(pool)

	authSvc := service.NewAuthService(userRepo, cache, store, cfg)
	userSvc := service.NewUserService(userRepo)
	videoSvc := service.NewVideoService(videoRepo, viewRepo, userRepo, likeRepo, subRepo, store)
	watchSvc := service.NewWatchService(viewRepo, userRepo)
	recommendSvc := service.NewRecommendService(videoRepo, viewRepo, cache)
	likeSvc := service.NewLikeService(likeRepo, videoRepo)
	subSvc := service.NewSubscriptionService(subRepo, userRepo)

	handler.InitMetrics(pool)
	recommendSvc.SetCacheMetrics(handler.Metrics.RecCacheHits, handler.Metrics.RecCacheMisses)

	worker := service.NewViewWorker(pool)
	go worker.Start(ctx)

	secureCookies := cfg.Environment == "production"
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, cfg.UploadTmpDir, secureCookies),
		User:         handler.NewUserHandler(userSvc),
		Video:        handler.NewVideoHandler(videoSvc, watchSvc, recommendSvc, cfg.UploadTmpDir),
		Like:         handler.NewLikeHandler(likeSvc),
		Subscription: handler.NewSubscriptionHandler(subSvc),
		Stats:        handler.NewStatsHandler(userSvc),
		Health:       handler.NewHealthHandler(pool, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "Contentify API",
		ServerHeader: "Contentify",
		BodyLimit:    512 * 1024 * 1024, // video uploads
	})

	router.Setup(app, handlers, authSvc, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("Contentify backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
