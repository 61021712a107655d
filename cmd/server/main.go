package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bufgix/recipe-blog-backend/config"
	"github.com/bufgix/recipe-blog-backend/internal/app/controller"
	"github.com/bufgix/recipe-blog-backend/internal/app/repository"
	"github.com/bufgix/recipe-blog-backend/internal/app/service"
	"github.com/bufgix/recipe-blog-backend/internal/db"
	"github.com/bufgix/recipe-blog-backend/internal/router"
	"github.com/bufgix/recipe-blog-backend/internal/scheduler"
	"github.com/bufgix/recipe-blog-backend/internal/storage"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
	"github.com/bufgix/recipe-blog-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting Recipe Blog Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations (기본 카테고리 포함)
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis 캐시는 선택 사항. 연결에 실패하면 캐시 없이 동작한다.
	var cache service.Cache
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, running without cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			cache = redis.NewCache(redis.GetClient(), redis.KeyPrefix)
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Initialize storage
	var imageStorage storage.ImageStorage
	if cfg.S3.Enabled() {
		imageStorage = storage.NewS3Storage(cfg.S3)
		logger.Info("Using S3 image storage", map[string]interface{}{
			"bucket": cfg.S3.Bucket,
			"region": cfg.S3.Region,
		})
	} else {
		imageStorage = storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.BaseURL)
		logger.Info("Using local image storage", map[string]interface{}{
			"dir": cfg.Upload.Dir,
		})
	}

	// Initialize repositories
	recipeRepo := repository.NewRecipeRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())

	// Initialize services
	recipeService := service.NewRecipeService(recipeRepo, cache, cfg.Redis.CacheTTL)
	tagService := service.NewTagService(tagRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	uploadService := service.NewUploadService(imageStorage, cfg.Upload.MaxBytes)
	sitemapService := service.NewSitemapService(recipeRepo, cfg.Site.BaseURL, cache, cfg.Redis.CacheTTL)

	// Initialize controllers
	recipeController := controller.NewRecipeController(recipeService)
	tagController := controller.NewTagController(tagService)
	categoryController := controller.NewCategoryController(categoryService)
	uploadController := controller.NewUploadController(uploadService)
	sitemapController := controller.NewSitemapController(sitemapService)

	// Start sitemap scheduler
	sitemapScheduler := scheduler.NewSitemapScheduler(sitemapService, cfg.Site.SitemapRefreshCron)
	if err := sitemapScheduler.Start(); err != nil {
		logger.Warn("Sitemap scheduler disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer sitemapScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		recipeController,
		tagController,
		categoryController,
		uploadController,
		sitemapController,
		cfg,
	)
	engine := r.Setup()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
