package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vkarasev/catalog-media/internal/adapter/handler"
	"github.com/vkarasev/catalog-media/internal/adapter/repository/postgres"
	adapterStorage "github.com/vkarasev/catalog-media/internal/adapter/storage"
	"github.com/vkarasev/catalog-media/internal/infrastructure/cache"
	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
	"github.com/vkarasev/catalog-media/internal/infrastructure/database"
	"github.com/vkarasev/catalog-media/internal/infrastructure/jobs"
	"github.com/vkarasev/catalog-media/internal/infrastructure/middleware"
	"github.com/vkarasev/catalog-media/internal/infrastructure/observability"
	"github.com/vkarasev/catalog-media/internal/infrastructure/server"
	"github.com/vkarasev/catalog-media/internal/infrastructure/storage"
	"github.com/vkarasev/catalog-media/internal/usecase/delivery"
	"github.com/vkarasev/catalog-media/internal/usecase/image"
	"github.com/vkarasev/catalog-media/internal/usecase/processing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Repositories
	imageRepo := postgres.NewImageRepo(pool)

	// Infrastructure services
	backend, err := newBackend(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to create storage backend", zap.Error(err))
	}

	extractor := storage.NewMetadataExtractor()
	variants := storage.NewVariantGenerator()

	edgeCache, err := cache.NewEdgeCache(cfg.Cache, logger)
	if err != nil {
		logger.Fatal("failed to create edge cache", zap.Error(err))
	}

	// Background processing
	processor := processing.NewProcessor(imageRepo, backend, extractor, variants, cfg.Processing, logger)
	janitor := jobs.NewJanitor(edgeCache, cfg.Cache, logger)

	// Use cases
	validator := image.NewValidator(cfg.Storage.MaxUploadSize)
	imageSvc := image.NewService(imageRepo, backend, processor, edgeCache, validator)
	deliverySvc := delivery.NewService(backend, edgeCache, cfg.CDN)

	// Handlers
	imageHandler := handler.NewImageHandler(imageSvc, processor, deliverySvc)
	cdnHandler := handler.NewCDNHandler(deliverySvc, edgeCache)

	// Middleware
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit)
	}

	// Router
	router := server.NewRouter(server.RouterConfig{
		ImageHandler: imageHandler,
		CDNHandler:   cdnHandler,
		RateLimiter:  rateLimiter,
		Logger:       logger,
		Environment:  cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	processor.Start()
	if err := janitor.Start(); err != nil {
		logger.Fatal("failed to start cache janitor", zap.Error(err))
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Processing.StopTimeout)
	defer stopCancel()

	if err := processor.Stop(stopCtx); err != nil {
		logger.Error("processor shutdown error", zap.Error(err))
	}

	janitor.Stop()

	logger.Info("server stopped")
}

func newBackend(cfg config.StorageConfig) (adapterStorage.Backend, error) {
	switch cfg.Type {
	case "local":
		return storage.NewLocalDisk(cfg.Local)
	case "s3":
		return storage.NewS3Backend(cfg.S3)
	case "minio-cli":
		return storage.NewMinIOCLI(cfg.MinIOCLI), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
