package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"cvpress/internal/api"
	"cvpress/internal/auth"
	"cvpress/internal/config"
	"cvpress/internal/database"
	"cvpress/internal/export"
	"cvpress/internal/preview"
	"cvpress/internal/storage"
	"cvpress/internal/suggest"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.Resume{}); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	logger.Info("database ready",
		slog.String("host", cfg.Database.Host),
		slog.String("name", cfg.Database.Name),
	)

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	logger.Info("storage client ready", slog.String("bucket", cfg.MinIO.Bucket))

	privateKey, err := os.ReadFile(cfg.Auth.PrivateKeyPath)
	if err != nil {
		log.Fatalf("read private key: %v", err)
	}
	publicKey, err := os.ReadFile(cfg.Auth.PublicKeyPath)
	if err != nil {
		log.Fatalf("read public key: %v", err)
	}
	authService, err := auth.NewService(privateKey, publicKey, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
	defer asynqClient.Close()

	var suggester suggest.Suggester
	if cfg.Suggest.APIKey != "" {
		suggester = suggest.NewClient(cfg.Suggest)
		logger.Info("suggestions enabled", slog.String("model", cfg.Suggest.Model))
	}

	previewEngine := preview.New()
	exportEngine := export.New(cfg.PDF.FontDir)

	router := api.NewRouter(logger)
	api.RegisterRoutes(
		router,
		db,
		asynqClient,
		authService,
		redisClient,
		logger,
		storageClient,
		previewEngine,
		exportEngine,
		suggester,
		cfg.API.MaxResumes,
	)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("address", address))
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
