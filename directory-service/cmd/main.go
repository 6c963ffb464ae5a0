package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goaguide/directory-service/internal/app/directory/config"
	"goaguide/directory-service/internal/app/directory/handler"
	"goaguide/directory-service/internal/app/directory/repository"
	"goaguide/directory-service/internal/app/directory/service"
	"goaguide/directory-service/internal/app/directory/util"
	"goaguide/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("directory-service", cfg.Server.LogLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "directory-service", cfg.Server.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	mongoClient, err := repository.Connect(cfg.MongoDB.URI, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().
		Str("address", cfg.Redis.Address()).
		Msg("Connected to Redis")

	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized Kafka producer")

	storage, err := util.NewMinioStorage(util.MinioOptions{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create object storage client")
	}

	bucketCtx, bucketCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := storage.EnsureBucket(bucketCtx); err != nil {
		// загрузки будут падать, остальной каталог работает
		logger.Error().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("Failed to prepare storage bucket")
	}
	bucketCancel()

	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenDuration)

	categoryService := service.NewCategoryService(categoryRepo, redisClient)
	businessService := service.NewBusinessService(businessRepo, categoryRepo, userRepo, kafkaProducer)
	reviewService := service.NewReviewService(reviewRepo, businessRepo, userRepo, kafkaProducer)
	userService := service.NewUserService(userRepo, jwtManager)
	statsService := service.NewStatsService(businessRepo, reviewRepo, userRepo, redisClient)
	uploadService := service.NewUploadService(storage, cfg.Upload.MaxFiles, cfg.Upload.MaxFileSize)

	validate := handler.NewValidator()
	authMiddleware := handler.NewAuthMiddleware(jwtManager)

	router := handler.SetupRoutes(handler.Handlers{
		Category: handler.NewCategoryHandler(categoryService, validate),
		Business: handler.NewBusinessHandler(businessService, validate),
		Review:   handler.NewReviewHandler(reviewService, validate),
		Auth:     handler.NewAuthHandler(userService, validate),
		Upload:   handler.NewUploadHandler(uploadService, cfg.Upload.MaxFiles, cfg.Upload.MaxFileSize),
		Stats:    handler.NewStatsHandler(statsService),
	}, authMiddleware, cfg.Server.CORSOrigins)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Directory Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Directory Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Directory Service stopped gracefully")
}
