package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"goaguide/directory-service/internal/app/directory/config"
	"goaguide/directory-service/internal/app/directory/repository"
	"goaguide/directory-service/internal/app/directory/seed"
	"goaguide/directory-service/internal/app/directory/util"
	"goaguide/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("directory-seed", cfg.Server.LogLevel)

	mongoClient, err := repository.Connect(cfg.MongoDB.URI, 3)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()

	categoryRepo := repository.NewCategoryRepository(mongoClient.Database(cfg.MongoDB.Database))

	// без Redis сидер все равно отрабатывает, кеш просто истечет по TTL
	var cache util.Cache
	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, categories cache will not be invalidated")
	} else {
		defer redisClient.Close()
		cache = redisClient
	}

	result, err := seed.NewSeeder(categoryRepo, cache).Run(ctx, seed.DefaultCategories())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed categories")
	}

	logger.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Msg("Categories seeded")
}
