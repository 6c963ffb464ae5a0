package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"goaguide/background-worker-service/internal/app/background-worker/entity"
	"goaguide/pkg/metrics"
)

type cacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(client *redis.Client) CacheRepository {
	return &cacheRepository{client: client}
}

func (r *cacheRepository) InvalidateCategories(ctx context.Context) error {
	return r.del(ctx, entity.RedisKeyCategories)
}

func (r *cacheRepository) InvalidateStats(ctx context.Context) error {
	return r.del(ctx, entity.RedisKeyStats)
}

func (r *cacheRepository) del(ctx context.Context, key string) error {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, key).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete %s from redis: %w", key, err)
	}
	return nil
}

func (r *cacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
