package util

import (
	"context"
	"testing"
	"time"

	"goaguide/directory-service/internal/app/directory/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RedisClientTestSuite проверяет кеш каталога на miniredis
type RedisClientTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	cache     *RedisClient
}

func TestRedisClientSuite(t *testing.T) {
	suite.Run(t, new(RedisClientTestSuite))
}

func (s *RedisClientTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{Addr: s.miniRedis.Addr()})
	s.cache = NewRedisClientWithClient(s.client)
}

func (s *RedisClientTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RedisClientTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

// ===================== Categories =====================

func (s *RedisClientTestSuite) TestCategories_Miss() {
	categories, err := s.cache.GetCategories(context.Background())

	s.NoError(err)
	s.Nil(categories)
}

func (s *RedisClientTestSuite) TestCategories_SetAndGet() {
	ctx := context.Background()
	input := []entity.Category{
		{ID: primitive.NewObjectID(), Name: "Beaches", Slug: "beaches", BusinessCount: 4, IsActive: true},
		{ID: primitive.NewObjectID(), Name: "Food & Nightlife", Slug: "food-nightlife", IsActive: true},
	}

	s.Require().NoError(s.cache.SetCategories(ctx, input, time.Hour))

	result, err := s.cache.GetCategories(ctx)
	s.NoError(err)
	s.Require().Len(result, 2)
	s.Equal(input[0].ID, result[0].ID)
	s.Equal("food-nightlife", result[1].Slug)
	s.Equal(time.Hour, s.miniRedis.TTL(categoriesCacheKey))
}

func (s *RedisClientTestSuite) TestCategories_Expire() {
	ctx := context.Background()
	s.Require().NoError(s.cache.SetCategories(ctx, []entity.Category{{Name: "Tours"}}, time.Minute))

	s.miniRedis.FastForward(2 * time.Minute)

	result, err := s.cache.GetCategories(ctx)
	s.NoError(err)
	s.Nil(result)
}

func (s *RedisClientTestSuite) TestCategories_Delete() {
	ctx := context.Background()
	s.Require().NoError(s.cache.SetCategories(ctx, []entity.Category{{Name: "Tours"}}, time.Hour))

	s.NoError(s.cache.DeleteCategories(ctx))
	s.False(s.miniRedis.Exists(categoriesCacheKey))
}

func (s *RedisClientTestSuite) TestCategories_CorruptedPayload() {
	s.Require().NoError(s.miniRedis.Set(categoriesCacheKey, "{not json"))

	result, err := s.cache.GetCategories(context.Background())
	s.Error(err)
	s.Nil(result)
}

// ===================== Stats =====================

func (s *RedisClientTestSuite) TestStats_SetAndGet() {
	ctx := context.Background()
	stats := &entity.Stats{TotalBusinesses: 12, TotalReviews: 40, TotalUsers: 7}

	s.Require().NoError(s.cache.SetStats(ctx, stats, 5*time.Minute))

	result, err := s.cache.GetStats(ctx)
	s.NoError(err)
	s.Equal(stats, result)
	s.Equal(5*time.Minute, s.miniRedis.TTL(statsCacheKey))
}

func (s *RedisClientTestSuite) TestStats_Miss() {
	result, err := s.cache.GetStats(context.Background())
	s.NoError(err)
	s.Nil(result)
}

func (s *RedisClientTestSuite) TestConnectionError() {
	broken := NewRedisClientWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))
	defer broken.Close()

	_, err := broken.GetStats(context.Background())
	s.Error(err)
}
