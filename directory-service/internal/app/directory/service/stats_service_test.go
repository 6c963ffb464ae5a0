package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Get_CacheHit(t *testing.T) {
	ctx := context.Background()
	businessRepo := new(mocks.MockBusinessRepository)
	reviewRepo := new(mocks.MockReviewRepository)
	userRepo := new(mocks.MockUserRepository)
	cache := new(mocks.MockCache)
	cached := &entity.Stats{TotalBusinesses: 1, TotalReviews: 2, TotalUsers: 3}

	cache.On("GetStats", ctx).Return(cached, nil)

	stats, err := NewStatsService(businessRepo, reviewRepo, userRepo, cache).Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, cached, stats)
	businessRepo.AssertNotCalled(t, "Count", mock.Anything)
}

func TestStatsService_Get_CacheMiss(t *testing.T) {
	ctx := context.Background()
	businessRepo := new(mocks.MockBusinessRepository)
	reviewRepo := new(mocks.MockReviewRepository)
	userRepo := new(mocks.MockUserRepository)
	cache := new(mocks.MockCache)
	expected := &entity.Stats{TotalBusinesses: 120, TotalReviews: 430, TotalUsers: 75}

	cache.On("GetStats", ctx).Return(nil, nil)
	businessRepo.On("Count", mock.Anything).Return(int64(120), nil)
	reviewRepo.On("Count", mock.Anything).Return(int64(430), nil)
	userRepo.On("Count", mock.Anything).Return(int64(75), nil)
	cache.On("SetStats", ctx, expected, 5*time.Minute).Return(nil)

	stats, err := NewStatsService(businessRepo, reviewRepo, userRepo, cache).Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, stats)
	cache.AssertExpectations(t)
}

func TestStatsService_Get_CountError(t *testing.T) {
	ctx := context.Background()
	businessRepo := new(mocks.MockBusinessRepository)
	reviewRepo := new(mocks.MockReviewRepository)
	userRepo := new(mocks.MockUserRepository)
	cache := new(mocks.MockCache)

	cache.On("GetStats", ctx).Return(nil, errors.New("redis down"))
	businessRepo.On("Count", mock.Anything).Return(int64(1), nil)
	reviewRepo.On("Count", mock.Anything).Return(int64(0), errors.New("db error"))
	userRepo.On("Count", mock.Anything).Return(int64(1), nil)

	stats, err := NewStatsService(businessRepo, reviewRepo, userRepo, cache).Get(ctx)

	assert.Error(t, err)
	assert.Nil(t, stats)
	cache.AssertNotCalled(t, "SetStats", mock.Anything, mock.Anything, mock.Anything)
}
