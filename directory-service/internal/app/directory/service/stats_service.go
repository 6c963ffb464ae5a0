package service

import (
	"context"
	"fmt"
	"time"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/repository"
	"goaguide/directory-service/internal/app/directory/util"
	"goaguide/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const statsCacheTTL = 5 * time.Minute

// StatsService - общие счетчики платформы для главной страницы
type StatsService struct {
	businessRepo repository.BusinessRepository
	reviewRepo   repository.ReviewRepository
	userRepo     repository.UserRepository
	cache        util.Cache
}

func NewStatsService(
	businessRepo repository.BusinessRepository,
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	cache util.Cache,
) *StatsService {
	return &StatsService{
		businessRepo: businessRepo,
		reviewRepo:   reviewRepo,
		userRepo:     userRepo,
		cache:        cache,
	}
}

func (s *StatsService) Get(ctx context.Context) (*entity.Stats, error) {
	cached, err := s.cache.GetStats(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read stats cache")
	} else if cached != nil {
		return cached, nil
	}

	stats := &entity.Stats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalBusinesses, err = s.businessRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalReviews, err = s.reviewRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.userRepo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count stats: %w", err)
	}

	if err := s.cache.SetStats(ctx, stats, statsCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache stats")
	}

	return stats, nil
}
