package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"goaguide/background-worker-service/internal/app/background-worker/repository"
	"goaguide/pkg/logger"
	"goaguide/pkg/metrics"
)

// Источники пересчета для метрик
const (
	TriggerEvent   = "event"
	TriggerCron    = "cron"
	TriggerStartup = "startup"
)

// RecountService поддерживает business_count категорий в актуальном состоянии
type RecountService struct {
	catalogRepo repository.CatalogRepository
	cacheRepo   repository.CacheRepository
}

// NewRecountService создает сервис пересчета счетчиков
func NewRecountService(catalogRepo repository.CatalogRepository, cacheRepo repository.CacheRepository) *RecountService {
	return &RecountService{
		catalogRepo: catalogRepo,
		cacheRepo:   cacheRepo,
	}
}

// RecountCategory пересчитывает одну категорию и сбрасывает кеш списка категорий.
// Некорректный или неизвестный ID категории только логируется.
func (s *RecountService) RecountCategory(ctx context.Context, categoryID, trigger string) error {
	id, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		logger.Warn().Str("category_id", categoryID).Msg("Skipping recount: invalid category id")
		metrics.WorkerCategoryRecounts.WithLabelValues(trigger, "skipped").Inc()
		return nil
	}

	count, err := s.catalogRepo.RecountCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			logger.Warn().Str("category_id", categoryID).Msg("Skipping recount: category not found")
			metrics.WorkerCategoryRecounts.WithLabelValues(trigger, "skipped").Inc()
			return nil
		}
		metrics.WorkerCategoryRecounts.WithLabelValues(trigger, "error").Inc()
		return fmt.Errorf("failed to recount category %s: %w", categoryID, err)
	}

	metrics.WorkerCategoryRecounts.WithLabelValues(trigger, "success").Inc()
	logger.Info().
		Str("category_id", categoryID).
		Int("business_count", count).
		Str("trigger", trigger).
		Msg("Category recounted")

	s.invalidateCategories(ctx)
	return nil
}

// RecountAll пересчитывает все категории одним агрегатом
func (s *RecountService) RecountAll(ctx context.Context, trigger string) error {
	updated, err := s.catalogRepo.RecountAllCategories(ctx)
	if err != nil {
		metrics.WorkerCategoryRecounts.WithLabelValues(trigger, "error").Inc()
		return fmt.Errorf("failed to recount categories: %w", err)
	}

	metrics.WorkerCategoryRecounts.WithLabelValues(trigger, "success").Inc()
	logger.Info().
		Int("categories", updated).
		Str("trigger", trigger).
		Msg("All categories recounted")

	s.invalidateCategories(ctx)
	return nil
}

func (s *RecountService) invalidateCategories(ctx context.Context) {
	if err := s.cacheRepo.InvalidateCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate categories cache")
	}
}
