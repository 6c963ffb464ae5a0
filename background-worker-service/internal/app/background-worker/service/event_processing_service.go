package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"goaguide/background-worker-service/internal/app/background-worker/entity"
	"goaguide/background-worker-service/internal/app/background-worker/repository"
	"goaguide/pkg/logger"
	"goaguide/pkg/metrics"
)

// EventProcessingService обрабатывает события каталога
// Ошибки с некорректными данными логируются и не возвращаются,
// иначе сообщение будет бесконечно перечитываться из Kafka.
type EventProcessingService struct {
	catalogRepo repository.CatalogRepository
	cacheRepo   repository.CacheRepository
	recountSvc  RecountServiceInterface
}

// NewEventProcessingService создает сервис обработки событий
func NewEventProcessingService(
	catalogRepo repository.CatalogRepository,
	cacheRepo repository.CacheRepository,
	recountSvc RecountServiceInterface,
) *EventProcessingService {
	return &EventProcessingService{
		catalogRepo: catalogRepo,
		cacheRepo:   cacheRepo,
		recountSvc:  recountSvc,
	}
}

// ProcessEvent маршрутизирует событие по типу
func (s *EventProcessingService) ProcessEvent(ctx context.Context, event *entity.DirectoryEvent) error {
	var err error

	switch event.EventType {
	case entity.EventTypeBusinessCreated:
		err = s.processBusinessCreated(ctx, event)
	case entity.EventTypeBusinessStatusChanged:
		err = s.processBusinessStatusChanged(ctx, event)
	case entity.EventTypeReviewCreated:
		err = s.processReviewCreated(ctx, event)
	default:
		logger.Debug().Str("event_type", event.EventType).Msg("Skipping unknown event type")
		metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "skipped").Inc()
		return nil
	}

	if err != nil {
		metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "error").Inc()
		return err
	}

	metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "success").Inc()
	return nil
}

// processBusinessCreated - новый листинг попадает в pending и сразу учитывается в счетчике
func (s *EventProcessingService) processBusinessCreated(ctx context.Context, event *entity.DirectoryEvent) error {
	logger.Info().
		Str("business_id", event.BusinessID).
		Str("category_id", event.CategoryID).
		Msg("Processing BUSINESS_CREATED")

	if err := s.recountSvc.RecountCategory(ctx, event.CategoryID, TriggerEvent); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

// processBusinessStatusChanged - переход в rejected и обратно меняет видимость листинга
func (s *EventProcessingService) processBusinessStatusChanged(ctx context.Context, event *entity.DirectoryEvent) error {
	logger.Info().
		Str("business_id", event.BusinessID).
		Str("status", event.Status).
		Msg("Processing BUSINESS_STATUS_CHANGED")

	return s.recountSvc.RecountCategory(ctx, event.CategoryID, TriggerEvent)
}

// processReviewCreated пересчитывает рейтинг агрегатом по всем отзывам.
// Directory Service пишет рейтинг без блокировки, здесь итог сводится к точному значению.
func (s *EventProcessingService) processReviewCreated(ctx context.Context, event *entity.DirectoryEvent) error {
	businessID, err := primitive.ObjectIDFromHex(event.BusinessID)
	if err != nil {
		logger.Warn().Str("business_id", event.BusinessID).Msg("Skipping REVIEW_CREATED: invalid business id")
		return nil
	}

	summary, err := s.catalogRepo.RecalculateRating(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			logger.Warn().Str("business_id", event.BusinessID).Msg("Skipping REVIEW_CREATED: business not found")
			return nil
		}
		return fmt.Errorf("failed to recalculate rating for business %s: %w", event.BusinessID, err)
	}

	logger.Info().
		Str("business_id", event.BusinessID).
		Float64("rating", summary.Rating).
		Int("review_count", summary.ReviewCount).
		Msg("Business rating reconciled")

	s.invalidateStats(ctx)
	return nil
}

func (s *EventProcessingService) invalidateStats(ctx context.Context) {
	if err := s.cacheRepo.InvalidateStats(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate stats cache")
	}
}
