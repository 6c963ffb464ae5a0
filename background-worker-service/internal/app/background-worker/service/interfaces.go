package service

import (
	"context"

	"goaguide/background-worker-service/internal/app/background-worker/entity"
)

// RecountServiceInterface определяет интерфейс пересчета счетчиков категорий
type RecountServiceInterface interface {
	// RecountCategory пересчитывает business_count одной категории
	RecountCategory(ctx context.Context, categoryID, trigger string) error
	// RecountAll пересчитывает business_count всех категорий
	RecountAll(ctx context.Context, trigger string) error
}

// EventProcessingServiceInterface определяет интерфейс обработки событий каталога
type EventProcessingServiceInterface interface {
	// ProcessEvent обрабатывает событие из Kafka
	ProcessEvent(ctx context.Context, event *entity.DirectoryEvent) error
}
