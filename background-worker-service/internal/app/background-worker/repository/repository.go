package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"goaguide/background-worker-service/internal/app/background-worker/entity"
	"goaguide/pkg/metrics"
)

const metricsService = "background-worker"

const (
	categoriesCollection = "categories"
	businessesCollection = "businesses"
	reviewsCollection    = "reviews"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrBusinessNotFound = errors.New("business not found")
)

// CatalogRepository интерфейс для пересчета денормализованных полей каталога в MongoDB
type CatalogRepository interface {
	// RecountCategory пересчитывает business_count одной категории.
	// Возвращает новое значение счетчика.
	RecountCategory(ctx context.Context, categoryID primitive.ObjectID) (int, error)

	// RecountAllCategories пересчитывает business_count всех категорий одним агрегатом.
	// Категории без публичных листингов получают 0. Возвращает число обновленных категорий.
	RecountAllCategories(ctx context.Context) (int, error)

	// RecalculateRating пересчитывает rating и review_count листинга по всем его отзывам
	RecalculateRating(ctx context.Context, businessID primitive.ObjectID) (*entity.RatingSummary, error)

	// Ping проверяет соединение с MongoDB
	Ping(ctx context.Context) error
}

// CacheRepository интерфейс для сброса кеша Directory Service в Redis
type CacheRepository interface {
	// InvalidateCategories удаляет закешированный список категорий
	InvalidateCategories(ctx context.Context) error

	// InvalidateStats удаляет закешированную статистику каталога
	InvalidateStats(ctx context.Context) error

	// Ping проверяет соединение с Redis
	Ping(ctx context.Context) error
}

func observe(op metrics.DbOperation, collection string) func(*error) {
	timer := metrics.NewDbTimer(metricsService, op, collection)
	return func(err *error) {
		timer.Done(*err)
	}
}
