package util

import (
	"context"
	"io"
	"time"

	"goaguide/directory-service/internal/app/directory/entity"
)

// Cache интерфейс Redis кеша каталога
// Промах кеша возвращается как (nil, nil)
type Cache interface {
	SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error
	GetCategories(ctx context.Context) ([]entity.Category, error)
	DeleteCategories(ctx context.Context) error
	SetStats(ctx context.Context, stats *entity.Stats, ttl time.Duration) error
	GetStats(ctx context.Context) (*entity.Stats, error)
	Close() error
}

// MessagePublisher интерфейс для отправки событий в Kafka
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// ObjectStorage интерфейс S3-совместимого хранилища изображений
type ObjectStorage interface {
	// PutObject сохраняет объект и возвращает его публичный URL
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
}
