package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DirectoryEvent - событие каталога из топика directory_events
type DirectoryEvent struct {
	EventType  string    `json:"event_type"` // BUSINESS_CREATED, BUSINESS_STATUS_CHANGED, REVIEW_CREATED
	BusinessID string    `json:"business_id"`
	CategoryID string    `json:"category_id,omitempty"`
	ReviewID   string    `json:"review_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Rating     int       `json:"rating,omitempty"`
	Status     string    `json:"status,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	EventTypeBusinessCreated       = "BUSINESS_CREATED"
	EventTypeBusinessStatusChanged = "BUSINESS_STATUS_CHANGED"
	EventTypeReviewCreated         = "REVIEW_CREATED"
)

// PublicStatuses - статусы листингов, которые учитываются в business_count
var PublicStatuses = []string{"approved", "pending"}

// RatingSummary - агрегат оценок одного листинга
type RatingSummary struct {
	BusinessID  primitive.ObjectID
	Rating      float64 // Среднее, округленное до 0.1
	ReviewCount int
}

// CategoryCount - количество публичных листингов категории
type CategoryCount struct {
	CategoryID primitive.ObjectID `bson:"_id"`
	Count      int                `bson:"count"`
}

// Ключи кеша Directory Service, которые сбрасывает worker
const (
	RedisKeyCategories = "categories:all"
	RedisKeyStats      = "stats:overview"
)
