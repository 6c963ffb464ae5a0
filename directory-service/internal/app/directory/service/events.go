package service

import (
	"context"
	"encoding/json"
	"time"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/util"
	"goaguide/pkg/logger"
)

// publishEvent отправляет событие каталога в Kafka.
// Ошибка отправки только логируется: денормализованные данные сверяет background worker.
func publishEvent(ctx context.Context, publisher util.MessagePublisher, event entity.DirectoryEvent) {
	event.Timestamp = time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("Failed to marshal event")
		return
	}

	if err := publisher.PublishMessage(ctx, event.BusinessID, payload); err != nil {
		logger.Error().
			Err(err).
			Str("event_type", event.EventType).
			Str("business_id", event.BusinessID).
			Msg("Failed to publish event")
	}
}
