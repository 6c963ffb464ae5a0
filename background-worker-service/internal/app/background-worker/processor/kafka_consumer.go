package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"goaguide/background-worker-service/internal/app/background-worker/entity"
	"goaguide/background-worker-service/internal/app/background-worker/service"
	"goaguide/pkg/logger"
	"goaguide/pkg/metrics"
)

const metricsService = "background-worker"

// KafkaConsumer обрабатывает события из Kafka топика directory_events
type KafkaConsumer struct {
	reader   *kafka.Reader
	topic    string
	groupID  string
	eventSvc service.EventProcessingServiceInterface
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	eventSvc service.EventProcessingServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.FirstOffset, // новая группа дочитывает историю, пересчеты идемпотентны
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
		ErrorLogger:    kafka.LoggerFunc(logger.Errorf),
	})

	return &KafkaConsumer{
		reader:   reader,
		topic:    topic,
		groupID:  groupID,
		eventSvc: eventSvc,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().
		Str("topic", c.topic).
		Str("group_id", c.groupID).
		Msg("Starting Kafka consumer")

	go c.consume(ctx)
}

// Stop останавливает consumer и дожидается завершения текущего сообщения
func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	if err := c.reader.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing Kafka reader")
	}
	logger.Info().Msg("Kafka consumer stopped")
}

func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if readCtx.Err() == context.DeadlineExceeded {
					continue
				}

				logger.Error().Err(err).Msg("Error fetching message")
				metrics.RecordKafkaError(metricsService, c.topic, "fetch")
				time.Sleep(time.Second)
				continue
			}

			start := time.Now()
			if err := c.processMessage(ctx, message); err != nil {
				// offset не коммитим, сообщение будет обработано повторно
				logger.Error().
					Err(err).
					Int64("offset", message.Offset).
					Int("partition", message.Partition).
					Msg("Error processing message")
				metrics.RecordKafkaError(metricsService, c.topic, "process")
				continue
			}
			metrics.RecordKafkaMessageConsumed(metricsService, c.topic, c.groupID, time.Since(start))

			if err := c.reader.CommitMessages(ctx, message); err != nil {
				logger.Error().Err(err).Msg("Error committing message")
				metrics.RecordKafkaError(metricsService, c.topic, "commit")
			}
		}
	}
}

// processMessage разбирает и обрабатывает одно сообщение.
// Нечитаемый JSON пропускается: повторная обработка его не исправит.
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.DirectoryEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		logger.Warn().
			Err(err).
			Int64("offset", message.Offset).
			Msg("Skipping malformed directory event")
		metrics.RecordKafkaError(metricsService, c.topic, "decode")
		return nil
	}

	logger.Debug().
		Str("event_type", event.EventType).
		Str("business_id", event.BusinessID).
		Int64("offset", message.Offset).
		Int("partition", message.Partition).
		Msg("Received directory event")

	if err := c.eventSvc.ProcessEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to process %s event: %w", event.EventType, err)
	}
	return nil
}

// GetStats возвращает статистику consumer
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
