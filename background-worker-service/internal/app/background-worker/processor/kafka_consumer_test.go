package processor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"goaguide/background-worker-service/internal/app/background-worker/entity"
)

// MockEventProcessingService мок для EventProcessingServiceInterface
type MockEventProcessingService struct {
	mock.Mock
}

func (m *MockEventProcessingService) ProcessEvent(ctx context.Context, event *entity.DirectoryEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestConsumer(eventSvc *MockEventProcessingService) *KafkaConsumer {
	return &KafkaConsumer{
		topic:    "directory_events",
		groupID:  "test-group",
		eventSvc: eventSvc,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// ===================== NewKafkaConsumer Tests =====================

func TestNewKafkaConsumer(t *testing.T) {
	eventSvc := new(MockEventProcessingService)

	consumer := NewKafkaConsumer([]string{"broker1:9092", "broker2:9092"}, "directory_events", "test-group", 1, 10e6, eventSvc)

	assert.NotNil(t, consumer)
	assert.NotNil(t, consumer.reader)
	assert.Equal(t, "directory_events", consumer.topic)
	assert.NotNil(t, consumer.stopChan)
	assert.NotNil(t, consumer.doneChan)

	consumer.reader.Close()
}

// ===================== processMessage Tests =====================

func TestKafkaConsumer_ProcessMessage_Success(t *testing.T) {
	// Arrange
	eventSvc := new(MockEventProcessingService)
	consumer := newTestConsumer(eventSvc)

	ctx := context.Background()
	businessID := primitive.NewObjectID().Hex()
	categoryID := primitive.NewObjectID().Hex()

	event := entity.DirectoryEvent{
		EventType:  entity.EventTypeBusinessCreated,
		BusinessID: businessID,
		CategoryID: categoryID,
		Status:     "pending",
		Timestamp:  time.Now(),
	}
	eventJSON, _ := json.Marshal(event)

	message := kafka.Message{
		Topic:  "directory_events",
		Offset: 1,
		Key:    []byte(businessID),
		Value:  eventJSON,
	}

	eventSvc.On("ProcessEvent", ctx, mock.MatchedBy(func(e *entity.DirectoryEvent) bool {
		return e.BusinessID == businessID && e.CategoryID == categoryID && e.EventType == entity.EventTypeBusinessCreated
	})).Return(nil)

	// Act
	err := consumer.processMessage(ctx, message)

	// Assert
	assert.NoError(t, err)
	eventSvc.AssertExpectations(t)
}

func TestKafkaConsumer_ProcessMessage_ReviewCreatedPayload(t *testing.T) {
	eventSvc := new(MockEventProcessingService)
	consumer := newTestConsumer(eventSvc)

	// формат, который публикует Directory Service
	payload := []byte(`{"event_type":"REVIEW_CREATED","business_id":"665f1c2e8f1b2a3c4d5e6f70","review_id":"665f1c2e8f1b2a3c4d5e6f71","user_id":"665f1c2e8f1b2a3c4d5e6f72","rating":5,"timestamp":"2026-01-10T10:00:00Z"}`)

	eventSvc.On("ProcessEvent", mock.Anything, mock.MatchedBy(func(e *entity.DirectoryEvent) bool {
		return e.EventType == entity.EventTypeReviewCreated && e.Rating == 5 && e.ReviewID == "665f1c2e8f1b2a3c4d5e6f71"
	})).Return(nil)

	err := consumer.processMessage(context.Background(), kafka.Message{Value: payload})

	assert.NoError(t, err)
	eventSvc.AssertExpectations(t)
}

func TestKafkaConsumer_ProcessMessage_MalformedJSON_Skipped(t *testing.T) {
	eventSvc := new(MockEventProcessingService)
	consumer := newTestConsumer(eventSvc)

	err := consumer.processMessage(context.Background(), kafka.Message{Value: []byte("{not json")})

	assert.NoError(t, err)
	eventSvc.AssertNotCalled(t, "ProcessEvent", mock.Anything, mock.Anything)
}

func TestKafkaConsumer_ProcessMessage_ServiceError(t *testing.T) {
	eventSvc := new(MockEventProcessingService)
	consumer := newTestConsumer(eventSvc)

	eventSvc.On("ProcessEvent", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	payload, _ := json.Marshal(entity.DirectoryEvent{EventType: entity.EventTypeBusinessStatusChanged})
	err := consumer.processMessage(context.Background(), kafka.Message{Value: payload})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "BUSINESS_STATUS_CHANGED")
	assert.Contains(t, err.Error(), "mongo down")
}
