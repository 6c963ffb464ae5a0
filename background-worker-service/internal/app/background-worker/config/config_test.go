package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Server.Address())
	assert.Equal(t, "goaguide", cfg.MongoDB.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "directory_events", cfg.Kafka.Topic)
	assert.Equal(t, "@every 1h", cfg.CronSchedule.RecountCategories)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("KAFKA_GROUP_ID", "recount")
	t.Setenv("WORKER_RECOUNT_SCHEDULE", "*/15 * * * *")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "recount", cfg.Kafka.GroupID)
	assert.Equal(t, "*/15 * * * *", cfg.CronSchedule.RecountCategories)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("KAFKA_MAX_BYTES", "lots")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_MAX_BYTES")
}
