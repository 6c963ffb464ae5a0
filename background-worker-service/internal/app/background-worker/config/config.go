package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"goaguide/pkg/logger"
)

// Config содержит все настройки Background Worker Service
// Включает конфигурацию для MongoDB, Redis, Kafka и расписания пересчетов
type Config struct {
	Server       ServerConfig
	MongoDB      MongoDBConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	CronSchedule CronScheduleConfig
}

// ServerConfig - HTTP сервер для health и metrics
type ServerConfig struct {
	Port     string // Порт (по умолчанию 8081)
	LogLevel string
}

// MongoDBConfig - та же база, что у Directory Service
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig - Redis Directory Service; worker только сбрасывает его кеш
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - настройки Kafka для подписки на события
// Слушает топик directory_events
type KafkaConfig struct {
	Brokers  []string // Список брокеров Kafka (формат: host:port)
	Topic    string   // Топик для прослушивания (directory_events)
	GroupID  string   // ID группы потребителей
	MinBytes int      // Минимум байт для fetch запроса
	MaxBytes int      // Максимум байт для fetch запроса
}

// CronScheduleConfig - настройки расписания cron задач
type CronScheduleConfig struct {
	RecountCategories string // Расписание полного пересчета business_count (например, "@every 1h")
}

// Load загружает конфигурацию из переменных окружения (и .env, если он есть)
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, using environment variables")
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	minBytes, err := getEnvInt("KAFKA_MIN_BYTES", 1)
	if err != nil {
		return nil, err
	}
	maxBytes, err := getEnvInt("KAFKA_MAX_BYTES", 10e6)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:     getEnv("WORKER_PORT", "8081"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "goaguide"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:  splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:    getEnv("KAFKA_TOPIC", "directory_events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "directory-worker-group"),
			MinBytes: minBytes,
			MaxBytes: maxBytes,
		},
		CronSchedule: CronScheduleConfig{
			RecountCategories: getEnv("WORKER_RECOUNT_SCHEDULE", "@every 1h"),
		},
	}, nil
}

// Address возвращает адрес HTTP сервера
func (c *ServerConfig) Address() string {
	return ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает значение переменной окружения как int
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return intValue, nil
}
