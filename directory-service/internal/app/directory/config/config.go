package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"goaguide/pkg/logger"
)

// Config содержит все настройки Directory Service
// HTTP сервер, MongoDB, Redis, Kafka, JWT, объектное хранилище и лимиты загрузки
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	JWT     JWTConfig
	Storage StorageConfig
	Upload  UploadConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host        string   // Адрес хоста (по умолчанию 0.0.0.0)
	Port        string   // Порт сервера (по умолчанию 8080)
	CORSOrigins []string // Разрешенные источники для CORS
	LogLevel    string
}

// MongoDBConfig - подключение к MongoDB, где лежат все документы каталога
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig - настройки Redis для кеширования категорий и статистики
type RedisConfig struct {
	Host     string
	Port     string
	Password string // опционально
	DB       int    // 0-15
}

// KafkaConfig - настройки Kafka для событий каталога
type KafkaConfig struct {
	Brokers []string // host:port
	Topic   string   // BUSINESS_CREATED, BUSINESS_STATUS_CHANGED, REVIEW_CREATED
}

// JWTConfig - параметры выпуска и проверки токенов
type JWTConfig struct {
	Secret        string
	TokenDuration time.Duration
}

// StorageConfig - S3-совместимое хранилище (MinIO) для изображений
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string // базовый адрес для публичных ссылок, без завершающего "/"
}

// UploadConfig - ограничения загрузки файлов
type UploadConfig struct {
	MaxFiles    int
	MaxFileSize int64 // в байтах
}

// Load загружает конфигурацию из переменных окружения
// Если рядом лежит .env, его значения подхватываются первыми
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, using environment variables")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	tokenDuration, err := time.ParseDuration(getEnv("JWT_TOKEN_DURATION", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TOKEN_DURATION value: %w", err)
	}

	useSSL, err := strconv.ParseBool(getEnv("STORAGE_USE_SSL", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_USE_SSL value: %w", err)
	}

	maxFiles, err := strconv.Atoi(getEnv("UPLOAD_MAX_FILES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_FILES value: %w", err)
	}

	maxFileSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_FILE_SIZE", "5242880"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_FILE_SIZE value: %w", err)
	}

	endpoint := getEnv("STORAGE_ENDPOINT", "localhost:9000")
	bucket := getEnv("STORAGE_BUCKET", "goaguide")

	return &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnv("SERVER_PORT", "8080"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
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
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "directory_events"),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
			TokenDuration: tokenDuration,
		},
		Storage: StorageConfig{
			Endpoint:  endpoint,
			AccessKey: getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			Bucket:    bucket,
			UseSSL:    useSSL,
			PublicURL: strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", defaultPublicURL(endpoint, bucket, useSSL)), "/"),
		},
		Upload: UploadConfig{
			MaxFiles:    maxFiles,
			MaxFileSize: maxFileSize,
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func defaultPublicURL(endpoint, bucket string, useSSL bool) string {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket)
}

// splitList разбирает список через запятую, пустые элементы отбрасываются
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
