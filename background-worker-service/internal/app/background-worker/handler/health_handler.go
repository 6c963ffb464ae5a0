package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"goaguide/pkg/logger"
	"goaguide/pkg/metrics"
)

// Pinger - зависимость, доступность которой проверяет healthcheck
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckHandler struct {
	mongo Pinger
	redis Pinger
}

func NewHealthCheckHandler(mongo, redis Pinger) *HealthCheckHandler {
	return &HealthCheckHandler{
		mongo: mongo,
		redis: redis,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// HealthCheck GET /health
// Redis не критичен: без него worker продолжает пересчеты, кеш истекает по TTL
func (h *HealthCheckHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	overallStatus := "healthy"

	if err := h.mongo.Ping(ctx); err != nil {
		checks["mongodb"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["mongodb"] = "healthy"
	}

	if err := h.redis.Ping(ctx); err != nil {
		checks["redis"] = "warning: " + err.Error()
	} else {
		checks["redis"] = "healthy"
	}

	status := http.StatusOK
	if overallStatus != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, HealthResponse{
		Status:    overallStatus,
		Service:   "background-worker",
		Checks:    checks,
		Timestamp: time.Now(),
	})
}

// Readiness GET /health/readiness
func (h *HealthCheckHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.mongo.Ping(ctx); err != nil {
		c.String(http.StatusServiceUnavailable, "mongodb not ready")
		return
	}

	c.String(http.StatusOK, "ready")
}

// Liveness GET /health/liveness
func (h *HealthCheckHandler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "alive")
}

// SetupRoutes собирает gin сервер с health и metrics
func SetupRoutes(h *HealthCheckHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("background-worker"))

	router.GET("/health", h.HealthCheck)
	router.GET("/health/readiness", h.Readiness)
	router.GET("/health/liveness", h.Liveness)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
