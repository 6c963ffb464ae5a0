package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/pkg/logger"
	"goaguide/pkg/metrics"
)

// Handlers - набор обработчиков для SetupRoutes
type Handlers struct {
	Category *CategoryHandler
	Business *BusinessHandler
	Review   *ReviewHandler
	Auth     *AuthHandler
	Upload   *UploadHandler
	Stats    *StatsHandler
}

func SetupRoutes(h Handlers, authMiddleware *AuthMiddleware, corsOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("directory-service"))

	router.Use(cors.New(corsConfig(corsOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "directory-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	api.GET("/categories", h.Category.GetCategories)
	api.POST("/categories",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(entity.RoleAdmin),
		h.Category.CreateCategory,
	)

	api.GET("/businesses/:id", h.Business.GetBusiness)

	services := api.Group("/services")
	{
		services.GET("", h.Business.ListBusinesses)
		services.GET("/suggestions", h.Business.GetSuggestions)
		services.POST("", authMiddleware.Authenticate(), h.Business.CreateBusiness)
		services.PATCH("/:id/status",
			authMiddleware.Authenticate(),
			authMiddleware.RequireRole(entity.RoleAdmin),
			h.Business.UpdateBusinessStatus,
		)

		services.GET("/:id/reviews", h.Review.GetReviews)
		services.POST("/:id/reviews", authMiddleware.Authenticate(), h.Review.CreateReview)
	}

	api.GET("/stats", h.Stats.GetStats)

	api.POST("/upload/upload-to-cloudinary", authMiddleware.Authenticate(), h.Upload.Upload)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)

		protected := auth.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.POST("/set-password", h.Auth.SetPassword)
			protected.GET("/me", h.Auth.Me)
			protected.PUT("/profile", h.Auth.UpdateProfile)
		}
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}

	cfg.AllowOrigins = origins
	return cfg
}
