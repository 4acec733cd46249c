package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mello-felipe/travel-map-social-app/pkg/logger"
	"github.com/mello-felipe/travel-map-social-app/pkg/metrics"
)

// SetupRoutes builds the gateway router. idempotency may be nil when no
// Redis is configured.
func SetupRoutes(postHandler *PostHandler, authMiddleware *AuthMiddleware, idempotency gin.HandlerFunc) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("posts-gateway"))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "posts-gateway",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	posts := router.Group("/posts")
	posts.Use(authMiddleware.Authenticate())
	if idempotency != nil {
		posts.Use(idempotency)
	}
	{
		posts.POST("/community", postHandler.CreateCommunityPost)
		posts.POST("/review", postHandler.CreateReviewPost)
		posts.POST("/list", postHandler.CreateListPost)
	}

	return router
}
