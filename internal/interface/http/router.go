package http

import (
	"net/http"

	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/postforge/postforge/internal/domain/auth"
	"github.com/postforge/postforge/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(authMiddleware(authSvc))
	{
		api.POST("/posts/preview", handler.PreviewPost)
		api.POST("/posts", handler.GeneratePost)
		api.GET("/posts", handler.ListPosts)
		api.GET("/posts/:id", handler.GetPost)
		api.DELETE("/posts/:id", handler.DeletePost)
		api.PUT("/posts/:id/schedule", handler.SchedulePost)

		api.POST("/campaigns", handler.CreateCampaign)
		api.GET("/campaigns", handler.ListCampaigns)
		api.GET("/campaigns/:id", handler.GetCampaign)
		api.DELETE("/campaigns/:id", handler.DeleteCampaign)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
