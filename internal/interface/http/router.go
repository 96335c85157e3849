package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evanlin/lifeboard/internal/domain/auth"
	"github.com/evanlin/lifeboard/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, contentHandler *ContentHandler, authHandler *AuthHandler, authSvc auth.Service) *http.Server {
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
	{
		caffeine := api.Group("/caffeine")
		{
			caffeine.GET("/series", handler.CaffeineSeries)
			caffeine.GET("/now", handler.CaffeineNow)
		}

		habits := api.Group("/habits", authMiddleware(authSvc))
		{
			habits.POST("/brews", handler.RecordBrew)
			habits.GET("/brews", handler.ListBrews)
			habits.DELETE("/brews/:id", handler.DeleteBrew)
		}

		profileGroup := api.Group("/profile", authMiddleware(authSvc))
		{
			profileGroup.GET("", handler.GetProfile)
			profileGroup.PUT("", handler.UpdateProfile)
		}

		contentGroup := api.Group("/content")
		{
			contentGroup.GET("/posts", optionalAuthMiddleware(authSvc), contentHandler.ListPosts)
			contentGroup.GET("/posts/:slug", optionalAuthMiddleware(authSvc), contentHandler.GetPost)
			contentGroup.GET("/search", contentHandler.SearchPosts)
			contentGroup.GET("/media/*key", contentHandler.GetMedia)

			owner := contentGroup.Group("", authMiddleware(authSvc))
			{
				owner.POST("/posts", contentHandler.CreatePost)
				owner.PUT("/posts/:slug", contentHandler.UpdatePost)
				owner.DELETE("/posts/:slug", contentHandler.DeletePost)
				owner.POST("/posts/:slug/media", contentHandler.UploadMedia)
			}
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google/login", authHandler.GoogleLogin)
			authGroup.GET("/google/callback", authHandler.GoogleCallback)
		}
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
