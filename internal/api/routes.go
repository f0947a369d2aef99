package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cvpress/internal/api/middleware"
	"cvpress/internal/auth"
	"cvpress/internal/export"
	"cvpress/internal/preview"
	"cvpress/internal/storage"
	"cvpress/internal/suggest"
)

// RegisterRoutes registers the API surface under /v1.
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.Service,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	previewEngine *preview.Engine,
	exportEngine *export.Engine,
	suggester suggest.Suggester,
	maxResumes int,
) {
	renderHandler := NewRenderHandler(previewEngine, exportEngine)
	resumeHandler := NewResumeHandler(db, asynqClient, storageClient, exportEngine, maxResumes)
	authHandler := NewAuthHandler(db, authService, redisClient)
	suggestHandler := NewSuggestHandler(suggester)
	wsHandler := NewWsHandler(redisClient, authService, logger, nil)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		renderGroup := v1.Group("/render")
		{
			renderGroup.POST("/preview", renderHandler.Preview)
			renderGroup.POST("/export", renderHandler.Export)
		}

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		resumeGroup := v1.Group("/resumes")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.GET("/:id/export", resumeHandler.ExportResume)
			resumeGroup.POST("/:id/export-async", resumeHandler.ExportResumeAsync)
			resumeGroup.GET("/:id/download", resumeHandler.DownloadResume)
			resumeGroup.GET("/:id/download-link", resumeHandler.GetDownloadLink)
		}

		v1.POST("/suggest", authMiddleware, suggestHandler.Suggest)
	}
}
