package routes

import (
	"careerhub_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.PostingHandler.RegisterRoutes(api)
		appHandlers.ApplicationHandler.RegisterRoutes(api)
	}
}
